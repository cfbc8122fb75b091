// core/filter/predicates.go
package filter

import (
	"refpart-core/idlist"
	"refpart-core/table"
)

// Predicate reports whether a record passes a single filter condition.
type Predicate func(*table.Record) bool

// Valid passes records flagged is_valid.
func Valid(r *table.Record) bool { return r.IsValid }

// Inlier passes records not flagged as outliers.
func Inlier(r *table.Record) bool { return !r.IsOut }

// HasSpecies passes records with a species-level taxon assigned.
func HasSpecies(r *table.Record) bool { return r.Species != "" }

// TypeStrain passes type-strain records.
func TypeStrain(r *table.Record) bool { return r.IsType }

// MinLength passes records at least n long.
func MinLength(n int) Predicate {
	return func(r *table.Record) bool { return r.Length >= n }
}

// PropAmbigMax passes records whose ambiguity proportion is at most cutoff.
// A zero-length record has an undefined proportion and fails the cutoff.
// Such a record can still be restored through the trusted list.
func PropAmbigMax(cutoff float64) Predicate {
	return func(r *table.Record) bool {
		if r.Length == 0 {
			return false
		}
		return float64(r.AmbigCount)/float64(r.Length) <= cutoff
	}
}

// TaxIDIn passes records whose tax_id is in ids.
func TaxIDIn(ids idlist.Set) Predicate {
	return func(r *table.Record) bool { return ids.Contains(r.TaxID) }
}

// NotDoNotTrust passes records with tax_id, accession, version, and seqname
// all absent from ids; any single match excludes the record.
func NotDoNotTrust(ids idlist.Set) Predicate {
	return func(r *table.Record) bool {
		return !ids.Contains(r.TaxID) &&
			!ids.Contains(r.Accession) &&
			!ids.Contains(r.Version) &&
			!ids.Contains(r.Seqname)
	}
}
