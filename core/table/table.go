// core/table/table.go
package table

import (
	"fmt"
	"strconv"
)

// Known metadata column names.
const (
	ColSeqname    = "seqname"
	ColAccession  = "accession"
	ColVersion    = "version"
	ColTaxID      = "tax_id"
	ColSpecies    = "species"
	ColSeqhash    = "seqhash"
	ColLength     = "length"
	ColAmbigCount = "ambig_count"
	ColIsValid    = "is_valid"
	ColIsType     = "is_type"
	ColIsOut      = "is_out"
)

// Record is the metadata row for one sequence.
type Record struct {
	Seqname    string
	Accession  string
	Version    string
	TaxID      string
	Species    string // "" = no species-level taxon assigned
	Seqhash    string
	Length     int
	AmbigCount int
	IsValid    bool
	IsType     bool
	IsOut      bool

	// Extra carries input columns outside the known schema so they pass
	// through to the output unchanged.
	Extra map[string]string
}

// Table is an in-memory metadata table, one Record per sequence.
// Columns preserves the source column order for serialization.
type Table struct {
	Columns []string
	Records []Record
}

// HasColumn reports whether the named column was present at load time.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// WithRecords returns a table with the same column set but holding recs.
func (t *Table) WithRecords(recs []Record) *Table {
	return &Table{Columns: t.Columns, Records: recs}
}

// Cell returns the serialized value of column col for record r.
// Booleans render as true/false; a null species renders as the empty string.
func (t *Table) Cell(r *Record, col string) string {
	switch col {
	case ColSeqname:
		return r.Seqname
	case ColAccession:
		return r.Accession
	case ColVersion:
		return r.Version
	case ColTaxID:
		return r.TaxID
	case ColSpecies:
		return r.Species
	case ColSeqhash:
		return r.Seqhash
	case ColLength:
		return strconv.Itoa(r.Length)
	case ColAmbigCount:
		return strconv.Itoa(r.AmbigCount)
	case ColIsValid:
		return strconv.FormatBool(r.IsValid)
	case ColIsType:
		return strconv.FormatBool(r.IsType)
	case ColIsOut:
		return strconv.FormatBool(r.IsOut)
	default:
		return r.Extra[col]
	}
}

// SetCell parses val into the typed field for column col, or stores it in
// Extra for columns outside the known schema. The inverse of Cell.
func SetCell(r *Record, col, val string) error {
	switch col {
	case ColSeqname:
		r.Seqname = val
	case ColAccession:
		r.Accession = val
	case ColVersion:
		r.Version = val
	case ColTaxID:
		r.TaxID = val
	case ColSpecies:
		r.Species = val
	case ColSeqhash:
		r.Seqhash = val
	case ColLength:
		n, err := parseCount(val)
		if err != nil {
			return fmt.Errorf("length: %w", err)
		}
		r.Length = n
	case ColAmbigCount:
		n, err := parseCount(val)
		if err != nil {
			return fmt.Errorf("ambig_count: %w", err)
		}
		r.AmbigCount = n
	case ColIsValid:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("is_valid: %w", err)
		}
		r.IsValid = b
	case ColIsType:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("is_type: %w", err)
		}
		r.IsType = b
	case ColIsOut:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("is_out: %w", err)
		}
		r.IsOut = b
	default:
		if r.Extra == nil {
			r.Extra = make(map[string]string)
		}
		r.Extra[col] = val
	}
	return nil
}

// parseCount accepts plain integers plus the float renderings a columnar
// source may use for integer columns (e.g. "1432" stored as float64).
func parseCount(val string) (int, error) {
	if n, err := strconv.Atoi(val); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative count %d", n)
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("not a count: %q", val)
	}
	n := int(f)
	if float64(n) != f || n < 0 {
		return 0, fmt.Errorf("not a count: %q", val)
	}
	return n, nil
}
