// core/filter/pipeline.go
package filter

import (
	"fmt"

	"refpart-core/idlist"
	"refpart-core/table"
)

// Config selects the optional pipeline stages. A zero field disables its
// stage: nil Set = off, MinLength 0 = off, SpeciesCap 0 = off, nil
// PropAmbigCutoff = off. PropAmbigCutoff is a pointer so an explicit 0.0
// cutoff (only ambiguity-free records pass) stays distinguishable from
// "not supplied".
type Config struct {
	// OR-admit phase
	RequireValid  bool
	TrustedTaxIDs idlist.Set

	// AND-require phase
	MinLength       int
	PropAmbigCutoff *float64
	RequireType     bool
	RequireSpecies  bool
	RequireInliers  bool
	DoNotTrust      idlist.Set

	// Post-filter transforms
	DropDuplicates bool
	Trusted        idlist.Set
	SpeciesCap     int
}

// Pipeline applies the fixed stage order of Config to a metadata table.
type Pipeline struct {
	cfg Config
}

func New(cfg Config) *Pipeline { return &Pipeline{cfg: cfg} }

// stage is one AND-require step: the flag that enabled it, the input columns
// it reads, and the condition surviving records must satisfy.
type stage struct {
	flag    string
	enabled bool
	columns []string
	keep    Predicate
}

// andStages returns the AND-require steps in their fixed execution order.
func (p *Pipeline) andStages() []stage {
	c := p.cfg
	cutoff := -1.0
	if c.PropAmbigCutoff != nil {
		cutoff = *c.PropAmbigCutoff
	}
	return []stage{
		{"--min-length", c.MinLength > 0, []string{table.ColLength}, MinLength(c.MinLength)},
		{"--prop-ambig-cutoff", c.PropAmbigCutoff != nil, []string{table.ColAmbigCount, table.ColLength}, PropAmbigMax(cutoff)},
		{"--is_type", c.RequireType, []string{table.ColIsType}, TypeStrain},
		{"--is_species", c.RequireSpecies, []string{table.ColSpecies}, HasSpecies},
		{"--inliers", c.RequireInliers, []string{table.ColIsOut}, Inlier},
		{"--do_not_trust", c.DoNotTrust != nil, []string{table.ColTaxID, table.ColAccession, table.ColVersion, table.ColSeqname}, NotDoNotTrust(c.DoNotTrust)},
	}
}

// requirements lists the input columns every enabled stage reads, including
// the OR phase and post-filter transforms, keyed by the enabling flag.
func (p *Pipeline) requirements() []stage {
	c := p.cfg
	req := []stage{
		{flag: "--is_valid", enabled: c.RequireValid, columns: []string{table.ColIsValid}},
		{flag: "--trusted-taxids", enabled: c.TrustedTaxIDs != nil, columns: []string{table.ColTaxID}},
	}
	req = append(req, p.andStages()...)
	req = append(req,
		stage{flag: "--drop-duplicate-sequences", enabled: c.DropDuplicates, columns: []string{table.ColAccession, table.ColSeqhash}},
		stage{flag: "--trusted", enabled: c.Trusted != nil, columns: []string{table.ColVersion, table.ColAccession, table.ColSeqname}},
		stage{flag: "--species-cap", enabled: c.SpeciesCap > 0, columns: []string{table.ColSpecies}},
	)
	return req
}

// validate rejects the configuration before any row is touched: every
// enabled stage must find its input columns in the loaded table.
func (p *Pipeline) validate(tbl *table.Table) error {
	for _, st := range p.requirements() {
		if !st.enabled {
			continue
		}
		for _, col := range st.columns {
			if !tbl.HasColumn(col) {
				return fmt.Errorf("%s: metadata table has no %q column", st.flag, col)
			}
		}
	}
	return nil
}

// Run executes the pipeline over tbl and returns the surviving rows as a new
// table. tbl itself is not modified.
//
// Stage order: trusted snapshot, OR-admit (is_valid lowered, trusted tax_ids
// raised), AND-require, duplicate dropping, trusted re-insertion, species cap.
func (p *Pipeline) Run(tbl *table.Table) (*table.Table, error) {
	if err := p.validate(tbl); err != nil {
		return nil, err
	}
	c := p.cfg

	// Trusted rows are snapshotted from the original table so they survive
	// regardless of what the filter phases later reject.
	var trusted []table.Record
	if c.Trusted != nil {
		for i := range tbl.Records {
			r := &tbl.Records[i]
			if c.Trusted.Contains(r.Version) || c.Trusted.Contains(r.Accession) || c.Trusted.Contains(r.Seqname) {
				trusted = append(trusted, *r)
			}
		}
	}

	// OR-admit: any one satisfied condition keeps a row. The keep mask is a
	// vector aligned to row indices; is_valid may only lower it, the trusted
	// tax_id override may only raise it.
	keep := make([]bool, len(tbl.Records))
	for i := range keep {
		keep[i] = true
	}
	if c.RequireValid {
		for i := range tbl.Records {
			if !Valid(&tbl.Records[i]) {
				keep[i] = false
			}
		}
	}
	if c.TrustedTaxIDs != nil {
		pred := TaxIDIn(c.TrustedTaxIDs)
		for i := range tbl.Records {
			if pred(&tbl.Records[i]) {
				keep[i] = true
			}
		}
	}
	recs := make([]table.Record, 0, len(tbl.Records))
	for i := range tbl.Records {
		if keep[i] {
			recs = append(recs, tbl.Records[i])
		}
	}

	// AND-require: every enabled condition must hold.
	for _, st := range p.andStages() {
		if !st.enabled {
			continue
		}
		recs = filterRecords(recs, st.keep)
	}

	if c.DropDuplicates {
		type dupKey struct{ accession, seqhash string }
		recs = KeepFirstN(recs, 1, func(r *table.Record) dupKey {
			return dupKey{r.Accession, r.Seqhash}
		})
	}

	// Trusted rows not already present are appended at the end, keeping
	// their original relative order. Membership is by seqname.
	if c.Trusted != nil {
		present := make(map[string]bool, len(recs))
		for i := range recs {
			present[recs[i].Seqname] = true
		}
		for i := range trusted {
			if !present[trusted[i].Seqname] {
				recs = append(recs, trusted[i])
			}
		}
	}

	if c.SpeciesCap > 0 {
		recs = KeepFirstN(recs, c.SpeciesCap, func(r *table.Record) string {
			return r.Species
		})
	}

	return tbl.WithRecords(recs), nil
}

func filterRecords(recs []table.Record, keep Predicate) []table.Record {
	out := recs[:0]
	for i := range recs {
		if keep(&recs[i]) {
			out = append(out, recs[i])
		}
	}
	return out
}
