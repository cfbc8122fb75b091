// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"refpart/internal/version"
)

// Options holds all CLI flags and positional arguments.
type Options struct {
	// Positional inputs
	FastaFile   string // sequence source, "-" = stdin, gzip ok
	FeatherFile string // metadata table (Feather v2)

	// Positional outputs
	OutFasta string // filtered sequences, "-" = stdout
	OutInfo  string // filtered metadata CSV, "-" = stdout

	// OR options: any one admits a record
	IsValid       bool
	TrustedTaxIDs string

	// AND options: every enabled one must pass
	DoNotTrust      string
	Inliers         bool
	IsSpecies       bool
	IsType          bool
	MinLength       int
	PropAmbigCutoff float64 // -1 = not supplied; 0.0 is an active cutoff

	// Post-filter transforms
	DropDuplicateSeqs bool
	Trusted           string
	SpeciesCap        int

	Quiet   bool
	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: partition reference sequence records by metadata filters

Version: %s

Usage:
  %s [options] <fasta> <feather> <out_fa> <out_info>

Positional arguments:
  fasta     input sequences (FASTA; '-' = stdin, .gz ok)
  feather   input metadata table (Feather v2)
  out_fa    output sequences for surviving records ('-' = stdout)
  out_info  output metadata CSV for surviving records ('-' = stdout)

Options:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// OR group
	fs.BoolVar(&opt.IsValid, "is_valid", false, "keep only named (is_valid=true) records [false]")
	fs.StringVar(&opt.TrustedTaxIDs, "trusted-taxids", "", "file of tax_ids kept regardless of is_valid")

	// AND group
	fs.StringVar(&opt.DoNotTrust, "do_not_trust", "", "file of identifiers to drop (tax_id, accession, version, or seqname)")
	fs.BoolVar(&opt.Inliers, "inliers", false, "keep only inliers (is_out=false) [false]")
	fs.BoolVar(&opt.IsSpecies, "is_species", false, "keep only records with a species-level tax id [false]")
	fs.BoolVar(&opt.IsType, "is_type", false, "keep only type-strain records [false]")
	fs.IntVar(&opt.MinLength, "min-length", 0, "minimum sequence length (0 = off) [0]")
	fs.Float64Var(&opt.PropAmbigCutoff, "prop-ambig-cutoff", -1, "maximum proportion of ambiguous characters, in [0,1] (unset = off)")

	// Post-filter transforms
	fs.BoolVar(&opt.DropDuplicateSeqs, "drop-duplicate-sequences", false, "group by accession and drop rows with duplicate seqhashes [false]")
	fs.StringVar(&opt.Trusted, "trusted", "", "file of trusted record versions, accessions, or seqnames re-appended after filtering")
	fs.IntVar(&opt.SpeciesCap, "species-cap", 0, "keep at most N records per species group (0 = off) [0]")

	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress non-fatal warnings [false]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	args := fs.Args()
	if len(args) != 4 {
		return opt, fmt.Errorf("expected 4 positional arguments <fasta> <feather> <out_fa> <out_info>, got %d", len(args))
	}
	opt.FastaFile, opt.FeatherFile, opt.OutFasta, opt.OutInfo = args[0], args[1], args[2], args[3]

	// Validation
	if opt.MinLength < 0 {
		return opt, errors.New("--min-length must be ≥ 0")
	}
	if opt.PropAmbigCutoff != -1 && (opt.PropAmbigCutoff < 0 || opt.PropAmbigCutoff > 1) {
		return opt, errors.New("--prop-ambig-cutoff must be in [0,1]")
	}
	if opt.SpeciesCap < 0 {
		return opt, errors.New("--species-cap must be ≥ 0")
	}
	if opt.OutFasta == "-" && opt.OutInfo == "-" {
		return opt, errors.New("out_fa and out_info cannot both be '-'")
	}
	return opt, nil
}

// PropAmbigEnabled reports whether --prop-ambig-cutoff was supplied.
// An explicit 0.0 counts as supplied.
func (o Options) PropAmbigEnabled() bool { return o.PropAmbigCutoff >= 0 }
