// internal/app/app.go
package app

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"refpart-core/fasta"
	"refpart-core/feather"
	"refpart-core/filter"
	"refpart-core/idlist"
	"refpart/internal/cli"
	"refpart/internal/reconcile"
	"refpart/internal/version"
	"refpart/internal/writers"
)

// Run executes one partitioning run. Exit codes: 0 success (including a
// downstream broken pipe on a '-' output), 2 usage, configuration, or input
// errors, 3 output errors. Outputs are opened only after every input has
// loaded and the filter configuration has validated, so a fatal error leaves
// no partial output behind.
func Run(argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet("refpart")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(stdout)
		fs.Usage()
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(stdout)
			fs.Usage()
			return 0
		}
		fmt.Fprintln(stderr, err)
		fs.SetOutput(stderr)
		fs.Usage()
		return 2
	}
	if opts.Version {
		fmt.Fprintf(stdout, "refpart version %s\n", version.Version)
		return 0
	}

	cfg := filter.Config{
		RequireValid:   opts.IsValid,
		MinLength:      opts.MinLength,
		RequireType:    opts.IsType,
		RequireSpecies: opts.IsSpecies,
		RequireInliers: opts.Inliers,
		DropDuplicates: opts.DropDuplicateSeqs,
		SpeciesCap:     opts.SpeciesCap,
	}
	if opts.PropAmbigEnabled() {
		cutoff := opts.PropAmbigCutoff
		cfg.PropAmbigCutoff = &cutoff
	}
	if cfg.TrustedTaxIDs, err = loadList(opts.TrustedTaxIDs); err != nil {
		fmt.Fprintf(stderr, "--trusted-taxids: %v\n", err)
		return 2
	}
	if cfg.DoNotTrust, err = loadList(opts.DoNotTrust); err != nil {
		fmt.Fprintf(stderr, "--do_not_trust: %v\n", err)
		return 2
	}
	if cfg.Trusted, err = loadList(opts.Trusted); err != nil {
		fmt.Fprintf(stderr, "--trusted: %v\n", err)
		return 2
	}

	tbl, err := feather.Load(opts.FeatherFile)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	out, err := filter.New(cfg).Run(tbl)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	idx, err := fasta.ReadIndex(opts.FastaFile)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	faw, closeFa, err := openOut(opts.OutFasta, stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}
	dropped, err := reconcile.Emit(out.Records, idx, fasta.NewWriter(faw))
	if err != nil {
		_ = closeFa()
		if writers.IsBrokenPipe(err) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 3
	}
	if err := closeFa(); err != nil {
		if writers.IsBrokenPipe(err) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 3
	}
	if len(dropped) > 0 {
		if !opts.Quiet {
			fmt.Fprintf(stderr, "warning: %d record(s) in the metadata table had no sequence in %s and were dropped\n",
				len(dropped), opts.FastaFile)
		}
		out = reconcile.Prune(out, dropped)
	}

	infow, closeInfo, err := openOut(opts.OutInfo, stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}
	if err := writers.WriteInfoCSV(infow, out); err != nil {
		_ = closeInfo()
		if writers.IsBrokenPipe(err) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 3
	}
	if err := closeInfo(); err != nil {
		if writers.IsBrokenPipe(err) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 3
	}
	return 0
}

func loadList(path string) (idlist.Set, error) {
	if path == "" {
		return nil, nil
	}
	return idlist.Load(path)
}

// openOut opens an output destination; "-" means stdout. The returned close
// function flushes and reports the first error.
func openOut(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "-" {
		bw := bufio.NewWriter(stdout)
		return bw, bw.Flush, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	bw := bufio.NewWriter(f)
	return bw, func() error {
		if err := bw.Flush(); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	}, nil
}
