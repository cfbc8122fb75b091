// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"refpart-core/feather"
	"refpart-core/table"
	"refpart/internal/app"
)

var allColumns = []string{
	table.ColSeqname, table.ColAccession, table.ColVersion, table.ColTaxID,
	table.ColSpecies, table.ColSeqhash, table.ColLength, table.ColAmbigCount,
	table.ColIsValid, table.ColIsType, table.ColIsOut,
}

func write(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func writeFeather(t *testing.T, dir string, tbl *table.Table) string {
	t.Helper()
	path := filepath.Join(dir, "info.feather")
	if err := feather.Write(path, tbl); err != nil {
		t.Fatalf("write feather: %v", err)
	}
	return path
}

// fastaNames returns the header IDs of path in file order.
func fastaNames(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, ">") {
			names = append(names, strings.Fields(line[1:])[0])
		}
	}
	return names
}

// csvSeqnames returns the seqname column of the info CSV in row order.
func csvSeqnames(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("csv %s: %v", path, err)
	}
	if len(rows) == 0 || rows[0][0] != table.ColSeqname {
		t.Fatalf("bad header in %s: %v", path, rows)
	}
	var names []string
	for _, row := range rows[1:] {
		names = append(names, row[0])
	}
	return names
}

func rec(seqname, taxID, species string, length int, valid bool) table.Record {
	acc := strings.SplitN(seqname, ".", 2)[0]
	return table.Record{
		Seqname: seqname, Accession: acc, Version: seqname, TaxID: taxID,
		Species: species, Seqhash: "h_" + seqname, Length: length,
		IsValid: valid,
	}
}

func TestEndToEnd(t *testing.T) {
	dir := t.TempDir()

	// s4 has no sequence in the FASTA input; s2 is invalid but tax-trusted;
	// s3 is too short.
	tbl := &table.Table{Columns: allColumns, Records: []table.Record{
		rec("s1.1", "100", "100", 8, true),
		rec("s2.1", "200", "200", 8, false),
		rec("s3.1", "100", "100", 2, true),
		rec("s4.1", "100", "100", 8, true),
	}}
	fe := writeFeather(t, dir, tbl)
	fa := write(t, dir, "in.fa", ">s1.1\nACGTACGT\n>s2.1\nACGTACGA\n>s3.1\nAC\n")
	taxids := write(t, dir, "taxids.txt", "# trusted\n200\n")
	outFa := filepath.Join(dir, "out.fa")
	outInfo := filepath.Join(dir, "out.csv")

	var out, errBuf bytes.Buffer
	code := app.Run([]string{
		"--is_valid",
		"--trusted-taxids", taxids,
		"--min-length", "5",
		fa, fe, outFa, outInfo,
	}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}

	wantNames := []string{"s1.1", "s2.1"}
	gotFa := fastaNames(t, outFa)
	gotCSV := csvSeqnames(t, outInfo)
	if strings.Join(gotFa, ",") != strings.Join(wantNames, ",") {
		t.Errorf("fasta names = %v, want %v", gotFa, wantNames)
	}
	// Both outputs must name exactly the same records, in the same order.
	if strings.Join(gotCSV, ",") != strings.Join(gotFa, ",") {
		t.Errorf("csv names %v != fasta names %v", gotCSV, gotFa)
	}
	// s4 survived filtering but had no sequence: dropped with a warning.
	if !strings.Contains(errBuf.String(), "had no sequence") {
		t.Errorf("expected drop warning, got: %s", errBuf.String())
	}
}

func TestEndToEndTrustedAndCap(t *testing.T) {
	dir := t.TempDir()

	tbl := &table.Table{Columns: allColumns, Records: []table.Record{
		rec("a1.1", "100", "7", 8, true),
		rec("a2.1", "100", "7", 8, true),
		rec("a3.1", "100", "7", 8, true),
		rec("b1.1", "200", "8", 8, true),
		rec("t1.1", "300", "9", 2, true), // too short, but trusted
	}}
	fe := writeFeather(t, dir, tbl)
	fa := write(t, dir, "in.fa",
		">a1.1\nACGTACGT\n>a2.1\nACGTACGT\n>a3.1\nACGTACGT\n>b1.1\nACGTACGT\n>t1.1\nAC\n")
	trusted := write(t, dir, "trusted.txt", "t1.1\n")
	outFa := filepath.Join(dir, "out.fa")
	outInfo := filepath.Join(dir, "out.csv")

	var out, errBuf bytes.Buffer
	code := app.Run([]string{
		"--min-length", "5",
		"--trusted", trusted,
		"--species-cap", "2",
		fa, fe, outFa, outInfo,
	}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}
	want := "a1.1,a2.1,b1.1,t1.1"
	if got := strings.Join(csvSeqnames(t, outInfo), ","); got != want {
		t.Errorf("csv names = %s, want %s", got, want)
	}
}

func TestMissingColumnFailsBeforeOutput(t *testing.T) {
	dir := t.TempDir()

	tbl := &table.Table{
		Columns: []string{table.ColSeqname, table.ColLength},
		Records: []table.Record{{Seqname: "s1", Length: 5}},
	}
	fe := writeFeather(t, dir, tbl)
	fa := write(t, dir, "in.fa", ">s1\nACGTA\n")
	outFa := filepath.Join(dir, "out.fa")
	outInfo := filepath.Join(dir, "out.csv")

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"--is_type", fa, fe, outFa, outInfo}, &out, &errBuf)
	if code != 2 {
		t.Fatalf("want exit 2, got %d (err=%s)", code, errBuf.String())
	}
	if !strings.Contains(errBuf.String(), "--is_type") {
		t.Errorf("error should name the flag: %s", errBuf.String())
	}
	if _, err := os.Stat(outFa); !os.IsNotExist(err) {
		t.Errorf("out.fa written despite configuration error")
	}
	if _, err := os.Stat(outInfo); !os.IsNotExist(err) {
		t.Errorf("out.csv written despite configuration error")
	}
}

func TestVersionFlag(t *testing.T) {
	var out, errBuf bytes.Buffer
	code := app.Run([]string{"--version"}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(out.String(), "refpart version") {
		t.Errorf("version output = %q", out.String())
	}
}

func TestNoArgsPrintsUsage(t *testing.T) {
	var out, errBuf bytes.Buffer
	code := app.Run(nil, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(out.String(), "Usage") {
		t.Errorf("usage output = %q", out.String())
	}
}
