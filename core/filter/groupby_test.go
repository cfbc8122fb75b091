// core/filter/groupby_test.go
package filter

import (
	"testing"

	"refpart-core/table"
)

func names(recs []table.Record) []string {
	out := make([]string, len(recs))
	for i := range recs {
		out[i] = recs[i].Seqname
	}
	return out
}

func equalNames(t *testing.T, got []table.Record, want ...string) {
	t.Helper()
	g := names(got)
	if len(g) != len(want) {
		t.Fatalf("want %v, got %v", want, g)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("want %v, got %v", want, g)
		}
	}
}

func TestKeepFirstNArrivalOrder(t *testing.T) {
	recs := []table.Record{
		{Seqname: "A", Species: "1"},
		{Seqname: "B", Species: "1"},
		{Seqname: "C", Species: "1"},
		{Seqname: "D", Species: "2"},
	}
	got := KeepFirstN(recs, 2, func(r *table.Record) string { return r.Species })
	equalNames(t, got, "A", "B", "D")
}

func TestKeepFirstNSmallGroupsUnaffected(t *testing.T) {
	recs := []table.Record{
		{Seqname: "A", Species: "1"},
		{Seqname: "B", Species: "2"},
	}
	got := KeepFirstN(recs, 3, func(r *table.Record) string { return r.Species })
	equalNames(t, got, "A", "B")
}

func TestKeepFirstNCompositeKey(t *testing.T) {
	type key struct{ a, h string }
	recs := []table.Record{
		{Seqname: "A", Accession: "X", Seqhash: "h1"},
		{Seqname: "B", Accession: "X", Seqhash: "h1"},
		{Seqname: "C", Accession: "X", Seqhash: "h2"},
		{Seqname: "D", Accession: "Y", Seqhash: "h1"},
	}
	got := KeepFirstN(recs, 1, func(r *table.Record) key { return key{r.Accession, r.Seqhash} })
	equalNames(t, got, "A", "C", "D")
}
