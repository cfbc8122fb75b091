// core/filter/groupby.go
package filter

import "refpart-core/table"

// KeepFirstN groups recs by key and keeps the first n rows per group in
// arrival order. Groups with fewer than n rows are unaffected. Used for both
// duplicate dropping (n=1, key=accession+seqhash) and the species cap, so
// both share one ordering contract.
func KeepFirstN[K comparable](recs []table.Record, n int, key func(*table.Record) K) []table.Record {
	if n <= 0 {
		return nil
	}
	seen := make(map[K]int)
	out := make([]table.Record, 0, len(recs))
	for i := range recs {
		k := key(&recs[i])
		if seen[k] < n {
			seen[k]++
			out = append(out, recs[i])
		}
	}
	return out
}
