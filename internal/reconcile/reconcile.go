// internal/reconcile/reconcile.go
package reconcile

import (
	"refpart-core/fasta"
	"refpart-core/table"
)

// Emit writes the sequence for each record in table order to w and returns
// the seqnames with no sequence in idx. A missing sequence is not an error;
// the caller removes dropped names from the table so the two outputs stay
// consistent by construction.
func Emit(recs []table.Record, idx fasta.Index, w *fasta.Writer) (map[string]bool, error) {
	dropped := make(map[string]bool)
	for i := range recs {
		s, ok := idx[recs[i].Seqname]
		if !ok {
			dropped[recs[i].Seqname] = true
			continue
		}
		if err := w.Write(s); err != nil {
			return nil, err
		}
	}
	return dropped, nil
}

// Prune returns the records of tbl excluding every seqname in dropped.
func Prune(tbl *table.Table, dropped map[string]bool) *table.Table {
	if len(dropped) == 0 {
		return tbl
	}
	recs := make([]table.Record, 0, len(tbl.Records))
	for i := range tbl.Records {
		if !dropped[tbl.Records[i].Seqname] {
			recs = append(recs, tbl.Records[i])
		}
	}
	return tbl.WithRecords(recs)
}
