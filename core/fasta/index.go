// core/fasta/index.go
package fasta

import (
	"fmt"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// Index maps a sequence name to its parsed sequence. Iteration order is not
// meaningful; callers impose their own order.
type Index map[string]*linear.Seq

// ReadIndex parses every record from path ("-" = stdin, gzip transparent)
// into an Index. The redundant DNA alphabet admits IUPAC ambiguity codes,
// which are routine in reference sets. A repeated ID keeps the last record.
func ReadIndex(path string) (Index, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	r := fasta.NewReader(rc, linear.NewSeq("", nil, alphabet.DNAredundant))
	sc := seqio.NewScanner(r)
	idx := make(Index)
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		idx[s.ID] = s
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("fasta %s: %w", path, err)
	}
	return idx, nil
}
