// core/fasta/writer.go
package fasta

import (
	"io"

	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq"
)

const lineWidth = 60

// Writer emits FASTA records with fixed line wrapping.
type Writer struct {
	w *fasta.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: fasta.NewWriter(w, lineWidth)}
}

func (fw *Writer) Write(s seq.Sequence) error {
	_, err := fw.w.Write(s)
	return err
}
