// internal/writers/info_csv.go
package writers

import (
	"encoding/csv"
	"io"

	"refpart-core/table"
)

// WriteInfoCSV serializes tbl as delimited text with a header row, column
// order and row order preserved.
func WriteInfoCSV(w io.Writer, tbl *table.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tbl.Columns); err != nil {
		return err
	}
	row := make([]string, len(tbl.Columns))
	for i := range tbl.Records {
		for j, col := range tbl.Columns {
			row[j] = tbl.Cell(&tbl.Records[i], col)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
