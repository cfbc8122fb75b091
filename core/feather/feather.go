// core/feather/feather.go
//
// Feather v2 files are Arrow IPC files, so the metadata table is read with
// the Arrow file reader directly.
package feather

import (
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"refpart-core/table"
)

// Load reads the Feather file at path into a Table. Column order follows the
// file schema; known schema columns parse into typed Record fields and any
// others pass through as opaque strings. Null cells map to the zero value
// (for species, "" = no species-level taxon).
func Load(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := ipc.NewFileReader(f, ipc.WithAllocator(memory.DefaultAllocator))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer r.Close()

	schema := r.Schema()
	tbl := &table.Table{Columns: make([]string, 0, schema.NumFields())}
	for _, fld := range schema.Fields() {
		tbl.Columns = append(tbl.Columns, fld.Name)
	}

	for i := 0; i < r.NumRecords(); i++ {
		batch, err := r.Record(i)
		if err != nil {
			return nil, fmt.Errorf("read %s: batch %d: %w", path, i, err)
		}
		cols := batch.Columns()
		for row := 0; row < int(batch.NumRows()); row++ {
			var rec table.Record
			for c, arr := range cols {
				if arr.IsNull(row) {
					continue
				}
				name := schema.Field(c).Name
				if err := table.SetCell(&rec, name, arr.ValueStr(row)); err != nil {
					return nil, fmt.Errorf("read %s: column %q row %d: %w", path, name, row, err)
				}
			}
			tbl.Records = append(tbl.Records, rec)
		}
	}
	return tbl, nil
}
