// core/feather/write.go
package feather

import (
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"refpart-core/table"
)

// Write serializes tbl as a single-batch Feather v2 (Arrow IPC) file.
// Count columns are written as int64, flag columns as booleans, everything
// else as UTF-8; a "" species is written as null. The inverse of Load.
func Write(path string, tbl *table.Table) (err error) {
	fields := make([]arrow.Field, len(tbl.Columns))
	for i, c := range tbl.Columns {
		fields[i] = arrow.Field{Name: c, Type: colType(c), Nullable: c == table.ColSpecies}
	}
	schema := arrow.NewSchema(fields, nil)

	pool := memory.DefaultAllocator
	b := array.NewRecordBuilder(pool, schema)
	defer b.Release()

	for i := range tbl.Records {
		r := &tbl.Records[i]
		for c, col := range tbl.Columns {
			appendCell(b.Field(c), col, r, tbl)
		}
	}
	batch := b.NewRecord()
	defer batch.Release()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w, err := ipc.NewFileWriter(f, ipc.WithSchema(schema), ipc.WithAllocator(pool))
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Write(batch); err != nil {
		_ = w.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func colType(col string) arrow.DataType {
	switch col {
	case table.ColLength, table.ColAmbigCount:
		return arrow.PrimitiveTypes.Int64
	case table.ColIsValid, table.ColIsType, table.ColIsOut:
		return arrow.FixedWidthTypes.Boolean
	default:
		return arrow.BinaryTypes.String
	}
}

func appendCell(fb array.Builder, col string, r *table.Record, tbl *table.Table) {
	switch col {
	case table.ColLength:
		fb.(*array.Int64Builder).Append(int64(r.Length))
	case table.ColAmbigCount:
		fb.(*array.Int64Builder).Append(int64(r.AmbigCount))
	case table.ColIsValid:
		fb.(*array.BooleanBuilder).Append(r.IsValid)
	case table.ColIsType:
		fb.(*array.BooleanBuilder).Append(r.IsType)
	case table.ColIsOut:
		fb.(*array.BooleanBuilder).Append(r.IsOut)
	case table.ColSpecies:
		if r.Species == "" {
			fb.(*array.StringBuilder).AppendNull()
			return
		}
		fb.(*array.StringBuilder).Append(r.Species)
	default:
		fb.(*array.StringBuilder).Append(tbl.Cell(r, col))
	}
}
