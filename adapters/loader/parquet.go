package loader

import (
	"context"
	"fmt"
	"os"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/parquet/file"
	"github.com/apache/arrow/go/v14/parquet/pqarrow"

	"tabprof/domain/table"
	"tabprof/internal/config"
	"tabprof/internal/errors"
)

// loadParquet materializes a Parquet file through the Arrow reader.
// Arrow column types map onto the table value types; anything without a
// native mapping falls back to its string form.
func loadParquet(ctx context.Context, path string, limits config.Limits) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.LoadFailed(fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	reader, err := file.NewParquetReader(f)
	if err != nil {
		return nil, errors.LoadFailed("failed to read parquet metadata", err)
	}
	defer reader.Close()

	arrowReader, err := pqarrow.NewFileReader(reader, pqarrow.ArrowReadProperties{}, nil)
	if err != nil {
		return nil, errors.LoadFailed("failed to build arrow reader", err)
	}

	arrowTable, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, errors.LoadFailed("failed to read parquet table", err)
	}
	defer arrowTable.Release()

	if err := checkLimits(int(arrowTable.NumRows()), int(arrowTable.NumCols()), limits); err != nil {
		return nil, err
	}

	schema := arrowTable.Schema()
	cols := make([]table.Column, arrowTable.NumCols())
	for i := 0; i < int(arrowTable.NumCols()); i++ {
		col := table.Column{
			Name:   schema.Field(i).Name,
			Values: make([]table.Value, 0, int(arrowTable.NumRows())),
		}
		for _, chunk := range arrowTable.Column(i).Data().Chunks() {
			appendChunk(&col, chunk)
		}
		cols[i] = col
	}

	tbl, err := table.New(cols)
	if err != nil {
		return nil, errors.LoadFailed("invalid table structure", err)
	}
	return tbl, nil
}

func appendChunk(col *table.Column, chunk arrow.Array) {
	for i := 0; i < chunk.Len(); i++ {
		if chunk.IsNull(i) {
			col.Values = append(col.Values, table.NewMissingValue())
			continue
		}
		col.Values = append(col.Values, arrowValue(chunk, i))
	}
}

func arrowValue(chunk arrow.Array, i int) table.Value {
	switch arr := chunk.(type) {
	case *array.Float64:
		return table.NewNumericValue(arr.Value(i))
	case *array.Float32:
		return table.NewNumericValue(float64(arr.Value(i)))
	case *array.Int64:
		return table.NewNumericValue(float64(arr.Value(i)))
	case *array.Int32:
		return table.NewNumericValue(float64(arr.Value(i)))
	case *array.Int16:
		return table.NewNumericValue(float64(arr.Value(i)))
	case *array.Int8:
		return table.NewNumericValue(float64(arr.Value(i)))
	case *array.Uint64:
		return table.NewNumericValue(float64(arr.Value(i)))
	case *array.Uint32:
		return table.NewNumericValue(float64(arr.Value(i)))
	case *array.Boolean:
		return table.NewBooleanValue(arr.Value(i))
	case *array.String:
		return table.NewStringValue(arr.Value(i))
	case *array.LargeString:
		return table.NewStringValue(arr.Value(i))
	case *array.Timestamp:
		dt := arr.DataType().(*arrow.TimestampType)
		return table.NewTimestampValue(arr.Value(i).ToTime(dt.Unit))
	case *array.Date32:
		return table.NewTimestampValue(arr.Value(i).ToTime())
	case *array.Date64:
		return table.NewTimestampValue(arr.Value(i).ToTime())
	}
	// No native mapping: keep the string form so the cell is not lost.
	return table.NewStringValue(chunk.ValueStr(i))
}
