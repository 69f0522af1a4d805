package arrowtable

import (
	"github.com/apache/arrow/go/v12/arrow"
	"github.com/apache/arrow/go/v12/arrow/array"
	"github.com/apache/arrow/go/v12/arrow/memory"
)

// Allocator is the process-wide Go allocator used to build arrays outside
// of a query-engine execution context (tests, fixtures, the reference
// evalctx engine).
var Allocator = memory.NewGoAllocator()

// SingleBatch wraps one record batch as a single-batch Table, coercing the
// batch's own schema nullable. Convenience for tests and small fixtures.
func SingleBatch(rec arrow.Record) (*Table, error) {
	return New(rec.Schema(), []arrow.Record{rec})
}

// Float64Column builds a single-column Float64 record batch named name.
func Float64Column(name string, values []float64) arrow.Record {
	b := array.NewFloat64Builder(Allocator)
	defer b.Release()
	b.AppendValues(values, nil)
	arr := b.NewFloat64Array()
	defer arr.Release()
	field := arrow.Field{Name: name, Type: arrow.PrimitiveTypes.Float64, Nullable: true}
	schema := arrow.NewSchema([]arrow.Field{field}, nil)
	return array.NewRecord(schema, []arrow.Array{arr}, int64(len(values)))
}

// StringColumn builds a single-column String record batch named name.
func StringColumn(name string, values []string) arrow.Record {
	b := array.NewStringBuilder(Allocator)
	defer b.Release()
	b.AppendValues(values, nil)
	arr := b.NewStringArray()
	defer arr.Release()
	field := arrow.Field{Name: name, Type: arrow.BinaryTypes.String, Nullable: true}
	schema := arrow.NewSchema([]arrow.Field{field}, nil)
	return array.NewRecord(schema, []arrow.Array{arr}, int64(len(values)))
}

// RecordFromColumns assembles a multi-column record batch, all columns
// must have equal length numRows.
func RecordFromColumns(fields []arrow.Field, cols []arrow.Array, numRows int64) arrow.Record {
	schema := arrow.NewSchema(fields, nil)
	return array.NewRecord(schema, cols, numRows)
}
