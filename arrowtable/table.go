// Package arrowtable implements the Dataset TaskValue's backing
// representation: an Arrow schema plus an ordered sequence of record
// batches, with the nullable-coercion and hash-equality invariants spec'd
// for the task graph's Dataset kind.
//
// Columns are backed by arrow.Record rather than a map of
// homogeneously-typed Go slices, so that schema, batches, and column
// buffers carry real Arrow type information — temporal units,
// timezones, nullability — that a reflect-typed slice cannot express.
package arrowtable

import (
	"fmt"

	"github.com/apache/arrow/go/v12/arrow"
	"github.com/apache/arrow/go/v12/arrow/array"
	"github.com/cespare/xxhash/v2"

	"github.com/plotkit/engine/errs"
)

// Table is an immutable Arrow schema plus its ordered batches. All schema
// fields are coerced nullable on construction (spec.md §3.2); every
// batch's fields must be a subset of the table's nullable schema.
type Table struct {
	schema  *arrow.Schema
	batches []arrow.Record
}

// New builds a Table from a schema and batches, coercing every field
// nullable and validating that each batch's schema is field-compatible
// with the (now nullable) table schema.
func New(schema *arrow.Schema, batches []arrow.Record) (*Table, error) {
	nullable := nullableSchema(schema)
	for bi, b := range batches {
		if err := checkSubsetSchema(nullable, b.Schema()); err != nil {
			return nil, fmt.Errorf("batch %d: %w", bi, err)
		}
	}
	return &Table{schema: nullable, batches: batches}, nil
}

func nullableSchema(s *arrow.Schema) *arrow.Schema {
	fields := make([]arrow.Field, len(s.Fields()))
	changed := false
	for i, f := range s.Fields() {
		if !f.Nullable {
			f.Nullable = true
			changed = true
		}
		fields[i] = f
	}
	if !changed {
		return s
	}
	return arrow.NewSchema(fields, nil)
}

// checkSubsetSchema verifies that every field of batch is present, by name
// and type, in table, and that batch declares no field table doesn't have.
func checkSubsetSchema(table, batch *arrow.Schema) error {
	for _, bf := range batch.Fields() {
		idxs := table.FieldIndices(bf.Name)
		if len(idxs) == 0 {
			return &errs.InvalidDataTypeError{Type: "field " + bf.Name, Expected: "present in table schema"}
		}
		tf := table.Field(idxs[0])
		if !arrow.TypeEqual(tf.Type, bf.Type) {
			return &errs.InvalidDataTypeError{Type: bf.Type.String(), Expected: tf.Type.String()}
		}
	}
	return nil
}

// Schema returns the table's (nullable-coerced) schema.
func (t *Table) Schema() *arrow.Schema { return t.schema }

// Batches returns the table's ordered record batches.
func (t *Table) Batches() []arrow.Record { return t.batches }

// NumRows returns the total row count across all batches.
func (t *Table) NumRows() int64 {
	var n int64
	for _, b := range t.batches {
		n += b.NumRows()
	}
	return n
}

// Release drops this table's reference to each underlying batch's arrays.
// Call when the table is no longer reachable from any evaluated TaskValue.
func (t *Table) Release() {
	for _, b := range t.batches {
		b.Release()
	}
}

// Hash returns a 64-bit content digest of the table: the schema plus, for
// each batch, its row count and each column's buffers (validity bitmap and
// data buffer), including type-specific metadata (time unit, timezone) for
// temporal columns. Two tables with the same Hash are assumed equal; two
// tables that differ are *usually* assigned different hashes, but this is
// a false-negative-free, false-positive-prone shortcut (see Equal).
func (t *Table) Hash() uint64 {
	h := xxhash.New()
	hashSchema(h, t.schema)
	for _, b := range t.batches {
		writeUint64(h, uint64(b.NumRows()))
		for c := 0; c < int(b.NumCols()); c++ {
			hashArray(h, b.Column(c))
		}
	}
	return h.Sum64()
}

// Equal reports whether t and o hash identically. This is the documented
// equality-via-hash trade-off (spec.md §9): it can never produce a false
// negative for tables built through this package, but a hash collision
// would produce a false positive. Acceptable because table equality here
// is only ever used as a memoization key, never as a correctness oracle.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.Hash() == o.Hash()
}

func hashSchema(h *xxhash.Digest, s *arrow.Schema) {
	_, _ = h.WriteString(s.String())
}

func writeUint64(h *xxhash.Digest, v uint64) {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
	_, _ = h.Write(buf[:])
}

// hashArray dispatches per concrete Arrow array type, per spec.md §3.2's
// requirement for "explicit per-Arrow-type handlers ... including
// validity bitmaps, time units, and timezones".
func hashArray(h *xxhash.Digest, arr arrow.Array) {
	writeUint64(h, uint64(arr.Len()))
	writeUint64(h, uint64(arr.NullN()))
	hashValidity(h, arr)

	switch a := arr.(type) {
	case *array.Int8, *array.Int16, *array.Int32, *array.Int64,
		*array.Uint8, *array.Uint16, *array.Uint32, *array.Uint64,
		*array.Float32, *array.Float64, *array.Boolean:
		hashDataBuffers(h, arr)
	case *array.String:
		hashDataBuffers(h, arr)
	case *array.Binary:
		hashDataBuffers(h, arr)
	case *array.Date32, *array.Date64:
		hashDataBuffers(h, arr)
	case *array.Timestamp:
		ts := a.DataType().(*arrow.TimestampType)
		_, _ = h.WriteString(ts.Unit.String())
		_, _ = h.WriteString(ts.TimeZone)
		hashDataBuffers(h, arr)
	case *array.List:
		hashDataBuffers(h, arr)
		hashArray(h, a.ListValues())
	case *array.Struct:
		for i := 0; i < a.NumField(); i++ {
			hashArray(h, a.Field(i))
		}
	default:
		// Fallback for array kinds without a dedicated branch (dictionary,
		// large list, run-end/view variants not yet wired): still hash
		// every underlying buffer so two structurally different arrays of
		// this kind never collide solely because we didn't special-case
		// them.
		hashDataBuffers(h, arr)
	}
}

func hashValidity(h *xxhash.Digest, arr arrow.Array) {
	data := arr.Data()
	bufs := data.Buffers()
	if len(bufs) == 0 || bufs[0] == nil {
		return
	}
	_, _ = h.Write(bufs[0].Bytes())
}

func hashDataBuffers(h *xxhash.Digest, arr arrow.Array) {
	bufs := arr.Data().Buffers()
	for i, buf := range bufs {
		if i == 0 || buf == nil {
			continue // validity bitmap already hashed by hashValidity
		}
		_, _ = h.Write(buf.Bytes())
	}
}
