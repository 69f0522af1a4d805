package mark

import "github.com/plotkit/engine/errs"

// Frame is the mark compiler's intermediate representation for a
// channel-projected, possibly-scaled data frame (spec.md §4.8's
// "encoding-batches" value): named columns of resolved Go values plus a
// row count. Adjust and Derive operate on Frame rather than a
// round-tripped Arrow table — the "same schema" requirement adjust
// transforms must honor is about column identity, which Frame already
// preserves, and every adjust/derive consumer in this module (Stack,
// Group, Jitter, Dodge, LabelPoints) only ever needs plain per-row
// values, never Arrow's columnar buffer layout.
type Frame struct {
	Columns map[string][]interface{}
	Len     int
}

// NewFrame builds a Frame from projected columns, validating that every
// column has the same length.
func NewFrame(columns map[string][]interface{}, n int) (*Frame, error) {
	for name, col := range columns {
		if len(col) != n {
			return nil, &errs.InternalError{Msg: "frame column " + name + " length mismatch"}
		}
	}
	return &Frame{Columns: columns, Len: n}, nil
}

// Clone makes a shallow copy of f's column map (column slices are not
// copied; adjusts that mutate in place must first replace the slice).
func (f *Frame) Clone() *Frame {
	cols := make(map[string][]interface{}, len(f.Columns))
	for k, v := range f.Columns {
		cols[k] = v
	}
	return &Frame{Columns: cols, Len: f.Len}
}

// With returns a copy of f with column name replaced by values.
func (f *Frame) With(name string, values []interface{}) *Frame {
	c := f.Clone()
	c.Columns[name] = values
	return c
}

func (f *Frame) Float32Column(name string) []float32 {
	col := f.Columns[name]
	out := make([]float32, len(col))
	for i, v := range col {
		out[i] = toFloat32(v)
	}
	return out
}

func toFloat32(v interface{}) float32 {
	switch x := v.(type) {
	case float32:
		return x
	case float64:
		return float32(x)
	default:
		return 0
	}
}
