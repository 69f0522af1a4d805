package coerce

import (
	"math"

	"github.com/apache/arrow/go/v12/arrow"
	"github.com/apache/arrow/go/v12/arrow/array"

	"github.com/plotkit/engine/errs"
)

// Numeric coerces arr to Float32, replacing nulls with def (or NaN if
// def is NaN), dispatching by Arrow data type (spec.md §4.6 "numeric(f32,
// default): cast to Float32; nulls replaced by default or NaN").
func Numeric(arr arrow.Array, def float32) (ScalarOrArray[float32], error) {
	out := make([]float32, arr.Len())
	for i := range out {
		if arr.IsNull(i) {
			out[i] = def
			continue
		}
		v, err := numericAt(arr, i)
		if err != nil {
			return ScalarOrArray[float32]{}, err
		}
		out[i] = v
	}
	return Collapse(out), nil
}

func numericAt(arr arrow.Array, i int) (float32, error) {
	switch a := arr.(type) {
	case *array.Float32:
		return a.Value(i), nil
	case *array.Float64:
		return float32(a.Value(i)), nil
	case *array.Int8:
		return float32(a.Value(i)), nil
	case *array.Int16:
		return float32(a.Value(i)), nil
	case *array.Int32:
		return float32(a.Value(i)), nil
	case *array.Int64:
		return float32(a.Value(i)), nil
	case *array.Uint8:
		return float32(a.Value(i)), nil
	case *array.Uint16:
		return float32(a.Value(i)), nil
	case *array.Uint32:
		return float32(a.Value(i)), nil
	case *array.Uint64:
		return float32(a.Value(i)), nil
	case *array.Boolean:
		if a.Value(i) {
			return 1, nil
		}
		return 0, nil
	default:
		return float32(math.NaN()), &errs.InvalidDataTypeError{Type: arr.DataType().String(), Expected: "a numeric Arrow type"}
	}
}

// Usize coerces arr to uint32 via a numeric cast then reinterprets
// (spec.md §4.6 "usize, boolean: cast to u32/u8 then reinterpret").
func Usize(arr arrow.Array) (ScalarOrArray[uint32], error) {
	vals, err := Numeric(arr, 0)
	if err != nil {
		return ScalarOrArray[uint32]{}, err
	}
	full := Broadcast(vals, arr.Len())
	out := make([]uint32, len(full))
	for i, f := range full {
		out[i] = uint32(f)
	}
	return Collapse(out), nil
}

// Boolean coerces arr to bool, treating any non-zero numeric as true and
// using the Arrow Boolean array's values directly when arr already is
// one.
func Boolean(arr arrow.Array) (ScalarOrArray[bool], error) {
	if b, ok := arr.(*array.Boolean); ok {
		out := make([]bool, b.Len())
		for i := range out {
			out[i] = !b.IsNull(i) && b.Value(i)
		}
		return Collapse(out), nil
	}
	vals, err := Numeric(arr, 0)
	if err != nil {
		return ScalarOrArray[bool]{}, err
	}
	full := Broadcast(vals, arr.Len())
	out := make([]bool, len(full))
	for i, f := range full {
		out[i] = f != 0
	}
	return Collapse(out), nil
}
