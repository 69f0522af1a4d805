package coerce

import (
	"strconv"
	"strings"
)

// StrokeDash parses a whitespace/comma-delimited string or a numeric
// list into a dash-pattern []float32 (spec.md §4.6 "stroke_dash: from a
// whitespace/comma-delimited string or a numeric list").
func StrokeDash(v interface{}) []float32 {
	switch x := v.(type) {
	case []float32:
		return x
	case []float64:
		out := make([]float32, len(x))
		for i, f := range x {
			out[i] = float32(f)
		}
		return out
	case string:
		fields := strings.FieldsFunc(x, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' })
		out := make([]float32, 0, len(fields))
		for _, f := range fields {
			n, err := strconv.ParseFloat(f, 32)
			if err == nil {
				out = append(out, float32(n))
			}
		}
		return out
	default:
		return nil
	}
}
