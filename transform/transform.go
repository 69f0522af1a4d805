// Package transform implements the post-scale adjust and derive
// transforms of spec.md §4.9: Stack, Group, Jitter, Dodge, and
// LabelPoints. Each operates on a mark.Frame's plain per-row Go values
// rather than a reflect-typed table abstraction, matching the mark
// compiler's own intermediate representation.
package transform

import (
	"strconv"

	"github.com/plotkit/engine/mark"
)

// groupKey builds a comparable composite key from a row's values across
// the listed fields, used by both Stack and Group to bucket rows.
func groupKey(f *mark.Frame, fields []string, row int) string {
	key := ""
	for _, field := range fields {
		col := f.Columns[field]
		if row < len(col) {
			key += keyPart(col[row])
		}
		key += "\x1f"
	}
	return key
}

func keyPart(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return formatKeyFloat(x)
	case float32:
		return formatKeyFloat(float64(x))
	default:
		return ""
	}
}

func formatKeyFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
