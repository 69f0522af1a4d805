package transform

import (
	"context"

	"github.com/plotkit/engine/mark"
)

// Dodge implements spec.md §4.9's Dodge adjust: within each group of
// rows sharing the same value on GroupChannel, it shifts PositionChannel
// apart by Padding so overlapping marks no longer coincide, preserving
// each group's centroid.
type Dodge struct {
	GroupChannel    string
	PositionChannel string
	Padding         float32
}

func (d Dodge) Name() string { return "dodge" }

func (d Dodge) Apply(ctx context.Context, f *mark.Frame, bbox mark.BBox, actx mark.AdjustContext) (*mark.Frame, error) {
	groups := make(map[string][]int)
	var order []string
	for i := 0; i < f.Len; i++ {
		key := groupKey(f, []string{d.GroupChannel}, i)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	pos := f.Float32Column(d.PositionChannel)
	shifted := make([]interface{}, f.Len)
	copy64 := make([]float32, f.Len)
	copy(copy64, pos)
	for _, key := range order {
		rows := groups[key]
		n := len(rows)
		width := d.Padding * float32(n-1)
		start := -width / 2
		for i, r := range rows {
			shifted[r] = copy64[r] + start + float32(i)*d.Padding
		}
	}
	return f.With(d.PositionChannel, shifted), nil
}
