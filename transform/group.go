package transform

import (
	"context"

	"github.com/aclements/go-moremath/stats"

	"github.com/plotkit/engine/mark"
)

// AggFunc reduces one group's values for a single channel to one
// output value.
type AggFunc func(values []interface{}) interface{}

// Extra is one (channel, aggregation) pair beyond the primary
// aggregation, per spec.md §4.9 "zero or more (channel, aggregation
// expression) extras".
type Extra struct {
	Channel string
	Source  string
	Agg     AggFunc
}

// Group implements spec.md §4.9's Group aggregation: groups rows by
// Fields, then emits Primary's aggregation under PrimaryChannel (routed
// to the coordinate system's complement of the grouping channel when
// PrimaryChannel is "") plus each Extra's aggregation under its own
// channel. Follows a group-by-fields, reduce-per-group idiom over
// mark.Frame columns rather than a reflect-typed table abstraction.
type Group struct {
	Fields         []string
	PrimarySource  string
	PrimaryChannel string
	PrimaryAgg     AggFunc
	Extras         []Extra
	Coord          mark.CoordSystem
}

func (g Group) Name() string { return "group" }

func (g Group) Apply(ctx context.Context, f *mark.Frame, bbox mark.BBox, actx mark.AdjustContext) (*mark.Frame, error) {
	groups := make(map[string][]int)
	var order []string
	for i := 0; i < f.Len; i++ {
		key := groupKey(f, g.Fields, i)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	primaryChannel := g.PrimaryChannel
	if primaryChannel == "" && g.Coord != nil && len(g.Fields) > 0 {
		if comp, err := g.Coord.ComplementOf(g.Fields[0]); err == nil {
			primaryChannel = comp
		}
	}

	out := make(map[string][]interface{}, len(g.Fields)+len(g.Extras)+1)
	for _, field := range g.Fields {
		out[field] = make([]interface{}, 0, len(order))
	}
	if primaryChannel != "" {
		out[primaryChannel] = make([]interface{}, 0, len(order))
	}
	for _, ex := range g.Extras {
		out[ex.Channel] = make([]interface{}, 0, len(order))
	}

	for _, key := range order {
		rows := groups[key]
		for _, field := range g.Fields {
			col := f.Columns[field]
			out[field] = append(out[field], col[rows[0]])
		}
		if primaryChannel != "" && g.PrimaryAgg != nil {
			out[primaryChannel] = append(out[primaryChannel], g.PrimaryAgg(gather(f, g.PrimarySource, rows)))
		}
		for _, ex := range g.Extras {
			out[ex.Channel] = append(out[ex.Channel], ex.Agg(gather(f, ex.Source, rows)))
		}
	}

	return mark.NewFrame(out, len(order))
}

func gather(f *mark.Frame, channel string, rows []int) []interface{} {
	col := f.Columns[channel]
	vs := make([]interface{}, len(rows))
	for i, r := range rows {
		vs[i] = col[r]
	}
	return vs
}

// AggCount returns an AggFunc counting the rows in each group.
func AggCount() AggFunc {
	return func(values []interface{}) interface{} {
		return float32(len(values))
	}
}

// AggSum returns an AggFunc summing each group's numeric values, via
// stats.Sample.Sum (github.com/aclements/go-moremath/stats) rather than
// a hand-rolled accumulation loop, matching the teacher's wiring of
// go-moremath/stats for group reductions in ggstat/agg.go.
func AggSum() AggFunc {
	return func(values []interface{}) interface{} {
		if len(values) == 0 {
			return float32(0)
		}
		return float32(stats.Sample{Xs: toFloat64s(values)}.Sum())
	}
}

// AggMean returns an AggFunc averaging each group's numeric values, via
// stats.Mean (github.com/aclements/go-moremath/stats), the same
// reduction ggstat.AggMean wires for group means (ggstat/agg.go).
func AggMean() AggFunc {
	return func(values []interface{}) interface{} {
		if len(values) == 0 {
			return float32(0)
		}
		return float32(stats.Mean(toFloat64s(values)))
	}
}

func toFloat64s(values []interface{}) []float64 {
	xs := make([]float64, len(values))
	for i, v := range values {
		xs[i] = asFloat64(v)
	}
	return xs
}

func asFloat64(v interface{}) float64 {
	switch x := v.(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	default:
		return 0
	}
}
