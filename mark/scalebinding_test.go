package mark

import (
	"context"
	"testing"

	"github.com/plotkit/engine/arrowtable"
	"github.com/plotkit/engine/evalctx"
	"github.com/plotkit/engine/scale"
	"github.com/plotkit/engine/scene"
)

func TestCompileAppliesNamedScaleBinding(t *testing.T) {
	rec := arrowtable.Float64Column("v", []float64{0, 5, 10})
	tbl, err := arrowtable.SingleBatch(rec)
	if err != nil {
		t.Fatal(err)
	}

	domain := []interface{}{0.0, 10.0}
	rng := []interface{}{0.0, 100.0}
	binding := BindScale(scale.Linear{}, scale.Config{}, domain, rng)

	m := &Mark{
		Name:  "points",
		Kind:  scene.KindSymbol,
		Data:  DataSource{Inline: tbl},
		Coord: Cartesian{},
		Channels: map[string]Encoding{
			"x": {Expr: evalctx.Column{Name: "v"}, Kind: ChannelNumeric, ScaleName: "x_scale"},
			"y": {Expr: evalctx.Lit{Value: float64(0)}, Kind: ChannelNumeric},
		},
	}
	scales := map[string]ScaleBinding{"x_scale": binding}

	sm, err := Compile(context.Background(), m, noDatasets{}, scales, AdjustContext{})
	if err != nil {
		t.Fatal(err)
	}
	xs := sm.Channels["x"].Array.([]float32)
	if xs[0] != 0 || xs[1] != 50 || xs[2] != 100 {
		t.Fatalf("expected scaled values [0, 50, 100], got %v", xs)
	}
}
