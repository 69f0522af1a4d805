package mark

import (
	"context"
	"testing"

	"github.com/plotkit/engine/arrowtable"
	"github.com/plotkit/engine/evalctx"
	"github.com/plotkit/engine/scene"
)

type noDatasets struct{}

func (noDatasets) Dataset(string) (*arrowtable.Table, bool) { return nil, false }

func identityScale() ScaleBinding {
	return ScaleBinding{Apply: func(values []interface{}) ([]interface{}, error) {
		return values, nil
	}}
}

func TestCompileCartesianNoScale(t *testing.T) {
	rec := arrowtable.Float64Column("v", []float64{1, 2, 3})
	tbl, err := arrowtable.SingleBatch(rec)
	if err != nil {
		t.Fatal(err)
	}
	m := &Mark{
		Name: "points",
		Kind: scene.KindSymbol,
		Data: DataSource{Inline: tbl},
		Coord: Cartesian{},
		Channels: map[string]Encoding{
			"x": {Expr: evalctx.Column{Name: "v"}, Kind: ChannelNumeric},
			"y": {Expr: evalctx.Lit{Value: float64(0)}, Kind: ChannelNumeric},
		},
	}
	sm, err := Compile(context.Background(), m, noDatasets{}, nil, AdjustContext{})
	if err != nil {
		t.Fatal(err)
	}
	if sm.Len != 3 {
		t.Fatalf("expected len 3, got %d", sm.Len)
	}
	xField := sm.Channels["x"]
	if !xField.IsArray {
		t.Fatal("expected x to be an array field")
	}
	xs := xField.Array.([]float32)
	if xs[0] != 1 || xs[1] != 2 || xs[2] != 3 {
		t.Fatalf("unexpected x values: %v", xs)
	}
}

func TestCompilePolarTransform(t *testing.T) {
	rec := arrowtable.Float64Column("r", []float64{1, 1})
	tbl, err := arrowtable.SingleBatch(rec)
	if err != nil {
		t.Fatal(err)
	}
	m := &Mark{
		Name:  "arc",
		Kind:  scene.KindArc,
		Data:  DataSource{Inline: tbl},
		Coord: Polar{},
		Channels: map[string]Encoding{
			"r":     {Expr: evalctx.Column{Name: "r"}, Kind: ChannelNumeric},
			"theta": {Expr: evalctx.Lit{Value: float64(0)}, Kind: ChannelNumeric},
		},
	}
	sm, err := Compile(context.Background(), m, noDatasets{}, nil, AdjustContext{})
	if err != nil {
		t.Fatal(err)
	}
	xField := sm.Channels["x"]
	xs := xField.Array.([]float32)
	if xs[0] < 0.999 || xs[0] > 1.001 {
		t.Fatalf("expected x ~= 1 for r=1, theta=0, got %v", xs[0])
	}
}
