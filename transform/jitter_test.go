package transform

import (
	"context"
	"testing"

	"github.com/plotkit/engine/mark"
)

func TestJitterBoundedAndDeterministic(t *testing.T) {
	f, err := mark.NewFrame(map[string][]interface{}{
		"x": floatCol(0, 0, 0, 0, 0),
	}, 5)
	if err != nil {
		t.Fatal(err)
	}
	j := Jitter{Channels: []string{"x"}, Amplitude: 2, Seed: 42}
	out1, err := j.Apply(context.Background(), f, mark.BBox{}, mark.AdjustContext{})
	if err != nil {
		t.Fatal(err)
	}
	out2, err := j.Apply(context.Background(), f, mark.BBox{}, mark.AdjustContext{})
	if err != nil {
		t.Fatal(err)
	}
	xs1 := out1.Float32Column("x")
	xs2 := out2.Float32Column("x")
	for i := range xs1 {
		if xs1[i] != xs2[i] {
			t.Fatalf("jitter not deterministic at row %d: %v vs %v", i, xs1[i], xs2[i])
		}
		if xs1[i] < -2 || xs1[i] > 2 {
			t.Fatalf("jitter out of bounds at row %d: %v", i, xs1[i])
		}
	}
}

func TestJitterDifferentSeeds(t *testing.T) {
	f, _ := mark.NewFrame(map[string][]interface{}{"x": floatCol(0, 0, 0)}, 3)
	a, _ := Jitter{Channels: []string{"x"}, Amplitude: 1, Seed: 1}.Apply(context.Background(), f, mark.BBox{}, mark.AdjustContext{})
	b, _ := Jitter{Channels: []string{"x"}, Amplitude: 1, Seed: 2}.Apply(context.Background(), f, mark.BBox{}, mark.AdjustContext{})
	xa := a.Float32Column("x")
	xb := b.Float32Column("x")
	same := true
	for i := range xa {
		if xa[i] != xb[i] {
			same = false
		}
	}
	if same {
		t.Fatal("expected different seeds to produce different jitter")
	}
}
