package mark

import (
	"context"
	"testing"
)

type addOne struct{ channel string }

func (addOne) Name() string { return "add_one" }
func (a addOne) Apply(ctx context.Context, f *Frame, bbox BBox, actx AdjustContext) (*Frame, error) {
	col := f.Float32Column(a.channel)
	out := make([]interface{}, len(col))
	for i, v := range col {
		out[i] = v + 1
	}
	return f.With(a.channel, out), nil
}

func TestApplyAdjustsChainsInOrder(t *testing.T) {
	f, err := NewFrame(map[string][]interface{}{"x": {float32(0), float32(0)}}, 2)
	if err != nil {
		t.Fatal(err)
	}
	out, err := applyAdjusts(context.Background(), []Adjust{addOne{"x"}, addOne{"x"}, addOne{"x"}}, f, BBox{}, AdjustContext{})
	if err != nil {
		t.Fatal(err)
	}
	xs := out.Float32Column("x")
	if xs[0] != 3 || xs[1] != 3 {
		t.Fatalf("expected three chained increments, got %v", xs)
	}
}
