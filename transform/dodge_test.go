package transform

import (
	"context"
	"testing"

	"github.com/plotkit/engine/mark"
)

func TestDodgeSeparatesOverlaps(t *testing.T) {
	f, err := mark.NewFrame(map[string][]interface{}{
		"group": strCol("a", "a", "a"),
		"x":     floatCol(5, 5, 5),
	}, 3)
	if err != nil {
		t.Fatal(err)
	}
	d := Dodge{GroupChannel: "group", PositionChannel: "x", Padding: 2}
	out, err := d.Apply(context.Background(), f, mark.BBox{}, mark.AdjustContext{})
	if err != nil {
		t.Fatal(err)
	}
	xs := out.Float32Column("x")
	if xs[0] >= xs[1] || xs[1] >= xs[2] {
		t.Fatalf("expected strictly increasing dodged positions, got %v", xs)
	}
	centroid := (xs[0] + xs[1] + xs[2]) / 3
	if centroid < 4.999 || centroid > 5.001 {
		t.Fatalf("expected centroid preserved at 5, got %v", centroid)
	}
}
