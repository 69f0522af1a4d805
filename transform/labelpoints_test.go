package transform

import (
	"context"
	"testing"

	"github.com/plotkit/engine/mark"
	"github.com/plotkit/engine/scene"
)

func TestLabelPointsOffsetsFromParent(t *testing.T) {
	f, err := mark.NewFrame(map[string][]interface{}{
		"x":    floatCol(10, 20),
		"y":    floatCol(30, 40),
		"text": strCol("a", "b"),
	}, 2)
	if err != nil {
		t.Fatal(err)
	}
	parent := &mark.Mark{Name: "points", Kind: scene.KindSymbol, ZIndex: 0}
	lp := LabelPoints{TextChannel: "text", OffsetX: 1, OffsetY: -1}
	child, err := lp.Apply(context.Background(), f, parent)
	if err != nil {
		t.Fatal(err)
	}
	if child.Data.Frame == nil {
		t.Fatal("expected a frame-backed data source")
	}
	xs := child.Data.Frame.Float32Column("x")
	if xs[0] != 11 || xs[1] != 21 {
		t.Fatalf("expected offset x values [11, 21], got %v", xs)
	}
	if child.ZIndex != parent.ZIndex+1 {
		t.Fatalf("expected child to render above parent")
	}
}
