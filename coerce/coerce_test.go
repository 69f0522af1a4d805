package coerce

import (
	"testing"

	"github.com/plotkit/engine/scene"
)

func TestCollapse(t *testing.T) {
	s := Collapse([]float32{1, 1, 1})
	if !s.IsScalar || s.Scalar != 1 {
		t.Fatalf("want collapsed scalar 1, got %+v", s)
	}
	s2 := Collapse([]float32{1, 2, 1})
	if s2.IsScalar {
		t.Fatalf("want array, got scalar %+v", s2)
	}
	if Broadcast(s, 3) == nil {
		t.Fatal("want broadcast slice")
	}
}

func TestColorParsing(t *testing.T) {
	cases := map[string]scene.Color{
		"#ff0000":     {R: 1, G: 0, B: 0, A: 1},
		"#f00":        {R: 1, G: 0, B: 0, A: 1},
		"red":         {R: 1, G: 0, B: 0, A: 1},
		"not-a-color": Transparent,
	}
	for s, want := range cases {
		got := Color(s)
		if got != want {
			t.Fatalf("Color(%q): got %+v want %+v", s, got, want)
		}
	}
}

func TestPathParsing(t *testing.T) {
	pd := Path("M 0 0 L 10 10 Z")
	if len(pd.Verbs) != 3 || pd.Verbs[0] != VerbBegin || pd.Verbs[1] != VerbLine || pd.Verbs[2] != VerbEndClose {
		t.Fatalf("unexpected verbs: %v", pd.Verbs)
	}
	if len(pd.Points) != 4 {
		t.Fatalf("want 4 point components, got %v", pd.Points)
	}
}

func TestSymbolShapeUnitArea(t *testing.T) {
	pd := SymbolShape("square")
	for _, p := range pd.Points {
		if p > 0.5 || p < -0.5 {
			t.Fatalf("want unit-area square within [-0.5,0.5], got %v", pd.Points)
		}
	}
}

func TestStrokeDash(t *testing.T) {
	got := StrokeDash("4 2, 1")
	want := []float32{4, 2, 1}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestEnumDefault(t *testing.T) {
	v, err := Enum("text_align", "center")
	if err != nil {
		t.Fatalf("enum: %v", err)
	}
	if v != 1 {
		t.Fatalf("want text_align center == 1, got %d", v)
	}
	v2, err := Enum("text_align", "bogus")
	if err != nil {
		t.Fatalf("enum: %v", err)
	}
	if v2 != 0 {
		t.Fatalf("want default 0 for unmatched variant, got %d", v2)
	}
}
