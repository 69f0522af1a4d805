package evalctx

import (
	"testing"

	"github.com/plotkit/engine/arrowtable"
	"github.com/plotkit/engine/taskvalue"
)

func TestSubstituteInlinesVal(t *testing.T) {
	s := NewSession()
	s.RegisterVal("threshold", taskvalue.Of(10.0))
	e := BinaryOp{Op: ">", Left: Ident{Name: "x"}, Right: Ident{Name: "@threshold"}}
	got := Substitute(e, s)
	bin := got.(BinaryOp)
	if bin.Left != (Column{Name: "x"}) {
		t.Fatalf("want bare identifier left alone as column, got %#v", bin.Left)
	}
	lit, ok := bin.Right.(Lit)
	if !ok || lit.Value.(float64) != 10.0 {
		t.Fatalf("want @threshold inlined as Lit(10), got %#v", bin.Right)
	}
}

func TestSubstituteInlinesExpr(t *testing.T) {
	s := NewSession()
	s.RegisterExpr("doubled", BinaryOp{Op: "*", Left: Column{Name: "x"}, Right: Lit{Value: 2.0}})
	got := Substitute(Ident{Name: "@doubled"}, s)
	bin, ok := got.(BinaryOp)
	if !ok || bin.Op != "*" {
		t.Fatalf("want inlined expression, got %#v", got)
	}
}

func TestFieldRefMangling(t *testing.T) {
	s := NewSession()
	got := Substitute(FieldRef{Base: "@ds", Sub: "col"}, s)
	if got != (Column{Name: "ds_col"}) {
		t.Fatalf("want mangled column reference, got %#v", got)
	}
}

func TestProject(t *testing.T) {
	rec := arrowtable.Float64Column("x", []float64{1, 2, 3})
	tbl, err := arrowtable.SingleBatch(rec)
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	out, n, err := Project(tbl, map[string]Expr{
		"y": BinaryOp{Op: "*", Left: Column{Name: "x"}, Right: Lit{Value: 2.0}},
	})
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if n != 3 {
		t.Fatalf("want 3 rows, got %d", n)
	}
	want := []float64{2, 4, 6}
	for i, v := range out["y"] {
		if v.(float64) != want[i] {
			t.Fatalf("row %d: got %v want %v", i, v, want[i])
		}
	}
}
