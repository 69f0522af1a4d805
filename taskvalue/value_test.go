package taskvalue

import (
	"testing"

	"github.com/plotkit/engine/variable"
)

func TestValueAccessorPanicsOnWrongKind(t *testing.T) {
	v := NewVal(Of(1.0))
	defer func() {
		if recover() == nil {
			t.Fatalf("want panic calling Expr() on a Val-kind Value")
		}
	}()
	v.Expr()
}

func TestValueRoundTrip(t *testing.T) {
	s := Of("hello")
	v := NewVal(s)
	if v.Kind() != KindVal {
		t.Fatalf("got kind %s", v.Kind())
	}
	if v.Val().Value != "hello" || v.Val().IsNull {
		t.Fatalf("got %+v", v.Val())
	}
}

func TestNullScalar(t *testing.T) {
	n := Null()
	if !n.IsNull {
		t.Fatalf("want IsNull true")
	}
}

func TestContextDedupFirstOccurrenceWins(t *testing.T) {
	v := variable.New(variable.ValOrExpr, "x")
	c := NewContext()
	c = c.WithVal(v, Of(1.0))
	c = c.WithVal(v, Of(2.0)) // shadowing attempt, should be dropped
	vals := c.Vals()
	if len(vals) != 1 {
		t.Fatalf("want 1 binding, got %d", len(vals))
	}
	if vals[0].Val.Value != 1.0 {
		t.Fatalf("want first occurrence to win, got %v", vals[0].Val.Value)
	}
}

func TestContextPreservesInsertionOrder(t *testing.T) {
	a := variable.New(variable.ValOrExpr, "a")
	b := variable.New(variable.ValOrExpr, "b")
	c := NewContext().WithVal(a, Of(1.0)).WithVal(b, Of(2.0))
	vals := c.Vals()
	if len(vals) != 2 || vals[0].Var != a || vals[1].Var != b {
		t.Fatalf("got %+v", vals)
	}
}

func TestMergeDedupesByVariableCPriority(t *testing.T) {
	shared := variable.New(variable.ValOrExpr, "shared")
	only2 := variable.New(variable.ValOrExpr, "only2")

	c1 := NewContext().WithVal(shared, Of("from-c1"))
	c2 := NewContext().WithVal(shared, Of("from-c2")).WithVal(only2, Of("c2-only"))

	m := Merge(c1, c2)
	if m.Len() != 2 {
		t.Fatalf("want 2 distinct bindings after merge, got %d", m.Len())
	}
	vals := m.Vals()
	for _, b := range vals {
		if b.Var == shared && b.Val.Value != "from-c1" {
			t.Fatalf("want c1's binding to take priority on conflict, got %v", b.Val.Value)
		}
	}
}

func TestMergeLeavesOperandsUntouched(t *testing.T) {
	v := variable.New(variable.ValOrExpr, "v")
	c1 := NewContext()
	c2 := NewContext().WithVal(v, Of(1.0))
	_ = Merge(c1, c2)
	if c1.Len() != 0 {
		t.Fatalf("want c1 unmodified by Merge, got len %d", c1.Len())
	}
}
