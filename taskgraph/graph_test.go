package taskgraph

import (
	"context"
	"testing"

	"github.com/plotkit/engine/taskvalue"
	"github.com/plotkit/engine/variable"
)

func constTask(v variable.Variable, val float64) Task {
	return New(v, nil, FingerprintStatic([]byte(v.Name())), func(ctx context.Context, in []taskvalue.Value) (taskvalue.Value, error) {
		return taskvalue.NewVal(taskvalue.Of(val)), nil
	})
}

func sumTask(v variable.Variable, inputs []variable.Variable) Task {
	return New(v, inputs, FingerprintStatic([]byte("sum")), func(ctx context.Context, in []taskvalue.Value) (taskvalue.Value, error) {
		var total float64
		for _, iv := range in {
			total += iv.Val().Value.(float64)
		}
		return taskvalue.NewVal(taskvalue.Of(total)), nil
	})
}

func TestBuildMissingInput(t *testing.T) {
	a := variable.Global(variable.ValOrExpr, "a")
	b := variable.Global(variable.ValOrExpr, "b")
	_, err := Build(map[variable.Variable]Task{
		a: sumTask(a, []variable.Variable{b}),
	})
	if err == nil {
		t.Fatal("want error for missing input")
	}
}

func TestBuildCycle(t *testing.T) {
	a := variable.Global(variable.ValOrExpr, "a")
	b := variable.Global(variable.ValOrExpr, "b")
	_, err := Build(map[variable.Variable]Task{
		a: sumTask(a, []variable.Variable{b}),
		b: sumTask(b, []variable.Variable{a}),
	})
	if err == nil {
		t.Fatal("want error for cyclic graph")
	}
}

func TestFingerprintStability(t *testing.T) {
	a := variable.Global(variable.ValOrExpr, "a")
	b := variable.Global(variable.ValOrExpr, "b")
	c := variable.Global(variable.ValOrExpr, "c")
	build := func() *Graph {
		g, err := Build(map[variable.Variable]Task{
			a: constTask(a, 1),
			b: constTask(b, 2),
			c: sumTask(c, []variable.Variable{a, b}),
		})
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		return g
	}
	g1, g2 := build(), build()
	n1, _ := g1.Node(c)
	n2, _ := g2.Node(c)
	if n1.Fingerprint != n2.Fingerprint {
		t.Fatalf("want identical fingerprints across independently built identical graphs, got %v vs %v", n1.Fingerprint, n2.Fingerprint)
	}
}

func TestFingerprintChangesWithStaticHash(t *testing.T) {
	a := variable.Global(variable.ValOrExpr, "a")
	g1, _ := Build(map[variable.Variable]Task{a: constTask(a, 1)})
	t2 := constTask(a, 1)
	t2.StaticHash++
	g2, _ := Build(map[variable.Variable]Task{a: t2})
	n1, _ := g1.Node(a)
	n2, _ := g2.Node(a)
	if n1.Fingerprint == n2.Fingerprint {
		t.Fatal("want different static hash to change fingerprint")
	}
}
