package runtime

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/plotkit/engine/taskcache"
	"github.com/plotkit/engine/taskgraph"
	"github.com/plotkit/engine/taskvalue"
	"github.com/plotkit/engine/variable"
)

func counterTask(v variable.Variable, inputs []variable.Variable, counter *int64, fn func(in []taskvalue.Value) taskvalue.Value) taskgraph.Task {
	return taskgraph.New(v, inputs, taskgraph.FingerprintStatic([]byte(v.Name())), func(ctx context.Context, in []taskvalue.Value) (taskvalue.Value, error) {
		atomic.AddInt64(counter, 1)
		return fn(in), nil
	})
}

func TestFingerprintStability(t *testing.T) {
	v := variable.Global(variable.ValOrExpr, "v")
	var calls int64
	task := counterTask(v, nil, &calls, func(in []taskvalue.Value) taskvalue.Value {
		return taskvalue.NewVal(taskvalue.Of(42.0))
	})
	g, err := taskgraph.Build(map[variable.Variable]taskgraph.Task{v: task})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	rt := New(g, nil, nil)
	ctx := context.Background()

	if _, err := rt.EvaluateVariables(ctx, []variable.Variable{v}); err != nil {
		t.Fatalf("eval 1: %v", err)
	}
	if _, err := rt.EvaluateVariables(ctx, []variable.Variable{v}); err != nil {
		t.Fatalf("eval 2: %v", err)
	}
	if calls != 1 {
		t.Fatalf("want task evaluated exactly once, got %d", calls)
	}
}

func TestCacheSharingAcrossRuntimes(t *testing.T) {
	v := variable.Global(variable.ValOrExpr, "v")
	var calls int64
	newGraph := func() *taskgraph.Graph {
		task := counterTask(v, nil, &calls, func(in []taskvalue.Value) taskvalue.Value {
			return taskvalue.NewVal(taskvalue.Of(7.0))
		})
		g, err := taskgraph.Build(map[variable.Variable]taskgraph.Task{v: task})
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		return g
	}

	shared := taskcache.New(taskcache.DefaultCapacity, taskcache.DefaultCapacity, nil)
	rt1 := New(newGraph(), shared, nil)
	rt2 := New(newGraph(), shared, nil)

	ctx := context.Background()
	if _, err := rt1.EvaluateVariables(ctx, []variable.Variable{v}); err != nil {
		t.Fatalf("rt1: %v", err)
	}
	if _, err := rt2.EvaluateVariables(ctx, []variable.Variable{v}); err != nil {
		t.Fatalf("rt2: %v", err)
	}
	if calls != 1 {
		t.Fatalf("want task evaluated exactly once across both runtimes, got %d", calls)
	}
}

func TestDependencyCorrectness(t *testing.T) {
	a := variable.Global(variable.ValOrExpr, "a")
	b := variable.Global(variable.ValOrExpr, "b")
	c := variable.Global(variable.ValOrExpr, "c")

	var callsA, callsB, callsC int64
	taskA := counterTask(a, nil, &callsA, func(in []taskvalue.Value) taskvalue.Value {
		return taskvalue.NewVal(taskvalue.Of(1.0))
	})
	taskB := counterTask(b, []variable.Variable{a}, &callsB, func(in []taskvalue.Value) taskvalue.Value {
		return taskvalue.NewVal(taskvalue.Of(in[0].Val().Value.(float64) + 1))
	})
	taskC := counterTask(c, []variable.Variable{b}, &callsC, func(in []taskvalue.Value) taskvalue.Value {
		return taskvalue.NewVal(taskvalue.Of(in[0].Val().Value.(float64) + 1))
	})

	g, err := taskgraph.Build(map[variable.Variable]taskgraph.Task{a: taskA, b: taskB, c: taskC})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	rt := New(g, nil, nil)
	ctx := context.Background()

	out, err := rt.EvaluateVariables(ctx, []variable.Variable{c})
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if got := out[c].Val().Value.(float64); got != 3.0 {
		t.Fatalf("want 3.0, got %v", got)
	}
	if callsA != 1 || callsB != 1 || callsC != 1 {
		t.Fatalf("want each of A,B,C evaluated exactly once, got a=%d b=%d c=%d", callsA, callsB, callsC)
	}

	if _, err := rt.EvaluateVariables(ctx, []variable.Variable{a, b, c}); err != nil {
		t.Fatalf("re-eval: %v", err)
	}
	if callsA != 1 || callsB != 1 || callsC != 1 {
		t.Fatalf("want zero additional evaluations on re-request, got a=%d b=%d c=%d", callsA, callsB, callsC)
	}
}

func TestMissingVariable(t *testing.T) {
	a := variable.Global(variable.ValOrExpr, "a")
	missing := variable.Global(variable.ValOrExpr, "missing")
	var calls int64
	task := counterTask(a, nil, &calls, func(in []taskvalue.Value) taskvalue.Value {
		return taskvalue.NewVal(taskvalue.Of(1.0))
	})
	g, err := taskgraph.Build(map[variable.Variable]taskgraph.Task{a: task})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	rt := New(g, nil, nil)
	if _, err := rt.EvaluateVariables(context.Background(), []variable.Variable{missing}); err == nil {
		t.Fatal("want error evaluating an unbuilt variable")
	}
}

func TestCancellationLeavesNoTrace(t *testing.T) {
	v := variable.Global(variable.ValOrExpr, "v")
	started := make(chan struct{})
	release := make(chan struct{})
	task := taskgraph.New(v, nil, taskgraph.FingerprintStatic([]byte("v")), func(ctx context.Context, in []taskvalue.Value) (taskvalue.Value, error) {
		close(started)
		select {
		case <-ctx.Done():
			return taskvalue.Value{}, ctx.Err()
		case <-release:
			return taskvalue.NewVal(taskvalue.Of(1.0)), nil
		}
	})
	g, err := taskgraph.Build(map[variable.Variable]taskgraph.Task{v: task})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	cache := taskcache.New(taskcache.DefaultCapacity, taskcache.DefaultCapacity, nil)
	rt := New(g, cache, nil)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := rt.EvaluateVariables(ctx, []variable.Variable{v})
		errc <- err
	}()

	<-started
	cancel()
	if err := <-errc; err == nil {
		t.Fatal("want cancellation error")
	}

	node, _ := g.Node(v)
	if _, ok := cache.PeekValue(uint64(node.Fingerprint)); ok {
		t.Fatal("want cancelled evaluation to leave no trace in the cache")
	}
	close(release)
	time.Sleep(10 * time.Millisecond) // let the still-running evaluator goroutine settle
}
