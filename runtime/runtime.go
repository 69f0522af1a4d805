// Package runtime implements the async, parallel, memoized evaluation
// engine described in spec.md §4.3 and §5: evaluate(graph, [vars]) -> map
// of Variable to TaskValue, spawning concurrent sub-evaluations of a
// task's dependencies and sharing a task cache across runtime instances.
//
// This package's shape is grounded directly in spec.md §4.3's algorithm
// description, built on Go's goroutines and errgroup in place of an
// async-runtime executor.
package runtime

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/plotkit/engine/errs"
	"github.com/plotkit/engine/taskcache"
	"github.com/plotkit/engine/taskgraph"
	"github.com/plotkit/engine/taskvalue"
	"github.com/plotkit/engine/variable"
)

// Runtime evaluates variables against a fixed Graph, memoizing through a
// Cache that may be shared with other Runtime instances over the same or
// a structurally-identical graph. A Runtime is cheap to construct and
// safe to share across goroutines; all of its state beyond the graph
// pointer lives in Cache, which owns its own locking.
type Runtime struct {
	graph *taskgraph.Graph
	cache *taskcache.Cache
	log   *zap.Logger
}

// New builds a Runtime over graph, memoizing through cache. A nil cache
// gets a fresh private Cache at taskcache.DefaultCapacity; a nil logger
// gets zap's no-op logger.
func New(graph *taskgraph.Graph, cache *taskcache.Cache, log *zap.Logger) *Runtime {
	if cache == nil {
		cache = taskcache.New(taskcache.DefaultCapacity, taskcache.DefaultCapacity, log)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runtime{graph: graph, cache: cache, log: log}
}

// EvaluateVariables evaluates every variable in vars (and transitively,
// every task they depend on) and returns a map from each requested
// Variable to its TaskValue. Independent requested variables, and
// independent dependencies of a single task, may be evaluated in
// parallel; a single task always sees its own inputs in declaration
// order. The first dependency failure aborts the whole call and cancels
// outstanding sibling sub-evaluations (spec.md §5).
//
// EvaluateVariables is cancel-safe: if ctx is cancelled (or the caller
// abandons the returned future, in Go terms simply stops waiting and lets
// ctx expire), outstanding dependency goroutines observe ctx.Err() at
// their next suspension point and unwind without inserting anything into
// the cache.
func (r *Runtime) EvaluateVariables(ctx context.Context, vars []variable.Variable) (map[variable.Variable]taskvalue.Value, error) {
	eg, gctx := errgroup.WithContext(ctx)
	results := make([]taskvalue.Value, len(vars))
	for i, v := range vars {
		i, v := i, v
		eg.Go(func() error {
			val, err := r.evaluate(gctx, v)
			if err != nil {
				return err
			}
			results[i] = val
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	out := make(map[variable.Variable]taskvalue.Value, len(vars))
	for i, v := range vars {
		out[v] = results[i]
	}
	return out, nil
}

// evaluate resolves a single Variable: a cache hit (possibly a cache hit
// that completed while we were deciding to request it, coalesced via
// Cache.GetOrCompute) returns immediately; otherwise it spawns concurrent
// sub-evaluations of every declared input, awaits them all, and invokes
// the task's Evaluator with the results in declaration order.
func (r *Runtime) evaluate(ctx context.Context, v variable.Variable) (taskvalue.Value, error) {
	if err := ctx.Err(); err != nil {
		return taskvalue.Value{}, err
	}

	node, ok := r.graph.Node(v)
	if !ok {
		return taskvalue.Value{}, &errs.VariableNotFound{Name: v.Name()}
	}
	fp := uint64(node.Fingerprint)

	entry, err := r.cache.GetOrCompute(fp, func() (taskcache.ValueEntry, error) {
		inputs := make([]taskvalue.Value, len(node.Inputs))
		eg, gctx := errgroup.WithContext(ctx)
		for i, edge := range node.Inputs {
			i, edge := i, edge
			eg.Go(func() error {
				val, err := r.evaluate(gctx, edge.Source)
				if err != nil {
					return err
				}
				inputs[i] = val
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return taskcache.ValueEntry{}, err
		}

		start := time.Now()
		result, err := node.Task.Eval(ctx, inputs)
		if err != nil {
			return taskcache.ValueEntry{}, err
		}
		dur := time.Since(start)
		r.cache.InsertRuntimeStats(v, taskcache.RuntimeStats{Duration: dur, WasSpawned: true})
		r.log.Debug("evaluated task", zap.String("variable", v.Name()), zap.Duration("duration", dur))
		return taskcache.ValueEntry{Value: result, Duration: dur}, nil
	})
	if err != nil {
		return taskvalue.Value{}, err
	}
	return entry.Value.(taskvalue.Value), nil
}

// Cache exposes the Runtime's backing Cache so callers can share it with
// another Runtime over a structurally compatible graph.
func (r *Runtime) Cache() *taskcache.Cache { return r.cache }
