// Package taskgraph implements the immutable DAG of tasks described in
// spec.md §3.3–§3.4 and §4.2: task identity, declared input dependencies,
// topological fingerprint computation, and graph construction with cycle
// and closure validation.
package taskgraph

import (
	"context"

	"github.com/plotkit/engine/taskvalue"
	"github.com/plotkit/engine/variable"
)

// Evaluator is a task's evaluation procedure: given the evaluated input
// TaskValues in declared-input order, it produces the task's output
// TaskValue.
type Evaluator func(ctx context.Context, inputs []taskvalue.Value) (taskvalue.Value, error)

// Task declares an output Variable, an ordered vector of input-variable
// dependencies, a StaticHash identifying the task's own definition (its
// SQL text, scale config, or whatever distinguishes it from another task
// of the same Go type), and the Evaluator that computes its output.
type Task struct {
	Output     variable.Variable
	Inputs     []variable.Variable
	StaticHash uint64
	Eval       Evaluator
}

// New builds a Task. staticHash should be a stable content hash of
// whatever makes this task's definition unique among tasks of the same
// shape (e.g. FingerprintStatic over its config struct); see fingerprint.go.
func New(output variable.Variable, inputs []variable.Variable, staticHash uint64, eval Evaluator) Task {
	return Task{Output: output, Inputs: inputs, StaticHash: staticHash, Eval: eval}
}
