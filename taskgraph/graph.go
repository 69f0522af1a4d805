package taskgraph

import (
	"fmt"

	"github.com/plotkit/engine/errs"
	"github.com/plotkit/engine/variable"
)

// Edge is a dependency edge; Source is the producing Variable.
type Edge struct {
	Source variable.Variable
}

// Node is a constructed graph node: the task that produces Variable, its
// computed Fingerprint, and its resolved dependency edges.
type Node struct {
	Task        Task
	Fingerprint Fingerprint
	Inputs      []Edge
}

type edgeFingerprint struct {
	Var         variable.Variable
	Fingerprint Fingerprint
}

// Graph is the immutable DAG of tasks: a mapping from Variable to the Node
// that produces it. The graph is guaranteed acyclic and closed (every
// edge's source resolves to a node in the map) once Build succeeds.
type Graph struct {
	nodes map[variable.Variable]Node
}

// Node looks up the node producing v.
func (g *Graph) Node(v variable.Variable) (Node, bool) {
	n, ok := g.nodes[v]
	return n, ok
}

// Variables returns every Variable with a producing node in g.
func (g *Graph) Variables() []variable.Variable {
	out := make([]variable.Variable, 0, len(g.nodes))
	for v := range g.nodes {
		out = append(out, v)
	}
	return out
}

type buildState int

const (
	unvisited buildState = iota
	visiting
	done
)

// Build constructs a Graph from a set of tasks keyed by the Variable they
// produce. It fails with *errs.VariableNotFound if a task declares an
// input whose producing task is absent, and with *errs.InternalError
// (wrapping a cycle description) if the dependency graph is cyclic.
// Fingerprints are computed topologically: a task's fingerprint folds in
// the fingerprints of the tasks that produce each of its inputs, so two
// structurally identical subgraphs — same static hashes, same dependency
// shape — always fingerprint identically (spec.md §4.2).
func Build(tasks map[variable.Variable]Task) (*Graph, error) {
	for v, t := range tasks {
		if t.Output != v {
			return nil, &errs.InternalError{Msg: fmt.Sprintf("task keyed under %s declares output %s", v, t.Output)}
		}
		for _, in := range t.Inputs {
			if _, ok := tasks[in]; !ok {
				return nil, &errs.VariableNotFound{Name: in.Name()}
			}
		}
	}

	g := &Graph{nodes: make(map[variable.Variable]Node, len(tasks))}
	states := make(map[variable.Variable]buildState, len(tasks))
	stack := make([]variable.Variable, 0, 8)

	var visit func(v variable.Variable) (Fingerprint, error)
	visit = func(v variable.Variable) (Fingerprint, error) {
		if n, ok := g.nodes[v]; ok {
			return n.Fingerprint, nil
		}
		switch states[v] {
		case visiting:
			return 0, &errs.InternalError{Msg: fmt.Sprintf("cycle detected in task graph at %s (path: %v)", v, append(append([]variable.Variable{}, stack...), v))}
		case done:
			// Unreachable: done implies g.nodes[v] is set above.
			return 0, &errs.InternalError{Msg: "inconsistent build state"}
		}

		states[v] = visiting
		stack = append(stack, v)

		t := tasks[v]
		edges := make([]Edge, len(t.Inputs))
		fps := make([]edgeFingerprint, len(t.Inputs))
		for i, in := range t.Inputs {
			fp, err := visit(in)
			if err != nil {
				return 0, err
			}
			edges[i] = Edge{Source: in}
			fps[i] = edgeFingerprint{Var: in, Fingerprint: fp}
		}

		stack = stack[:len(stack)-1]
		states[v] = done

		fp := combine(t.StaticHash, fps)
		g.nodes[v] = Node{Task: t, Fingerprint: fp, Inputs: edges}
		return fp, nil
	}

	for v := range tasks {
		if _, err := visit(v); err != nil {
			return nil, err
		}
	}
	return g, nil
}
