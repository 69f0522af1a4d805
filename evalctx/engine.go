// Package evalctx implements the evaluation context described in
// spec.md §4.4: a process-local collaborator around one embedded
// SQL/dataframe session that registers named scalars, datasets, and
// pre-parsed expressions for substitution, plus the '@'-identifier
// substitution pass spec.md §9 describes.
//
// The embedded SQL/dataframe engine itself is an out-of-scope external
// collaborator (spec.md §1, §6.1); QueryEngine is the minimal interface
// this module needs from it, and Engine is a small self-contained
// reference implementation of that interface — just enough expression
// evaluation (column refs, literals, arithmetic/comparison, conditionals,
// and the scalar functions abs, sqrt and coalesce; it has no aggregate
// functions, and transform.Group aggregates in Go) to exercise the task graph,
// runtime, and mark compiler end to end without depending on an external
// SQL engine. It evaluates expressions directly over arrowtable.Table's
// Arrow-backed columns rather than reflect-typed slices.
package evalctx

import (
	"fmt"
	"sync"

	"github.com/plotkit/engine/arrowtable"
	"github.com/plotkit/engine/errs"
	"github.com/plotkit/engine/taskvalue"
)

// QueryEngine is the external collaborator's contract (spec.md §6.1): a
// session that can register named tables, variables, and UDTFs, compile a
// logical plan from SQL text, and execute a plan into a Table.
type QueryEngine interface {
	RegisterTable(name string, t *arrowtable.Table) error
	RegisterVariableProvider(p VariableProvider)
	Plan(sql string) (Plan, error)
	Execute(p Plan) (*arrowtable.Table, error)
}

// Plan is an opaque compiled logical plan handle.
type Plan interface {
	SQL() string
}

// VariableProvider resolves a scalar by name for substitution into a
// running query (the SQL engine's own "variable provider", spec.md §4.4).
type VariableProvider interface {
	Lookup(name string) (taskvalue.Scalar, bool)
}

// Session is the evaluation context: the process-local registry of named
// scalars, datasets, pre-parsed expressions, and functions, plus the
// reference QueryEngine used to execute plans and project encodings.
// Registration is idempotent: registering a name a second time overwrites
// the first (spec.md §5).
type Session struct {
	mu sync.Mutex

	vals     map[string]taskvalue.Scalar
	datasets map[string]*arrowtable.Table
	exprs    map[string]Expr
	funcs    map[string]taskvalue.Function

	engine *Engine
}

// NewSession builds a Session backed by a fresh reference Engine.
func NewSession() *Session {
	s := &Session{
		vals:     map[string]taskvalue.Scalar{},
		datasets: map[string]*arrowtable.Table{},
		exprs:    map[string]Expr{},
		funcs:    map[string]taskvalue.Function{},
	}
	s.engine = NewEngine(s)
	return s
}

// RegisterVal stores a named scalar for SQL substitution. By convention
// names are passed without their '@' prefix; Substitute strips it before
// lookup.
func (s *Session) RegisterVal(name string, v taskvalue.Scalar) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals[name] = v
}

func (s *Session) GetVal(name string) (taskvalue.Scalar, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vals[name]
	return v, ok
}

func (s *Session) HasVal(name string) bool {
	_, ok := s.GetVal(name)
	return ok
}

// RegisterDataset registers a named view.
func (s *Session) RegisterDataset(name string, t *arrowtable.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.datasets[name] = t
}

func (s *Session) GetDataset(name string) (*arrowtable.Table, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.datasets[name]
	return t, ok
}

func (s *Session) HasDataset(name string) bool {
	_, ok := s.GetDataset(name)
	return ok
}

// RegisterExpr stores a pre-parsed expression for substitution.
func (s *Session) RegisterExpr(name string, e Expr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exprs[name] = e
}

func (s *Session) GetExpr(name string) (Expr, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.exprs[name]
	return e, ok
}

func (s *Session) HasExpr(name string) bool {
	_, ok := s.GetExpr(name)
	return ok
}

// RegisterFunction stores a user-defined SQL function definition.
func (s *Session) RegisterFunction(name string, fn taskvalue.Function) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.funcs[name] = fn
}

func (s *Session) GetFunction(name string) (taskvalue.Function, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn, ok := s.funcs[name]
	return fn, ok
}

func (s *Session) HasFunction(name string) bool {
	_, ok := s.GetFunction(name)
	return ok
}

// Lookup implements VariableProvider, wrapping GetVal.
func (s *Session) Lookup(name string) (taskvalue.Scalar, bool) { return s.GetVal(name) }

// Engine returns the session's reference QueryEngine.
func (s *Session) Engine() *Engine { return s.engine }

// mangle implements the '@name.sub' table-reference convention: mangle
// into a single underscore-joined registered table name (spec.md §9).
func mangle(parts ...string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += "_" + p
	}
	return out
}

// resolveTableRef looks up a possibly-mangled '@name.sub' dataset
// reference, registering nothing new — callers pre-register the mangled
// name via RegisterDataset.
func (s *Session) resolveTableRef(parts []string) (*arrowtable.Table, error) {
	name := mangle(parts...)
	t, ok := s.GetDataset(name)
	if !ok {
		return nil, &errs.VariableNotFound{Name: fmt.Sprintf("@%s", name)}
	}
	return t, nil
}
