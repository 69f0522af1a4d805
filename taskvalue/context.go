package taskvalue

import "github.com/plotkit/engine/variable"

// Context is an ordered, deduplicated bundle of upstream (Variable, Val),
// (Variable, Dataset), and (Variable, Function) pairs that must be in
// scope to interpret an Expr, Dataset, or Function TaskValue.
//
// Order is preserved and deduplication is by Variable identity, first
// occurrence wins, so a later shadowing binding never silently reorders
// an earlier one during expression pre-evaluation.
type Context struct {
	vals     []valBinding
	datasets []datasetBinding
	funcs    []funcBinding
	seen     map[variable.Variable]bool
}

// ValBinding, DatasetBinding, and FuncBinding are the three pair kinds a
// Context bundles.
type ValBinding struct {
	Var variable.Variable
	Val Scalar
}

type DatasetBinding struct {
	Var     variable.Variable
	Dataset Dataset
}

type FuncBinding struct {
	Var variable.Variable
	Fn  Function
}

type valBinding = ValBinding
type datasetBinding = DatasetBinding
type funcBinding = FuncBinding

// NewContext returns an empty Context.
func NewContext() Context {
	return Context{seen: map[variable.Variable]bool{}}
}

func (c *Context) ensureSeen() {
	if c.seen == nil {
		c.seen = map[variable.Variable]bool{}
	}
}

// WithVal returns a copy of c with (v, s) appended, unless v is already
// bound in c (first occurrence wins).
func (c Context) WithVal(v variable.Variable, s Scalar) Context {
	c.ensureSeen()
	if c.seen[v] {
		return c
	}
	c.seen = cloneSeen(c.seen)
	c.seen[v] = true
	c.vals = append(append([]valBinding{}, c.vals...), valBinding{v, s})
	return c
}

func (c Context) WithDataset(v variable.Variable, d Dataset) Context {
	c.ensureSeen()
	if c.seen[v] {
		return c
	}
	c.seen = cloneSeen(c.seen)
	c.seen[v] = true
	c.datasets = append(append([]datasetBinding{}, c.datasets...), datasetBinding{v, d})
	return c
}

func (c Context) WithFunc(v variable.Variable, fn Function) Context {
	c.ensureSeen()
	if c.seen[v] {
		return c
	}
	c.seen = cloneSeen(c.seen)
	c.seen[v] = true
	c.funcs = append(append([]funcBinding{}, c.funcs...), funcBinding{v, fn})
	return c
}

func cloneSeen(m map[variable.Variable]bool) map[variable.Variable]bool {
	n := make(map[variable.Variable]bool, len(m)+1)
	for k, v := range m {
		n[k] = v
	}
	return n
}

// Vals, Datasets, and Funcs return the bundle's bindings in insertion
// order.
func (c Context) Vals() []ValBinding { return append([]ValBinding{}, c.vals...) }

func (c Context) Datasets() []DatasetBinding { return append([]DatasetBinding{}, c.datasets...) }

func (c Context) Funcs() []FuncBinding { return append([]FuncBinding{}, c.funcs...) }

// Merge combines c and o, deduplicating by Variable identity with c's
// bindings taking priority on conflict and o's new bindings appended in
// their original relative order after c's.
func Merge(c, o Context) Context {
	m := c
	m.ensureSeen()
	for _, b := range o.vals {
		m = m.WithVal(b.Var, b.Val)
	}
	for _, b := range o.datasets {
		m = m.WithDataset(b.Var, b.Dataset)
	}
	for _, b := range o.funcs {
		m = m.WithFunc(b.Var, b.Fn)
	}
	return m
}

// Len returns the total number of distinct bindings in c.
func (c Context) Len() int {
	return len(c.vals) + len(c.datasets) + len(c.funcs)
}
