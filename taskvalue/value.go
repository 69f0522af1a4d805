// Package taskvalue defines TaskValue, the result of evaluating a Task,
// and TaskValueContext, the bundle of upstream bindings a lazy Expr or
// Dataset plan needs in scope to be interpreted.
//
// TaskValue is a fixed, closed variant set, so it is modeled as a Go sum
// type (an explicit Kind tag plus per-kind fields) rather than an
// interface with open-ended implementations.
package taskvalue

import (
	"fmt"

	"github.com/plotkit/engine/arrowtable"
	"github.com/plotkit/engine/errs"
	"github.com/plotkit/engine/scene"
	"github.com/plotkit/engine/variable"
)

// Kind is the closed set of TaskValue variants.
type Kind int

const (
	KindVal Kind = iota
	KindExpr
	KindDataset
	KindFunction
	KindMark
)

func (k Kind) String() string {
	switch k {
	case KindVal:
		return "Val"
	case KindExpr:
		return "Expr"
	case KindDataset:
		return "Dataset"
	case KindFunction:
		return "Function"
	case KindMark:
		return "Mark"
	default:
		return "Unknown"
	}
}

// Scalar is a single Arrow-compatible scalar: numeric, boolean, string,
// date/timestamp, list, or struct, or null. Represented as a tagged Go
// value plus an explicit IsNull flag so a typed-but-null scalar (e.g. a
// null float64) round-trips distinctly from an absent value.
type Scalar struct {
	Value  interface{}
	IsNull bool
}

// Null returns the null scalar.
func Null() Scalar { return Scalar{IsNull: true} }

// Of wraps a non-null scalar value.
func Of(v interface{}) Scalar { return Scalar{Value: v} }

// DatasetKind distinguishes a lazy logical plan from a materialized table.
type DatasetKind int

const (
	DatasetLazy DatasetKind = iota
	DatasetMaterialized
)

// Dataset is either a logical query plan (lazy, represented by its SQL
// text plus the context needed to interpret it) or a materialized Arrow
// table.
type Dataset struct {
	Kind  DatasetKind
	Plan  string // valid when Kind == DatasetLazy
	Table *arrowtable.Table
}

// Function is a user-defined SQL function definition: its name, the SQL
// body, and the upstream context the body's '@'-identifiers reference.
type Function struct {
	Name string
	Body string
}

// Value is the TaskValue sum type. Exactly one of the per-Kind fields is
// meaningful, selected by Kind; accessors panic if called against the
// wrong Kind, a fail-fast choice for programmer error rather than
// returning a zero value that would silently mask a bug in the mark
// compiler or runtime.
type Value struct {
	kind    Kind
	scalar  Scalar
	expr    string
	dataset Dataset
	fn      Function
	mark    *scene.Mark
	ctx     Context
}

func NewVal(s Scalar) Value { return Value{kind: KindVal, scalar: s} }

func NewExpr(sql string, ctx Context) Value {
	return Value{kind: KindExpr, expr: sql, ctx: ctx}
}

func NewDataset(d Dataset, ctx Context) Value {
	return Value{kind: KindDataset, dataset: d, ctx: ctx}
}

func NewFunction(fn Function, ctx Context) Value {
	return Value{kind: KindFunction, fn: fn, ctx: ctx}
}

func NewMark(m *scene.Mark) Value { return Value{kind: KindMark, mark: m} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) mustBe(k Kind) {
	if v.kind != k {
		panic(&errs.InternalError{Msg: fmt.Sprintf("TaskValue: want %s, have %s", k, v.kind)})
	}
}

func (v Value) Val() Scalar {
	v.mustBe(KindVal)
	return v.scalar
}

func (v Value) Expr() string {
	v.mustBe(KindExpr)
	return v.expr
}

func (v Value) Dataset() Dataset {
	v.mustBe(KindDataset)
	return v.dataset
}

func (v Value) Function() Function {
	v.mustBe(KindFunction)
	return v.fn
}

func (v Value) Mark() *scene.Mark {
	v.mustBe(KindMark)
	return v.mark
}

// Context returns the upstream TaskValueContext. Valid for Expr, Dataset,
// and Function; returns the empty Context for Val and Mark, which never
// carry one.
func (v Value) Context() Context {
	return v.ctx
}
