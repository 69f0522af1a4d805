package evalctx

import (
	"fmt"
	"math"

	"github.com/apache/arrow/go/v12/arrow"
	"github.com/apache/arrow/go/v12/arrow/array"

	"github.com/plotkit/engine/arrowtable"
	"github.com/plotkit/engine/errs"
)

// Engine is the reference QueryEngine (spec.md §6.1). It supports exactly
// the operations the task graph and mark compiler need to run
// end-to-end: registering tables, planning a "plan" that is either a bare
// registered table name or a SQL-shaped "SELECT * FROM <name>" string,
// and projecting a set of named Expr against a table's rows.
type Engine struct {
	session  *Session
	provider VariableProvider
}

func NewEngine(s *Session) *Engine {
	return &Engine{session: s, provider: s}
}

func (e *Engine) RegisterTable(name string, t *arrowtable.Table) error {
	e.session.RegisterDataset(name, t)
	return nil
}

func (e *Engine) RegisterVariableProvider(p VariableProvider) { e.provider = p }

type plan struct{ sql string }

func (p plan) SQL() string { return p.sql }

// Plan compiles sql into an opaque Plan. The reference engine recognizes
// either a bare registered table name or "SELECT * FROM <name>"; anything
// else is kept verbatim and resolved at Execute time by table name only
// (a real embedded engine would actually parse and optimize it).
func (e *Engine) Plan(sql string) (Plan, error) {
	return plan{sql: sql}, nil
}

func (e *Engine) Execute(p Plan) (*arrowtable.Table, error) {
	name := tableNameFromPlan(p.SQL())
	t, ok := e.session.GetDataset(name)
	if !ok {
		return nil, &errs.VariableNotFound{Name: name}
	}
	return t, nil
}

func tableNameFromPlan(sql string) string {
	const prefix = "SELECT * FROM "
	if len(sql) > len(prefix) && sql[:len(prefix)] == prefix {
		return sql[len(prefix):]
	}
	return sql
}

// Row is a materialized row view: one value per named column, boxed as
// float64, string, bool, or nil; timestamp and date32 columns keep their
// raw Arrow values (arrow.Timestamp, arrow.Date32).
type Row map[string]interface{}

// Rows flattens every batch of t into row-major Go values, boxing each
// Arrow column by its concrete type. This trades columnar efficiency for
// simplicity in the reference engine; a production QueryEngine would
// project expressions column-at-a-time instead.
func Rows(t *arrowtable.Table) ([]Row, error) {
	var rows []Row
	for _, batch := range t.Batches() {
		n := int(batch.NumRows())
		cols := batch.Schema().Fields()
		for r := 0; r < n; r++ {
			row := make(Row, len(cols))
			for c, f := range cols {
				v, err := columnValue(batch.Column(c), r)
				if err != nil {
					return nil, err
				}
				row[f.Name] = v
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func columnValue(col arrow.Array, i int) (interface{}, error) {
	if col.IsNull(i) {
		return nil, nil
	}
	switch a := col.(type) {
	case *array.Float64:
		return a.Value(i), nil
	case *array.Float32:
		return float64(a.Value(i)), nil
	case *array.Int64:
		return float64(a.Value(i)), nil
	case *array.Int32:
		return float64(a.Value(i)), nil
	case *array.Uint64:
		return float64(a.Value(i)), nil
	case *array.Uint32:
		return float64(a.Value(i)), nil
	case *array.Boolean:
		return a.Value(i), nil
	case *array.String:
		return a.Value(i), nil
	case *array.Timestamp:
		return a.Value(i), nil
	case *array.Date32:
		return a.Value(i), nil
	default:
		return nil, &errs.InvalidDataTypeError{Type: col.DataType().String(), Expected: "a scalar-projectable Arrow type"}
	}
}

// EvalRow evaluates e against a single Row.
func EvalRow(e Expr, row Row) (interface{}, error) {
	switch v := e.(type) {
	case Lit:
		return v.Value, nil
	case Column:
		val, ok := row[v.Name]
		if !ok {
			return nil, &errs.VariableNotFound{Name: v.Name}
		}
		return val, nil
	case BinaryOp:
		l, err := EvalRow(v.Left, row)
		if err != nil {
			return nil, err
		}
		r, err := EvalRow(v.Right, row)
		if err != nil {
			return nil, err
		}
		return evalBinary(v.Op, l, r)
	case Case:
		cond, err := EvalRow(v.Cond, row)
		if err != nil {
			return nil, err
		}
		if b, ok := cond.(bool); ok && b {
			return EvalRow(v.Then, row)
		}
		return EvalRow(v.Else, row)
	case Call:
		args := make([]interface{}, len(v.Args))
		for i, a := range v.Args {
			val, err := EvalRow(a, row)
			if err != nil {
				return nil, err
			}
			args[i] = val
		}
		return evalScalarCall(v.Func, args)
	default:
		return nil, &errs.InternalError{Msg: fmt.Sprintf("EvalRow: unresolved expression node %T (Substitute must run first)", e)}
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func evalBinary(op string, l, r interface{}) (interface{}, error) {
	switch op {
	case "+", "-", "*", "/":
		lf, lok := toFloat(l)
		rf, rok := toFloat(r)
		if !lok || !rok {
			return nil, &errs.InvalidDataTypeError{Type: fmt.Sprintf("%T,%T", l, r), Expected: "numeric operands"}
		}
		switch op {
		case "+":
			return lf + rf, nil
		case "-":
			return lf - rf, nil
		case "*":
			return lf * rf, nil
		case "/":
			if rf == 0 {
				return math.NaN(), nil
			}
			return lf / rf, nil
		}
	case "<", "<=", ">", ">=":
		lf, lok := toFloat(l)
		rf, rok := toFloat(r)
		if !lok || !rok {
			return nil, &errs.InvalidDataTypeError{Type: fmt.Sprintf("%T,%T", l, r), Expected: "numeric operands"}
		}
		switch op {
		case "<":
			return lf < rf, nil
		case "<=":
			return lf <= rf, nil
		case ">":
			return lf > rf, nil
		case ">=":
			return lf >= rf, nil
		}
	case "==":
		return l == r, nil
	case "!=":
		return l != r, nil
	case "&&":
		return l.(bool) && r.(bool), nil
	case "||":
		return l.(bool) || r.(bool), nil
	}
	return nil, &errs.InternalError{Msg: "unsupported binary operator " + op}
}

func evalScalarCall(name string, args []interface{}) (interface{}, error) {
	switch name {
	case "abs":
		f, _ := toFloat(args[0])
		return math.Abs(f), nil
	case "sqrt":
		f, _ := toFloat(args[0])
		return math.Sqrt(f), nil
	case "coalesce":
		for _, a := range args {
			if a != nil {
				return a, nil
			}
		}
		return nil, nil
	default:
		return nil, &errs.ScaleOperationNotSupported{ScaleType: "expr", Operation: "call " + name}
	}
}

// Project evaluates a set of named expressions against every row of t,
// returning one named output column per channel in the same row order as
// Rows(t). This is the "compile all encoding expressions into one
// projection over the data source" step of spec.md §4.8.
func Project(t *arrowtable.Table, exprs map[string]Expr) (map[string][]interface{}, int, error) {
	rows, err := Rows(t)
	if err != nil {
		return nil, 0, err
	}
	out := make(map[string][]interface{}, len(exprs))
	for name := range exprs {
		out[name] = make([]interface{}, len(rows))
	}
	for ri, row := range rows {
		for name, e := range exprs {
			v, err := EvalRow(e, row)
			if err != nil {
				return nil, 0, fmt.Errorf("projecting channel %q: %w", name, err)
			}
			out[name][ri] = v
		}
	}
	return out, len(rows), nil
}
