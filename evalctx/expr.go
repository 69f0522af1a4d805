package evalctx

import (
	"fmt"
	"strings"
)

// Expr is the small expression tree the mark compiler and the reference
// Engine operate on: column references, literals, arithmetic/comparison,
// and function calls. It deliberately is not a general SQL AST — the
// declarative surface language and its parser are an out-of-scope
// external collaborator (spec.md §1); this is just enough structure to
// exercise the task graph end to end.
type Expr interface {
	isExpr()
	String() string
}

// Column references a named column of the row batch being projected.
type Column struct{ Name string }

func (Column) isExpr()          {}
func (c Column) String() string { return c.Name }

// Lit is a literal scalar.
type Lit struct{ Value interface{} }

func (Lit) isExpr()          {}
func (l Lit) String() string { return fmt.Sprintf("%v", l.Value) }

// Ident is a bare (possibly '@'-prefixed) identifier, present only before
// Substitute runs; Substitute replaces every Ident with a Column, Lit, or
// inlined sub-expression and no Ident should remain afterward.
type Ident struct{ Name string }

func (Ident) isExpr()          {}
func (i Ident) String() string { return i.Name }

// FieldRef is a compound '@name.sub' reference, present only before
// Substitute runs; Substitute mangles it into a Column over the
// underscore-joined registered table name (spec.md §9).
type FieldRef struct{ Base, Sub string }

func (FieldRef) isExpr()          {}
func (f FieldRef) String() string { return f.Base + "." + f.Sub }

// BinaryOp is a two-operand operator: "+", "-", "*", "/", "<", "<=", ">",
// ">=", "==", "!=", "&&", "||".
type BinaryOp struct {
	Op          string
	Left, Right Expr
}

func (BinaryOp) isExpr() {}
func (b BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// Call is a function call: a named scalar function (abs, sqrt, coalesce)
// applied to its arguments. Any other name fails at evaluation with
// ScaleOperationNotSupported; there are no aggregate functions.
type Call struct {
	Func string
	Args []Expr
}

func (Call) isExpr() {}
func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Func + "(" + strings.Join(parts, ", ") + ")"
}

// Case is a simple CASE WHEN cond THEN then ELSE els END expression.
type Case struct {
	Cond Expr
	Then Expr
	Else Expr
}

func (Case) isExpr()          {}
func (c Case) String() string { return fmt.Sprintf("case when %s then %s else %s end", c.Cond, c.Then, c.Else) }

// Substitute walks e and replaces every '@'-prefixed Ident or FieldRef:
//   - Ident{"@name"}: if an expression named "name" is registered, inline
//     it (wrapped so precedence is preserved by BinaryOp/Call's own
//     parenthesization); otherwise, if a scalar is registered, inline it
//     as a Lit; otherwise the Ident is left as a bare Column reference to
//     "name" and resolution is deferred to the engine's variable
//     provider.
//   - FieldRef{"@name", "sub"}: rewritten into a Column over the mangled
//     registered table name "name_sub" (spec.md §9).
//
// This mirrors the "pre-compilation pass over the AST" spec.md §9
// prescribes, run once before a query is planned or a projection is
// evaluated.
func Substitute(e Expr, s *Session) Expr {
	switch v := e.(type) {
	case Ident:
		if !strings.HasPrefix(v.Name, "@") {
			return Column{Name: v.Name}
		}
		name := strings.TrimPrefix(v.Name, "@")
		if sub, ok := s.GetExpr(name); ok {
			return Substitute(sub, s)
		}
		if val, ok := s.GetVal(name); ok {
			return Lit{Value: val.Value}
		}
		return Column{Name: name}
	case FieldRef:
		base := strings.TrimPrefix(v.Base, "@")
		return Column{Name: mangle(base, v.Sub)}
	case BinaryOp:
		return BinaryOp{Op: v.Op, Left: Substitute(v.Left, s), Right: Substitute(v.Right, s)}
	case Call:
		args := make([]Expr, len(v.Args))
		for i, a := range v.Args {
			args[i] = Substitute(a, s)
		}
		return Call{Func: v.Func, Args: args}
	case Case:
		return Case{Cond: Substitute(v.Cond, s), Then: Substitute(v.Then, s), Else: Substitute(v.Else, s)}
	default:
		return e
	}
}
