// Package expression implements the scalar and predicate term nodes of the
// relational algebra: the leaves
// and connectives that appear inside Select/Project/Join nodes.
package expression

import (
	"fmt"

	"github.com/ralite/ralite/sql"
)

// Expression is a scalar or boolean-valued term. Unresolved Column
// references cannot be evaluated directly; Resolve must be called first to
// bind them to a GetField against a concrete sql.Schema (the planbuilder
// does this when it builds a Select predicate).
type Expression interface {
	fmt.Stringer

	// Eval evaluates the expression against a row. Rows passed here are
	// assumed already resolved (GetField, not Column).
	Eval(ctx *sql.Context, row sql.Row) (sql.Value, error)

	Children() []Expression
	WithChildren(children ...Expression) (Expression, error)

	// Commutative/Associative report the term's algebraic properties. The
	// rewriter's rules do not consult them; each rule handles its operand
	// order directly.
	Commutative() bool
	Associative() bool
}

// Resolve walks an expression tree built by the planbuilder and replaces
// every unresolved Column with a GetField bound to its index in schema.
// The planbuilder calls it while building the plan, before rewriting and
// lowering.
func Resolve(e Expression, schema sql.Schema) (Expression, error) {
	if col, ok := e.(*Column); ok {
		idx, err := schema.IndexOf(col.Table, col.Name)
		if err != nil {
			return nil, err
		}
		return NewGetField(idx, schema[idx].Type, schema[idx].Identifier()), nil
	}

	children := e.Children()
	if len(children) == 0 {
		return e, nil
	}
	newChildren := make([]Expression, len(children))
	changed := false
	for i, c := range children {
		rc, err := Resolve(c, schema)
		if err != nil {
			return nil, err
		}
		newChildren[i] = rc
		if rc != c {
			changed = true
		}
	}
	if !changed {
		return e, nil
	}
	return e.WithChildren(newChildren...)
}

// ColumnsUsed collects every unresolved Column referenced anywhere in the
// expression tree.
func ColumnsUsed(e Expression) []*Column {
	var out []*Column
	var walk func(Expression)
	walk = func(e Expression) {
		if col, ok := e.(*Column); ok {
			out = append(out, col)
		}
		for _, c := range e.Children() {
			walk(c)
		}
	}
	walk(e)
	return out
}

// GetFieldsUsed collects every resolved column reference in the expression
// tree, in the order encountered. The rewriter uses this (after the
// planbuilder's resolution) to decide which Cross operand a predicate depends on.
func GetFieldsUsed(e Expression) []*GetField {
	var out []*GetField
	var walk func(Expression)
	walk = func(e Expression) {
		if gf, ok := e.(*GetField); ok {
			out = append(out, gf)
		}
		for _, c := range e.Children() {
			walk(c)
		}
	}
	walk(e)
	return out
}

// IsTrue reports whether a Value is the SQL-true outcome of evaluating a
// predicate (Bool kind, true). Null and false are both "not true", which is
// the only distinction a Filter iterator needs to make (three-valued
// logic collapses to a keep/drop decision at the Filter boundary).
func IsTrue(v sql.Value) bool {
	return v.Kind() == sql.KindBool && v.Bool()
}
