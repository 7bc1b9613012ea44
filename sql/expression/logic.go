package expression

import (
	"strings"

	"github.com/ralite/ralite/sql"
)

// And is a variadic, commutative, associative conjunction. An
// empty And is treated as true rather than forbidden outright; the
// rewriter immediately collapses a Filter over one.
type And struct {
	Args []Expression
}

// NewAnd builds a conjunction over the given operands.
func NewAnd(args ...Expression) *And { return &And{Args: args} }

func (a *And) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	if len(a.Args) == 0 {
		return sql.NewBool(true), nil
	}
	sawNull := false
	for _, arg := range a.Args {
		v, err := arg.Eval(ctx, row)
		if err != nil {
			return sql.Null, err
		}
		if v.IsNull() {
			sawNull = true
			continue
		}
		if v.Kind() == sql.KindBool && !v.Bool() {
			return sql.NewBool(false), nil
		}
	}
	if sawNull {
		return sql.Null, nil
	}
	return sql.NewBool(true), nil
}

func (a *And) Children() []Expression { return a.Args }

func (a *And) WithChildren(children ...Expression) (Expression, error) {
	return &And{Args: children}, nil
}

func (a *And) Commutative() bool { return true }
func (a *And) Associative() bool { return true }

func (a *And) String() string {
	parts := make([]string, len(a.Args))
	for i, arg := range a.Args {
		parts[i] = arg.String()
	}
	return "(" + strings.Join(parts, " AND ") + ")"
}

// Or is a variadic, commutative, associative disjunction.
type Or struct {
	Args []Expression
}

// NewOr builds a disjunction over the given operands.
func NewOr(args ...Expression) *Or { return &Or{Args: args} }

func (o *Or) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	sawNull := false
	for _, arg := range o.Args {
		v, err := arg.Eval(ctx, row)
		if err != nil {
			return sql.Null, err
		}
		if v.IsNull() {
			sawNull = true
			continue
		}
		if v.Kind() == sql.KindBool && v.Bool() {
			return sql.NewBool(true), nil
		}
	}
	if sawNull {
		return sql.Null, nil
	}
	return sql.NewBool(false), nil
}

func (o *Or) Children() []Expression { return o.Args }

func (o *Or) WithChildren(children ...Expression) (Expression, error) {
	return &Or{Args: children}, nil
}

func (o *Or) Commutative() bool { return true }
func (o *Or) Associative() bool { return true }

func (o *Or) String() string {
	parts := make([]string, len(o.Args))
	for i, arg := range o.Args {
		parts[i] = arg.String()
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

// Not negates a single boolean operand, following SQL 3VL (NOT NULL = NULL).
type Not struct {
	Child Expression
}

// NewNot builds a negation.
func NewNot(child Expression) *Not { return &Not{Child: child} }

func (n *Not) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	v, err := n.Child.Eval(ctx, row)
	if err != nil {
		return sql.Null, err
	}
	if v.IsNull() {
		return sql.Null, nil
	}
	return sql.NewBool(!v.Bool()), nil
}

func (n *Not) Children() []Expression { return []Expression{n.Child} }

func (n *Not) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildren
	}
	return &Not{Child: children[0]}, nil
}

func (n *Not) Commutative() bool { return false }
func (n *Not) Associative() bool { return false }

func (n *Not) String() string { return "NOT " + n.Child.String() }

// BoolFalse and BoolTrue are the constant predicate terms, convenience
// constructors over Literal.
func BoolTrue() Expression  { return NewLiteral(sql.NewBool(true)) }
func BoolFalse() Expression { return NewLiteral(sql.NewBool(false)) }
