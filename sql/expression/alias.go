package expression

import "github.com/ralite/ralite/sql"

// Alias renames a projection's output column (SQL "expr AS name") without
// changing its value. The rewriter and lowerer both see through it to the
// wrapped expression for evaluation; only Project's schema derivation
// looks at the Name.
type Alias struct {
	Expr Expression
	Name string
}

// NewAlias wraps expr under the given output column name.
func NewAlias(name string, expr Expression) *Alias {
	return &Alias{Expr: expr, Name: name}
}

func (a *Alias) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	return a.Expr.Eval(ctx, row)
}

func (a *Alias) Children() []Expression { return []Expression{a.Expr} }

func (a *Alias) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildren
	}
	return NewAlias(a.Name, children[0]), nil
}

func (a *Alias) Commutative() bool { return false }
func (a *Alias) Associative() bool { return false }

func (a *Alias) String() string { return a.Expr.String() + " AS " + a.Name }
