package expression

import (
	"github.com/ralite/ralite/sql"
)

// Literal is a constant scalar term: Number/String/Bool/Null unified
// into one node carrying a sql.Value.
type Literal struct {
	Value sql.Value
}

// NewLiteral wraps a sql.Value as a constant Expression.
func NewLiteral(v sql.Value) *Literal { return &Literal{Value: v} }

func (l *Literal) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	return l.Value, nil
}

func (l *Literal) Children() []Expression { return nil }

func (l *Literal) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 0 {
		return nil, ErrInvalidChildren
	}
	return l, nil
}

func (l *Literal) Commutative() bool { return false }
func (l *Literal) Associative() bool { return false }

func (l *Literal) String() string { return l.Value.String() }
