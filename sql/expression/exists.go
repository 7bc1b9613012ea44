package expression

import (
	"fmt"
	"io"

	"github.com/ralite/ralite/sql"
)

// Exists reports whether a subquery produces at least one row. The
// planbuilder plans the subquery as its own statement and hands it in as
// a produce function, since this package sits below both the plan and
// iterator layers and cannot lower a relation itself. Each Eval runs the
// subquery from the start; providers are re-entrant, so repeated
// evaluation is safe. Only uncorrelated subqueries are supported -- the
// subquery resolves against its own FROM clause, not the enclosing
// query's row.
type Exists struct {
	Query   fmt.Stringer
	produce func(ctx *sql.Context) (sql.RowIter, error)
}

// NewExists wraps a planned subquery. query is the subquery's relation
// (used only for String); produce lowers and starts it.
func NewExists(query fmt.Stringer, produce func(ctx *sql.Context) (sql.RowIter, error)) *Exists {
	return &Exists{Query: query, produce: produce}
}

func (e *Exists) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	iter, err := e.produce(ctx)
	if err != nil {
		return sql.Null, err
	}
	_, err = iter.Next(ctx)
	if err == io.EOF {
		return sql.NewBool(false), iter.Close(ctx)
	}
	if err != nil {
		_ = iter.Close(ctx)
		return sql.Null, err
	}
	return sql.NewBool(true), iter.Close(ctx)
}

func (e *Exists) Children() []Expression { return nil }

func (e *Exists) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 0 {
		return nil, ErrInvalidChildren
	}
	return e, nil
}

func (e *Exists) Commutative() bool { return false }
func (e *Exists) Associative() bool { return false }

func (e *Exists) String() string { return "EXISTS (" + e.Query.String() + ")" }
