package expression

import "github.com/ralite/ralite/sql"

// Column is an unresolved column reference, a (table, name) pair as
// parsed. It appears in the RA tree exactly as the planbuilder produced it;
// Resolve binds it to a GetField before execution.
type Column struct {
	Table string // "" if unqualified
	Name  string
}

// NewColumn builds an unresolved column reference.
func NewColumn(table, name string) *Column { return &Column{Table: table, Name: name} }

func (c *Column) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	return sql.Null, errUnresolvedColumn.New(c.String())
}

func (c *Column) Children() []Expression { return nil }

func (c *Column) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 0 {
		return nil, ErrInvalidChildren
	}
	return c, nil
}

func (c *Column) Commutative() bool { return false }
func (c *Column) Associative() bool { return false }

func (c *Column) String() string {
	if c.Table == "" {
		return c.Name
	}
	return c.Table + "." + c.Name
}
