package expression

import "github.com/ralite/ralite/sql"

// GetField is a Column reference resolved to a fixed row index. This is
// the only column-reference node that can be Eval'd.
type GetField struct {
	Index int
	Type  sql.Type
	Name  string
}

// NewGetField builds a resolved column reference.
func NewGetField(index int, typ sql.Type, name string) *GetField {
	return &GetField{Index: index, Type: typ, Name: name}
}

func (f *GetField) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	if f.Index < 0 || f.Index >= len(row) {
		return sql.Null, errUnresolvedColumn.New(f.Name)
	}
	return row[f.Index], nil
}

func (f *GetField) Children() []Expression { return nil }

func (f *GetField) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 0 {
		return nil, ErrInvalidChildren
	}
	return f, nil
}

func (f *GetField) Commutative() bool { return false }
func (f *GetField) Associative() bool { return false }

func (f *GetField) String() string { return f.Name }
