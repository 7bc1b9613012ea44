package expression

import (
	"strings"

	"github.com/ralite/ralite/sql"
)

// Tuple is a literal value list, the right-hand side of IN. Commutative
// but not associative: order matters only for the rewriter's recursive
// peel-off, not for membership itself.
type Tuple struct {
	Items []Expression
}

// NewTuple builds a List of the given items.
func NewTuple(items ...Expression) *Tuple { return &Tuple{Items: items} }

func (t *Tuple) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	return sql.Null, errNotScalar.New("List")
}

func (t *Tuple) Children() []Expression { return t.Items }

func (t *Tuple) WithChildren(children ...Expression) (Expression, error) {
	return &Tuple{Items: children}, nil
}

func (t *Tuple) Commutative() bool { return true }
func (t *Tuple) Associative() bool { return false }

func (t *Tuple) String() string {
	parts := make([]string, len(t.Items))
	for i, it := range t.Items {
		parts[i] = it.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// In is membership: x IN (v1, v2, ...). Not commutative, not
// associative. The rewriter unfolds this into Or/False; this Eval
// implementation is the ground truth used when rewriting is disabled.
type In struct {
	Left Expression
	List *Tuple
}

// NewIn builds an IN predicate.
func NewIn(left Expression, list *Tuple) *In { return &In{Left: left, List: list} }

func (in *In) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	lv, err := in.Left.Eval(ctx, row)
	if err != nil {
		return sql.Null, err
	}
	if lv.IsNull() {
		return sql.Null, nil
	}
	sawNull := false
	for _, item := range in.List.Items {
		iv, err := item.Eval(ctx, row)
		if err != nil {
			return sql.Null, err
		}
		if iv.IsNull() {
			sawNull = true
			continue
		}
		if lv.Equal(iv) {
			return sql.NewBool(true), nil
		}
	}
	if sawNull {
		return sql.Null, nil
	}
	return sql.NewBool(false), nil
}

func (in *In) Children() []Expression { return []Expression{in.Left, in.List} }

func (in *In) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 2 {
		return nil, ErrInvalidChildren
	}
	list, ok := children[1].(*Tuple)
	if !ok {
		return nil, ErrInvalidChildren
	}
	return NewIn(children[0], list), nil
}

func (in *In) Commutative() bool { return false }
func (in *In) Associative() bool { return false }
func (in *In) String() string    { return in.Left.String() + " IN " + in.List.String() }
