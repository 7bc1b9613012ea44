package plan

import (
	"fmt"

	"github.com/ralite/ralite/sql"
	"github.com/ralite/ralite/sql/transform"
)

// Limit is Limit(rel, N): fixed arity 2, the second operand a
// scalar row count rather than a relation.
type Limit struct {
	UnaryNode
	N int64
}

// NewLimit builds a row-count-limiting node.
func NewLimit(n int64, child Node) *Limit {
	return &Limit{UnaryNode: UnaryNode{Child: child}, N: n}
}

func (l *Limit) Schema() sql.Schema { return l.Child.Schema() }

func (l *Limit) WithChildren(children ...transform.Node) (transform.Node, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New(1, len(children))
	}
	return NewLimit(l.N, children[0].(Node)), nil
}

func (l *Limit) String() string { return fmt.Sprintf("Limit(%s, %d)", l.Child.String(), l.N) }

// Offset is Offset(rel, N): fixed arity 2.
type Offset struct {
	UnaryNode
	N int64
}

// NewOffset builds a row-skipping node.
func NewOffset(n int64, child Node) *Offset {
	return &Offset{UnaryNode: UnaryNode{Child: child}, N: n}
}

func (o *Offset) Schema() sql.Schema { return o.Child.Schema() }

func (o *Offset) WithChildren(children ...transform.Node) (transform.Node, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New(1, len(children))
	}
	return NewOffset(o.N, children[0].(Node)), nil
}

func (o *Offset) String() string { return fmt.Sprintf("Offset(%s, %d)", o.Child.String(), o.N) }
