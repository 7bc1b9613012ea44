package plan

import (
	"github.com/ralite/ralite/sql"
	"github.com/ralite/ralite/sql/expression"
	"github.com/ralite/ralite/sql/transform"
)

// JoinCond is the θ (theta) marker: a relation paired with the
// column expression used as its join key.
type JoinCond struct {
	Rel Node
	Key expression.Expression
}

// InnerJoin is the equi-join Join(θ(a,c), θ(b,d)): fixed binary, commutative,
// not associative.
type InnerJoin struct {
	Left, Right JoinCond
}

// NewInnerJoin builds an equi-join over the given sides and key expressions.
func NewInnerJoin(left Node, leftKey expression.Expression, right Node, rightKey expression.Expression) *InnerJoin {
	return &InnerJoin{Left: JoinCond{Rel: left, Key: leftKey}, Right: JoinCond{Rel: right, Key: rightKey}}
}

func (j *InnerJoin) Schema() sql.Schema {
	return j.Left.Rel.Schema().Append(j.Right.Rel.Schema())
}

func (j *InnerJoin) Children() []transform.Node {
	return []transform.Node{j.Left.Rel, j.Right.Rel}
}

func (j *InnerJoin) Commutative() bool { return true }
func (j *InnerJoin) Associative() bool { return false }

func (j *InnerJoin) WithChildren(children ...transform.Node) (transform.Node, error) {
	if len(children) != 2 {
		return nil, ErrInvalidChildCount.New(2, len(children))
	}
	return NewInnerJoin(children[0].(Node), j.Left.Key, children[1].(Node), j.Right.Key), nil
}

func (j *InnerJoin) String() string {
	return "Join(θ(" + j.Left.Rel.String() + ", " + j.Left.Key.String() + "), θ(" +
		j.Right.Rel.String() + ", " + j.Right.Key.String() + "))"
}

// LeftJoin is the left outer equi-join: fixed binary, not commutative.
type LeftJoin struct {
	Left, Right JoinCond
}

// NewLeftJoin builds a left outer equi-join.
func NewLeftJoin(left Node, leftKey expression.Expression, right Node, rightKey expression.Expression) *LeftJoin {
	return &LeftJoin{Left: JoinCond{Rel: left, Key: leftKey}, Right: JoinCond{Rel: right, Key: rightKey}}
}

func (j *LeftJoin) Schema() sql.Schema {
	return j.Left.Rel.Schema().Append(j.Right.Rel.Schema())
}

func (j *LeftJoin) Children() []transform.Node {
	return []transform.Node{j.Left.Rel, j.Right.Rel}
}

func (j *LeftJoin) Commutative() bool { return false }
func (j *LeftJoin) Associative() bool { return false }

func (j *LeftJoin) WithChildren(children ...transform.Node) (transform.Node, error) {
	if len(children) != 2 {
		return nil, ErrInvalidChildCount.New(2, len(children))
	}
	return NewLeftJoin(children[0].(Node), j.Left.Key, children[1].(Node), j.Right.Key), nil
}

func (j *LeftJoin) String() string {
	return "LeftJoin(θ(" + j.Left.Rel.String() + ", " + j.Left.Key.String() + "), θ(" +
		j.Right.Rel.String() + ", " + j.Right.Key.String() + "))"
}

// RightJoin is the right outer equi-join: fixed binary, not commutative.
type RightJoin struct {
	Left, Right JoinCond
}

// NewRightJoin builds a right outer equi-join.
func NewRightJoin(left Node, leftKey expression.Expression, right Node, rightKey expression.Expression) *RightJoin {
	return &RightJoin{Left: JoinCond{Rel: left, Key: leftKey}, Right: JoinCond{Rel: right, Key: rightKey}}
}

func (j *RightJoin) Schema() sql.Schema {
	return j.Left.Rel.Schema().Append(j.Right.Rel.Schema())
}

func (j *RightJoin) Children() []transform.Node {
	return []transform.Node{j.Left.Rel, j.Right.Rel}
}

func (j *RightJoin) Commutative() bool { return false }
func (j *RightJoin) Associative() bool { return false }

func (j *RightJoin) WithChildren(children ...transform.Node) (transform.Node, error) {
	if len(children) != 2 {
		return nil, ErrInvalidChildCount.New(2, len(children))
	}
	return NewRightJoin(children[0].(Node), j.Left.Key, children[1].(Node), j.Right.Key), nil
}

func (j *RightJoin) String() string {
	return "RightJoin(θ(" + j.Left.Rel.String() + ", " + j.Left.Key.String() + "), θ(" +
		j.Right.Rel.String() + ", " + j.Right.Key.String() + "))"
}
