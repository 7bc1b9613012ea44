package plan

import (
	"strings"

	"github.com/ralite/ralite/sql"
	"github.com/ralite/ralite/sql/transform"
)

// Union is the set union Union(rel, rel, …): variadic, arity >= 2,
// commutative, associative.
type Union struct {
	NaryNode
}

// NewUnion builds a union over two or more relations.
func NewUnion(operands ...Node) *Union { return &Union{NaryNode{Operands: operands}} }

func (u *Union) Schema() sql.Schema {
	if len(u.Operands) == 0 {
		return sql.Schema{}
	}
	return u.Operands[0].Schema()
}

func (u *Union) Commutative() bool { return true }
func (u *Union) Associative() bool { return true }

func (u *Union) WithChildren(children ...transform.Node) (transform.Node, error) {
	if len(children) < 2 {
		return nil, ErrMinChildCount.New(2, len(children))
	}
	return NewUnion(nodesFrom(children)...), nil
}

func (u *Union) String() string {
	parts := make([]string, len(u.Operands))
	for i, o := range u.Operands {
		parts[i] = o.String()
	}
	return "Union(" + strings.Join(parts, ", ") + ")"
}

// Intersection is the set intersection Intersection(rel, rel, …): variadic, arity >=
// 2, commutative, associative.
type Intersection struct {
	NaryNode
}

// NewIntersection builds an intersection over two or more relations.
func NewIntersection(operands ...Node) *Intersection {
	return &Intersection{NaryNode{Operands: operands}}
}

func (i *Intersection) Schema() sql.Schema {
	if len(i.Operands) == 0 {
		return sql.Schema{}
	}
	return i.Operands[0].Schema()
}

func (i *Intersection) Commutative() bool { return true }
func (i *Intersection) Associative() bool { return true }

func (i *Intersection) WithChildren(children ...transform.Node) (transform.Node, error) {
	if len(children) < 2 {
		return nil, ErrMinChildCount.New(2, len(children))
	}
	return NewIntersection(nodesFrom(children)...), nil
}

func (i *Intersection) String() string {
	parts := make([]string, len(i.Operands))
	for idx, o := range i.Operands {
		parts[idx] = o.String()
	}
	return "Intersection(" + strings.Join(parts, ", ") + ")"
}

// Distinct is duplicate elimination, Distinct(rel): fixed unary.
type Distinct struct {
	UnaryNode
}

// NewDistinct builds a duplicate-elimination node.
func NewDistinct(child Node) *Distinct { return &Distinct{UnaryNode{Child: child}} }

func (d *Distinct) Schema() sql.Schema { return d.Child.Schema() }

func (d *Distinct) WithChildren(children ...transform.Node) (transform.Node, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New(1, len(children))
	}
	return NewDistinct(children[0].(Node)), nil
}

func (d *Distinct) String() string { return "Distinct(" + d.Child.String() + ")" }
