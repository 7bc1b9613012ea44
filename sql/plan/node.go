// Package plan implements the relational-algebra intermediate
// representation: the operator tree a query is translated into before the
// rewriter simplifies it and the lowerer turns it into an iterator
// pipeline.
package plan

import (
	"github.com/ralite/ralite/sql"
	"github.com/ralite/ralite/sql/transform"
)

// Node is a relational-algebra operator. It satisfies transform.Node so the
// generic Walk/Inspect/TransformUp helpers work over RA trees without sql/plan
// depending on sql/rewrite.
type Node interface {
	transform.Node
	// Schema returns the column registry this node's output rows conform to.
	Schema() sql.Schema
	String() string
}

// AlgebraicNode is implemented by operators that carry commutative/
// associative flags. The rewriter does not consult these flags; its rules
// handle operand order per operator type.
// Leaves and fixed-shape operators with no useful flag ("—" in the table)
// simply don't implement it.
type AlgebraicNode interface {
	Node
	Commutative() bool
	Associative() bool
}

// UnaryNode is embedded by every operator with exactly one relational child.
type UnaryNode struct {
	Child Node
}

func (n UnaryNode) Children() []transform.Node { return []transform.Node{n.Child} }

// NaryNode is embedded by variadic operators (Cross, Union, Intersection).
type NaryNode struct {
	Operands []Node
}

func (n NaryNode) Children() []transform.Node {
	out := make([]transform.Node, len(n.Operands))
	for i, o := range n.Operands {
		out[i] = o
	}
	return out
}

func nodesFrom(children []transform.Node) []Node {
	out := make([]Node, len(children))
	for i, c := range children {
		out[i] = c.(Node)
	}
	return out
}
