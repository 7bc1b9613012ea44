// Package transform provides generic tree-walking helpers shared by the
// rewriter and the lowerer. It operates on the minimal Node contract so it
// has no dependency on sql/plan or sql/expression -- both satisfy Node
// structurally.
package transform

// Node is the minimal tree shape Walk/Inspect/TransformUp need: something with
// children that can be rebuilt from a replacement list.
type Node interface {
	Children() []Node
	WithChildren(children ...Node) (Node, error)
}

// Visitor is called once per node in pre-order, and once more with a nil
// node after each node's children (including a childless node) have all
// been visited -- this lets a stateful visitor know when it has returned
// up to a parent. Returning nil from Visit stops descent into that node's
// children.
type Visitor interface {
	Visit(node Node) Visitor
}

// Walk traverses the tree rooted at node, calling v.Visit at each step.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	if node != nil {
		for _, child := range node.Children() {
			Walk(v, child)
		}
	}
	v.Visit(nil)
}

type inspector func(Node) bool

func (i inspector) Visit(node Node) Visitor {
	if i(node) {
		return i
	}
	return nil
}

// Inspect traverses the tree rooted at node, calling f at each step. f
// returning false stops descent into that node's children.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}
