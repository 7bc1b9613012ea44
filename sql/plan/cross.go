package plan

import (
	"strings"

	"github.com/ralite/ralite/sql"
	"github.com/ralite/ralite/sql/transform"
)

// Cross is the cross product Cross(rel, rel, …): variadic, arity >= 2,
// commutative, associative.
type Cross struct {
	NaryNode
}

// NewCross builds a cross-product over two or more relations.
func NewCross(operands ...Node) *Cross {
	return &Cross{NaryNode{Operands: operands}}
}

func (c *Cross) Schema() sql.Schema {
	var out sql.Schema
	for _, o := range c.Operands {
		out = out.Append(o.Schema())
	}
	return out
}

func (c *Cross) Commutative() bool { return true }
func (c *Cross) Associative() bool { return true }

func (c *Cross) WithChildren(children ...transform.Node) (transform.Node, error) {
	if len(children) < 2 {
		return nil, ErrMinChildCount.New(2, len(children))
	}
	return NewCross(nodesFrom(children)...), nil
}

func (c *Cross) String() string {
	parts := make([]string, len(c.Operands))
	for i, o := range c.Operands {
		parts[i] = o.String()
	}
	return "Cross(" + strings.Join(parts, ", ") + ")"
}
