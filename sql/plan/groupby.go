package plan

import (
	"strings"

	"github.com/ralite/ralite/sql"
	"github.com/ralite/ralite/sql/expression"
	"github.com/ralite/ralite/sql/transform"
)

// GroupBy is GroupBy(rel, col…): variadic, arity >= 2 (one
// relation plus at least one grouping column).
type GroupBy struct {
	UnaryNode
	GroupByExprs []expression.Expression
}

// NewGroupBy builds a group-by node over the given grouping columns.
func NewGroupBy(groupBy []expression.Expression, child Node) *GroupBy {
	return &GroupBy{UnaryNode: UnaryNode{Child: child}, GroupByExprs: groupBy}
}

func (g *GroupBy) Schema() sql.Schema {
	childSchema := g.Child.Schema()
	out := make(sql.Schema, len(g.GroupByExprs))
	for i, e := range g.GroupByExprs {
		name := e.String()
		typ := sql.TypeText
		source := ""
		if gf, ok := e.(*expression.GetField); ok {
			name = gf.Name
			typ = gf.Type
			if gf.Index >= 0 && gf.Index < len(childSchema) {
				source = childSchema[gf.Index].Source
			}
		}
		out[i] = &sql.Column{Name: name, Source: source, Type: typ}
	}
	return out
}

func (g *GroupBy) WithChildren(children ...transform.Node) (transform.Node, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New(1, len(children))
	}
	return NewGroupBy(g.GroupByExprs, children[0].(Node)), nil
}

func (g *GroupBy) String() string {
	parts := make([]string, len(g.GroupByExprs))
	for i, e := range g.GroupByExprs {
		parts[i] = e.String()
	}
	return "GroupBy(" + g.Child.String() + ", " + strings.Join(parts, ", ") + ")"
}
