package plan

import (
	"strings"

	"github.com/ralite/ralite/sql"
	"github.com/ralite/ralite/sql/expression"
	"github.com/ralite/ralite/sql/transform"
)

// Project is the relational projection Project(rel, col…): variadic arity
// >= 1, not commutative, not associative. The projection list is carried
// separately from the relational Children() the way Filter carries its
// predicate, since the two operand kinds (Node vs expression.Expression)
// don't mix in a single child list.
type Project struct {
	UnaryNode
	Projections []expression.Expression
}

// NewProject builds a Project node.
func NewProject(projections []expression.Expression, child Node) *Project {
	return &Project{UnaryNode: UnaryNode{Child: child}, Projections: projections}
}

func (p *Project) Schema() sql.Schema {
	schema := make(sql.Schema, len(p.Projections))
	childSchema := p.Child.Schema()
	for i, proj := range p.Projections {
		name := proj.String()
		typ := sql.TypeText
		source := ""
		target := proj
		if alias, ok := target.(*expression.Alias); ok {
			name = alias.Name
			target = alias.Expr
		}
		if gf, ok := target.(*expression.GetField); ok {
			if _, aliased := proj.(*expression.Alias); !aliased {
				name = gf.Name
			}
			typ = gf.Type
			if gf.Index >= 0 && gf.Index < len(childSchema) {
				source = childSchema[gf.Index].Source
			}
		}
		schema[i] = &sql.Column{Name: name, Source: source, Type: typ}
	}
	return schema
}

func (p *Project) WithChildren(children ...transform.Node) (transform.Node, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New(1, len(children))
	}
	return NewProject(p.Projections, children[0].(Node)), nil
}

func (p *Project) String() string {
	parts := make([]string, len(p.Projections))
	for i, proj := range p.Projections {
		parts[i] = proj.String()
	}
	return "Project(" + p.Child.String() + ", " + strings.Join(parts, ", ") + ")"
}
