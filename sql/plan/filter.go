package plan

import (
	"github.com/ralite/ralite/sql"
	"github.com/ralite/ralite/sql/expression"
	"github.com/ralite/ralite/sql/transform"
)

// Filter is the relational selection Select(rel, pred): fixed arity 2 (one relation, one
// predicate), not commutative, not associative.
type Filter struct {
	UnaryNode
	Predicate expression.Expression
}

// NewFilter builds a Select node.
func NewFilter(predicate expression.Expression, child Node) *Filter {
	return &Filter{UnaryNode: UnaryNode{Child: child}, Predicate: predicate}
}

func (f *Filter) Schema() sql.Schema { return f.Child.Schema() }

func (f *Filter) WithChildren(children ...transform.Node) (transform.Node, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New(1, len(children))
	}
	return NewFilter(f.Predicate, children[0].(Node)), nil
}

// WithPredicate returns a copy of f with a new predicate, used by the
// rewriter when a rule only changes the predicate subtree.
func (f *Filter) WithPredicate(pred expression.Expression) *Filter {
	return NewFilter(pred, f.Child)
}

func (f *Filter) String() string {
	pred := "<nil>"
	if f.Predicate != nil {
		pred = f.Predicate.String()
	}
	return "Filter(" + f.Child.String() + ", " + pred + ")"
}
