// Package rewrite implements the fixpoint term-rewriting engine: the
// canonical 28-rule library from the RA rewriter design, applied to
// predicate expressions and relational-algebra nodes alike until neither
// changes any further.
package rewrite

import "github.com/ralite/ralite/sql/expression"

// exprFunc is applied bottom-up by transformExpr, mirroring
// sql/transform.NodeFunc but typed for expression.Expression -- the two
// trees (plan.Node and expression.Expression) don't share a Go type, so
// the generic transform.Node walker can't be reused directly here.
type exprFunc func(expression.Expression) (expression.Expression, bool, error)

func transformExpr(e expression.Expression, f exprFunc) (expression.Expression, bool, error) {
	children := e.Children()

	var newChildren []expression.Expression
	changed := false
	for i, c := range children {
		nc, same, err := transformExpr(c, f)
		if err != nil {
			return nil, false, err
		}
		if same {
			if newChildren == nil {
				newChildren = make([]expression.Expression, len(children))
				copy(newChildren, children)
			}
			newChildren[i] = nc
			changed = true
		}
	}

	cur := e
	if changed {
		rebuilt, err := e.WithChildren(newChildren...)
		if err != nil {
			return nil, false, err
		}
		cur = rebuilt
	}

	result, same, err := f(cur)
	if err != nil {
		return nil, false, err
	}
	if same {
		changed = true
	}
	return result, changed, nil
}
