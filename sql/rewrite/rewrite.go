package rewrite

import (
	"github.com/ralite/ralite/sql/plan"
	"github.com/ralite/ralite/sql/transform"
)

// Rewrite applies the rule library to root until fixpoint: walk the
// tree, attempt each rule on every node, and when any rule fires restart
// the pass; terminate when no rule fires.
// optimizationLevel 0 disables rewriting entirely and returns root as-is.
func Rewrite(root plan.Node, optimizationLevel int) (plan.Node, error) {
	if optimizationLevel == 0 {
		return root, nil
	}

	cur := root
	for i := 0; i < maxFixpointIterations; i++ {
		next, same, err := transform.TransformUp(cur, relationStep)
		if err != nil {
			return nil, err
		}
		if same == transform.SameTree {
			return cur, nil
		}
		cur = next.(plan.Node)
	}
	return cur, nil
}

func relationStep(n transform.Node) (transform.Node, transform.TreeIdentity, error) {
	pn := n.(plan.Node)
	result, changed, err := stepRelation(pn)
	if err != nil {
		return nil, transform.SameTree, err
	}
	if !changed {
		return n, transform.SameTree, nil
	}
	return result, transform.NewTree, nil
}
