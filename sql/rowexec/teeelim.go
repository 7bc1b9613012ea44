package rowexec

import (
	"github.com/ralite/ralite/sql/plan"
	"github.com/ralite/ralite/sql/transform"
)

// countRefs walks the RA tree and counts how many times each node is
// reached, by identity. In the trees planbuilder/rewrite produce this is
// always 1 (self-joins register the same provider under two distinct
// plan.Table nodes, not one shared node -- see plan.Table's doc comment),
// but the lowerer still consults this count rather than assuming it,
// since nothing in plan.Node's shape actually forbids a future caller from
// building a tree with genuine structural sharing.
//
// This is Tee elimination turned around: instead of building
// every scan behind a Tee and then deciding which Tees to collapse, the
// lowerer decides up front whether a Tee is needed at all, using the same
// "how many downstream consumers does this node have" count the post-pass
// would have computed.
func countRefs(root plan.Node) map[plan.Node]int {
	refs := make(map[plan.Node]int)
	transform.Inspect(root, func(n transform.Node) bool {
		if n == nil {
			return true
		}
		node, ok := n.(plan.Node)
		if !ok {
			return true
		}
		refs[node]++
		return true
	})
	return refs
}
