package transform

// TreeIdentity reports whether a transform produced a structurally new
// tree or returned the original unchanged.
type TreeIdentity bool

const (
	// SameTree means the transform did not alter anything at or below this node.
	SameTree TreeIdentity = false
	// NewTree means the transform replaced this node or one of its descendants.
	NewTree TreeIdentity = true
)

// NodeFunc is applied bottom-up by TransformUp: by the time it sees a node, that
// node's children have already been transformed and rebuilt.
type NodeFunc func(n Node) (Node, TreeIdentity, error)

// TransformUp applies f to every node in the tree rooted at n, bottom-up,
// rebuilding parents only when a descendant actually changed. It returns
// the (possibly unchanged) result along with whether anything changed.
func TransformUp(n Node, f NodeFunc) (Node, TreeIdentity, error) {
	children := n.Children()

	var newChildren []Node
	same := SameTree
	for i, c := range children {
		nc, cSame, err := TransformUp(c, f)
		if err != nil {
			return nil, SameTree, err
		}
		if cSame == NewTree {
			if newChildren == nil {
				newChildren = make([]Node, len(children))
				copy(newChildren, children)
			}
			newChildren[i] = nc
			same = NewTree
		}
	}

	cur := n
	if same == NewTree {
		rebuilt, err := n.WithChildren(newChildren...)
		if err != nil {
			return nil, SameTree, err
		}
		cur = rebuilt
	}

	result, resSame, err := f(cur)
	if err != nil {
		return nil, SameTree, err
	}
	if resSame == NewTree {
		same = NewTree
	}
	return result, same, nil
}
