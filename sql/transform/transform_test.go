package transform

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeNode is a minimal Node for exercising Walk/Inspect/TransformUp in isolation
// from sql/plan and sql/expression.
type fakeNode struct {
	label    string
	children []Node
}

func leaf(label string) *fakeNode { return &fakeNode{label: label} }

func branch(label string, children ...Node) *fakeNode {
	return &fakeNode{label: label, children: children}
}

func (f *fakeNode) Children() []Node { return f.children }

func (f *fakeNode) WithChildren(children ...Node) (Node, error) {
	if len(children) != len(f.children) {
		return nil, fmt.Errorf("transform: expected %d children, got %d", len(f.children), len(children))
	}
	return &fakeNode{label: f.label, children: children}, nil
}

func TestWalkVisitsPreOrderAndSignalsReturn(t *testing.T) {
	tree := branch("root", leaf("a"), leaf("b"))

	var visited []string
	Inspect(tree, func(n Node) bool {
		if n == nil {
			visited = append(visited, "<return>")
			return false
		}
		visited = append(visited, n.(*fakeNode).label)
		return true
	})

	require.Equal(t, []string{"root", "a", "<return>", "b", "<return>", "<return>"}, visited)
}

func TestInspectStopsDescentWhenFalse(t *testing.T) {
	tree := branch("root", branch("skip", leaf("hidden")), leaf("b"))

	var visited []string
	Inspect(tree, func(n Node) bool {
		if n == nil {
			return false
		}
		label := n.(*fakeNode).label
		visited = append(visited, label)
		return label != "skip"
	})

	require.NotContains(t, visited, "hidden")
	require.Contains(t, visited, "skip")
	require.Contains(t, visited, "b")
}

func TestNodeLeavesUnchangedTreeUntouched(t *testing.T) {
	tree := branch("root", leaf("a"), leaf("b"))

	out, same, err := TransformUp(tree, func(n Node) (Node, TreeIdentity, error) {
		return n, SameTree, nil
	})

	require.NoError(t, err)
	require.Equal(t, SameTree, same)
	require.Same(t, tree, out)
}

func TestNodeRebuildsOnlyAncestorsOfChangedNode(t *testing.T) {
	target := leaf("target")
	untouched := leaf("untouched")
	tree := branch("root", target, untouched)

	out, same, err := TransformUp(tree, func(n Node) (Node, TreeIdentity, error) {
		fn, ok := n.(*fakeNode)
		if ok && fn.label == "target" {
			return leaf("replaced"), NewTree, nil
		}
		return n, SameTree, nil
	})

	require.NoError(t, err)
	require.Equal(t, NewTree, same)

	root, ok := out.(*fakeNode)
	require.True(t, ok)
	require.Equal(t, "root", root.label)
	require.Equal(t, "replaced", root.children[0].(*fakeNode).label)
	require.Same(t, untouched, root.children[1])
}

func TestNodeAppliesFunctionAtEveryLevelBottomUp(t *testing.T) {
	tree := branch("root", branch("mid", leaf("leaf")))

	var order []string
	_, _, err := TransformUp(tree, func(n Node) (Node, TreeIdentity, error) {
		order = append(order, n.(*fakeNode).label)
		return n, SameTree, nil
	})

	require.NoError(t, err)
	require.Equal(t, []string{"leaf", "mid", "root"}, order)
}

func TestNodePropagatesChildError(t *testing.T) {
	boom := fmt.Errorf("boom")
	tree := branch("root", leaf("a"))

	_, _, err := TransformUp(tree, func(n Node) (Node, TreeIdentity, error) {
		if n.(*fakeNode).label == "a" {
			return nil, SameTree, boom
		}
		return n, SameTree, nil
	})

	require.ErrorIs(t, err, boom)
}
