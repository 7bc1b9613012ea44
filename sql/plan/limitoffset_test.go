package plan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ralite/ralite/sql"
)

func TestLimitSchemaMatchesChildAndString(t *testing.T) {
	child := NewTable("t", &planStubTable{schema: sql.Schema{{Name: "id"}}})
	l := NewLimit(10, child)

	require.Equal(t, child.Schema(), l.Schema())
	require.Equal(t, "Limit(Table(t), 10)", l.String())
}

func TestLimitWithChildrenPreservesN(t *testing.T) {
	l := NewLimit(5, NewTable("t", nil))
	other := NewTable("u", nil)

	rebuilt, err := l.WithChildren(other)
	require.NoError(t, err)
	rl, ok := rebuilt.(*Limit)
	require.True(t, ok)
	require.Equal(t, int64(5), rl.N)
	require.Same(t, other, rl.Child)

	_, err = l.WithChildren(other, other)
	require.Error(t, err)
}

func TestOffsetSchemaMatchesChildAndString(t *testing.T) {
	child := NewTable("t", &planStubTable{schema: sql.Schema{{Name: "id"}}})
	o := NewOffset(3, child)

	require.Equal(t, child.Schema(), o.Schema())
	require.Equal(t, "Offset(Table(t), 3)", o.String())
}

func TestOffsetWithChildrenPreservesN(t *testing.T) {
	o := NewOffset(2, NewTable("t", nil))
	other := NewTable("u", nil)

	rebuilt, err := o.WithChildren(other)
	require.NoError(t, err)
	ro, ok := rebuilt.(*Offset)
	require.True(t, ok)
	require.Equal(t, int64(2), ro.N)

	_, err = o.WithChildren(other, other)
	require.Error(t, err)
}
