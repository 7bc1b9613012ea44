package plan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ralite/ralite/sql"
)

func TestCrossSchemaConcatenatesOperands(t *testing.T) {
	a := NewTable("a", &planStubTable{schema: sql.Schema{{Name: "x"}}})
	b := NewTable("b", &planStubTable{schema: sql.Schema{{Name: "y"}}})
	c := NewCross(a, b)

	require.Len(t, c.Schema(), 2)
	require.Equal(t, "x", c.Schema()[0].Name)
	require.Equal(t, "y", c.Schema()[1].Name)
}

func TestCrossCommutativeAssociative(t *testing.T) {
	c := NewCross(NewTable("a", nil), NewTable("b", nil))
	require.True(t, c.Commutative())
	require.True(t, c.Associative())
}

func TestCrossStringJoinsOperands(t *testing.T) {
	c := NewCross(NewTable("a", nil), NewTable("b", nil))
	require.Equal(t, "Cross(Table(a), Table(b))", c.String())
}

func TestCrossWithChildrenRequiresAtLeastTwo(t *testing.T) {
	c := NewCross(NewTable("a", nil), NewTable("b", nil))
	_, err := c.WithChildren(NewTable("a", nil))
	require.Error(t, err)

	rebuilt, err := c.WithChildren(NewTable("x", nil), NewTable("y", nil), NewTable("z", nil))
	require.NoError(t, err)
	rc, ok := rebuilt.(*Cross)
	require.True(t, ok)
	require.Equal(t, "Cross(Table(x), Table(y), Table(z))", rc.String())
}
