package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ralite/ralite/sql"
)

func TestResolveBindsColumnToGetField(t *testing.T) {
	schema := sql.Schema{
		{Name: "id", Source: "users", Type: sql.TypeInt64},
		{Name: "name", Source: "users", Type: sql.TypeText},
	}
	resolved, err := Resolve(NewColumn("users", "name"), schema)
	require.NoError(t, err)

	gf, ok := resolved.(*GetField)
	require.True(t, ok)
	require.Equal(t, 1, gf.Index)
	require.Equal(t, sql.TypeText, gf.Type)
}

func TestResolveUnknownColumnErrors(t *testing.T) {
	schema := sql.Schema{{Name: "id", Source: "users", Type: sql.TypeInt64}}
	_, err := Resolve(NewColumn("users", "nope"), schema)
	require.Error(t, err)
}

func TestResolveRecursesIntoChildren(t *testing.T) {
	schema := sql.Schema{
		{Name: "id", Source: "users", Type: sql.TypeInt64},
	}
	pred := NewEquals(NewColumn("users", "id"), intLit(1))

	resolved, err := Resolve(pred, schema)
	require.NoError(t, err)

	eq, ok := resolved.(*Equals)
	require.True(t, ok)
	_, isGetField := eq.Left.(*GetField)
	require.True(t, isGetField)
}

func TestResolveReturnsSameNodeWhenNoChange(t *testing.T) {
	lit := intLit(1)
	resolved, err := Resolve(lit, nil)
	require.NoError(t, err)
	require.Same(t, lit, resolved)
}

func TestColumnsUsedCollectsUnresolvedColumns(t *testing.T) {
	pred := NewAnd(
		NewEquals(NewColumn("a", "x"), intLit(1)),
		NewEquals(NewColumn("b", "y"), intLit(2)),
	)
	cols := ColumnsUsed(pred)
	require.Len(t, cols, 2)
}

func TestGetFieldsUsedCollectsResolvedColumns(t *testing.T) {
	pred := NewAnd(
		NewEquals(NewGetField(0, sql.TypeInt64, "a"), intLit(1)),
		NewEquals(NewGetField(1, sql.TypeInt64, "b"), intLit(2)),
	)
	fields := GetFieldsUsed(pred)
	require.Len(t, fields, 2)
	require.Equal(t, 0, fields[0].Index)
	require.Equal(t, 1, fields[1].Index)
}

func TestIsTrueOnlyTrueBoolIsTrue(t *testing.T) {
	require.True(t, IsTrue(sql.NewBool(true)))
	require.False(t, IsTrue(sql.NewBool(false)))
	require.False(t, IsTrue(sql.Null))
	require.False(t, IsTrue(sql.NewInt64(1)))
}
