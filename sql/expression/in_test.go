package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ralite/ralite/sql"
)

func TestTupleEvalErrorsNotScalar(t *testing.T) {
	tup := NewTuple(intLit(1), intLit(2))
	_, err := tup.Eval(nil, nil)
	require.Error(t, err)
}

func TestTupleStringAndProps(t *testing.T) {
	tup := NewTuple(intLit(1), intLit(2))
	require.Equal(t, "(1, 2)", tup.String())
	require.True(t, tup.Commutative())
	require.False(t, tup.Associative())
}

func TestInEvalMatch(t *testing.T) {
	in := NewIn(intLit(1), NewTuple(intLit(1), intLit(2)))
	v, err := in.Eval(nil, nil)
	require.NoError(t, err)
	require.Equal(t, sql.NewBool(true), v)
}

func TestInEvalNoMatch(t *testing.T) {
	in := NewIn(intLit(3), NewTuple(intLit(1), intLit(2)))
	v, err := in.Eval(nil, nil)
	require.NoError(t, err)
	require.Equal(t, sql.NewBool(false), v)
}

func TestInEvalNullLeftIsNull(t *testing.T) {
	in := NewIn(nullLit(), NewTuple(intLit(1)))
	v, err := in.Eval(nil, nil)
	require.NoError(t, err)
	require.True(t, v.IsNull())
}

func TestInEvalNullInListWithoutMatchIsNull(t *testing.T) {
	in := NewIn(intLit(3), NewTuple(intLit(1), nullLit()))
	v, err := in.Eval(nil, nil)
	require.NoError(t, err)
	require.True(t, v.IsNull())
}

func TestInChildrenAndWithChildren(t *testing.T) {
	list := NewTuple(intLit(1), intLit(2))
	in := NewIn(intLit(1), list)
	require.Equal(t, []Expression{intLit(1), list}, in.Children())

	rebuilt, err := in.WithChildren(intLit(3), NewTuple(intLit(3)))
	require.NoError(t, err)
	require.Equal(t, "3 IN (3)", rebuilt.String())

	_, err = in.WithChildren(intLit(1), intLit(2))
	require.Error(t, err)
}

func TestInNotCommutativeOrAssociative(t *testing.T) {
	in := NewIn(intLit(1), NewTuple(intLit(1)))
	require.False(t, in.Commutative())
	require.False(t, in.Associative())
}
