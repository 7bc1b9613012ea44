package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ralite/ralite/sql"
)

func intLit(i int64) Expression { return NewLiteral(sql.NewInt64(i)) }

func TestEqualsEvalAndNullPropagation(t *testing.T) {
	v, err := NewEquals(intLit(1), intLit(1)).Eval(nil, nil)
	require.NoError(t, err)
	require.Equal(t, sql.NewBool(true), v)

	v, err = NewEquals(intLit(1), intLit(2)).Eval(nil, nil)
	require.NoError(t, err)
	require.Equal(t, sql.NewBool(false), v)

	v, err = NewEquals(intLit(1), nullLit()).Eval(nil, nil)
	require.NoError(t, err)
	require.True(t, v.IsNull())
}

func TestEqualsCommutativeNotAssociative(t *testing.T) {
	e := NewEquals(intLit(1), intLit(2))
	require.True(t, e.Commutative())
	require.False(t, e.Associative())
	require.Equal(t, "1 = 2", e.String())
}

func TestEqualsWithChildrenRequiresTwo(t *testing.T) {
	e := NewEquals(intLit(1), intLit(2))
	_, err := e.WithChildren(intLit(1))
	require.Error(t, err)

	rebuilt, err := e.WithChildren(intLit(3), intLit(4))
	require.NoError(t, err)
	require.Equal(t, "3 = 4", rebuilt.String())
}

func TestNotEqualsEval(t *testing.T) {
	v, err := NewNotEquals(intLit(1), intLit(2)).Eval(nil, nil)
	require.NoError(t, err)
	require.Equal(t, sql.NewBool(true), v)
}

func TestLessThanEval(t *testing.T) {
	v, err := NewLessThan(intLit(1), intLit(2)).Eval(nil, nil)
	require.NoError(t, err)
	require.Equal(t, sql.NewBool(true), v)

	v, err = NewLessThan(intLit(2), intLit(1)).Eval(nil, nil)
	require.NoError(t, err)
	require.Equal(t, sql.NewBool(false), v)
}

func TestLessThanNullComparisonIsUnknown(t *testing.T) {
	v, err := NewLessThan(intLit(1), nullLit()).Eval(nil, nil)
	require.NoError(t, err)
	require.True(t, v.IsNull())
}

func TestGreaterThanEval(t *testing.T) {
	v, err := NewGreaterThan(intLit(2), intLit(1)).Eval(nil, nil)
	require.NoError(t, err)
	require.Equal(t, sql.NewBool(true), v)
}

func TestLessThanOrEqualEval(t *testing.T) {
	v, err := NewLessThanOrEqual(intLit(1), intLit(1)).Eval(nil, nil)
	require.NoError(t, err)
	require.Equal(t, sql.NewBool(true), v)
}

func TestGreaterThanOrEqualEval(t *testing.T) {
	v, err := NewGreaterThanOrEqual(intLit(1), intLit(2)).Eval(nil, nil)
	require.NoError(t, err)
	require.Equal(t, sql.NewBool(false), v)
}

func TestComparisonsNotCommutative(t *testing.T) {
	require.False(t, NewLessThan(intLit(1), intLit(2)).Commutative())
	require.False(t, NewGreaterThan(intLit(1), intLit(2)).Commutative())
	require.False(t, NewLessThanOrEqual(intLit(1), intLit(2)).Commutative())
	require.False(t, NewGreaterThanOrEqual(intLit(1), intLit(2)).Commutative())
}

func TestComparisonStrings(t *testing.T) {
	require.Equal(t, "1 != 2", NewNotEquals(intLit(1), intLit(2)).String())
	require.Equal(t, "1 < 2", NewLessThan(intLit(1), intLit(2)).String())
	require.Equal(t, "2 > 1", NewGreaterThan(intLit(2), intLit(1)).String())
	require.Equal(t, "1 <= 2", NewLessThanOrEqual(intLit(1), intLit(2)).String())
	require.Equal(t, "2 >= 1", NewGreaterThanOrEqual(intLit(2), intLit(1)).String())
}
