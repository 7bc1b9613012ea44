package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ralite/ralite/sql"
)

type stubQuery string

func (s stubQuery) String() string { return string(s) }

func TestExistsTrueWhenSubqueryYieldsARow(t *testing.T) {
	e := NewExists(stubQuery("Table(t)"), func(ctx *sql.Context) (sql.RowIter, error) {
		return sql.NewSliceIter([]sql.Row{sql.NewRow(int64(1))}), nil
	})

	v, err := e.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	require.Equal(t, sql.NewBool(true), v)
}

func TestExistsFalseWhenSubqueryIsEmpty(t *testing.T) {
	e := NewExists(stubQuery("Table(t)"), func(ctx *sql.Context) (sql.RowIter, error) {
		return sql.NewSliceIter(nil), nil
	})

	v, err := e.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	require.Equal(t, sql.NewBool(false), v)
}

func TestExistsReplaysSubqueryPerEval(t *testing.T) {
	calls := 0
	e := NewExists(stubQuery("Table(t)"), func(ctx *sql.Context) (sql.RowIter, error) {
		calls++
		return sql.NewSliceIter([]sql.Row{sql.NewRow(int64(1))}), nil
	})

	ctx := sql.NewEmptyContext()
	_, err := e.Eval(ctx, nil)
	require.NoError(t, err)
	_, err = e.Eval(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestExistsStringAndShape(t *testing.T) {
	e := NewExists(stubQuery("Table(t)"), nil)
	require.Equal(t, "EXISTS (Table(t))", e.String())
	require.Empty(t, e.Children())
	require.False(t, e.Commutative())

	_, err := e.WithChildren(e)
	require.Error(t, err)
}
