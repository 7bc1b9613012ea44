package rowexec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ralite/ralite/memory"
	"github.com/ralite/ralite/sql"
	"github.com/ralite/ralite/sql/expression"
	"github.com/ralite/ralite/sql/plan"
)

func usersTable() *memory.Table {
	schema := sql.Schema{
		{Name: "id", Source: "users", Type: sql.TypeInt64},
		{Name: "name", Source: "users", Type: sql.TypeText},
	}
	return memory.NewTable("users", schema, []sql.Row{
		sql.NewRow(int64(1), "ed"),
		sql.NewRow(int64(2), "john"),
		sql.NewRow(int64(3), "jane"),
	})
}

func ordersTable() *memory.Table {
	schema := sql.Schema{
		{Name: "user_id", Source: "orders", Type: sql.TypeInt64},
		{Name: "total", Source: "orders", Type: sql.TypeInt64},
	}
	return memory.NewTable("orders", schema, []sql.Row{
		sql.NewRow(int64(1), int64(10)),
		sql.NewRow(int64(1), int64(20)),
		sql.NewRow(int64(2), int64(30)),
	})
}

func runLower(t *testing.T, root plan.Node) []sql.Row {
	t.Helper()
	ctx := sql.NewEmptyContext()
	iter, err := Lower(ctx, root)
	require.NoError(t, err)
	rows, err := sql.RowIterToRows(ctx, iter)
	require.NoError(t, err)
	return rows
}

func TestLowerTableScan(t *testing.T) {
	root := plan.NewTable("users", usersTable())
	rows := runLower(t, root)
	require.Len(t, rows, 3)
}

func TestLowerEmptyUniverseOneRowSets(t *testing.T) {
	require.Empty(t, runLower(t, plan.NewEmptySet()))
	require.Empty(t, runLower(t, plan.NewUniverseSet()))
	require.Equal(t, []sql.Row{{}}, runLower(t, plan.NewOneRowSet()))
}

func TestLowerFilter(t *testing.T) {
	table := plan.NewTable("users", usersTable())
	pred := expression.NewGreaterThan(
		expression.NewGetField(0, sql.TypeInt64, "id"),
		expression.NewLiteral(sql.NewInt64(1)),
	)
	root := plan.NewFilter(pred, table)

	rows := runLower(t, root)
	require.Len(t, rows, 2)
	for _, row := range rows {
		require.True(t, row[0].Int64() > 1)
	}
}

func TestLowerFilterUnknownColumnErrors(t *testing.T) {
	table := plan.NewTable("users", usersTable())
	pred := expression.NewGreaterThan(
		expression.NewGetField(5, sql.TypeInt64, "bad"),
		expression.NewLiteral(sql.NewInt64(1)),
	)
	root := plan.NewFilter(pred, table)

	_, err := Lower(sql.NewEmptyContext(), root)
	require.Error(t, err)
}

func TestLowerProject(t *testing.T) {
	table := plan.NewTable("users", usersTable())
	root := plan.NewProject([]expression.Expression{
		expression.NewGetField(1, sql.TypeText, "name"),
	}, table)

	rows := runLower(t, root)
	require.Len(t, rows, 3)
	require.Equal(t, sql.NewText("ed"), rows[0][0])
}

func TestLowerCrossProductRowCount(t *testing.T) {
	left := plan.NewTable("users", usersTable())
	right := plan.NewTable("orders", ordersTable())
	root := plan.NewCross(left, right)

	rows := runLower(t, root)
	require.Len(t, rows, 9)
	require.Len(t, rows[0], 4)
}

func TestLowerInnerJoin(t *testing.T) {
	left := plan.NewTable("users", usersTable())
	right := plan.NewTable("orders", ordersTable())
	root := plan.NewInnerJoin(
		left, expression.NewGetField(0, sql.TypeInt64, "id"),
		right, expression.NewGetField(0, sql.TypeInt64, "user_id"),
	)

	rows := runLower(t, root)
	require.Len(t, rows, 3)
}

func TestLowerLeftJoinPadsUnmatched(t *testing.T) {
	left := plan.NewTable("users", usersTable())
	right := plan.NewTable("orders", ordersTable())
	root := plan.NewLeftJoin(
		left, expression.NewGetField(0, sql.TypeInt64, "id"),
		right, expression.NewGetField(0, sql.TypeInt64, "user_id"),
	)

	rows := runLower(t, root)
	// ed has 2 orders, john has 1, jane has none -> 4 rows total.
	require.Len(t, rows, 4)
	var janeRow sql.Row
	for _, row := range rows {
		if row[1].Text() == "jane" {
			janeRow = row
		}
	}
	require.NotNil(t, janeRow)
	require.True(t, janeRow[2].IsNull())
}

func TestLowerRightJoinPadsUnmatched(t *testing.T) {
	left := plan.NewTable("users", usersTable())
	right := plan.NewTable("orders", ordersTable())
	root := plan.NewRightJoin(
		left, expression.NewGetField(0, sql.TypeInt64, "id"),
		right, expression.NewGetField(0, sql.TypeInt64, "user_id"),
	)

	rows := runLower(t, root)
	require.Len(t, rows, 3)
}

func TestLowerUnionDedupesAcrossOperands(t *testing.T) {
	a := plan.NewTable("a", memory.NewTable("a", sql.Schema{{Name: "id", Type: sql.TypeInt64}}, []sql.Row{
		sql.NewRow(int64(1)), sql.NewRow(int64(2)),
	}))
	b := plan.NewTable("b", memory.NewTable("b", sql.Schema{{Name: "id", Type: sql.TypeInt64}}, []sql.Row{
		sql.NewRow(int64(2)), sql.NewRow(int64(3)),
	}))
	root := plan.NewUnion(a, b)

	rows := runLower(t, root)
	require.Len(t, rows, 3)
}

func TestLowerIntersectionKeepsCommonRows(t *testing.T) {
	a := plan.NewTable("a", memory.NewTable("a", sql.Schema{{Name: "id", Type: sql.TypeInt64}}, []sql.Row{
		sql.NewRow(int64(1)), sql.NewRow(int64(2)),
	}))
	b := plan.NewTable("b", memory.NewTable("b", sql.Schema{{Name: "id", Type: sql.TypeInt64}}, []sql.Row{
		sql.NewRow(int64(2)), sql.NewRow(int64(3)),
	}))
	root := plan.NewIntersection(a, b)

	rows := runLower(t, root)
	require.Len(t, rows, 1)
	require.Equal(t, sql.NewInt64(2), rows[0][0])
}

func TestLowerDistinctDropsDuplicates(t *testing.T) {
	tbl := plan.NewTable("a", memory.NewTable("a", sql.Schema{{Name: "id", Type: sql.TypeInt64}}, []sql.Row{
		sql.NewRow(int64(1)), sql.NewRow(int64(1)), sql.NewRow(int64(2)),
	}))
	root := plan.NewDistinct(tbl)

	rows := runLower(t, root)
	require.Len(t, rows, 2)
}

func TestLowerGroupByCollapsesToDistinctKeys(t *testing.T) {
	tbl := plan.NewTable("orders", ordersTable())
	root := plan.NewGroupBy([]expression.Expression{
		expression.NewGetField(0, sql.TypeInt64, "user_id"),
	}, tbl)

	rows := runLower(t, root)
	require.Len(t, rows, 2)
}

func TestLowerLimitAndOffset(t *testing.T) {
	tbl := plan.NewTable("users", usersTable())
	limited := runLower(t, plan.NewLimit(2, tbl))
	require.Len(t, limited, 2)

	tbl2 := plan.NewTable("users", usersTable())
	skipped := runLower(t, plan.NewOffset(2, tbl2))
	require.Len(t, skipped, 1)
}

func TestLowerUnknownTableErrors(t *testing.T) {
	root := plan.NewTable("missing", nil)
	_, err := Lower(sql.NewEmptyContext(), root)
	require.Error(t, err)
}

func TestLowerSharedTableNodeTeesIndependentScans(t *testing.T) {
	users := plan.NewTable("users", usersTable())
	root := plan.NewUnion(users, users)

	rows := runLower(t, root)
	// union of a table with itself merges down to the 3 distinct rows.
	require.Len(t, rows, 3)
}
