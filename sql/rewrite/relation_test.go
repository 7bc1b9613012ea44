package rewrite

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ralite/ralite/sql"
	"github.com/ralite/ralite/sql/expression"
	"github.com/ralite/ralite/sql/plan"
)

func col(idx int, name string) *expression.GetField {
	return expression.NewGetField(idx, sql.TypeInt64, name)
}

func TestStepFilterTruePredicateDropsFilter(t *testing.T) {
	child := plan.NewTable("t", nil)
	f := plan.NewFilter(expression.BoolTrue(), child)

	out, changed, err := stepFilter(f)
	require.NoError(t, err)
	require.True(t, changed)
	require.Same(t, child, out)
}

func TestStepFilterEmptyAndDropsFilter(t *testing.T) {
	child := plan.NewTable("t", nil)
	f := plan.NewFilter(expression.NewAnd(), child)

	out, changed, err := stepFilter(f)
	require.NoError(t, err)
	require.True(t, changed)
	require.Same(t, child, out)
}

func TestStepFilterFalsePredicateBecomesEmptySet(t *testing.T) {
	child := plan.NewTable("t", nil)
	f := plan.NewFilter(expression.BoolFalse(), child)

	out, changed, err := stepFilter(f)
	require.NoError(t, err)
	require.True(t, changed)
	require.IsType(t, &plan.EmptySet{}, out)
}

func TestStepFilterNoOpWhenPredicateIsSettled(t *testing.T) {
	child := plan.NewTable("t", nil)
	pred := expression.NewEquals(col(0, "a"), expression.NewLiteral(sql.NewInt64(1)))
	f := plan.NewFilter(pred, child)

	out, changed, err := stepFilter(f)
	require.NoError(t, err)
	require.False(t, changed)
	require.Same(t, f, out)
}

func TestStepFilterRewritesPredicateInPlace(t *testing.T) {
	child := plan.NewTable("t", nil)
	pred := expression.NewGreaterThan(col(0, "a"), expression.NewLiteral(sql.NewInt64(1)))
	f := plan.NewFilter(pred, child)

	out, changed, err := stepFilter(f)
	require.NoError(t, err)
	require.True(t, changed)
	nf, ok := out.(*plan.Filter)
	require.True(t, ok)
	require.Equal(t, "1 < a", nf.Predicate.String())
}

func TestStepCrossFlattensNested(t *testing.T) {
	a := plan.NewTable("a", nil)
	b := plan.NewTable("b", nil)
	c := plan.NewTable("c", nil)
	inner := plan.NewCross(a, b)
	outer := plan.NewCross(inner, c)

	out, changed, err := stepCross(outer)
	require.NoError(t, err)
	require.True(t, changed)
	flat, ok := out.(*plan.Cross)
	require.True(t, ok)
	require.Len(t, flat.Operands, 3)
}

func TestStepCrossDropsUniverseSet(t *testing.T) {
	a := plan.NewTable("a", nil)
	cross := plan.NewCross(plan.NewUniverseSet(), a)

	out, changed, err := stepCross(cross)
	require.NoError(t, err)
	require.True(t, changed)
	require.Same(t, a, out)
}

func TestStepCrossAllUniverseCollapsesToUniverse(t *testing.T) {
	cross := plan.NewCross(plan.NewUniverseSet(), plan.NewUniverseSet())

	out, changed, err := stepCross(cross)
	require.NoError(t, err)
	require.True(t, changed)
	require.IsType(t, &plan.UniverseSet{}, out)
}

func TestStepCrossNoOpWhenAlreadySettled(t *testing.T) {
	cross := plan.NewCross(plan.NewTable("a", nil), plan.NewTable("b", nil))

	out, changed, err := stepCross(cross)
	require.NoError(t, err)
	require.False(t, changed)
	require.Same(t, cross, out)
}

func TestStepUnionDropsEmptySet(t *testing.T) {
	a := plan.NewTable("a", nil)
	u := plan.NewUnion(plan.NewEmptySet(), a)

	out, changed, err := stepUnion(u)
	require.NoError(t, err)
	require.True(t, changed)
	require.Same(t, a, out)
}

func TestStepUnionDedupesIdenticalOperands(t *testing.T) {
	a := plan.NewTable("a", nil)
	a2 := plan.NewTable("a", nil)
	u := plan.NewUnion(a, a2)

	out, changed, err := stepUnion(u)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, "Table(a)", out.String())
}

func TestStepUnionMergesFiltersOverSameBase(t *testing.T) {
	base := plan.NewTable("a", nil)
	pred1 := expression.NewEquals(col(0, "x"), expression.NewLiteral(sql.NewInt64(1)))
	pred2 := expression.NewEquals(col(0, "x"), expression.NewLiteral(sql.NewInt64(2)))
	u := plan.NewUnion(plan.NewFilter(pred1, base), plan.NewFilter(pred2, base))

	out, changed, err := stepUnion(u)
	require.NoError(t, err)
	require.True(t, changed)
	f, ok := out.(*plan.Filter)
	require.True(t, ok)
	require.IsType(t, &expression.Or{}, f.Predicate)
}

func TestStepUnionDropsSubsetFilterOfPresentBase(t *testing.T) {
	base := plan.NewTable("a", nil)
	pred := expression.NewEquals(col(0, "x"), expression.NewLiteral(sql.NewInt64(1)))
	u := plan.NewUnion(base, plan.NewFilter(pred, base))

	out, changed, err := stepUnion(u)
	require.NoError(t, err)
	require.True(t, changed)
	require.Same(t, base, out)
}

func TestStepIntersectionEmptySetDominates(t *testing.T) {
	a := plan.NewTable("a", nil)
	in := plan.NewIntersection(plan.NewEmptySet(), a)

	out, changed, err := stepIntersection(in)
	require.NoError(t, err)
	require.True(t, changed)
	require.IsType(t, &plan.EmptySet{}, out)
}

func TestStepIntersectionUniverseIsIdentity(t *testing.T) {
	a := plan.NewTable("a", nil)
	in := plan.NewIntersection(plan.NewUniverseSet(), a)

	out, changed, err := stepIntersection(in)
	require.NoError(t, err)
	require.True(t, changed)
	require.Same(t, a, out)
}

func TestStepIntersectionDropsBareWhenFilteredPresent(t *testing.T) {
	base := plan.NewTable("a", nil)
	pred := expression.NewEquals(col(0, "x"), expression.NewLiteral(sql.NewInt64(1)))
	in := plan.NewIntersection(base, plan.NewFilter(pred, base))

	out, changed, err := stepIntersection(in)
	require.NoError(t, err)
	require.True(t, changed)
	f, ok := out.(*plan.Filter)
	require.True(t, ok)
	require.Same(t, base, f.Child)
}

func TestStepIntersectionMergesFiltersViaAnd(t *testing.T) {
	base := plan.NewTable("a", nil)
	pred1 := expression.NewEquals(col(0, "x"), expression.NewLiteral(sql.NewInt64(1)))
	pred2 := expression.NewEquals(col(1, "y"), expression.NewLiteral(sql.NewInt64(2)))
	in := plan.NewIntersection(plan.NewFilter(pred1, base), plan.NewFilter(pred2, base))

	out, changed, err := stepIntersection(in)
	require.NoError(t, err)
	require.True(t, changed)
	f, ok := out.(*plan.Filter)
	require.True(t, ok)
	require.IsType(t, &expression.And{}, f.Predicate)
}

func TestIntroduceEquiJoinRestructuresCrossIntoJoin(t *testing.T) {
	left := plan.NewTable("users", &fakeTable{schema: sql.Schema{
		{Name: "id", Source: "users", Type: sql.TypeInt64},
	}})
	right := plan.NewTable("orders", &fakeTable{schema: sql.Schema{
		{Name: "user_id", Source: "orders", Type: sql.TypeInt64},
	}})
	cross := plan.NewCross(left, right)
	pred := expression.NewEquals(col(0, "id"), col(1, "user_id"))

	node, remaining, ok := introduceEquiJoin(cross, pred)
	require.True(t, ok)
	require.IsType(t, &plan.InnerJoin{}, node)
	require.Equal(t, "()", remaining.String())
}

// fakeTable is a minimal sql.Table stub for schema-bearing plan.Table leaves.
type fakeTable struct {
	schema sql.Schema
}

func (f *fakeTable) Name() string       { return "fake" }
func (f *fakeTable) Sorted() bool       { return false }
func (f *fakeTable) Schema() sql.Schema { return f.schema }
func (f *fakeTable) Partitions(ctx *sql.Context) (sql.PartitionIter, error) {
	return sql.SinglePartitionIter(), nil
}
func (f *fakeTable) PartitionRows(ctx *sql.Context, part sql.Partition) (sql.RowIter, error) {
	return sql.NewSliceIter(nil), nil
}
