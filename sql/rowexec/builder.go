package rowexec

import (
	"github.com/ralite/ralite/sql"
	"github.com/ralite/ralite/sql/expression"
	"github.com/ralite/ralite/sql/plan"
)

// Lower turns a rewritten relational-algebra tree into a pull-based
// iterator pipeline. Each plan.Node type has exactly one
// physical translation; there is no cost model or alternative plan
// selection.
func Lower(ctx *sql.Context, root plan.Node) (sql.RowIter, error) {
	b := &builder{ctx: ctx, refs: countRefs(root), tableTaps: make(map[*plan.Table][]sql.RowIter)}
	return b.build(root)
}

// builder carries the per-node reference counts used to decide which
// Table scans need Tee buffering; see teeelim.go for how the counts are
// computed ahead of lowering rather than as a separate pass over the
// iterator graph.
type builder struct {
	ctx  *sql.Context
	refs map[plan.Node]int

	// tableTaps caches the Tee taps already handed out for a shared Table
	// node, so a node visited more than once gets independent taps over a
	// single underlying scan instead of re-scanning the provider.
	tableTaps map[*plan.Table][]sql.RowIter
}

func (b *builder) build(n plan.Node) (sql.RowIter, error) {
	switch node := n.(type) {
	case *plan.Table:
		return b.buildTable(node)
	case *plan.EmptySet:
		return NewEmptyIter(), nil
	case *plan.UniverseSet:
		return NewUniverseIter(), nil
	case *plan.OneRowSet:
		return NewOneRowIter(), nil
	case *plan.Filter:
		return b.buildFilter(node)
	case *plan.Project:
		return b.buildProject(node)
	case *plan.Cross:
		return b.buildCross(node)
	case *plan.InnerJoin:
		return b.buildInnerJoin(node)
	case *plan.LeftJoin:
		return b.buildLeftJoin(node)
	case *plan.RightJoin:
		return b.buildRightJoin(node)
	case *plan.Union:
		return b.buildUnion(node)
	case *plan.Intersection:
		return b.buildIntersection(node)
	case *plan.Distinct:
		return b.buildDistinct(node)
	case *plan.GroupBy:
		return b.buildGroupBy(node)
	case *plan.Limit:
		return b.buildLimit(node)
	case *plan.Offset:
		return b.buildOffset(node)
	}
	return nil, sql.ErrUnknownOperator.New(n.String())
}

func (b *builder) buildTable(t *plan.Table) (sql.RowIter, error) {
	if taps, ok := b.tableTaps[t]; ok {
		tap := taps[0]
		b.tableTaps[t] = taps[1:]
		return tap, nil
	}
	if t.Provider() == nil {
		return nil, sql.ErrTableDoesNotExist.New(t.Identifier)
	}
	rows, err := sql.Produce(b.ctx, t.Provider())
	if err != nil {
		return nil, err
	}
	if b.refs[t] <= 1 {
		return rows, nil
	}
	// Multiple consumers of the same scan (structural sharing in the RA
	// tree) need a Tee so each tap replays independently.
	taps := NewTee(rows, b.refs[t])
	tap := taps[0]
	b.tableTaps[t] = taps[1:]
	return tap, nil
}

func checkColumnBounds(width int, e expression.Expression) error {
	for _, gf := range expression.GetFieldsUsed(e) {
		if gf.Index < 0 || gf.Index >= width {
			return sql.ErrUnknownColumn.New(gf.Name)
		}
	}
	return nil
}

// isEmptySet reports whether a child relation collapsed to the empty
// relation during rewriting. Stages above it short-circuit to an empty
// iterator without resolving their column references, since the registry
// they were resolved against no longer exists below them.
func isEmptySet(n plan.Node) bool {
	_, ok := n.(*plan.EmptySet)
	return ok
}

func (b *builder) buildFilter(f *plan.Filter) (sql.RowIter, error) {
	if isEmptySet(f.Child) {
		return NewEmptyIter(), nil
	}
	if err := checkColumnBounds(len(f.Child.Schema()), f.Predicate); err != nil {
		return nil, err
	}
	source, err := b.build(f.Child)
	if err != nil {
		return nil, err
	}
	return NewFilterIter(f.Predicate, source), nil
}

func (b *builder) buildProject(p *plan.Project) (sql.RowIter, error) {
	if isEmptySet(p.Child) {
		return NewEmptyIter(), nil
	}
	width := len(p.Child.Schema())
	for _, proj := range p.Projections {
		if err := checkColumnBounds(width, proj); err != nil {
			return nil, err
		}
	}
	source, err := b.build(p.Child)
	if err != nil {
		return nil, err
	}
	return NewProjectIter(p.Projections, source), nil
}

func (b *builder) buildCross(c *plan.Cross) (sql.RowIter, error) {
	if len(c.Operands) == 0 {
		return NewUniverseIter(), nil
	}
	cur, err := b.build(c.Operands[0])
	if err != nil {
		return nil, err
	}
	for _, operand := range c.Operands[1:] {
		right, err := b.build(operand)
		if err != nil {
			return nil, err
		}
		cur = NewCrossJoinIter(cur, right)
	}
	return cur, nil
}

// joinKeyIndex requires the theta marker's key to be a resolved column
// reference, which is all the rewriter's equi-join introduction and any
// planbuilder-constructed join ever produce; joins on computed
// expressions are not supported.
func joinKeyIndex(rel plan.Node, key expression.Expression) (int, error) {
	gf, ok := key.(*expression.GetField)
	if !ok {
		return 0, sql.ErrUnknownColumn.New(key.String())
	}
	if gf.Index < 0 || gf.Index >= len(rel.Schema()) {
		return 0, sql.ErrUnknownColumn.New(gf.Name)
	}
	return gf.Index, nil
}

// buildSortedSide lowers rel and, unless it is a Table scan already declared
// Sorted() on its leading column (the join key), wraps it in an OrderBy on
// keyIdx. Sorted() guarantees ascending lexicographic order across the
// whole row, which only implies join-key order when the key is column 0.
func (b *builder) buildSortedSide(rel plan.Node, keyIdx int) (sql.RowIter, error) {
	source, err := b.build(rel)
	if err != nil {
		return nil, err
	}
	if t, ok := rel.(*plan.Table); ok && keyIdx == 0 && t.Provider() != nil && t.Provider().Sorted() {
		return source, nil
	}
	return NewOrderByIter(b.ctx, source, []int{keyIdx}, []bool{false})
}

func (b *builder) buildInnerJoin(j *plan.InnerJoin) (sql.RowIter, error) {
	leftIdx, err := joinKeyIndex(j.Left.Rel, j.Left.Key)
	if err != nil {
		return nil, err
	}
	rightIdx, err := joinKeyIndex(j.Right.Rel, j.Right.Key)
	if err != nil {
		return nil, err
	}
	left, err := b.buildSortedSide(j.Left.Rel, leftIdx)
	if err != nil {
		return nil, err
	}
	right, err := b.buildSortedSide(j.Right.Rel, rightIdx)
	if err != nil {
		return nil, err
	}
	return NewMergeInnerJoinIter(left, right, leftIdx, rightIdx, false), nil
}

func (b *builder) buildLeftJoin(j *plan.LeftJoin) (sql.RowIter, error) {
	leftIdx, err := joinKeyIndex(j.Left.Rel, j.Left.Key)
	if err != nil {
		return nil, err
	}
	rightIdx, err := joinKeyIndex(j.Right.Rel, j.Right.Key)
	if err != nil {
		return nil, err
	}
	left, err := b.buildSortedSide(j.Left.Rel, leftIdx)
	if err != nil {
		return nil, err
	}
	right, err := b.buildSortedSide(j.Right.Rel, rightIdx)
	if err != nil {
		return nil, err
	}
	return NewMergeLeftJoinIter(left, right, leftIdx, rightIdx, len(j.Right.Rel.Schema())), nil
}

func (b *builder) buildRightJoin(j *plan.RightJoin) (sql.RowIter, error) {
	leftIdx, err := joinKeyIndex(j.Left.Rel, j.Left.Key)
	if err != nil {
		return nil, err
	}
	rightIdx, err := joinKeyIndex(j.Right.Rel, j.Right.Key)
	if err != nil {
		return nil, err
	}
	left, err := b.buildSortedSide(j.Left.Rel, leftIdx)
	if err != nil {
		return nil, err
	}
	right, err := b.buildSortedSide(j.Right.Rel, rightIdx)
	if err != nil {
		return nil, err
	}
	return NewMergeRightJoinIter(left, right, leftIdx, rightIdx, len(j.Left.Rel.Schema())), nil
}

// buildSortedWholeRow lowers rel and, unless its source is a known-sorted
// Table scan, sorts it on the full row in total order.
func (b *builder) buildSortedWholeRow(rel plan.Node) (sql.RowIter, error) {
	source, err := b.build(rel)
	if err != nil {
		return nil, err
	}
	if t, ok := rel.(*plan.Table); ok && t.Provider() != nil && t.Provider().Sorted() {
		return source, nil
	}
	return NewSortIter(b.ctx, source)
}

func (b *builder) buildUnion(u *plan.Union) (sql.RowIter, error) {
	sources := make([]sql.RowIter, len(u.Operands))
	for i, operand := range u.Operands {
		source, err := b.buildSortedWholeRow(operand)
		if err != nil {
			return nil, err
		}
		sources[i] = source
	}
	return NewUnionMergeIter(sources), nil
}

func (b *builder) buildIntersection(in *plan.Intersection) (sql.RowIter, error) {
	cur, err := b.buildSortedWholeRow(in.Operands[0])
	if err != nil {
		return nil, err
	}
	cur = NewDistinctIter(cur)
	for _, operand := range in.Operands[1:] {
		right, err := b.buildSortedWholeRow(operand)
		if err != nil {
			return nil, err
		}
		cur = NewMergeIntersectIter(cur, NewDistinctIter(right))
	}
	return cur, nil
}

func (b *builder) buildDistinct(d *plan.Distinct) (sql.RowIter, error) {
	source, err := b.buildSortedWholeRow(d.Child)
	if err != nil {
		return nil, err
	}
	return NewDistinctIter(source), nil
}

func (b *builder) buildGroupBy(g *plan.GroupBy) (sql.RowIter, error) {
	if isEmptySet(g.Child) {
		return NewEmptyIter(), nil
	}
	width := len(g.Child.Schema())
	keyIdxs := make([]int, len(g.GroupByExprs))
	for i, e := range g.GroupByExprs {
		if err := checkColumnBounds(width, e); err != nil {
			return nil, err
		}
		gf, ok := e.(*expression.GetField)
		if !ok {
			return nil, sql.ErrUnknownColumn.New(e.String())
		}
		keyIdxs[i] = gf.Index
	}
	source, err := b.build(g.Child)
	if err != nil {
		return nil, err
	}
	return NewGroupByHashIter(source, keyIdxs), nil
}

func (b *builder) buildLimit(l *plan.Limit) (sql.RowIter, error) {
	source, err := b.build(l.Child)
	if err != nil {
		return nil, err
	}
	return NewLimitIter(source, l.N), nil
}

func (b *builder) buildOffset(o *plan.Offset) (sql.RowIter, error) {
	source, err := b.build(o.Child)
	if err != nil {
		return nil, err
	}
	return NewOffsetIter(source, o.N), nil
}
