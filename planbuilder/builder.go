// Package planbuilder converts a parsed SELECT statement into the
// relational-algebra tree (sql/plan) the rewriter and lowerer operate on.
// The SQL front end itself (lexing/parsing MySQL-dialect text into an
// AST) is delegated entirely to github.com/dolthub/vitess/go/vt/sqlparser;
// this package only walks the resulting sqlparser.Expr/TableExpr nodes.
// The FROM clause is left-folded into a Cross before JOINs replace part
// of the chain, table aliases and self-joins (`name^2`) are tracked per
// reference, and columns resolve by alias first, then by unique table.
package planbuilder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dolthub/vitess/go/vt/sqlparser"

	"github.com/ralite/ralite/sql"
	"github.com/ralite/ralite/sql/expression"
	"github.com/ralite/ralite/sql/plan"
	"github.com/ralite/ralite/sql/rowexec"
)

// tableMeta tracks one FROM-clause table reference: name, alias, and
// self-join instance count.
type tableMeta struct {
	identifier string // "t" or "t^2" for the second self-join reference
	tableName  string
	alias      string
	schema     sql.Schema
}

// Builder converts one query's AST into a plan.Node against a fixed
// database. It is not reentrant across statements -- construct a fresh
// Builder per query.
type Builder struct {
	ctx     *sql.Context
	catalog *sql.Catalog

	// tablesByIdentifier and tablesByAlias both point into the same
	// tableMeta values; aliasless tables are keyed by their own name in
	// tablesByAlias as well, so unqualified lookups work uniformly.
	tablesByIdentifier map[string]*tableMeta
	tablesByAlias      map[string]*tableMeta
	tableOrder         []*tableMeta
	instanceCounts     map[string]int
}

// New builds a Builder over catalog, the external table registry (a flat
// name -> provider map, with "pkg.Table" resolving through a
// DatabaseProvider). ctx is passed to the catalog lookup, to schema
// discovery by inspection, and to the builders of EXISTS subqueries.
func New(ctx *sql.Context, catalog *sql.Catalog) *Builder {
	return &Builder{
		ctx:                ctx,
		catalog:            catalog,
		tablesByIdentifier: make(map[string]*tableMeta),
		tablesByAlias:      make(map[string]*tableMeta),
		instanceCounts:     make(map[string]int),
	}
}

// Build parses query and lowers it to a plan.Node. Only SELECT is
// supported.
func (b *Builder) Build(query string) (plan.Node, error) {
	stmt, err := sqlparser.Parse(query)
	if err != nil {
		return nil, sql.ErrSyntax.New(0, 0, err.Error())
	}

	selectStmt, ok := stmt.(*sqlparser.Select)
	if !ok {
		return nil, fmt.Errorf("ralite: only SELECT statements are supported, got %T", stmt)
	}

	return b.buildSelect(selectStmt)
}

func (b *Builder) buildSelect(sel *sqlparser.Select) (plan.Node, error) {
	var relation plan.Node = plan.NewEmptySet()
	var err error

	if len(sel.From) > 0 {
		relation, err = b.buildFrom(sel.From)
		if err != nil {
			return nil, err
		}
	}

	if sel.Where != nil {
		pred, err := b.buildExpr(sel.Where.Expr)
		if err != nil {
			return nil, err
		}
		resolved, err := expression.Resolve(pred, relation.Schema())
		if err != nil {
			return nil, err
		}
		relation = plan.NewFilter(resolved, relation)
	}

	if len(sel.GroupBy) > 0 {
		groupings := make([]expression.Expression, len(sel.GroupBy))
		for i, g := range sel.GroupBy {
			col, err := b.buildExpr(g)
			if err != nil {
				return nil, err
			}
			groupings[i], err = expression.Resolve(col, relation.Schema())
			if err != nil {
				return nil, err
			}
		}
		relation = plan.NewGroupBy(groupings, relation)
	}

	projections, noFrom, err := b.buildSelectExprs(sel.SelectExprs, relation)
	if err != nil {
		return nil, err
	}
	if noFrom {
		if _, ok := relation.(*plan.EmptySet); ok {
			relation = plan.NewOneRowSet()
		}
	}

	resolvedProjections := make([]expression.Expression, len(projections))
	for i, proj := range projections {
		resolvedProjections[i], err = expression.Resolve(proj, relation.Schema())
		if err != nil {
			return nil, err
		}
	}
	relation = plan.NewProject(resolvedProjections, relation)

	if sel.Distinct != "" {
		relation = plan.NewDistinct(relation)
	}

	if sel.Limit != nil {
		if sel.Limit.Offset != nil {
			n, err := intLiteral(sel.Limit.Offset)
			if err != nil {
				return nil, err
			}
			relation = plan.NewOffset(n, relation)
		}
		if sel.Limit.Rowcount != nil {
			n, err := intLiteral(sel.Limit.Rowcount)
			if err != nil {
				return nil, err
			}
			relation = plan.NewLimit(n, relation)
		}
	}

	return relation, nil
}

func intLiteral(e sqlparser.Expr) (int64, error) {
	sqlVal, ok := e.(*sqlparser.SQLVal)
	if !ok || sqlVal.Type != sqlparser.IntVal {
		return 0, fmt.Errorf("ralite: expected an integer literal, got %T", e)
	}
	return strconv.ParseInt(string(sqlVal.Val), 10, 64)
}

// buildFrom folds the FROM clause's table sources into a Cross; explicit
// JOINs replace part of the chain as they are encountered.
func (b *Builder) buildFrom(from sqlparser.TableExprs) (plan.Node, error) {
	var relation plan.Node
	for _, source := range from {
		node, err := b.buildTableExpr(source)
		if err != nil {
			return nil, err
		}
		if relation == nil {
			relation = node
		} else {
			relation = plan.NewCross(relation, node)
		}
	}
	return relation, nil
}

func (b *Builder) buildTableExpr(expr sqlparser.TableExpr) (plan.Node, error) {
	switch t := expr.(type) {
	case *sqlparser.AliasedTableExpr:
		return b.buildAliasedTable(t)
	case *sqlparser.JoinTableExpr:
		return b.buildJoin(t)
	case *sqlparser.ParenTableExpr:
		if len(t.Exprs) != 1 {
			return nil, fmt.Errorf("ralite: parenthesized table list not supported")
		}
		return b.buildTableExpr(t.Exprs[0])
	}
	return nil, fmt.Errorf("ralite: unsupported table expression %T", expr)
}

func (b *Builder) buildAliasedTable(t *sqlparser.AliasedTableExpr) (plan.Node, error) {
	name, ok := t.Expr.(sqlparser.TableName)
	if !ok {
		return nil, fmt.Errorf("ralite: only plain table references are supported, got %T", t.Expr)
	}
	tableName := strings.Trim(name.Name.String(), "`")
	alias := strings.Trim(t.As.String(), "`")
	return b.registerTable(tableName, alias)
}

func (b *Builder) registerTable(tableName, alias string) (plan.Node, error) {
	provider, err := b.catalog.Table(b.ctx, tableName)
	if err != nil {
		return nil, err
	}

	b.instanceCounts[tableName]++
	identifier := tableName
	if n := b.instanceCounts[tableName]; n > 1 {
		identifier = fmt.Sprintf("%s^%d", tableName, n)
	}

	schema := provider.Schema()
	if schema == nil {
		schema, err = rowexec.DiscoverSchema(b.ctx, provider)
		if err != nil {
			return nil, err
		}
	}

	// Columns resolve under the reference's qualifier -- the alias when one
	// is given, otherwise the instance identifier (which only differs from
	// the table name on a self-join). Re-source the registry accordingly so
	// `a.val` resolves against `FROM t a` and the two sides of a self-join
	// stay distinguishable.
	qualifier := identifier
	if alias != "" {
		qualifier = alias
	}
	schema = schema.Clone()
	for _, col := range schema {
		col.Source = qualifier
	}

	meta := &tableMeta{identifier: identifier, tableName: tableName, alias: alias, schema: schema}
	b.tablesByIdentifier[identifier] = meta
	if alias != "" {
		b.tablesByAlias[alias] = meta
	} else {
		b.tablesByAlias[identifier] = meta
	}
	b.tableOrder = append(b.tableOrder, meta)

	return plan.NewTableWithSchema(identifier, provider, schema), nil
}

// buildJoin handles both the explicit JOIN forms (inner/left/right, with
// or without ON) and the comma-separated CROSS form the parser also
// surfaces as a JoinTableExpr.
func (b *Builder) buildJoin(j *sqlparser.JoinTableExpr) (plan.Node, error) {
	left, err := b.buildTableExpr(j.LeftExpr)
	if err != nil {
		return nil, err
	}
	right, err := b.buildTableExpr(j.RightExpr)
	if err != nil {
		return nil, err
	}

	if j.Condition.On == nil {
		return plan.NewCross(left, right), nil
	}

	cmp, ok := j.Condition.On.(*sqlparser.ComparisonExpr)
	if !ok || cmp.Operator != sqlparser.EqualStr {
		return nil, sql.ErrJoinHasNoOnClause.New(sqlparser.String(j))
	}

	leftColExpr, err := b.buildExpr(cmp.Left)
	if err != nil {
		return nil, err
	}
	rightColExpr, err := b.buildExpr(cmp.Right)
	if err != nil {
		return nil, err
	}
	leftCol, ok := leftColExpr.(*expression.Column)
	if !ok {
		return nil, sql.ErrUnknownColumn.New(sqlparser.String(cmp.Left))
	}
	rightCol, ok := rightColExpr.(*expression.Column)
	if !ok {
		return nil, sql.ErrUnknownColumn.New(sqlparser.String(cmp.Right))
	}

	leftRel, leftKey, err := b.resolveJoinSide(left, right, leftCol)
	if err != nil {
		return nil, err
	}
	rightRel, rightKey, err := b.resolveJoinSide(left, right, rightCol)
	if err != nil {
		return nil, err
	}
	// Ensure leftKey belongs to `left` and rightKey belongs to `right`,
	// swapping if the ON clause listed them the other way around.
	if leftRel != left {
		leftRel, rightRel = rightRel, leftRel
		leftKey, rightKey = rightKey, leftKey
	}

	switch j.Join {
	case sqlparser.LeftJoinStr, sqlparser.NaturalLeftJoinStr:
		return plan.NewLeftJoin(left, leftKey, right, rightKey), nil
	case sqlparser.RightJoinStr, sqlparser.NaturalRightJoinStr:
		return plan.NewRightJoin(left, leftKey, right, rightKey), nil
	default:
		return plan.NewInnerJoin(left, leftKey, right, rightKey), nil
	}
}

// resolveJoinSide determines which of the join's two (already-built) sides
// a column reference belongs to, and resolves it to a GetField against
// that side's own schema (the index the lowerer's merge-join needs).
func (b *Builder) resolveJoinSide(left, right plan.Node, col *expression.Column) (plan.Node, expression.Expression, error) {
	if idx, err := left.Schema().IndexOf(col.Table, col.Name); err == nil {
		return left, expression.NewGetField(idx, left.Schema()[idx].Type, left.Schema()[idx].Identifier()), nil
	}
	if idx, err := right.Schema().IndexOf(col.Table, col.Name); err == nil {
		return right, expression.NewGetField(idx, right.Schema()[idx].Type, right.Schema()[idx].Identifier()), nil
	}
	return nil, nil, sql.ErrUnknownColumn.New(col.String())
}

// buildSelectExprs converts the SELECT list into Project's expression
// list. Star expressions expand against the relation's current schema.
// noFrom reports whether every element was a bare scalar expression with
// no column reference, signaling a FROM-less SELECT.
func (b *Builder) buildSelectExprs(exprs sqlparser.SelectExprs, relation plan.Node) ([]expression.Expression, bool, error) {
	var out []expression.Expression
	noFrom := true
	for _, e := range exprs {
		switch el := e.(type) {
		case *sqlparser.StarExpr:
			noFrom = false
			cols, err := b.expandStar(el, relation)
			if err != nil {
				return nil, false, err
			}
			out = append(out, cols...)
		case *sqlparser.AliasedExpr:
			expr, err := b.buildExpr(el.Expr)
			if err != nil {
				return nil, false, err
			}
			if len(expression.ColumnsUsed(expr)) > 0 {
				noFrom = false
			}
			if !el.As.IsEmpty() {
				expr = expression.NewAlias(el.As.String(), expr)
			}
			out = append(out, expr)
		default:
			return nil, false, fmt.Errorf("ralite: unsupported select expression %T", e)
		}
	}
	return out, noFrom, nil
}

func (b *Builder) expandStar(star *sqlparser.StarExpr, relation plan.Node) ([]expression.Expression, error) {
	qualifier := strings.Trim(star.TableName.Name.String(), "`")

	if qualifier == "" {
		out := make([]expression.Expression, len(relation.Schema()))
		for i, col := range relation.Schema() {
			out[i] = expression.NewColumn(col.Source, col.Name)
		}
		return out, nil
	}

	meta, ok := b.tablesByAlias[qualifier]
	if !ok {
		meta, ok = b.tablesByIdentifier[qualifier]
	}
	if !ok {
		return nil, sql.ErrTableDoesNotExist.New(qualifier)
	}
	out := make([]expression.Expression, len(meta.schema))
	for i, col := range meta.schema {
		out[i] = expression.NewColumn(col.Source, col.Name)
	}
	return out, nil
}

// buildExpr converts a scalar/boolean vitess expression into the
// unresolved expression.Expression tree.
func (b *Builder) buildExpr(e sqlparser.Expr) (expression.Expression, error) {
	switch ex := e.(type) {
	case *sqlparser.AndExpr:
		left, err := b.buildExpr(ex.Left)
		if err != nil {
			return nil, err
		}
		right, err := b.buildExpr(ex.Right)
		if err != nil {
			return nil, err
		}
		return expression.NewAnd(left, right), nil

	case *sqlparser.OrExpr:
		left, err := b.buildExpr(ex.Left)
		if err != nil {
			return nil, err
		}
		right, err := b.buildExpr(ex.Right)
		if err != nil {
			return nil, err
		}
		return expression.NewOr(left, right), nil

	case *sqlparser.NotExpr:
		inner, err := b.buildExpr(ex.Expr)
		if err != nil {
			return nil, err
		}
		return expression.NewNot(inner), nil

	case *sqlparser.ParenExpr:
		return b.buildExpr(ex.Expr)

	case *sqlparser.ComparisonExpr:
		return b.buildComparison(ex)

	case *sqlparser.RangeCond:
		return b.buildRangeCond(ex)

	case *sqlparser.ColName:
		table := strings.Trim(ex.Qualifier.Name.String(), "`")
		name := strings.Trim(ex.Name.String(), "`")
		return expression.NewColumn(table, name), nil

	case *sqlparser.SQLVal:
		return sqlValToLiteral(ex)

	case *sqlparser.NullVal:
		return expression.NewLiteral(sql.Null), nil

	case sqlparser.BoolVal:
		return expression.NewLiteral(sql.NewBool(bool(ex))), nil

	case *sqlparser.FuncExpr:
		return b.buildFuncExpr(ex)

	case *sqlparser.ExistsExpr:
		return b.buildExists(ex)

	case *sqlparser.ValTuple:
		items := make([]expression.Expression, len(ex))
		for i, v := range ex {
			item, err := b.buildExpr(v)
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return expression.NewTuple(items...), nil
	}
	return nil, fmt.Errorf("ralite: unsupported expression %T", e)
}

func (b *Builder) buildComparison(cmp *sqlparser.ComparisonExpr) (expression.Expression, error) {
	left, err := b.buildExpr(cmp.Left)
	if err != nil {
		return nil, err
	}
	right, err := b.buildExpr(cmp.Right)
	if err != nil {
		return nil, err
	}

	switch cmp.Operator {
	case sqlparser.EqualStr:
		return expression.NewEquals(left, right), nil
	case sqlparser.NotEqualStr:
		return expression.NewNotEquals(left, right), nil
	case sqlparser.LessThanStr:
		return expression.NewLessThan(left, right), nil
	case sqlparser.LessEqualStr:
		return expression.NewLessThanOrEqual(left, right), nil
	case sqlparser.GreaterThanStr:
		return expression.NewGreaterThan(left, right), nil
	case sqlparser.GreaterEqualStr:
		return expression.NewGreaterThanOrEqual(left, right), nil
	case sqlparser.LikeStr:
		return expression.NewLike(left, right), nil
	case sqlparser.InStr:
		list, ok := right.(*expression.Tuple)
		if !ok {
			return nil, fmt.Errorf("ralite: IN requires a value list")
		}
		return expression.NewIn(left, list), nil
	}
	return nil, fmt.Errorf("ralite: unsupported comparison operator %q", cmp.Operator)
}

// buildRangeCond translates BETWEEN into the equivalent conjunction of
// two comparisons -- the expression tree has no dedicated Between node.
func (b *Builder) buildRangeCond(rc *sqlparser.RangeCond) (expression.Expression, error) {
	left, err := b.buildExpr(rc.Left)
	if err != nil {
		return nil, err
	}
	from, err := b.buildExpr(rc.From)
	if err != nil {
		return nil, err
	}
	to, err := b.buildExpr(rc.To)
	if err != nil {
		return nil, err
	}
	between := expression.NewAnd(
		expression.NewGreaterThanOrEqual(left, from),
		expression.NewLessThanOrEqual(left, to),
	)
	if rc.Operator == sqlparser.NotBetweenStr {
		return expression.NewNot(between), nil
	}
	return between, nil
}

// buildExists plans an EXISTS subquery as its own statement -- a fresh
// Builder over the same catalog, so the subquery sees its own FROM
// clause, not the enclosing query's tables -- and defers running it to
// evaluation time. A correlated column reference therefore fails with
// UnknownColumn at plan time; only uncorrelated subqueries resolve. A
// projected EXISTS with no enclosing FROM clause plans against OneRowSet
// through the usual FROM-less SELECT path.
func (b *Builder) buildExists(ex *sqlparser.ExistsExpr) (expression.Expression, error) {
	sel, ok := ex.Subquery.Select.(*sqlparser.Select)
	if !ok {
		return nil, fmt.Errorf("ralite: unsupported subquery statement %T", ex.Subquery.Select)
	}
	sub := New(b.ctx, b.catalog)
	subPlan, err := sub.buildSelect(sel)
	if err != nil {
		return nil, err
	}
	return expression.NewExists(subPlan, func(ctx *sql.Context) (sql.RowIter, error) {
		return rowexec.Lower(ctx, subPlan)
	}), nil
}

func (b *Builder) buildFuncExpr(fn *sqlparser.FuncExpr) (expression.Expression, error) {
	name := strings.Trim(fn.Name.String(), "`")
	args := make([]expression.Expression, 0, len(fn.Exprs))
	for _, a := range fn.Exprs {
		aliased, ok := a.(*sqlparser.AliasedExpr)
		if !ok {
			continue // skip StarExpr args (e.g. COUNT(*)), not in this engine's scope
		}
		arg, err := b.buildExpr(aliased.Expr)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return expression.NewFunction(name, args...), nil
}

func sqlValToLiteral(v *sqlparser.SQLVal) (expression.Expression, error) {
	switch v.Type {
	case sqlparser.StrVal:
		return expression.NewLiteral(sql.NewText(string(v.Val))), nil
	case sqlparser.IntVal:
		n, err := strconv.ParseInt(string(v.Val), 10, 64)
		if err != nil {
			return nil, err
		}
		return expression.NewLiteral(sql.NewInt64(n)), nil
	case sqlparser.FloatVal:
		f, err := strconv.ParseFloat(string(v.Val), 64)
		if err != nil {
			return nil, err
		}
		return expression.NewLiteral(sql.NewFloat64(f)), nil
	}
	return nil, fmt.Errorf("ralite: unsupported literal type %v", v.Type)
}
