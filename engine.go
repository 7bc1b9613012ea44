package sqle

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/ralite/ralite/format"
	"github.com/ralite/ralite/planbuilder"
	"github.com/ralite/ralite/sql"
	"github.com/ralite/ralite/sql/expression"
	"github.com/ralite/ralite/sql/plan"
	"github.com/ralite/ralite/sql/rewrite"
	"github.com/ralite/ralite/sql/rowexec"
)

// Engine is the Query Driver: it binds parsed SQL text to a
// Catalog of registered table providers, rewrites the resulting relational
// algebra, lowers it to an iterator pipeline, and hands the caller a
// streaming RowIter.
type Engine struct {
	Catalog *sql.Catalog
}

// NewEngine builds an Engine over catalog.
func NewEngine(catalog *sql.Catalog) *Engine {
	return &Engine{Catalog: catalog}
}

// Result holds the rendered text forms of a query result that
// ExecuteAndRender returns: CSV when Options.EmitCSV is set and a
// Markdown table when Options.EmitTable is set, each empty otherwise.
// Rendering drains the iterator, so ExecuteAndRender hands back no
// RowIter; Execute streams rows and renders nothing.
type Result struct {
	CSV   string
	Table string
}

// Execute runs one SQL statement to completion of planning: parse,
// rewrite, lower. It returns the result schema and a RowIter positioned
// at the start of output.
func (e *Engine) Execute(ctx *sql.Context, sqlText string, opts Options) (sql.Schema, sql.RowIter, error) {
	ctx, finish := ctx.StartSpan("ralite.Execute")
	defer finish()

	b := planbuilder.New(ctx, e.Catalog)
	root, err := b.Build(sqlText)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ralite: planning query")
	}

	if opts.DumpRA {
		ctx.GetLogger().Debugf("parsed plan:\n%s", FormatPlan(root))
	}

	root, err = rewrite.Rewrite(root, opts.OptimizationLevel)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ralite: rewriting query")
	}

	if opts.DumpRA {
		ctx.GetLogger().Debugf("rewritten plan (level %d):\n%s", opts.OptimizationLevel, FormatPlan(root))
	}

	schema := root.Schema()

	iter, err := rowexec.Lower(ctx, root)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ralite: lowering query")
	}

	return schema, iter, nil
}

// ExecuteAndRender runs Execute and additionally renders the result into
// whichever text formats Options requests, returning the fully drained
// Result alongside the schema. Use this instead of Execute when the caller
// wants CSV/table output rather than a live RowIter (cmd/ralite uses
// this).
func (e *Engine) ExecuteAndRender(ctx *sql.Context, sqlText string, opts Options) (sql.Schema, Result, error) {
	schema, iter, err := e.Execute(ctx, sqlText, opts)
	if err != nil {
		return nil, Result{}, err
	}

	var rows []sql.Row
	if opts.EmitCSV || opts.EmitTable {
		rows, err = sql.RowIterToRows(ctx, iter)
		if err != nil {
			return nil, Result{}, errors.Wrap(err, "ralite: executing query")
		}
	} else {
		_ = iter.Close(ctx)
	}

	var res Result
	if opts.EmitCSV {
		res.CSV, err = format.CSV(schema, rows)
		if err != nil {
			return nil, Result{}, errors.Wrap(err, "ralite: rendering csv")
		}
	}
	if opts.EmitTable {
		res.Table, err = format.Table(schema, rows)
		if err != nil {
			return nil, Result{}, errors.Wrap(err, "ralite: rendering table")
		}
	}

	return schema, res, nil
}

// FormatPlan renders an RA tree in the indented box-drawing form, one
// TreePrinter per node, with children nested under their parent. This is
// the DumpRA rendering; Node.String() stays the flat call form the
// rewriter's canonical ordering keys on.
func FormatPlan(n plan.Node) string {
	children := n.Children()
	p := sql.NewTreePrinter()
	p.WriteNode("%s", planLabel(n))
	if len(children) == 0 {
		return p.String()
	}
	rendered := make([]string, len(children))
	for i, c := range children {
		rendered[i] = FormatPlan(c.(plan.Node))
	}
	p.WriteChildren(rendered...)
	return p.String()
}

// planLabel is a node's own head line: the operator and its scalar
// operands, without the relational children String() would inline.
func planLabel(n plan.Node) string {
	switch node := n.(type) {
	case *plan.Filter:
		return "Filter(" + node.Predicate.String() + ")"
	case *plan.Project:
		return "Project(" + exprList(node.Projections) + ")"
	case *plan.Cross:
		return "Cross"
	case *plan.InnerJoin:
		return "Join(" + node.Left.Key.String() + " = " + node.Right.Key.String() + ")"
	case *plan.LeftJoin:
		return "LeftJoin(" + node.Left.Key.String() + " = " + node.Right.Key.String() + ")"
	case *plan.RightJoin:
		return "RightJoin(" + node.Left.Key.String() + " = " + node.Right.Key.String() + ")"
	case *plan.Union:
		return "Union"
	case *plan.Intersection:
		return "Intersection"
	case *plan.Distinct:
		return "Distinct"
	case *plan.GroupBy:
		return "GroupBy(" + exprList(node.GroupByExprs) + ")"
	case *plan.Limit:
		return fmt.Sprintf("Limit(%d)", node.N)
	case *plan.Offset:
		return fmt.Sprintf("Offset(%d)", node.N)
	default:
		return n.String()
	}
}

func exprList(exprs []expression.Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
