package rowexec

import (
	"github.com/ralite/ralite/sql"
	"github.com/ralite/ralite/sql/expression"
)

// projectIter evaluates a fixed list of expressions against each source
// row: plain column references and function
// calls are both handled uniformly by Expression.Eval, so no separate
// function-eval iterator is needed.
type projectIter struct {
	source      sql.RowIter
	projections []expression.Expression
}

// NewProjectIter builds a Project iterator.
func NewProjectIter(projections []expression.Expression, source sql.RowIter) sql.RowIter {
	return &projectIter{source: source, projections: projections}
}

func (p *projectIter) Next(ctx *sql.Context) (sql.Row, error) {
	row, err := p.source.Next(ctx)
	if err != nil {
		return nil, err
	}
	out := make(sql.Row, len(p.projections))
	for i, proj := range p.projections {
		v, err := proj.Eval(ctx, row)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (p *projectIter) Close(ctx *sql.Context) error {
	return p.source.Close(ctx)
}
