package rowexec

import (
	"io"

	"github.com/ralite/ralite/sql"
)

// emptyIter yields no rows -- the physical form of plan.EmptySet.
type emptyIter struct{}

// NewEmptyIter builds an iterator that immediately reports EOF.
func NewEmptyIter() sql.RowIter { return emptyIter{} }

func (emptyIter) Next(ctx *sql.Context) (sql.Row, error) { return nil, io.EOF }
func (emptyIter) Close(ctx *sql.Context) error           { return nil }

// oneRowIter yields exactly one zero-column row -- the physical form of
// plan.OneRowSet, used as the driving relation for SELECT with no FROM
// clause.
type oneRowIter struct {
	emitted bool
}

// NewOneRowIter builds an iterator over a single empty row.
func NewOneRowIter() sql.RowIter { return &oneRowIter{} }

func (o *oneRowIter) Next(ctx *sql.Context) (sql.Row, error) {
	if o.emitted {
		return nil, io.EOF
	}
	o.emitted = true
	return sql.Row{}, nil
}

func (o *oneRowIter) Close(ctx *sql.Context) error { return nil }

// universeIter yields no rows, same as emptyIter. A plan.UniverseSet
// reaches the lowerer when rewriting is disabled, or when the rewriter
// reduces a Cross or Intersection whose operands are all UniverseSet to a
// single UniverseSet.
type universeIter struct{}

// NewUniverseIter builds the physical form of plan.UniverseSet.
func NewUniverseIter() sql.RowIter { return universeIter{} }

func (universeIter) Next(ctx *sql.Context) (sql.Row, error) { return nil, io.EOF }
func (universeIter) Close(ctx *sql.Context) error           { return nil }
