// Package rowexec implements the physical iterator library and
// the RA-to-iterator lowering.
package rowexec

import (
	"github.com/ralite/ralite/sql"
	"github.com/ralite/ralite/sql/expression"
)

// filterIter yields rows of source for which predicate evaluates true. It
// preserves the source's sortedness and registry.
type filterIter struct {
	source    sql.RowIter
	predicate expression.Expression
}

// NewFilterIter builds a Filter iterator over source.
func NewFilterIter(predicate expression.Expression, source sql.RowIter) sql.RowIter {
	return &filterIter{source: source, predicate: predicate}
}

func (f *filterIter) Next(ctx *sql.Context) (sql.Row, error) {
	for {
		row, err := f.source.Next(ctx)
		if err != nil {
			return nil, err
		}
		v, err := f.predicate.Eval(ctx, row)
		if err != nil {
			return nil, err
		}
		if expression.IsTrue(v) {
			return row, nil
		}
	}
}

func (f *filterIter) Close(ctx *sql.Context) error {
	return f.source.Close(ctx)
}
