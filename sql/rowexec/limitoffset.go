package rowexec

import (
	"io"

	"github.com/ralite/ralite/sql"
)

// limitIter yields at most N rows from source.
type limitIter struct {
	source  sql.RowIter
	n, seen int64
}

// NewLimitIter builds a Limit iterator.
func NewLimitIter(source sql.RowIter, n int64) sql.RowIter {
	return &limitIter{source: source, n: n}
}

func (l *limitIter) Next(ctx *sql.Context) (sql.Row, error) {
	if l.seen >= l.n {
		return nil, io.EOF
	}
	row, err := l.source.Next(ctx)
	if err != nil {
		return nil, err
	}
	l.seen++
	return row, nil
}

func (l *limitIter) Close(ctx *sql.Context) error {
	return l.source.Close(ctx)
}

// offsetIter discards the first N rows from source, then yields the rest.
type offsetIter struct {
	source  sql.RowIter
	n       int64
	skipped bool
}

// NewOffsetIter builds an Offset iterator.
func NewOffsetIter(source sql.RowIter, n int64) sql.RowIter {
	return &offsetIter{source: source, n: n}
}

func (o *offsetIter) Next(ctx *sql.Context) (sql.Row, error) {
	if !o.skipped {
		for i := int64(0); i < o.n; i++ {
			if _, err := o.source.Next(ctx); err != nil {
				return nil, err
			}
		}
		o.skipped = true
	}
	return o.source.Next(ctx)
}

func (o *offsetIter) Close(ctx *sql.Context) error {
	return o.source.Close(ctx)
}
