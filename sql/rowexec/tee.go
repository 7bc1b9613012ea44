package rowexec

import (
	"io"

	"github.com/ralite/ralite/sql"
)

// teeSource is the shared state behind a Tee: it pulls from the underlying
// source at most once per row, buffering rows so every tap can replay them
// independently regardless of how far ahead or behind the other taps
// are. Tee elimination (teeelim.go) counts consumers before building,
// so a Tee is only built for a source with more than one consumer.
type teeSource struct {
	source sql.RowIter
	rows   []sql.Row
	done   bool
}

func newTeeSource(source sql.RowIter) *teeSource {
	return &teeSource{source: source}
}

func (t *teeSource) at(ctx *sql.Context, pos int) (sql.Row, error) {
	for pos >= len(t.rows) && !t.done {
		row, err := t.source.Next(ctx)
		if err == io.EOF {
			t.done = true
			if err := t.source.Close(ctx); err != nil {
				return nil, err
			}
			break
		}
		if err != nil {
			return nil, err
		}
		t.rows = append(t.rows, row)
	}
	if pos >= len(t.rows) {
		return nil, io.EOF
	}
	return t.rows[pos], nil
}

// teeTap is one independent reader over a teeSource.
type teeTap struct {
	shared *teeSource
	pos    int
}

// NewTee builds n independent iterators, each replaying all of source's
// rows from the start.
func NewTee(source sql.RowIter, n int) []sql.RowIter {
	shared := newTeeSource(source)
	taps := make([]sql.RowIter, n)
	for i := range taps {
		taps[i] = &teeTap{shared: shared}
	}
	return taps
}

func (t *teeTap) Next(ctx *sql.Context) (sql.Row, error) {
	row, err := t.shared.at(ctx, t.pos)
	if err != nil {
		return nil, err
	}
	t.pos++
	return row, nil
}

func (t *teeTap) Close(ctx *sql.Context) error { return nil }
