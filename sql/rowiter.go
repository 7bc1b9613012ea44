package sql

import "io"

// RowIter is the physical iterator contract: Next yields rows
// one at a time, returning io.EOF once exhausted; Close releases any
// buffered state. There is no parallelism -- Next is always called from a
// single goroutine, and suspension points are exactly its call
// boundaries.
type RowIter interface {
	Next(ctx *Context) (Row, error)
	Close(ctx *Context) error
}

// RowIterToRows drains iter completely, releasing it when done. Used by
// callers that want a materialized []Row instead of streaming (tests,
// CSV/table formatters).
func RowIterToRows(ctx *Context, iter RowIter) ([]Row, error) {
	var rows []Row
	for {
		row, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			_ = iter.Close(ctx)
			return rows, err
		}
		rows = append(rows, row)
	}
	return rows, iter.Close(ctx)
}

// sliceIter is a RowIter over an already-materialized slice of rows. In this
// module only tests use it.
type sliceIter struct {
	rows []Row
	pos  int
}

// NewSliceIter returns a RowIter over the given rows.
func NewSliceIter(rows []Row) RowIter {
	return &sliceIter{rows: rows}
}

func (s *sliceIter) Next(ctx *Context) (Row, error) {
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.pos]
	s.pos++
	return row, nil
}

func (s *sliceIter) Close(ctx *Context) error { return nil }
