package rowexec

import (
	"io"

	"github.com/ralite/ralite/sql"
)

// mergeIntersectIter yields the distinct rows present in both sorted
// sources, comparing whole rows in total order. The lowerer left-folds
// this over more than two Intersection operands.
type mergeIntersectIter struct {
	left, right         sql.RowIter
	leftRow, rightRow   sql.Row
	leftDone, rightDone bool
	started             bool

	prev  sql.Row
	first bool
}

// NewMergeIntersectIter builds a sort-merge intersect iterator over two
// already-sorted, already-distinct sources.
func NewMergeIntersectIter(left, right sql.RowIter) sql.RowIter {
	return &mergeIntersectIter{left: left, right: right, first: true}
}

func (m *mergeIntersectIter) advanceLeft(ctx *sql.Context) error {
	row, err := m.left.Next(ctx)
	if err == io.EOF {
		m.leftDone = true
		m.leftRow = nil
		return nil
	}
	if err != nil {
		return err
	}
	m.leftRow = row
	return nil
}

func (m *mergeIntersectIter) advanceRight(ctx *sql.Context) error {
	row, err := m.right.Next(ctx)
	if err == io.EOF {
		m.rightDone = true
		m.rightRow = nil
		return nil
	}
	if err != nil {
		return err
	}
	m.rightRow = row
	return nil
}

func (m *mergeIntersectIter) ensureStarted(ctx *sql.Context) error {
	if m.started {
		return nil
	}
	m.started = true
	if err := m.advanceLeft(ctx); err != nil {
		return err
	}
	return m.advanceRight(ctx)
}

func (m *mergeIntersectIter) Next(ctx *sql.Context) (sql.Row, error) {
	if err := m.ensureStarted(ctx); err != nil {
		return nil, err
	}
	for {
		if m.leftDone || m.rightDone {
			return nil, io.EOF
		}
		cmp := compareRowsTotal(m.leftRow, m.rightRow)
		switch {
		case cmp < 0:
			if err := m.advanceLeft(ctx); err != nil {
				return nil, err
			}
		case cmp > 0:
			if err := m.advanceRight(ctx); err != nil {
				return nil, err
			}
		default:
			row := m.leftRow
			if err := m.advanceLeft(ctx); err != nil {
				return nil, err
			}
			if err := m.advanceRight(ctx); err != nil {
				return nil, err
			}
			if !m.first && row.Equal(m.prev) {
				continue
			}
			m.first = false
			m.prev = row
			return row, nil
		}
	}
}

func (m *mergeIntersectIter) Close(ctx *sql.Context) error {
	lerr := m.left.Close(ctx)
	rerr := m.right.Close(ctx)
	if lerr != nil {
		return lerr
	}
	return rerr
}
