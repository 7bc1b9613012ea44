package rowexec

import (
	"io"

	"github.com/ralite/ralite/sql"
)

// mergeLeftJoinIter is the sort-merge left outer join: every row of the driving
// (left) side is emitted at least once. Rows with no match on the probe
// (right) side are padded with Nulls for the right side's column count.
// Both sides must be sorted ascending on their join column.
type mergeLeftJoinIter struct {
	left, right       sql.RowIter
	leftIdx, rightIdx int
	rightWidth        int

	leftRow, rightRow   sql.Row
	leftDone, rightDone bool

	pending []sql.Row
	pendPos int
}

// NewMergeLeftJoinIter builds a sort-merge left outer join iterator.
// rightWidth is the column count of the right side's schema, used to pad
// unmatched left rows with Nulls.
func NewMergeLeftJoinIter(left, right sql.RowIter, leftIdx, rightIdx, rightWidth int) sql.RowIter {
	return &mergeLeftJoinIter{left: left, right: right, leftIdx: leftIdx, rightIdx: rightIdx, rightWidth: rightWidth}
}

func (m *mergeLeftJoinIter) advanceLeft(ctx *sql.Context) error {
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

func (m *mergeLeftJoinIter) advanceRight(ctx *sql.Context) error {
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

func (m *mergeLeftJoinIter) ensureStarted(ctx *sql.Context) error {
	if m.leftRow == nil && !m.leftDone {
		if err := m.advanceLeft(ctx); err != nil {
			return err
		}
	}
	if m.rightRow == nil && !m.rightDone {
		if err := m.advanceRight(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (m *mergeLeftJoinIter) nullPad() sql.Row {
	row := make(sql.Row, m.rightWidth)
	for i := range row {
		row[i] = sql.Null
	}
	return row
}

func (m *mergeLeftJoinIter) Next(ctx *sql.Context) (sql.Row, error) {
	if err := m.ensureStarted(ctx); err != nil {
		return nil, err
	}

	for {
		if m.pendPos < len(m.pending) {
			row := m.pending[m.pendPos]
			m.pendPos++
			return row, nil
		}
		m.pending = nil
		m.pendPos = 0

		if m.leftDone {
			return nil, io.EOF
		}

		if m.rightDone {
			row := m.leftRow.Append(m.nullPad())
			if err := m.advanceLeft(ctx); err != nil {
				return nil, err
			}
			return row, nil
		}

		lKey := m.leftRow[m.leftIdx]
		rKey := m.rightRow[m.rightIdx]

		if lKey.IsNull() {
			row := m.leftRow.Append(m.nullPad())
			if err := m.advanceLeft(ctx); err != nil {
				return nil, err
			}
			return row, nil
		}
		if rKey.IsNull() {
			if err := m.advanceRight(ctx); err != nil {
				return nil, err
			}
			continue
		}

		cmp := lKey.CompareTotal(rKey)
		switch {
		case cmp < 0:
			row := m.leftRow.Append(m.nullPad())
			if err := m.advanceLeft(ctx); err != nil {
				return nil, err
			}
			return row, nil
		case cmp > 0:
			if err := m.advanceRight(ctx); err != nil {
				return nil, err
			}
		default:
			var rightRun []sql.Row
			for !m.rightDone && m.rightRow[m.rightIdx].CompareTotal(rKey) == 0 {
				rightRun = append(rightRun, m.rightRow)
				if err := m.advanceRight(ctx); err != nil {
					return nil, err
				}
			}
			for !m.leftDone && m.leftRow[m.leftIdx].CompareTotal(lKey) == 0 {
				for _, r := range rightRun {
					m.pending = append(m.pending, m.leftRow.Append(r))
				}
				if err := m.advanceLeft(ctx); err != nil {
					return nil, err
				}
			}
		}
	}
}

func (m *mergeLeftJoinIter) Close(ctx *sql.Context) error {
	lerr := m.left.Close(ctx)
	rerr := m.right.Close(ctx)
	if lerr != nil {
		return lerr
	}
	return rerr
}

// mergeRightJoinIter is mergeLeftJoinIter with the driving side on the
// right: every right row is emitted at least once, padded on the left with
// Nulls when unmatched. Implemented by delegating to mergeLeftJoinIter with
// sides swapped and the output columns flipped back into left-then-right
// order.
type mergeRightJoinIter struct {
	inner     *mergeLeftJoinIter
	leftWidth int
}

// NewMergeRightJoinIter builds a sort-merge right outer join iterator.
// leftWidth is the column count of the left side's schema.
func NewMergeRightJoinIter(left, right sql.RowIter, leftIdx, rightIdx, leftWidth int) sql.RowIter {
	return &mergeRightJoinIter{
		inner:     &mergeLeftJoinIter{left: right, right: left, leftIdx: rightIdx, rightIdx: leftIdx, rightWidth: leftWidth},
		leftWidth: leftWidth,
	}
}

func (m *mergeRightJoinIter) Next(ctx *sql.Context) (sql.Row, error) {
	row, err := m.inner.Next(ctx)
	if err != nil {
		return nil, err
	}
	// inner yields (right-cols..., left-cols...); restore left-then-right.
	leftPart := row[len(row)-m.leftWidth:]
	rightPart := row[:len(row)-m.leftWidth]
	out := make(sql.Row, 0, len(row))
	out = append(out, leftPart...)
	out = append(out, rightPart...)
	return out, nil
}

func (m *mergeRightJoinIter) Close(ctx *sql.Context) error {
	return m.inner.Close(ctx)
}
