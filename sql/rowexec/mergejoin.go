package rowexec

import (
	"io"

	"github.com/ralite/ralite/sql"
)

// mergeInnerJoinIter is the sort-merge inner join: both sources must be
// sorted ascending on their respective join column. Rows with a Null join
// key are skipped (SQL `=` semantics, never equal to anything).
//
// legacySingletonDuplicates selects between two behaviors for equal-key
// duplicates on both sides: false (the default) produces the full
// Cartesian product of a run of equal keys; true reproduces an older
// "pairs plus singletons" quirk, where only the first row on each side pairs across, and any
// further rows on either side are each emitted paired with just the first
// row of the other side rather than with every row of the other side.
type mergeInnerJoinIter struct {
	left, right               sql.RowIter
	leftIdx, rightIdx         int
	legacySingletonDuplicates bool

	leftRow, rightRow   sql.Row
	leftDone, rightDone bool

	pending []sql.Row
	pendPos int
}

// NewMergeInnerJoinIter builds a sort-merge inner join iterator.
func NewMergeInnerJoinIter(left, right sql.RowIter, leftIdx, rightIdx int, legacySingletonDuplicates bool) sql.RowIter {
	return &mergeInnerJoinIter{
		left: left, right: right,
		leftIdx: leftIdx, rightIdx: rightIdx,
		legacySingletonDuplicates: legacySingletonDuplicates,
	}
}

func (m *mergeInnerJoinIter) advanceLeft(ctx *sql.Context) error {
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

func (m *mergeInnerJoinIter) advanceRight(ctx *sql.Context) error {
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

func (m *mergeInnerJoinIter) ensureStarted(ctx *sql.Context) error {
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

func (m *mergeInnerJoinIter) Next(ctx *sql.Context) (sql.Row, error) {
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

		if m.leftDone || m.rightDone {
			return nil, io.EOF
		}

		lKey := m.leftRow[m.leftIdx]
		rKey := m.rightRow[m.rightIdx]

		if lKey.IsNull() {
			if err := m.advanceLeft(ctx); err != nil {
				return nil, err
			}
			continue
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
			if err := m.advanceLeft(ctx); err != nil {
				return nil, err
			}
		case cmp > 0:
			if err := m.advanceRight(ctx); err != nil {
				return nil, err
			}
		default:
			leftRun, err := m.collectRun(ctx, true)
			if err != nil {
				return nil, err
			}
			rightRun, err := m.collectRun(ctx, false)
			if err != nil {
				return nil, err
			}
			m.pending = m.pairRuns(leftRun, rightRun)
		}
	}
}

// collectRun gathers every remaining row (starting with the current one)
// whose join key equals the current key on the given side, advancing that
// side past the run.
func (m *mergeInnerJoinIter) collectRun(ctx *sql.Context, left bool) ([]sql.Row, error) {
	var run []sql.Row
	if left {
		key := m.leftRow[m.leftIdx]
		for !m.leftDone && m.leftRow[m.leftIdx].CompareTotal(key) == 0 {
			run = append(run, m.leftRow)
			if err := m.advanceLeft(ctx); err != nil {
				return nil, err
			}
		}
		return run, nil
	}
	key := m.rightRow[m.rightIdx]
	for !m.rightDone && m.rightRow[m.rightIdx].CompareTotal(key) == 0 {
		run = append(run, m.rightRow)
		if err := m.advanceRight(ctx); err != nil {
			return nil, err
		}
	}
	return run, nil
}

func (m *mergeInnerJoinIter) pairRuns(left, right []sql.Row) []sql.Row {
	if !m.legacySingletonDuplicates {
		out := make([]sql.Row, 0, len(left)*len(right))
		for _, l := range left {
			for _, r := range right {
				out = append(out, l.Append(r))
			}
		}
		return out
	}

	// Legacy quirk: pair the first row of each run across, then emit every
	// further row on either side paired only with the other side's first row.
	var out []sql.Row
	if len(left) > 0 && len(right) > 0 {
		out = append(out, left[0].Append(right[0]))
	}
	for _, l := range left[1:] {
		if len(right) > 0 {
			out = append(out, l.Append(right[0]))
		}
	}
	for _, r := range right[1:] {
		if len(left) > 0 {
			out = append(out, left[0].Append(r))
		}
	}
	return out
}

func (m *mergeInnerJoinIter) Close(ctx *sql.Context) error {
	lerr := m.left.Close(ctx)
	rerr := m.right.Close(ctx)
	if lerr != nil {
		return lerr
	}
	return rerr
}
