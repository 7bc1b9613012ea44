package rowexec

import (
	"github.com/ralite/ralite/sql"
)

// distinctIter drops adjacent structurally-equal rows. Requires sorted
// input -- non-adjacent duplicates are not caught. This is deliberately a
// simple adjacent-dedup pass, relying on the lowerer to insert a Sort
// ahead of it when needed.
type distinctIter struct {
	source sql.RowIter
	prev   sql.Row
	first  bool
}

// NewDistinctIter builds a Distinct iterator over already-sorted source rows.
func NewDistinctIter(source sql.RowIter) sql.RowIter {
	return &distinctIter{source: source, first: true}
}

func (d *distinctIter) Next(ctx *sql.Context) (sql.Row, error) {
	for {
		row, err := d.source.Next(ctx)
		if err != nil {
			return nil, err
		}
		if d.first || !row.Equal(d.prev) {
			d.first = false
			d.prev = row
			return row, nil
		}
	}
}

func (d *distinctIter) Close(ctx *sql.Context) error {
	return d.source.Close(ctx)
}
