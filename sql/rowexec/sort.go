package rowexec

import (
	"io"
	"sort"

	"github.com/ralite/ralite/sql"
)

// sortIter materializes its source and yields rows in total order
// (Null < Bool < Int64 < Float64 < Text, lexicographic across all
// columns left to right). Used to establish sortedness ahead of
// Union, Intersection and Distinct when a source isn't already sorted;
// join sides are sorted by OrderBy instead.
type sortIter struct {
	rows []sql.Row
	pos  int
}

// NewSortIter reads every row from source eagerly and returns an iterator
// over them in total order.
func NewSortIter(ctx *sql.Context, source sql.RowIter) (sql.RowIter, error) {
	var rows []sql.Row
	for {
		row, err := source.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			source.Close(ctx)
			return nil, err
		}
		rows = append(rows, row)
	}
	if err := source.Close(ctx); err != nil {
		return nil, err
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return compareRowsTotal(rows[i], rows[j]) < 0
	})
	return &sortIter{rows: rows}, nil
}

func compareRowsTotal(a, b sql.Row) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := a[i].CompareTotal(b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

func (s *sortIter) Next(ctx *sql.Context) (sql.Row, error) {
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.pos]
	s.pos++
	return row, nil
}

func (s *sortIter) Close(ctx *sql.Context) error { return nil }
