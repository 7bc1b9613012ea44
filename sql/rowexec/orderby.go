package rowexec

import (
	"container/heap"
	"io"

	"github.com/ralite/ralite/sql"
)

// orderByIter sorts rows by a list of key column indices, using a binary
// heap so the whole input need not be buffered as a slice before the first
// comparison, in contrast to Sort's flat materialize-then-sort. A Null key value sorts after every
// non-Null value of its column and two Nulls compare equal there; rows
// equal on every key come out in whatever order the heap produces.
type orderByIter struct {
	source  sql.RowIter
	keyIdxs []int
	desc    []bool

	h    *rowHeap
	done bool
}

// NewOrderByIter builds an OrderBy iterator over keyIdxs, each paired with
// a descending flag in desc (same length).
func NewOrderByIter(ctx *sql.Context, source sql.RowIter, keyIdxs []int, desc []bool) (sql.RowIter, error) {
	it := &orderByIter{source: source, keyIdxs: keyIdxs, desc: desc, h: &rowHeap{}}
	for {
		row, err := source.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			source.Close(ctx)
			return nil, err
		}
		heap.Push(it.h, orderByRow{row: row, keyIdxs: keyIdxs, desc: desc})
	}
	if err := source.Close(ctx); err != nil {
		return nil, err
	}
	return it, nil
}

func (it *orderByIter) Next(ctx *sql.Context) (sql.Row, error) {
	if it.h.Len() == 0 {
		return nil, io.EOF
	}
	r := heap.Pop(it.h).(orderByRow)
	return r.row, nil
}

func (it *orderByIter) Close(ctx *sql.Context) error { return nil }

type orderByRow struct {
	row     sql.Row
	keyIdxs []int
	desc    []bool
}

func (r orderByRow) less(other orderByRow) bool {
	for i, idx := range r.keyIdxs {
		a, b := r.row[idx], other.row[idx]
		if a.IsNull() && b.IsNull() {
			continue
		}
		if a.IsNull() {
			return false
		}
		if b.IsNull() {
			return true
		}
		c := a.CompareTotal(b)
		if c == 0 {
			continue
		}
		if r.desc[i] {
			return c > 0
		}
		return c < 0
	}
	return false
}

type rowHeap []orderByRow

func (h rowHeap) Len() int            { return len(h) }
func (h rowHeap) Less(i, j int) bool  { return h[i].less(h[j]) }
func (h rowHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *rowHeap) Push(x interface{}) { *h = append(*h, x.(orderByRow)) }
func (h *rowHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
