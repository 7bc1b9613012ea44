package rowexec

import (
	"io"

	"github.com/ralite/ralite/sql"
)

// unionMergeIter is a distinct sorted merge: a k-way merge of
// already-sorted sources that yields each distinct row exactly once. When
// sources have differing column counts, the wide sources are projected down
// to the narrowest common prefix width -- callers are expected to have
// checked the schemas actually overlap before relying on this fallback.
type unionMergeIter struct {
	sources []sql.RowIter
	heads   []sql.Row
	done    []bool
	width   int

	started bool
	prev    sql.Row
	first   bool
}

// NewUnionMergeIter builds a DistinctSortedMerge iterator over sorted sources.
func NewUnionMergeIter(sources []sql.RowIter) sql.RowIter {
	return &unionMergeIter{
		sources: sources,
		heads:   make([]sql.Row, len(sources)),
		done:    make([]bool, len(sources)),
		first:   true,
	}
}

func (u *unionMergeIter) fillHead(ctx *sql.Context, i int) error {
	row, err := u.sources[i].Next(ctx)
	if err == io.EOF {
		u.done[i] = true
		u.heads[i] = nil
		return nil
	}
	if err != nil {
		return err
	}
	u.heads[i] = row
	return nil
}

func (u *unionMergeIter) ensureStarted(ctx *sql.Context) error {
	if u.started {
		return nil
	}
	u.started = true
	u.width = -1
	for i := range u.sources {
		if err := u.fillHead(ctx, i); err != nil {
			return err
		}
		if u.heads[i] != nil {
			if u.width == -1 || len(u.heads[i]) < u.width {
				u.width = len(u.heads[i])
			}
		}
	}
	return nil
}

func (u *unionMergeIter) narrow(row sql.Row) sql.Row {
	if len(row) == u.width {
		return row
	}
	return row[:u.width]
}

// smallestHead returns the index of the source whose head row compares
// smallest (in total order, over the common width), or -1 if all sources
// are exhausted.
func (u *unionMergeIter) smallestHead() int {
	best := -1
	for i, row := range u.heads {
		if u.done[i] {
			continue
		}
		if best == -1 || compareRowsTotal(u.narrow(row), u.narrow(u.heads[best])) < 0 {
			best = i
		}
	}
	return best
}

func (u *unionMergeIter) Next(ctx *sql.Context) (sql.Row, error) {
	if err := u.ensureStarted(ctx); err != nil {
		return nil, err
	}

	for {
		i := u.smallestHead()
		if i == -1 {
			return nil, io.EOF
		}
		row := u.narrow(u.heads[i])

		if !u.first && row.Equal(u.prev) {
			if err := u.fillHead(ctx, i); err != nil {
				return nil, err
			}
			continue
		}

		// advance every source whose head equals the chosen row, so later
		// duplicates across sources are skipped rather than re-emitted.
		for j := range u.sources {
			if u.done[j] || j == i {
				continue
			}
			if compareRowsTotal(u.narrow(u.heads[j]), row) == 0 {
				if err := u.fillHead(ctx, j); err != nil {
					return nil, err
				}
			}
		}
		if err := u.fillHead(ctx, i); err != nil {
			return nil, err
		}

		u.first = false
		u.prev = row
		return row, nil
	}
}

func (u *unionMergeIter) Close(ctx *sql.Context) error {
	var firstErr error
	for _, s := range u.sources {
		if err := s.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// hashIntersectIter intersects by hashing the build side rather than
// merging sorted inputs. The lowerer always selects the sort-merge path
// for Intersection, so builder.go never constructs this; it is kept for
// sources whose sortedness cannot be guaranteed cheaply, and is tested
// directly.
type hashIntersectIter struct {
	probe sql.RowIter
	build map[string]bool
}

// NewHashIntersectIter intersects probe against the rows of build (fully
// materialized into a hash set keyed by rowKey, built from each value's String()).
func NewHashIntersectIter(ctx *sql.Context, probe, build sql.RowIter) (sql.RowIter, error) {
	set := make(map[string]bool)
	for {
		row, err := build.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			build.Close(ctx)
			return nil, err
		}
		set[rowKey(row)] = true
	}
	if err := build.Close(ctx); err != nil {
		return nil, err
	}
	return &hashIntersectIter{probe: probe, build: set}, nil
}

func rowKey(row sql.Row) string {
	var key string
	for _, v := range row {
		key += v.String() + "\x00"
	}
	return key
}

func (h *hashIntersectIter) Next(ctx *sql.Context) (sql.Row, error) {
	for {
		row, err := h.probe.Next(ctx)
		if err != nil {
			return nil, err
		}
		if h.build[rowKey(row)] {
			return row, nil
		}
	}
}

func (h *hashIntersectIter) Close(ctx *sql.Context) error {
	return h.probe.Close(ctx)
}
