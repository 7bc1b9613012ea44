package rowexec

import (
	"io"

	"github.com/mitchellh/hashstructure"

	"github.com/ralite/ralite/sql"
)

// groupByHashIter builds a hash set keyed by the projected columns of each
// source row and, on the first Next call, emits one row per distinct
// key. The registry narrows to the grouped columns:
// each emitted row holds only the group-by key's columns, in the order
// given to NewGroupByHashIter.
type groupByHashIter struct {
	source  sql.RowIter
	keyIdxs []int

	built bool
	rows  []sql.Row
	pos   int
}

// NewGroupByHashIter builds a GroupByHash iterator over keyIdxs.
func NewGroupByHashIter(source sql.RowIter, keyIdxs []int) sql.RowIter {
	return &groupByHashIter{source: source, keyIdxs: keyIdxs}
}

func (g *groupByHashIter) build(ctx *sql.Context) error {
	seen := make(map[uint64]bool)
	for {
		row, err := g.source.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			g.source.Close(ctx)
			return err
		}
		key, err := groupKey(row, g.keyIdxs)
		if err != nil {
			g.source.Close(ctx)
			return err
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		projected := make(sql.Row, len(g.keyIdxs))
		for i, idx := range g.keyIdxs {
			projected[i] = row[idx]
		}
		g.rows = append(g.rows, projected)
	}
	g.built = true
	return g.source.Close(ctx)
}

// hashablePart mirrors a sql.Value's Kind/payload through exported fields:
// hashstructure skips unexported struct fields, and every field behind
// sql.Value's accessors is unexported, so hashing a Value directly would
// collapse every row to the same key regardless of content.
type hashablePart struct {
	Kind sql.Kind
	Val  interface{}
}

// groupKey hashes the group-by column values into a single uint64 via
// hashstructure.
func groupKey(row sql.Row, keyIdxs []int) (uint64, error) {
	parts := make([]hashablePart, len(keyIdxs))
	for i, idx := range keyIdxs {
		v := row[idx]
		part := hashablePart{Kind: v.Kind()}
		switch v.Kind() {
		case sql.KindBool:
			part.Val = v.Bool()
		case sql.KindInt64:
			part.Val = v.Int64()
		case sql.KindFloat64:
			part.Val = v.Float64()
		case sql.KindText:
			part.Val = v.Text()
		}
		parts[i] = part
	}
	return hashstructure.Hash(parts, nil)
}

func (g *groupByHashIter) Next(ctx *sql.Context) (sql.Row, error) {
	if !g.built {
		if err := g.build(ctx); err != nil {
			return nil, err
		}
	}
	if g.pos >= len(g.rows) {
		return nil, io.EOF
	}
	row := g.rows[g.pos]
	g.pos++
	return row, nil
}

func (g *groupByHashIter) Close(ctx *sql.Context) error { return nil }
