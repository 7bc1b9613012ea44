// Package memory implements the reference sql.Table provider: a
// fixed set of rows held in a slice, used by the engine's own test suite
// and as the simplest possible example of a table provider.
package memory

import (
	"io"

	"github.com/ralite/ralite/sql"
)

// Table is an in-memory, re-entrant sql.Table: Partitions/PartitionRows
// may be called repeatedly and always replay the same rows from the start.
type Table struct {
	name   string
	schema sql.Schema
	rows   []sql.Row
	sorted bool
}

// NewTable builds a table from a static row set. Its Sorted() reports
// false; NewSortedTable builds one that reports true.
func NewTable(name string, schema sql.Schema, rows []sql.Row) *Table {
	return &Table{name: name, schema: schema, rows: rows}
}

// NewSortedTable is NewTable with the sorted flag set, for providers that
// are known to emit rows in order (lets the lowerer skip an OrderBy).
func NewSortedTable(name string, schema sql.Schema, rows []sql.Row) *Table {
	return &Table{name: name, schema: schema, rows: rows, sorted: true}
}

func (t *Table) Name() string       { return t.name }
func (t *Table) Sorted() bool       { return t.sorted }
func (t *Table) Schema() sql.Schema { return t.schema }
func (t *Table) String() string     { return t.name }

// Insert appends a row, for building up a table programmatically (tests
// and example providers).
func (t *Table) Insert(row sql.Row) { t.rows = append(t.rows, row) }

func (t *Table) Partitions(ctx *sql.Context) (sql.PartitionIter, error) {
	return sql.SinglePartitionIter(), nil
}

func (t *Table) PartitionRows(ctx *sql.Context, part sql.Partition) (sql.RowIter, error) {
	rows := make([]sql.Row, len(t.rows))
	copy(rows, t.rows)
	return &rowSliceIter{rows: rows}, nil
}

type rowSliceIter struct {
	rows []sql.Row
	pos  int
}

func (it *rowSliceIter) Next(ctx *sql.Context) (sql.Row, error) {
	if it.pos >= len(it.rows) {
		return nil, io.EOF
	}
	row := it.rows[it.pos]
	it.pos++
	return row, nil
}

func (it *rowSliceIter) Close(ctx *sql.Context) error { return nil }

var _ sql.Table = (*Table)(nil)
