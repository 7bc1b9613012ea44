package sql

import "io"

// Partition is an opaque chunk of a Table's rows. Most providers (and every
// provider in this engine's test corpus) expose exactly one partition; the
// interface exists so a provider backed by something sharded is not forced
// to flatten itself just to satisfy Table.
type Partition interface {
	Key() []byte
}

// PartitionIter yields the partitions of a Table.
type PartitionIter interface {
	Next(ctx *Context) (Partition, error)
	Close(ctx *Context) error
}

// Table is the contract an external data source satisfies to be
// queried. Providers are re-entrant: Partitions/PartitionRows may be
// called more than once and must start over each time.
type Table interface {
	Name() string
	// Sorted is true iff rows emerge in ascending lexicographic order of
	// all columns.
	Sorted() bool
	// Schema returns the column metadata, or nil if undefined, in which
	// case the driver falls back to row inspection.
	Schema() Schema
	Partitions(ctx *Context) (PartitionIter, error)
	PartitionRows(ctx *Context, part Partition) (RowIter, error)
}

// singlePartition is the Partition used by tables that don't shard.
type singlePartition struct{}

func (singlePartition) Key() []byte { return []byte("0") }

type singlePartitionIter struct{ done bool }

func (it *singlePartitionIter) Next(ctx *Context) (Partition, error) {
	if it.done {
		return nil, io.EOF
	}
	it.done = true
	return singlePartition{}, nil
}

func (it *singlePartitionIter) Close(ctx *Context) error { return nil }

// SinglePartitionIter returns a PartitionIter over one partition, the
// helper unsharded providers use to implement Table.Partitions.
func SinglePartitionIter() PartitionIter { return &singlePartitionIter{} }

// Produce runs a Table to completion across all of its partitions and
// returns one flattened RowIter, which is what the lowerer uses for a
// Table leaf, wrapped in a Tee when the leaf has more than one consumer.
func Produce(ctx *Context, t Table) (RowIter, error) {
	parts, err := t.Partitions(ctx)
	if err != nil {
		return nil, err
	}
	return &multiPartitionIter{ctx: ctx, table: t, parts: parts}, nil
}

type multiPartitionIter struct {
	ctx   *Context
	table Table
	parts PartitionIter
	cur   RowIter
}

func (m *multiPartitionIter) Next(ctx *Context) (Row, error) {
	for {
		if m.cur == nil {
			part, err := m.parts.Next(ctx)
			if err == io.EOF {
				return nil, io.EOF
			}
			if err != nil {
				return nil, err
			}
			cur, err := m.table.PartitionRows(ctx, part)
			if err != nil {
				return nil, err
			}
			m.cur = cur
		}
		row, err := m.cur.Next(ctx)
		if err == io.EOF {
			_ = m.cur.Close(ctx)
			m.cur = nil
			continue
		}
		if err != nil {
			return nil, err
		}
		return row, nil
	}
}

func (m *multiPartitionIter) Close(ctx *Context) error {
	if m.cur != nil {
		_ = m.cur.Close(ctx)
	}
	return m.parts.Close(ctx)
}

// Database is a named collection of tables.
type Database interface {
	Name() string
	GetTableInsensitive(ctx *Context, name string) (Table, bool, error)
}

// DatabaseProvider resolves database names to Databases, and backs the
// dynamic "pkg.Table" lookup form: a provider may be asked to resolve a
// package name as if it were a database.
type DatabaseProvider interface {
	Database(name string) (Database, error)
	HasDatabase(name string) bool
	AllDatabases() []Database
}
