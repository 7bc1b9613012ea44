package sql

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSinglePartitionIterYieldsOnePartitionThenEOF(t *testing.T) {
	ctx := NewEmptyContext()
	iter := SinglePartitionIter()

	part, err := iter.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, []byte("0"), part.Key())

	_, err = iter.Next(ctx)
	require.Equal(t, io.EOF, err)
}

type fakeSingleTable struct {
	rows []Row
}

func (f *fakeSingleTable) Name() string   { return "fake" }
func (f *fakeSingleTable) Sorted() bool   { return false }
func (f *fakeSingleTable) Schema() Schema { return nil }
func (f *fakeSingleTable) Partitions(ctx *Context) (PartitionIter, error) {
	return SinglePartitionIter(), nil
}
func (f *fakeSingleTable) PartitionRows(ctx *Context, part Partition) (RowIter, error) {
	return NewSliceIter(f.rows), nil
}

func TestProduceFlattensSinglePartitionTable(t *testing.T) {
	tbl := &fakeSingleTable{rows: []Row{NewRow(int64(1)), NewRow(int64(2))}}
	ctx := NewEmptyContext()

	iter, err := Produce(ctx, tbl)
	require.NoError(t, err)

	rows, err := RowIterToRows(ctx, iter)
	require.NoError(t, err)
	require.Equal(t, []Row{NewRow(int64(1)), NewRow(int64(2))}, rows)
}

type multiPart struct{ n int }

func (m multiPart) Key() []byte { return []byte{byte(m.n)} }

type multiPartIter struct {
	n   int
	cur int
}

func (it *multiPartIter) Next(ctx *Context) (Partition, error) {
	if it.cur >= it.n {
		return nil, io.EOF
	}
	p := multiPart{n: it.cur}
	it.cur++
	return p, nil
}

func (it *multiPartIter) Close(ctx *Context) error { return nil }

type fakeMultiTable struct {
	partitions int
}

func (f *fakeMultiTable) Name() string   { return "fake_multi" }
func (f *fakeMultiTable) Sorted() bool   { return false }
func (f *fakeMultiTable) Schema() Schema { return nil }
func (f *fakeMultiTable) Partitions(ctx *Context) (PartitionIter, error) {
	return &multiPartIter{n: f.partitions}, nil
}
func (f *fakeMultiTable) PartitionRows(ctx *Context, part Partition) (RowIter, error) {
	mp := part.(multiPart)
	return NewSliceIter([]Row{NewRow(int64(mp.n))}), nil
}

func TestProduceFlattensAcrossMultiplePartitions(t *testing.T) {
	tbl := &fakeMultiTable{partitions: 3}
	ctx := NewEmptyContext()

	iter, err := Produce(ctx, tbl)
	require.NoError(t, err)

	rows, err := RowIterToRows(ctx, iter)
	require.NoError(t, err)
	require.Equal(t, []Row{NewRow(int64(0)), NewRow(int64(1)), NewRow(int64(2))}, rows)
}
