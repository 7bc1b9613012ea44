package sql

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRowConvertsLiterals(t *testing.T) {
	row := NewRow(int64(1), "ed", true, 1.5, nil)
	require.Equal(t, Row{
		NewInt64(1),
		NewText("ed"),
		NewBool(true),
		NewFloat64(1.5),
		Null,
	}, row)
}

func TestNewRowConvertsIntAndFloat32(t *testing.T) {
	row := NewRow(5, float32(2.5))
	require.Equal(t, NewInt64(5), row[0])
	require.Equal(t, NewFloat64(2.5), row[1])
}

func TestNewRowPassesThroughValue(t *testing.T) {
	row := NewRow(NewText("raw"))
	require.Equal(t, NewText("raw"), row[0])
}

func TestNewRowPanicsOnUnsupportedType(t *testing.T) {
	require.Panics(t, func() {
		NewRow(struct{}{})
	})
}

func TestRowAppendConcatenates(t *testing.T) {
	left := NewRow(int64(1))
	right := NewRow("a", "b")

	got := left.Append(right)
	require.Equal(t, NewRow(int64(1), "a", "b"), got)
	require.Len(t, left, 1)
}

func TestRowEqual(t *testing.T) {
	a := NewRow(int64(1), "x")
	b := NewRow(int64(1), "x")
	c := NewRow(int64(1), "y")

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.False(t, a.Equal(NewRow(int64(1))))
}

func TestRowCopyIsIndependent(t *testing.T) {
	orig := NewRow(int64(1))
	copied := orig.Copy()
	copied[0] = NewInt64(2)

	require.Equal(t, NewInt64(1), orig[0])
	require.Equal(t, NewInt64(2), copied[0])
}
