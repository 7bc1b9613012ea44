package sql

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewEmptyContextAssignsQueryID(t *testing.T) {
	ctx := NewEmptyContext()
	require.NotEqual(t, "", ctx.QueryID().String())
}

func TestContextGetLoggerIncludesQueryID(t *testing.T) {
	ctx := NewEmptyContext()
	entry := ctx.GetLogger()
	require.Equal(t, ctx.QueryID().String(), entry.Data["query_id"])
}

func TestContextStartSpanReturnsDerivedContext(t *testing.T) {
	ctx := NewEmptyContext()
	child, finish := ctx.StartSpan("op")
	defer finish()

	require.NotNil(t, child.Span())
	require.Equal(t, ctx.QueryID(), child.QueryID())
}

func TestContextWithLoggerReplacesLogger(t *testing.T) {
	ctx := NewEmptyContext()
	custom := ctx.GetLogger().WithField("extra", "x")
	next := ctx.WithLogger(custom)

	require.Equal(t, "x", next.GetLogger().Data["extra"])
}
