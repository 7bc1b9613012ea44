package sql

import (
	"context"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
)

// Context carries request-scoped state through every RowIter call: the
// standard context.Context for deadline/cancellation plumbing, a logger,
// and a tracing span threaded across RowIter.Next calls.
type Context struct {
	context.Context

	id     uuid.UUID
	logger *logrus.Entry
	span   opentracing.Span
}

// NewContext wraps a context.Context with a fresh query id and a default
// logger.
func NewContext(parent context.Context) *Context {
	return &Context{
		Context: parent,
		id:      uuid.New(),
		logger:  logrus.WithField("query_id", ""),
	}
}

// NewEmptyContext returns a Context suitable for tests and one-off calls
// that don't need a caller-supplied context.Context.
func NewEmptyContext() *Context {
	return NewContext(context.Background())
}

// QueryID returns the id assigned to this context when it was created.
func (c *Context) QueryID() uuid.UUID { return c.id }

// GetLogger returns the logger associated with this context, tagged with
// the query id for correlation.
func (c *Context) GetLogger() *logrus.Entry {
	if c.logger == nil {
		return logrus.WithField("query_id", c.id.String())
	}
	return c.logger.WithField("query_id", c.id.String())
}

// WithLogger returns a copy of the context using the given logger.
func (c *Context) WithLogger(logger *logrus.Entry) *Context {
	cp := *c
	cp.logger = logger
	return &cp
}

// Span returns the active tracing span, if any.
func (c *Context) Span() opentracing.Span { return c.span }

// StartSpan starts a child span named operationName, returning a derived
// Context carrying it and a finish function the caller must invoke.
func (c *Context) StartSpan(operationName string) (*Context, func()) {
	var span opentracing.Span
	if c.span != nil {
		span = opentracing.StartSpan(operationName, opentracing.ChildOf(c.span.Context()))
	} else {
		span = opentracing.StartSpan(operationName)
	}
	cp := *c
	cp.span = span
	return &cp, func() { span.Finish() }
}
