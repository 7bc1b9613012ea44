package plan

import goerrors "gopkg.in/src-d/go-errors.v1"

// ErrInvalidChildCount is returned by WithChildren when called with the
// wrong number of replacement children for a node's fixed arity.
var ErrInvalidChildCount = goerrors.NewKind("plan node expects %d children, got %d")

// ErrMinChildCount is returned by variadic nodes' WithChildren when called
// below their minimum arity.
var ErrMinChildCount = goerrors.NewKind("plan node expects at least %d children, got %d")
