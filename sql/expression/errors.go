package expression

import goerrors "gopkg.in/src-d/go-errors.v1"

// ErrInvalidChildren is returned by WithChildren implementations when
// called with the wrong arity for the node.
var ErrInvalidChildren = goerrors.NewKind("invalid number of children for expression").New()

var errUnresolvedColumn = goerrors.NewKind("unresolved column reference: %s")

// errNotScalar is returned when a non-scalar term (a List) is evaluated
// directly instead of through a containing In.
var errNotScalar = goerrors.NewKind("%s is not a scalar expression")

var errUnknownFunction = goerrors.NewKind("unknown function: %s")

var errWrongArity = goerrors.NewKind("function %s expects %d argument(s), got %d")

var errNotNumeric = goerrors.NewKind("function %s expects a numeric argument, got %s")
