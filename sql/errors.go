package sql

import goerrors "gopkg.in/src-d/go-errors.v1"

// Error kinds surfaced at the driver boundary.
// Planning errors abort the query before any row is produced; runtime
// errors during produce() propagate out of the root and terminate
// iteration, with partial output already emitted retained by the caller.
var (
	ErrTableDoesNotExist       = goerrors.NewKind("table does not exist: %s")
	ErrTableAlreadyExists      = goerrors.NewKind("table already exists: %s")
	ErrUnknownColumn           = goerrors.NewKind("unknown column: %s")
	ErrAmbiguousColumn         = goerrors.NewKind("ambiguous column: %s")
	ErrColumnMetadataUndefined = goerrors.NewKind("column metadata undefined for table: %s")
	ErrJoinHasNoOnClause       = goerrors.NewKind("join has no ON clause: %s")
	ErrUnknownOperator         = goerrors.NewKind("unknown operator: %s")
	ErrSyntax                  = goerrors.NewKind("syntax error at line %d, column %d: %s")

	// errEmptySet is not returned anywhere: the lowerer short-circuits
	// trivially empty plans by checking for plan.EmptySet children
	// directly, so it is never surfaced to the caller.
	errEmptySet = goerrors.NewKind("internal: empty set short-circuit")
)
