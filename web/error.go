package web

import (
	"errors"

	"github.com/ardnew/tmplctx/scope"
)

// Predefined errors (sentinel values).
var (
	ErrReservedName   = scope.NewError("variable name is a reserved word")
	ErrImmutableMap   = scope.NewError("map is immutable")
	ErrSessionAcquire = scope.NewError("failed to acquire session")

	// ErrContainsValue is returned by the virtualized views' value
	// containment query. The views answer every key containment query with
	// true, and a correct value containment implementation would be
	// inconsistent with that, so the operation is unsupported.
	ErrContainsValue = scope.NewError("map does not support value containment").
			Wrap(errors.ErrUnsupported)
)
