package web

import (
	"maps"
	"net/url"
	"slices"

	"github.com/ardnew/tmplctx/scope"
)

// AttributeStore is the read-only contract this package consumes for
// exchange-wide and session attributes. Implementations are owned by the
// surrounding request infrastructure; this package only reads them.
type AttributeStore interface {
	// Get returns the attribute bound to name and whether it is present.
	Get(name string) (any, bool)
	// Contains reports whether name is present.
	Contains(name string) bool
	// Names returns all attribute names.
	Names() []string
}

// QueryParameterSource is the read-only contract for the request's decoded
// query parameters. A parameter may carry multiple values.
type QueryParameterSource interface {
	// Get returns the values bound to name and whether the parameter is
	// present at all.
	Get(name string) ([]string, bool)
	// Names returns all parameter names.
	Names() []string
	// Len returns the number of distinct parameter names.
	Len() int
}

// SessionHandleSource defers acquisition of the session's attributes.
// Acquire may block awaiting whatever deferred handle backs the session;
// any timeout or cancellation policy belongs to that handle. [SessionMap]
// calls Acquire at most once per render and caches the result.
type SessionHandleSource interface {
	Acquire() (AttributeStore, error)
}

// SessionFunc adapts a plain function to the [SessionHandleSource]
// interface.
type SessionFunc func() (AttributeStore, error)

// Acquire implements [SessionHandleSource] by calling f.
func (f SessionFunc) Acquire() (AttributeStore, error) { return f() }

// SessionOf returns a source yielding the given attributes without any real
// deferral. Useful for tests and for infrastructures whose session is
// already materialized.
func SessionOf(attrs AttributeStore) SessionHandleSource {
	return SessionFunc(func() (AttributeStore, error) {
		return attrs, nil
	})
}

// Attributes is a map-backed [AttributeStore].
type Attributes map[string]any

// Get implements [AttributeStore].
func (a Attributes) Get(name string) (any, bool) {
	v, ok := a[name]

	return v, ok
}

// Contains implements [AttributeStore].
func (a Attributes) Contains(name string) bool {
	_, ok := a[name]

	return ok
}

// Names implements [AttributeStore]. Names are returned sorted.
func (a Attributes) Names() []string {
	return slices.Sorted(maps.Keys(a))
}

// QueryParams is a map-backed [QueryParameterSource] with the same shape as
// [url.Values].
type QueryParams map[string][]string

// ParseQuery decodes a raw URL query string into a [QueryParams]. It is a
// thin wrapper over [url.ParseQuery].
func ParseQuery(query string) (QueryParams, error) {
	values, err := url.ParseQuery(query)
	if err != nil {
		return nil, scope.WrapError(err)
	}

	return QueryParams(values), nil
}

// Get implements [QueryParameterSource].
func (q QueryParams) Get(name string) ([]string, bool) {
	v, ok := q[name]

	return v, ok
}

// Names implements [QueryParameterSource]. Names are returned sorted.
func (q QueryParams) Names() []string {
	return slices.Sorted(maps.Keys(q))
}

// Len implements [QueryParameterSource].
func (q QueryParams) Len() int { return len(q) }
