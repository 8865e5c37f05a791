package web

import (
	"github.com/ardnew/tmplctx/scope"
)

var _ VarsMap = (*SessionMap)(nil)

// SessionMap is the read-through view over the session's attributes bound to
// the reserved "session" variable.
//
// The session handle is not acquired, and whatever blocking that acquisition
// implies is not performed, until the first read operation. The acquired
// store is then cached for the lifetime of the view; a failed acquisition is
// not cached, so a later read retries.
type SessionMap struct {
	emptyMap

	source SessionHandleSource
	attrs  AttributeStore
}

// NewSessionMap creates the view over the given deferred session handle.
func NewSessionMap(source SessionHandleSource) *SessionMap {
	return &SessionMap{source: source}
}

// store acquires the session attributes on first use.
func (m *SessionMap) store() (AttributeStore, error) {
	if m.attrs == nil {
		attrs, err := m.source.Acquire()
		if err != nil {
			return nil, ErrSessionAcquire.Wrap(err)
		}

		m.attrs = attrs
	}

	return m.attrs, nil
}

// Len returns the number of session attributes. An acquisition failure reads
// as an empty session here; the error itself surfaces through
// [SessionMap.Get].
func (m *SessionMap) Len() int {
	attrs, err := m.store()
	if err != nil {
		return 0
	}

	return len(attrs.Names())
}

// IsEmpty reports whether the session carries no attributes.
func (m *SessionMap) IsEmpty() bool { return m.Len() == 0 }

// Contains answers true for every name. Not strictly correct, but template
// expressions expect an unknown attribute to read as empty, not to blow up
// with a missing-key failure, and this is what makes that happen.
func (m *SessionMap) Contains(string) bool { return true }

// ContainsValue fails with [ErrContainsValue]: a correct implementation
// would be inconsistent with the permissive [SessionMap.Contains].
func (m *SessionMap) ContainsValue(any) (bool, error) {
	return false, ErrContainsValue
}

// Get returns the session attribute bound to name, resolving a deferred
// value through [scope.Resolve]. An absent attribute reads as (nil, nil).
func (m *SessionMap) Get(name string) (any, error) {
	attrs, err := m.store()
	if err != nil {
		return nil, err
	}

	value, ok := attrs.Get(name)
	if !ok {
		return nil, nil
	}

	return scope.Resolve(value)
}

// Names returns all session attribute names. An acquisition failure reads as
// an empty session here; the error itself surfaces through [SessionMap.Get].
func (m *SessionMap) Names() []string {
	attrs, err := m.store()
	if err != nil {
		return nil
	}

	return attrs.Names()
}
