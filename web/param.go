package web

import (
	"slices"
	"strings"
)

// Values holds the decoded values of one query parameter, in request order.
type Values []string

// Len returns the number of values.
func (v Values) Len() int { return len(v) }

// At returns the value at index i. Indexed access always yields the raw
// element regardless of how many values the parameter carries.
func (v Values) At(i int) string { return v[i] }

// Index returns the index of the first occurrence of s, or -1.
func (v Values) Index(s string) int { return slices.Index(v, s) }

// ContainsElement reports whether s occurs among the values.
func (v Values) ContainsElement(s string) bool { return slices.Contains(v, s) }

// String renders the parameter the way templates expect an unindexed read to
// behave: a parameter with a single value reads as that scalar, an absent or
// empty one as the empty string, and a multi-valued one as the full list.
func (v Values) String() string {
	switch len(v) {
	case 0:
		return ""
	case 1:
		return v[0]
	default:
		return "[" + strings.Join(v, ", ") + "]"
	}
}

var _ VarsMap = (*ParamMap)(nil)

// ParamMap is the read-through view over the request's query parameters
// bound to the reserved "param" variable.
type ParamMap struct {
	emptyMap

	source QueryParameterSource
}

// NewParamMap creates the view over the given parameter source.
func NewParamMap(source QueryParameterSource) *ParamMap {
	return &ParamMap{source: source}
}

// Len returns the number of distinct parameter names.
func (m *ParamMap) Len() int { return m.source.Len() }

// IsEmpty reports whether the request carries no query parameters.
func (m *ParamMap) IsEmpty() bool { return m.source.Len() == 0 }

// Contains answers true for every name. Not strictly correct, but template
// expressions expect an unknown parameter to read as empty, not to blow up
// with a missing-key failure, and this is what makes that happen.
func (m *ParamMap) Contains(string) bool { return true }

// ContainsValue fails with [ErrContainsValue]: a correct implementation
// would be inconsistent with the permissive [ParamMap.Contains].
func (m *ParamMap) ContainsValue(any) (bool, error) {
	return false, ErrContainsValue
}

// Get returns the parameter's [Values], or (nil, nil) when the parameter is
// genuinely absent.
func (m *ParamMap) Get(name string) (any, error) {
	values, ok := m.source.Get(name)
	if !ok {
		return nil, nil
	}

	return Values(values), nil
}

// Names returns all parameter names.
func (m *ParamMap) Names() []string { return m.source.Names() }
