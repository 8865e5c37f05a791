package web

import "log/slog"

// VarsMap is the map-shaped surface a template expression sees when it
// resolves one of the reserved variable names. Read operations never fail
// with "key not found"; write operations always fail because the underlying
// state is owned elsewhere.
type VarsMap interface {
	Len() int
	IsEmpty() bool
	Contains(name string) bool
	ContainsValue(value any) (bool, error)
	Get(name string) (any, error)
	Names() []string
	Set(name string, value any) error
	SetAll(values map[string]any) error
	Remove(name string) error
}

// emptyMap is the read-only, always-empty baseline the virtualized views are
// layered on. Reads report emptiness; every mutation fails with
// [ErrImmutableMap]. Views embed it and override only the read operations
// they virtualize.
type emptyMap struct{}

func (emptyMap) Len() int { return 0 }

func (emptyMap) IsEmpty() bool { return true }

func (emptyMap) Contains(string) bool { return false }

func (emptyMap) ContainsValue(any) (bool, error) { return false, nil }

func (emptyMap) Get(string) (any, error) { return nil, nil }

func (emptyMap) Names() []string { return nil }

func (emptyMap) Set(name string, _ any) error {
	return ErrImmutableMap.With(slog.String("name", name))
}

func (emptyMap) SetAll(map[string]any) error {
	return ErrImmutableMap
}

func (emptyMap) Remove(name string) error {
	return ErrImmutableMap.With(slog.String("name", name))
}
