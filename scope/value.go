package scope

// Deferred is a variable value whose real value is computed on read rather
// than at write time. Store a Deferred with [Scope.Set] and every
// expression-level read returns the result of Resolve instead of the wrapper.
//
// Resolution is invoked on each read; implementations that want their value
// computed at most once should memoize internally.
type Deferred interface {
	// Resolve computes and returns the value. Failures are reported to the
	// reader unchanged.
	Resolve() (any, error)
}

// DeferredFunc adapts a plain function to the [Deferred] interface.
type DeferredFunc func() (any, error)

// Resolve implements [Deferred] by calling f.
func (f DeferredFunc) Resolve() (any, error) { return f() }

// Resolve returns the value behind v. If v implements [Deferred] the computed
// value is returned, otherwise v itself. Every variable read in this module
// passes through here so callers never observe a deferred wrapper.
func Resolve(v any) (any, error) {
	if d, ok := v.(Deferred); ok {
		return d.Resolve()
	}

	return v, nil
}
