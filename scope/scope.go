package scope

import (
	"maps"
	"slices"
)

// entry is one stored variable. The stamp records the level the variable was
// last set at and never changes except through [Scope.Set] re-stamping it.
type entry struct {
	value any
	level int
}

// selection is the current selection target together with the level it was
// set at.
type selection struct {
	target any
	level  int
}

// Scope is the leveled variable map for one template render.
//
// The zero value is not usable; construct instances with [New]. A Scope must
// not be shared between concurrent renders.
type Scope struct {
	// vars is the flat backing map. Rollback on level decrease works by
	// filtering entries through the per-level stamp index below rather than
	// scanning the whole map.
	vars map[string]*entry

	// stamped records, per level, the names that were stamped at that level.
	// Index = level. Entries may be stale after a Remove or a re-stamp at a
	// deeper level; DecreaseLevel re-checks each entry's stamp before
	// deleting it.
	stamped [][]string

	sel       *selection
	inliner   Inliner
	templates []templateFrame
	elements  []elementFrame

	level int
}

// New creates an empty Scope at level 0. Any initial variables given are set
// at level 0 and therefore persist for the whole render.
func New(variables map[string]any) *Scope {
	s := &Scope{
		vars: make(map[string]*entry, len(variables)),
	}

	s.SetAll(variables)

	return s
}

// Level returns the current nesting level. Level 0 is the outermost scope.
func (s *Scope) Level() int { return s.level }

// IncreaseLevel enters a nested scope. No bindings are touched; the new
// level only changes the boundary used for subsequent local-vs-global
// judgments and the extent of the next rollback.
func (s *Scope) IncreaseLevel() { s.level++ }

// DecreaseLevel exits the current nested scope, discarding every binding,
// selection target, template frame, and element tag stamped above the new
// level. Bindings stamped at or below the new level survive untouched.
//
// Calls must be balanced against [Scope.IncreaseLevel]; decreasing below
// level 0 returns [ErrLevelUnderflow] and changes nothing.
func (s *Scope) DecreaseLevel() error {
	if s.level == 0 {
		return ErrLevelUnderflow
	}

	if len(s.stamped) > s.level {
		for _, name := range s.stamped[s.level] {
			if e, ok := s.vars[name]; ok && e.level >= s.level {
				delete(s.vars, name)
			}
		}

		s.stamped = s.stamped[:s.level]
	}

	if s.sel != nil && s.sel.level >= s.level {
		s.sel = nil
	}

	for n := len(s.templates); n > 0 && s.templates[n-1].level >= s.level; n-- {
		s.templates = s.templates[:n-1]
	}

	for n := len(s.elements); n > 0 && s.elements[n-1].level >= s.level; n-- {
		s.elements = s.elements[:n-1]
	}

	s.level--

	return nil
}

// Contains reports whether name is currently bound, at any level.
func (s *Scope) Contains(name string) bool {
	_, ok := s.vars[name]

	return ok
}

// Lookup returns the raw stored value for name and whether it is bound. The
// value is returned as stored: a [Deferred] wrapper is not resolved. Use
// [Scope.Get] for expression-level reads.
func (s *Scope) Lookup(name string) (any, bool) {
	e, ok := s.vars[name]
	if !ok {
		return nil, false
	}

	return e.value, true
}

// Get returns the value bound to name, resolving a [Deferred] wrapper
// through [Resolve]. An unbound name yields (nil, nil): absence is not an
// error. Resolution failures are returned unchanged.
func (s *Scope) Get(name string) (any, error) {
	e, ok := s.vars[name]
	if !ok {
		return nil, nil
	}

	return Resolve(e.value)
}

// Names returns all currently bound names, sorted. The two-element views
// composed above this engine are never stored here and never appear.
func (s *Scope) Names() []string {
	return slices.Sorted(maps.Keys(s.vars))
}

// Set binds value to name at the current level. An existing binding is
// overwritten and re-stamped with the current level, so a global overridden
// from a nested scope disappears entirely when that scope exits.
func (s *Scope) Set(name string, value any) {
	if e, ok := s.vars[name]; ok {
		if e.level == s.level {
			e.value = value

			return
		}

		e.value = value
		e.level = s.level
	} else {
		s.vars[name] = &entry{value: value, level: s.level}
	}

	s.stamp(name)
}

// SetAll binds every pair in variables at the current level, as if by
// repeated [Scope.Set]. A nil or empty map is a no-op.
func (s *Scope) SetAll(variables map[string]any) {
	for name, value := range variables {
		s.Set(name, value)
	}
}

// Remove deletes the binding for name if present; unbound names are a no-op.
func (s *Scope) Remove(name string) {
	delete(s.vars, name)
}

// IsLocal reports whether name is bound and local to the current level, i.e.
// stamped at the current level with the level greater than 0. Local bindings
// are removed by the next [Scope.DecreaseLevel].
func (s *Scope) IsLocal(name string) bool {
	e, ok := s.vars[name]

	return ok && e.level == s.level && s.level > 0
}

// HasSelectionTarget reports whether a selection target is currently set.
func (s *Scope) HasSelectionTarget() bool { return s.sel != nil }

// SelectionTarget returns the current selection target, resolving a
// [Deferred] wrapper, or (nil, nil) when none is set.
func (s *Scope) SelectionTarget() (any, error) {
	if s.sel == nil {
		return nil, nil
	}

	return Resolve(s.sel.target)
}

// SetSelectionTarget sets the current object used by selection expressions.
// The target is stamped with the current level and follows the same rollback
// discipline as a variable.
func (s *Scope) SetSelectionTarget(target any) {
	s.sel = &selection{target: target, level: s.level}
}

// Inliner returns the active text inliner, or nil.
func (s *Scope) Inliner() Inliner { return s.inliner }

// SetInliner sets the active text inliner. The inliner is not level-scoped:
// it applies to the whole render.
func (s *Scope) SetInliner(inliner Inliner) { s.inliner = inliner }

// stamp records name in the per-level index so DecreaseLevel can roll back
// in time proportional to the bindings actually added since the matching
// IncreaseLevel.
func (s *Scope) stamp(name string) {
	for len(s.stamped) <= s.level {
		s.stamped = append(s.stamped, nil)
	}

	s.stamped[s.level] = append(s.stamped[s.level], name)
}
