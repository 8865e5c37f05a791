package scope

import (
	"fmt"
	"slices"
	"strings"
)

// String returns a single-line rendering of all bindings with the current
// level appended, for diagnostics. Deferred values are rendered as stored,
// without forcing resolution.
func (s *Scope) String() string {
	var b strings.Builder

	b.WriteByte('{')

	for i, name := range s.Names() {
		if i > 0 {
			b.WriteString(", ")
		}

		fmt.Fprintf(&b, "%s=%v", name, s.vars[name].value)
	}

	b.WriteByte('}')

	if s.sel != nil {
		fmt.Fprintf(&b, "<%v>", s.sel.target)
	}

	fmt.Fprintf(&b, "[%d]", s.level)

	return b.String()
}

// StringByLevel returns a rendering of all bindings grouped by the level
// they were stamped at, ascending, with the selection target shown at its
// own level. Intended for diagnostics of the rollback state.
func (s *Scope) StringByLevel() string {
	byLevel := make(map[int][]string)
	for name, e := range s.vars {
		byLevel[e.level] = append(byLevel[e.level], name)
	}

	levels := slices.Sorted(func(yield func(int) bool) {
		for level := range byLevel {
			if !yield(level) {
				return
			}
		}

		if s.sel != nil {
			if _, ok := byLevel[s.sel.level]; !ok {
				yield(s.sel.level)
			}
		}
	})

	var b strings.Builder

	b.WriteByte('{')

	for i, level := range levels {
		if i > 0 {
			b.WriteString(", ")
		}

		fmt.Fprintf(&b, "%d:{", level)

		names := byLevel[level]
		slices.Sort(names)

		for j, name := range names {
			if j > 0 {
				b.WriteString(", ")
			}

			fmt.Fprintf(&b, "%s=%v", name, s.vars[name].value)
		}

		b.WriteByte('}')

		if s.sel != nil && s.sel.level == level {
			fmt.Fprintf(&b, "<%v>", s.sel.target)
		}
	}

	b.WriteByte('}')
	fmt.Fprintf(&b, "[%d]", s.level)

	return b.String()
}
