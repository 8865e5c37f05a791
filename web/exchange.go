package web

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/tmplctx/scope"
)

// Reserved variable names. They resolve to the virtualized views and are
// rejected by every write operation.
const (
	ParamVariableName   = "param"
	SessionVariableName = "session"
)

// Context is the variable surface handed to the template engine for one
// render over a web exchange. It layers, in resolution order:
//
//  1. the two reserved names, routed to the [ParamMap] and [SessionMap]
//     views
//  2. the leveled [scope.Scope]
//  3. the exchange-wide [AttributeStore], consulted on read-miss only
//
// Writes go to the leveled scope exclusively (after the reserved-name
// check); reads that miss it fall through to the exchange attributes, which
// are therefore immune to level rollback.
//
// Like the scope it wraps, a Context belongs to one render invocation and is
// not safe for concurrent use.
type Context struct {
	scope   *scope.Scope
	attrs   AttributeStore
	params  *ParamMap
	session *SessionMap
}

// Option configures a [Context] during construction.
type Option func(*Context)

// WithVariables sets initial context variables, typically carried over from
// the model that triggered the render. They are set at level 0 and persist
// for the whole render. Reserved names are silently skipped: the views
// always win.
func WithVariables(variables map[string]any) Option {
	return func(c *Context) {
		for name, value := range variables {
			if reserved(name) {
				continue
			}

			c.scope.Set(name, value)
		}
	}
}

// WithTemplateData records the identity of the outermost template before the
// render begins.
func WithTemplateData(td *scope.TemplateData) Option {
	return func(c *Context) {
		c.scope.SetTemplateData(td)
	}
}

// NewContext creates the render context for one exchange. The attribute
// store, parameter source, and session handle are referenced, never owned:
// they belong to the surrounding request infrastructure and must outlive the
// render.
func NewContext(
	attrs AttributeStore,
	params QueryParameterSource,
	session SessionHandleSource,
	opts ...Option,
) *Context {
	c := &Context{
		scope:   scope.New(nil),
		attrs:   attrs,
		params:  NewParamMap(params),
		session: NewSessionMap(session),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func reserved(name string) bool {
	return name == ParamVariableName || name == SessionVariableName
}

// checkReserved returns [ErrReservedName] when name is reserved.
func checkReserved(name string) error {
	if reserved(name) {
		return ErrReservedName.With(slog.String("name", name))
	}

	return nil
}

// Attributes returns the exchange-wide attribute store this context reads
// through on scope misses.
func (c *Context) Attributes() AttributeStore { return c.attrs }

// Contains reports whether name resolves to anything: a reserved view, a
// scope binding at any level, or an exchange attribute.
func (c *Context) Contains(name string) bool {
	return reserved(name) ||
		c.scope.Contains(name) ||
		c.attrs.Contains(name)
}

// Get resolves name. The reserved names return their view object itself,
// not its contents. Ordinary names read the leveled scope, falling through
// to the exchange attributes only when the scope has no binding at all — a
// binding explicitly set to nil shadows a same-named attribute. Deferred
// values are resolved through [scope.Resolve] on every path.
func (c *Context) Get(name string) (any, error) {
	switch name {
	case SessionVariableName:
		return c.session, nil
	case ParamVariableName:
		return c.params, nil
	}

	if value, ok := c.scope.Lookup(name); ok {
		return scope.Resolve(value)
	}

	value, ok := c.attrs.Get(name)
	if !ok {
		return nil, nil
	}

	return scope.Resolve(value)
}

// Names returns the union of the scope's bindings and the exchange attribute
// names, sorted. The reserved names are excluded: the views are reachable by
// exact-name lookup only, never enumerated as ordinary variables.
func (c *Context) Names() []string {
	scopeNames := c.scope.Names()
	names := slices.Clone(scopeNames)

	for _, name := range c.attrs.Names() {
		if reserved(name) {
			continue
		}

		if _, found := slices.BinarySearch(scopeNames, name); !found {
			names = append(names, name)
		}
	}

	slices.Sort(names)

	return names
}

// Set binds value to name at the current level. Setting a reserved name
// fails with [ErrReservedName]. The exchange attributes are never written.
func (c *Context) Set(name string, value any) error {
	if err := checkReserved(name); err != nil {
		return err
	}

	c.scope.Set(name, value)

	return nil
}

// SetAll binds every pair in variables at the current level. Every name is
// validated against the reserved words before any write commits: either all
// pairs are set or none are.
func (c *Context) SetAll(variables map[string]any) error {
	if len(variables) == 0 {
		return nil
	}

	for name := range variables {
		if err := checkReserved(name); err != nil {
			return err
		}
	}

	c.scope.SetAll(variables)

	return nil
}

// Remove deletes the scope binding for name if present. Removing a reserved
// name fails with [ErrReservedName]. Exchange attributes are untouched: a
// removed binding that was shadowing one uncovers it again.
func (c *Context) Remove(name string) error {
	if err := checkReserved(name); err != nil {
		return err
	}

	c.scope.Remove(name)

	return nil
}

// IsLocal reports whether name is bound in the scope and local to the
// current level. Exchange attributes are never local.
func (c *Context) IsLocal(name string) bool { return c.scope.IsLocal(name) }

// HasSelectionTarget reports whether a selection target is currently set.
func (c *Context) HasSelectionTarget() bool { return c.scope.HasSelectionTarget() }

// SelectionTarget returns the current selection target, or (nil, nil).
func (c *Context) SelectionTarget() (any, error) { return c.scope.SelectionTarget() }

// SetSelectionTarget sets the current object used by selection expressions.
func (c *Context) SetSelectionTarget(target any) { c.scope.SetSelectionTarget(target) }

// Inliner returns the active text inliner, or nil.
func (c *Context) Inliner() scope.Inliner { return c.scope.Inliner() }

// SetInliner sets the active text inliner for the whole render.
func (c *Context) SetInliner(inliner scope.Inliner) { c.scope.SetInliner(inliner) }

// TemplateData returns the identity of the template currently executing.
func (c *Context) TemplateData() *scope.TemplateData { return c.scope.TemplateData() }

// SetTemplateData records td as the template executing at the current level.
func (c *Context) SetTemplateData(td *scope.TemplateData) { c.scope.SetTemplateData(td) }

// TemplateStack returns the templates entered so far, outermost first.
func (c *Context) TemplateStack() []*scope.TemplateData { return c.scope.TemplateStack() }

// SetElementTag records tag as the element open at the current level.
func (c *Context) SetElementTag(tag scope.ElementTag) { c.scope.SetElementTag(tag) }

// ElementStack returns all element tags currently open, outermost first.
func (c *Context) ElementStack() []scope.ElementTag { return c.scope.ElementStack() }

// ElementStackAbove returns the element tags recorded at levels strictly
// greater than the given level.
func (c *Context) ElementStackAbove(level int) []scope.ElementTag {
	return c.scope.ElementStackAbove(level)
}

// Level returns the current nesting level.
func (c *Context) Level() int { return c.scope.Level() }

// IncreaseLevel enters a nested scope.
func (c *Context) IncreaseLevel() { c.scope.IncreaseLevel() }

// DecreaseLevel exits the current nested scope, rolling back every binding
// stamped above the new level. Exchange attributes are unaffected.
func (c *Context) DecreaseLevel() error { return c.scope.DecreaseLevel() }

// StringByLevel returns the scope's by-level rendering followed by the
// current exchange attributes, for diagnostic completeness.
func (c *Context) StringByLevel() string {
	return c.scope.StringByLevel() + c.exchangeString()
}

// String returns the scope's flat rendering followed by the current exchange
// attributes.
func (c *Context) String() string {
	return c.scope.String() + c.exchangeString()
}

func (c *Context) exchangeString() string {
	var b strings.Builder

	b.WriteString("[[EXCHANGE: {")

	for i, name := range c.attrs.Names() {
		if i > 0 {
			b.WriteString(", ")
		}

		value, _ := c.attrs.Get(name)
		fmt.Fprintf(&b, "%s=%v", name, value)
	}

	b.WriteString("}]]")

	return b.String()
}
