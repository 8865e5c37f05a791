// Package scope implements the leveled variable map that backs a single
// template render.
//
// A [Scope] holds name/value bindings organized by nesting level. The level
// starts at 0 (the outermost template) and is raised by one each time the
// render enters a nested fragment, then lowered again when the fragment
// exits. Every binding is stamped with the level at which it was last set:
// lowering the level discards all bindings stamped above the new level, so
// variables set inside a fragment vanish automatically when the fragment
// ends, while variables set at level 0 persist for the whole render.
//
// # Local and global bindings
//
// A binding is local when its stamp equals the current level and the level
// is greater than 0. Local bindings are exactly the ones that the next
// [Scope.DecreaseLevel] will remove. Everything else behaves as global for
// the remainder of the render (or until overwritten from a deeper level,
// which re-stamps the binding and subjects it to that level's rollback).
//
// # Deferred values
//
// A stored value may implement [Deferred], in which case every expression
// level read resolves it through [Resolve] and returns the computed value
// rather than the wrapper. Resolution is not cached: each read invokes the
// resolver again.
//
// # Auxiliary render state
//
// Alongside variables, a Scope carries the selection target (the "current
// object" of selection expressions, scoped by level like any variable), the
// active text inliner (global for the render), the stack of template
// identities entered so far, and the stack of element tags currently open
// (used for diagnostics).
//
// A Scope belongs to exactly one render invocation and is not safe for
// concurrent use.
package scope
