// Package eval evaluates template expressions against a variable source:
// either a bare [github.com/ardnew/tmplctx/scope.Scope] or the full
// [github.com/ardnew/tmplctx/web.Context] facade.
//
// Expression parsing, compilation, and execution are delegated entirely to
// expr-lang. Before compiling, the expression is scanned for the root
// identifiers it references, and only those variables are materialized into
// the evaluation environment. This keeps the source's lazy machinery honest:
// a deferred variable is resolved only when an expression actually reads it,
// and the deferred session handle is acquired only when an expression
// mentions "session".
//
// Unknown identifiers evaluate to nil rather than failing, matching how
// templates expect reads of absent variables to behave.
package eval
