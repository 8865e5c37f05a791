// Package web composes a [github.com/ardnew/tmplctx/scope.Scope] with the
// state owned by the surrounding request-handling infrastructure: the
// exchange-wide attribute store, the request's query parameters, and the
// session's attributes.
//
// The entry point is [Context], the variable surface handed to the template
// engine for one render. Two variable names are reserved and never stored in
// the leveled map:
//
//   - "param" resolves to a read-only view of the request query parameters
//   - "session" resolves to a read-only view of the session attributes,
//     acquired from its deferred handle on first read
//
// Ordinary names route to the leveled scope. Reads that miss the scope fall
// through to the exchange-wide attributes, which makes attributes set
// directly on the shared exchange visible to templates. Those attributes
// deliberately bypass level-based rollback: code writing straight to the
// exchange is treated as producing durable global state, keeping the
// exchange the single source of truth for every consumer attached to it.
// Writes through this package never touch the exchange.
//
// The collaborating stores are consumed through the [AttributeStore],
// [QueryParameterSource], and [SessionHandleSource] contracts; map-backed
// implementations ([Attributes], [QueryParams], [SessionOf]) are provided
// for tests and tooling.
package web
