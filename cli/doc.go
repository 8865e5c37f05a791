// Package cli implements the command-line interface for tmplctx.
//
// The CLI is a thin demonstration and debugging surface over the library
// packages: it builds a render [github.com/ardnew/tmplctx/web.Context] from
// a YAML document and command-line flags, then evaluates expressions against
// it or dumps its leveled state.
//
// Flags are organized into groups: logging flags configure the process-wide
// default logger before any command runs, and profiling flags wrap command
// execution with pprof collection.
package cli
