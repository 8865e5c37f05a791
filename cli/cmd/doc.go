// Package cmd implements the subcommands of the tmplctx CLI.
package cmd
