package eval

import (
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/tmplctx/scope"
)

// Predefined errors (sentinel values).
var (
	ErrExprCompile  = scope.NewError("expression compilation failed")
	ErrExprEvaluate = scope.NewError("expression evaluation failed")
)

// Source is the read-only variable surface an expression evaluates against.
// Both [scope.Scope] and [web.Context] satisfy it.
type Source interface {
	Contains(name string) bool
	Get(name string) (any, error)
	Names() []string
}

// mapView is the surface of the virtualized views resolved behind reserved
// names. A variable value satisfying it is materialized into a plain map so
// expressions can use member access and indexing on it.
type mapView interface {
	Get(name string) (any, error)
	Names() []string
}

// Evaluate compiles and runs a single expression against vars.
//
// Only the variables the expression references are read from vars, with
// deferred values resolved through the source's own read path. Resolution
// failures propagate unchanged; compilation and execution failures are
// wrapped in [ErrExprCompile] and [ErrExprEvaluate].
func Evaluate(source string, vars Source) (any, error) {
	names, err := referenced(source)
	if err != nil {
		return nil, err
	}

	env, err := environment(vars, names)
	if err != nil {
		return nil, err
	}

	program, err := expr.Compile(source,
		expr.Env(env),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, ErrExprCompile.Wrap(err).
			With(slog.String("source", source))
	}

	result, err := vm.Run(program, env)
	if err != nil {
		return nil, ErrExprEvaluate.Wrap(err).
			With(slog.String("source", source))
	}

	return result, nil
}

// identVisitor collects the root identifiers referenced by an expression.
type identVisitor struct {
	names map[string]struct{}
}

// Visit implements [ast.Visitor].
func (v *identVisitor) Visit(node *ast.Node) {
	if ident, ok := (*node).(*ast.IdentifierNode); ok {
		v.names[ident.Value] = struct{}{}
	}
}

// referenced parses source and returns the set of root identifiers it
// mentions.
func referenced(source string) (map[string]struct{}, error) {
	tree, err := parser.Parse(source)
	if err != nil {
		return nil, ErrExprCompile.Wrap(err).
			With(slog.String("source", source))
	}

	visitor := &identVisitor{names: make(map[string]struct{})}
	ast.Walk(&tree.Node, visitor)

	return visitor.names, nil
}

// environment materializes the referenced variables from vars into the map
// expr-lang evaluates against. Values resolved behind reserved names that
// present a map-shaped view are flattened into plain maps; everything else
// is passed through as read (deferred values already resolved by the
// source's Get).
func environment(
	vars Source,
	names map[string]struct{},
) (map[string]any, error) {
	env := make(map[string]any, len(names))

	for name := range names {
		if !vars.Contains(name) {
			continue
		}

		value, err := vars.Get(name)
		if err != nil {
			return nil, err
		}

		if view, ok := value.(mapView); ok {
			value, err = materialize(view)
			if err != nil {
				return nil, err
			}
		}

		env[name] = value
	}

	return env, nil
}

// materialize flattens a virtualized view into a plain map.
func materialize(view mapView) (map[string]any, error) {
	flat := make(map[string]any)

	for _, name := range view.Names() {
		value, err := view.Get(name)
		if err != nil {
			return nil, err
		}

		flat[name] = value
	}

	return flat, nil
}
