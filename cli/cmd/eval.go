package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/tmplctx/eval"
	"github.com/ardnew/tmplctx/log"
)

// Eval evaluates one or more expressions against a render context.
type Eval struct {
	contextConfig `embed:""`

	Exprs []string `arg:"" help:"Expressions to evaluate" name:"expr"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) error {
	render, err := e.build()
	if err != nil {
		return err
	}

	for _, source := range e.Exprs {
		log.DebugContext(ctx, "evaluate",
			slog.String("source", source),
		)

		result, err := eval.Evaluate(source, render)
		if err != nil {
			return err
		}

		out, err := formatResult(result)
		if err != nil {
			return err
		}

		fmt.Println(out)
	}

	return nil
}
