package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ardnew/tmplctx/log"
)

// Dump applies a scripted sequence of scope operations to a fresh render
// context and prints its by-level debug rendering. It exists to make the
// leveled rollback behavior observable from the command line.
//
// Operations:
//
//	push        enter a nested scope (increase level)
//	pop         exit the current scope (decrease level)
//	name=value  set a variable at the current level
//	del:name    remove a variable
//	sel:value   set the selection target
type Dump struct {
	contextConfig `embed:""`

	Ops []string `arg:"" help:"Scope operations to apply in order" name:"op" optional:""`
}

// Run executes the dump command.
func (d *Dump) Run(ctx context.Context) error {
	render, err := d.build()
	if err != nil {
		return err
	}

	for _, op := range d.Ops {
		log.DebugContext(ctx, "apply",
			slog.String("op", op),
			slog.Int("level", render.Level()),
		)

		switch {
		case op == "push":
			render.IncreaseLevel()

		case op == "pop":
			if err := render.DecreaseLevel(); err != nil {
				return err
			}

		case strings.HasPrefix(op, "del:"):
			if err := render.Remove(strings.TrimPrefix(op, "del:")); err != nil {
				return err
			}

		case strings.HasPrefix(op, "sel:"):
			render.SetSelectionTarget(strings.TrimPrefix(op, "sel:"))

		case strings.Contains(op, "="):
			name, value, err := splitAssignment(op)
			if err != nil {
				return err
			}

			if err := render.Set(name, value); err != nil {
				return err
			}

		default:
			return ErrBadOperation.
				With(slog.String("op", op))
		}
	}

	fmt.Println(render.StringByLevel())

	return nil
}
