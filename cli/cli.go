package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tmplctx/cli/cmd"
	"github.com/ardnew/tmplctx/pkg"
)

// CLI is the top-level command-line interface for tmplctx.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`

	Eval cmd.Eval `cmd:"" default:"withargs" help:"Evaluate expressions against a render context"`
	Dump cmd.Dump `cmd:""                    help:"Apply scope operations and dump the leveled state"`
}

// Run executes the tmplctx CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	vars := kong.Vars{
		"version": pkg.Version,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Log.install()

	stop := cli.Pprof.start(ctx)
	defer stop()

	return ktx.Run()
}
