package cli

import (
	"context"
	"log/slog"

	"github.com/alecthomas/kong"
	"github.com/pkg/profile"

	"github.com/ardnew/tmplctx/log"
)

// pprofConfig declares the profiling flag group.
type pprofConfig struct {
	Mode string `default:"" enum:",cpu,mem,allocs,block,mutex,trace" help:"Enable profiling" placeholder:"${enum}" short:"p"`
	Dir  string `help:"Profile output directory" type:"path"`
}

func (pprofConfig) vars() kong.Vars { return kong.Vars{} }

func (pprofConfig) group() kong.Group {
	var group kong.Group

	group.Key = "pprof"
	group.Title = "Profiling (pprof)"

	return group
}

// start starts profiling if configured and returns the matching stop
// function.
func (f pprofConfig) start(ctx context.Context) (stop func()) {
	if f.Mode == "" {
		return func() {}
	}

	log.DebugContext(ctx, "pprof start",
		slog.String("mode", f.Mode),
		slog.String("dir", f.Dir),
	)

	opts := []func(*profile.Profile){profile.Quiet}

	if f.Dir != "" {
		opts = append(opts, profile.ProfilePath(f.Dir))
	}

	switch f.Mode {
	case "cpu":
		opts = append(opts, profile.CPUProfile)
	case "mem":
		opts = append(opts, profile.MemProfile)
	case "allocs":
		opts = append(opts, profile.MemProfileAllocs)
	case "block":
		opts = append(opts, profile.BlockProfile)
	case "mutex":
		opts = append(opts, profile.MutexProfile)
	case "trace":
		opts = append(opts, profile.TraceProfile)
	}

	profiler := profile.Start(opts...)

	return func() {
		log.DebugContext(ctx, "pprof stop",
			slog.String("mode", f.Mode),
		)
		profiler.Stop()
	}
}
