package cli

import (
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tmplctx/log"
)

// logConfig declares the logging flag group. The parsed values configure
// the process-wide default logger before any command runs.
type logConfig struct {
	Level  string `default:"${logLevel}"  enum:"${logLevelEnum}"  help:"Log level"  placeholder:"${enum}"`
	Format string `default:"${logFormat}" enum:"${logFormatEnum}" help:"Log format" placeholder:"${enum}"`
	Caller bool   `help:"Include caller information in log output"`
}

func (logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevel":      log.DefaultLevel.String(),
		"logLevelEnum":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormat":     log.DefaultFormat.String(),
		"logFormatEnum": strings.Join(slices.Collect(log.Formats()), ","),
	}
}

func (logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging"

	return group
}

// install builds the logger described by the flags and makes it the
// process-wide default.
func (f logConfig) install() {
	log.SetDefault(log.Make(os.Stderr,
		log.WithLevel(log.ParseLevel(f.Level)),
		log.WithFormat(log.ParseFormat(f.Format)),
		log.WithCaller(f.Caller),
	))
}
