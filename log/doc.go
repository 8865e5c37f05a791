// Package log provides a simplified logging interface based on [log/slog].
//
// Loggers are created with [Make] and configured with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText))
//	logger.Info("render started", slog.String("template", name))
//
// A process-wide default logger is available through the package-level
// functions ([Debug], [Info], [Warn], [Error] and their Context variants)
// and replaced with [SetDefault]. The zero-value default discards
// everything, so library code may log unconditionally.
//
// Three output formats are supported: [FormatJSON] (default), [FormatText],
// and [FormatPretty], a colorized text form for terminals styled with
// lipgloss.
package log
