// Package log is a small structured logging layer over [log/slog].
//
// A [Logger] is built with [Make] and configured with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("rfc3339nano"),
//		log.WithCaller(true))
//
// Derived loggers override individual settings with [Logger.Wrap] or add
// attributes with [Logger.With]. Every level has a context-aware method
// (InfoContext) and a variant that uses [DefaultContextProvider] (Info).
//
// Levels are [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn] and
// [LevelError]. Text output may be colorized with [WithPretty]; colors are
// only emitted when the output is a terminal.
//
// The package-level functions log through a shared default logger that is
// reconfigured with [Config].
package log
