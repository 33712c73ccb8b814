// Package log wraps [log/slog] with a small leveled interface taking typed
// attributes.
//
// A [Logger] is built once from functional options and is safe for
// concurrent use. Its zero value discards every record, which lets library
// code accept a Logger without forcing callers to configure one.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("rfc3339nano"))
//
//	logger.Info("rendered", slog.Int("bytes", n))
//
// Each level has a context-aware variant. The plain variants use
// [DefaultContextProvider].
//
// # Levels
//
// [LevelTrace] sits below [LevelDebug] and carries the template engine's
// per-pass records. The remaining levels map directly onto slog's.
//
// # Pretty output
//
// When the output is a terminal, records are styled with lipgloss. Text
// records are printed as key=value pairs without quoting, and JSON records
// are indented one field per line. [WithPretty] overrides the detection.
//
// # Package logger
//
// The package-level functions write through a default logger on standard
// error, which [Config] reconfigures.
package log
