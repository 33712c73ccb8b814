package cli

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/splice/log"
)

// logLevel configures the default logger as a side effect of parsing, so
// that errors reported while kong parses the rest of the command line
// already honor it.
type logLevel string

func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

// logFormat configures the default logger as a side effect of parsing.
type logFormat string

func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"${logLevelDefault}"  enum:"${logLevelEnum}"  help:"Set log level (${enum})."`
	Format     logFormat `default:"${logFormatDefault}" enum:"${logFormatEnum}" help:"Set log format (${enum})."`
	TimeLayout string    `default:"rfc3339"                                      help:"Set timestamp layout ('none' to omit)." name:"time"`
	Caller     bool      `                                                       help:"Include caller information."             negatable:""`
	Pretty     string    `default:"auto"                enum:"auto,always,never" help:"Style log output (${enum})."`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelEnum":     strings.Join(slices.Collect(log.Levels()), ","),
		"logLevelDefault":  log.DefaultLevel.String(),
		"logFormatEnum":    strings.Join(slices.Collect(log.Formats()), ","),
		"logFormatDefault": log.DefaultFormat.String(),
	}
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// start applies every parsed logging flag to the default logger.
func (f *logConfig) start(ctx context.Context) {
	opts := []log.Option{
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
	}

	if opt, ok := prettyOption(f.Pretty); ok {
		opts = append(opts, opt)
	}

	log.Config(opts...)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.String("pretty", f.Pretty),
	)
}

// prettyOption maps a --log-pretty mode to an option. The auto mode keeps
// terminal detection.
func prettyOption(mode string) (log.Option, bool) {
	switch mode {
	case "always":
		return log.WithPretty(true), true
	case "never":
		return log.WithPretty(false), true
	default:
		return nil, false
	}
}

// scan applies logging flags found in args before kong parses them, so the
// logger is configured regardless of flag position.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--" {
			return
		}

		name, value, assigned := strings.Cut(arg, "=")

		switch name {
		case "--log-level", "--log-format", "--log-pretty":
		case "--log-caller", "--no-log-caller":
			f.Caller = name == "--log-caller"
			log.Config(log.WithCaller(f.Caller))

			continue
		default:
			continue
		}

		if !assigned {
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "-") {
				continue
			}

			i++
			value = args[i]
		}

		switch name {
		case "--log-level":
			_ = f.Level.UnmarshalText([]byte(value))
		case "--log-format":
			_ = f.Format.UnmarshalText([]byte(value))
		case "--log-pretty":
			f.Pretty = value

			if opt, ok := prettyOption(value); ok {
				log.Config(opt)
			}
		}
	}
}
