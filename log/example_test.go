package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/splice/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelInfo),
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	logger.Debug("hidden")
	logger.Info("rendered", slog.Int("bytes", 12))

	// Output:
	// level=INFO msg=rendered bytes=12
}

func Example_json() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout(""),
		log.WithPretty(false))

	logger.Warn("unresolved", slog.String("name", "user"))

	// Output:
	// {"level":"WARN","msg":"unresolved","name":"user"}
}

func Example_withContext() {
	type passKey struct{}

	ctx := context.WithValue(context.Background(), passKey{}, 1)

	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelTrace),
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	logger.With(slog.String("pass", "eval")).TraceContext(ctx, "call", slog.String("name", "lower"))

	// Output:
	// level=TRACE msg=call pass=eval name=lower
}
