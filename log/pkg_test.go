package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestPackage_UsesDefaultLogger(t *testing.T) {
	original := defaultLog
	t.Cleanup(func() { defaultLog = original })

	var buf bytes.Buffer

	defaultLog = Make(&buf, WithLevel(LevelTrace), WithFormat(FormatJSON), WithPretty(false))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Trace", Trace, "TRACE"},
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("message", slog.String("key", "value"))

			out := buf.String()

			for _, want := range []string{`"level":"` + tt.level + `"`, `"msg":"message"`, `"key":"value"`} {
				if !strings.Contains(out, want) {
					t.Errorf("output %q does not contain %s", out, want)
				}
			}
		})
	}
}

func TestConfig_RewrapsDefault(t *testing.T) {
	original := defaultLog
	t.Cleanup(func() { defaultLog = original })

	var buf bytes.Buffer

	defaultLog = Make(&buf, WithPretty(false))

	Config(WithLevel(LevelError))

	if got := Default().Level(); got != LevelError {
		t.Fatalf("Default().Level() = %v, want %v", got, LevelError)
	}

	WarnContext(t.Context(), "dropped")
	ErrorContext(t.Context(), "kept")

	if out := buf.String(); strings.Contains(out, "dropped") || !strings.Contains(out, "kept") {
		t.Errorf("output = %q", out)
	}
}
