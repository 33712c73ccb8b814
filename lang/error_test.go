package lang

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func TestError_Is(t *testing.T) {
	err := ErrUnterminatedCall.
		WithPosition(Position{Offset: 4, Line: 2, Column: 3}).
		With(slog.String("function", "f"))

	if !errors.Is(err, ErrUnterminatedCall) {
		t.Error("derived error does not match its sentinel")
	}

	if !errors.Is(err, ErrSyntax) {
		t.Error("derived error does not match its class")
	}

	if errors.Is(err, ErrUnterminatedQuote) {
		t.Error("derived error matches an unrelated sentinel")
	}

	if errors.Is(err, ErrArity) {
		t.Error("syntax error matches the arity class")
	}

	if errors.Is(ErrSyntax, ErrUnterminatedCall) {
		t.Error("class matches a member sentinel")
	}
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "sentinel",
			err:  ErrEmptyName,
			want: "empty name",
		},
		{
			name: "with position",
			err:  ErrEmptyName.WithPosition(Position{Line: 3, Column: 7}),
			want: "empty name at line 3, column 7",
		},
		{
			name: "wrapped cause",
			err:  ErrUnknownFunction.Wrap(io.EOF),
			want: "unknown function: EOF",
		},
		{
			name: "wrapped standard error",
			err:  WrapError(io.ErrUnexpectedEOF),
			want: "unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	err := ErrArgumentCount.Wrap(io.EOF)

	if !errors.Is(err, io.EOF) {
		t.Error("wrapped cause not found")
	}

	if !errors.Is(err, ErrArity) {
		t.Error("class lost after Wrap")
	}
}

func TestError_Immutable(t *testing.T) {
	_ = ErrEmptyName.With(slog.Int("n", 1)).WithPosition(Position{Line: 9})

	if _, ok := ErrEmptyName.Position(); ok {
		t.Error("WithPosition modified the sentinel")
	}

	if len(ErrEmptyName.attrs) != 0 {
		t.Error("With modified the sentinel")
	}
}

func TestError_LogValue(t *testing.T) {
	err := ErrEmptyName.
		WithPosition(Position{Line: 1, Column: 2}).
		With(slog.String("input", "{ }"))

	v := err.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("LogValue kind = %v, want group", v.Kind())
	}

	keys := map[string]bool{}
	for _, a := range v.Group() {
		keys[a.Key] = true
	}

	for _, k := range []string{"error", "position", "input"} {
		if !keys[k] {
			t.Errorf("LogValue missing %q", k)
		}
	}
}
