package lang

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzTokenize checks that tokens always cover the input exactly.
func FuzzTokenize(f *testing.F) {
	f.Add("plain")
	f.Add("This is an {cool} [lower(MOMENT)]")
	f.Add("[f('''a,b''')]")
	f.Add(`\{escaped\}`)
	f.Add(`trailing\`)
	f.Add("'''unterminated")

	f.Fuzz(func(t *testing.T, input string) {
		var sb strings.Builder
		for _, tok := range Tokenize(input) {
			sb.WriteString(tok.Raw)
		}

		if sb.String() != input {
			t.Errorf("tokens of %q concatenate to %q", input, sb.String())
		}
	})
}

// FuzzParse checks that the builder never panics and that canonical source
// is stable.
func FuzzParse(f *testing.F) {
	f.Add("This is an {cool} [lower(MOMENT)]")
	f.Add("[f([g(a,b)])]")
	f.Add("[f({x}(y))]")
	f.Add("[f(,)]")
	f.Add("a) b] c} d, e(")
	f.Add("{a{b}}")

	f.Fuzz(func(t *testing.T, input string) {
		// Skip invalid UTF-8
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		ctx := context.Background()

		root, err := Parse(ctx, input)
		if err != nil {
			return
		}

		src := root.Source()

		again, err := Parse(ctx, src)
		if err != nil {
			t.Fatalf("Source() of %q = %q does not parse: %v", input, src, err)
		}

		if got := again.Source(); got != src {
			t.Errorf("Source() not stable: %q then %q", src, got)
		}
	})
}
