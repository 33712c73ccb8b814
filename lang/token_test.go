package lang

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize_Kinds(t *testing.T) {
	type tok struct {
		Kind TokenKind
		Raw  string
	}

	tests := []struct {
		name  string
		input string
		want  []tok
	}{
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "plain text",
			input: "hello world",
			want:  []tok{{TokenLiteral, "hello world"}},
		},
		{
			name:  "placeholder and call",
			input: "This is an {cool} [lower(MOMENT)]",
			want: []tok{
				{TokenLiteral, "This is an "},
				{TokenBlockStart, "{"},
				{TokenLiteral, "cool"},
				{TokenBlockEnd, "}"},
				{TokenLiteral, " "},
				{TokenCallOpen, "["},
				{TokenLiteral, "lower"},
				{TokenParenOpen, "("},
				{TokenLiteral, "MOMENT"},
				{TokenParenClose, ")"},
				{TokenCallClose, "]"},
			},
		},
		{
			name:  "comma",
			input: "a,b",
			want: []tok{
				{TokenLiteral, "a"},
				{TokenComma, ","},
				{TokenLiteral, "b"},
			},
		},
		{
			name:  "escape",
			input: `a\{b`,
			want: []tok{
				{TokenLiteral, "a"},
				{TokenEscape, `\{`},
				{TokenLiteral, "b"},
			},
		},
		{
			name:  "trailing backslash is literal",
			input: `ab\`,
			want:  []tok{{TokenLiteral, `ab\`}},
		},
		{
			name:  "quote suspends delimiters",
			input: "'''{a},[b]'''",
			want: []tok{
				{TokenQuote, "'''"},
				{TokenLiteral, "{a},[b]"},
				{TokenQuote, "'''"},
			},
		},
		{
			name:  "escape inside quote",
			input: `'''a\'''b'''`,
			want: []tok{
				{TokenQuote, "'''"},
				{TokenLiteral, "a"},
				{TokenEscape, `\'`},
				{TokenLiteral, "''b"},
				{TokenQuote, "'''"},
			},
		},
		{
			name:  "single quotes are literal",
			input: "it's '' fine",
			want:  []tok{{TokenLiteral, "it's '' fine"}},
		},
		{
			name:  "unterminated quote",
			input: "'''abc",
			want: []tok{
				{TokenQuote, "'''"},
				{TokenLiteral, "abc"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []tok
			for _, tk := range Tokenize(tt.input) {
				got = append(got, tok{tk.Kind, tk.Raw})
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestTokenize_Coverage(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"This is an {cool} [lower(MOMENT)]",
		`[f('''a,b'''), \], {x}]`,
		"line one\nline {two}\r\n[three()]",
		`trailing\`,
		"'''unterminated {",
		"ünïcödé {wörld} [ƒ(☃)]",
	}

	for _, input := range inputs {
		var sb strings.Builder
		for _, tok := range Tokenize(input) {
			sb.WriteString(tok.Raw)
		}

		if got := sb.String(); got != input {
			t.Errorf("concatenated tokens = %q, want %q", got, input)
		}
	}
}

func TestTokenize_Positions(t *testing.T) {
	toks := Tokenize("a\n{b}")

	want := []Position{
		{Offset: 0, Line: 1, Column: 1},
		{Offset: 2, Line: 2, Column: 1},
		{Offset: 3, Line: 2, Column: 2},
		{Offset: 4, Line: 2, Column: 3},
	}

	got := make([]Position, len(toks))
	for i, tok := range toks {
		got[i] = tok.Pos
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
}

func TestToken_Text(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Kind: TokenLiteral, Raw: "abc"}, "abc"},
		{Token{Kind: TokenEscape, Raw: `\,`}, ","},
		{Token{Kind: TokenEscape, Raw: `\ü`}, "ü"},
		{Token{Kind: TokenComma, Raw: ","}, ","},
	}

	for _, tt := range tests {
		t.Run(tt.tok.Raw, func(t *testing.T) {
			if got := tt.tok.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTokenKind_String(t *testing.T) {
	if got := TokenCallOpen.String(); got != "CallOpen" {
		t.Errorf("TokenCallOpen.String() = %q", got)
	}

	if got := TokenKind(99).String(); got != "Unknown" {
		t.Errorf("TokenKind(99).String() = %q", got)
	}
}
