package lang

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Position identifies a location in template source.
type Position struct {
	Offset int `json:"offset" yaml:"offset"` // Byte offset, 0-based
	Line   int `json:"line"   yaml:"line"`   // Line number, 1-based
	Column int `json:"column" yaml:"column"` // Column in runes, 1-based
}

// String returns the position formatted as "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// TokenKind classifies a [Token].
type TokenKind int

const (
	// TokenLiteral is a run of ordinary text.
	TokenLiteral TokenKind = iota

	// TokenParenOpen is '('.
	TokenParenOpen

	// TokenParenClose is ')'.
	TokenParenClose

	// TokenBlockStart is '{', which opens a placeholder.
	TokenBlockStart

	// TokenBlockEnd is '}', which closes a placeholder.
	TokenBlockEnd

	// TokenCallOpen is '[', which opens a function call.
	TokenCallOpen

	// TokenCallClose is ']', which closes a function call.
	TokenCallClose

	// TokenComma is ',', which separates function arguments.
	TokenComma

	// TokenQuote is the "'''" marker that opens or closes a quoted literal.
	TokenQuote

	// TokenEscape is '\' followed by the rune it escapes.
	TokenEscape
)

// String returns a string representation of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenLiteral:
		return "Literal"

	case TokenParenOpen:
		return "ParenOpen"

	case TokenParenClose:
		return "ParenClose"

	case TokenBlockStart:
		return "BlockStart"

	case TokenBlockEnd:
		return "BlockEnd"

	case TokenCallOpen:
		return "CallOpen"

	case TokenCallClose:
		return "CallClose"

	case TokenComma:
		return "Comma"

	case TokenQuote:
		return "Quote"

	case TokenEscape:
		return "Escape"

	default:
		return "Unknown"
	}
}

// Delimiter characters recognized by the tokenizer.
const (
	escapeRune = '\\'
	quoteRune  = '\''
	quoteMark  = "'''"
)

// Token is a single lexical unit of template source.
// Tokens are produced once by [Tokenize] and never modified.
type Token struct {
	Kind TokenKind
	Raw  string   // Source text of the token, verbatim
	Pos  Position // Position of the first byte of Raw
}

// Text returns the text the token contributes to a literal.
// For escapes, this is the escaped rune without the backslash.
func (t Token) Text() string {
	if t.Kind == TokenEscape {
		return t.Raw[1:]
	}

	return t.Raw
}

// Tokenize scans src into an ordered token sequence.
//
// The tokens cover src without gaps: concatenating every Raw yields src.
// Tokenize never fails. An unterminated quoted literal is reported later,
// when the builder cannot find the closing marker.
func Tokenize(src string) []Token {
	s := scanner{
		src:  src,
		line: 1,
		col:  1,
	}

	return s.scan()
}

// scanner holds the tokenizer state.
type scanner struct {
	src     string
	pos     int
	line    int
	col     int
	quoted  bool // inside a quoted literal
	litFrom int  // start offset of the pending literal run, or -1
	litPos  Position
	toks    []Token
}

func (s *scanner) scan() []Token {
	s.litFrom = -1

	for s.pos < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])

		if r == escapeRune {
			s.escape()

			continue
		}

		if r == quoteRune && strings.HasPrefix(s.src[s.pos:], quoteMark) {
			s.quoted = !s.quoted
			s.emit(TokenQuote, len(quoteMark))

			continue
		}

		if kind, ok := delimiter(r); ok && !s.quoted {
			s.emit(kind, 1)

			continue
		}

		if s.litFrom < 0 {
			s.litFrom = s.pos
			s.litPos = s.position()
		}

		s.advance(size)
	}

	s.flush()

	return s.toks
}

// escape emits an escape token covering the backslash and the rune after it.
// A trailing backslash is ordinary text.
func (s *scanner) escape() {
	if s.pos+1 >= len(s.src) {
		if s.litFrom < 0 {
			s.litFrom = s.pos
			s.litPos = s.position()
		}

		s.advance(1)

		return
	}

	_, size := utf8.DecodeRuneInString(s.src[s.pos+1:])
	s.emit(TokenEscape, 1+size)
}

// emit flushes any pending literal and appends a token of n bytes.
func (s *scanner) emit(kind TokenKind, n int) {
	s.flush()

	s.toks = append(s.toks, Token{
		Kind: kind,
		Raw:  s.src[s.pos : s.pos+n],
		Pos:  s.position(),
	})

	s.advance(n)
}

// flush appends the pending literal run, if any.
func (s *scanner) flush() {
	if s.litFrom < 0 {
		return
	}

	s.toks = append(s.toks, Token{
		Kind: TokenLiteral,
		Raw:  s.src[s.litFrom:s.pos],
		Pos:  s.litPos,
	})

	s.litFrom = -1
}

// advance moves the cursor n bytes forward, tracking line and column.
func (s *scanner) advance(n int) {
	end := s.pos + n

	for s.pos < end {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])

		s.pos += size
		if r == '\n' {
			s.line++
			s.col = 1
		} else {
			s.col++
		}
	}
}

func (s *scanner) position() Position {
	return Position{
		Offset: s.pos,
		Line:   s.line,
		Column: s.col,
	}
}

// delimiter reports the token kind of a single-rune delimiter.
func delimiter(r rune) (TokenKind, bool) {
	switch r {
	case '(':
		return TokenParenOpen, true
	case ')':
		return TokenParenClose, true
	case '{':
		return TokenBlockStart, true
	case '}':
		return TokenBlockEnd, true
	case '[':
		return TokenCallOpen, true
	case ']':
		return TokenCallClose, true
	case ',':
		return TokenComma, true
	}

	return TokenLiteral, false
}
