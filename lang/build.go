package lang

import (
	"context"
	"log/slog"
	"strings"
)

// Parse tokenizes and builds text into a node tree.
//
// The returned root is never partial: any syntax error aborts the parse and
// is returned with a nil node.
func Parse(ctx context.Context, text string, opts ...Option) (*Node, error) {
	o := makeOptions(opts...)

	o.logger.TraceContext(
		ctx,
		"parse start",
		slog.Int("source_length", len(text)),
	)

	toks := Tokenize(text)

	o.logger.TraceContext(ctx, "tokenize complete", slog.Int("tokens", len(toks)))

	b := builder{toks: toks, maxDepth: o.maxDepth}

	root, err := b.build(0, len(toks))
	if err != nil {
		o.logger.TraceContext(ctx, "build failed", slog.Any("error", err))

		return nil, err
	}

	o.logger.TraceContext(
		ctx,
		"build complete",
		slog.Int("nodes", b.nodes),
		slog.Int("depth", b.deepest),
	)

	return root, nil
}

// builder constructs a node tree from a token sequence by recursive descent.
// Each build call covers a half-open token range [lo, hi).
type builder struct {
	toks     []Token
	maxDepth int
	depth    int // current call nesting depth
	deepest  int
	nodes    int
}

// pending accumulates a literal run until a non-literal node interrupts it.
type pending struct {
	text  strings.Builder
	pos   Position
	valid bool
}

func (p *pending) add(pos Position, s string) {
	if !p.valid {
		p.pos = pos
		p.valid = true
	}

	p.text.WriteString(s)
}

func (b *builder) build(lo, hi int) (*Node, error) {
	var (
		children []*Node
		lit      pending
	)

	flush := func() {
		if lit.valid {
			children = append(children, b.node(&Node{
				Kind: NodeLiteral,
				Text: lit.text.String(),
				Pos:  lit.pos,
			}))
			lit = pending{}
		}
	}

	for i := lo; i < hi; {
		tok := b.toks[i]

		switch tok.Kind {
		case TokenQuote:
			end, err := b.quoted(i, hi, &lit)
			if err != nil {
				return nil, err
			}

			i = end + 1

		case TokenBlockStart:
			end, node, err := b.placeholder(i, hi)
			if err != nil {
				return nil, err
			}

			flush()

			children = append(children, node)
			i = end + 1

		case TokenCallOpen:
			end, node, err := b.call(i, hi)
			if err != nil {
				return nil, err
			}

			flush()

			children = append(children, node)
			i = end + 1

		default:
			// Literal text, escapes, and stray delimiters.
			lit.add(tok.Pos, tok.Text())
			i++
		}
	}

	flush()

	if len(children) == 1 {
		return children[0], nil
	}

	var pos Position
	if lo < len(b.toks) {
		pos = b.toks[lo].Pos
	}

	return b.node(&Node{
		Kind:     NodeSequence,
		Children: children,
		Pos:      pos,
	}), nil
}

func (b *builder) node(n *Node) *Node {
	b.nodes++

	return n
}

// quoted folds the quoted literal opened at index at into lit and returns the
// index of the closing marker.
func (b *builder) quoted(at, hi int, lit *pending) (int, error) {
	end := b.closeQuote(at, hi)
	if end < 0 {
		return 0, ErrUnterminatedQuote.WithPosition(b.toks[at].Pos)
	}

	if at+1 == end {
		// An empty quoted literal still contributes an empty literal.
		lit.add(b.toks[at].Pos, "")
	}

	for _, tok := range b.toks[at+1 : end] {
		lit.add(tok.Pos, tok.Text())
	}

	return end, nil
}

// closeQuote returns the index of the quote marker closing the one at index
// at, or -1.
func (b *builder) closeQuote(at, hi int) int {
	for j := at + 1; j < hi; j++ {
		if b.toks[j].Kind == TokenQuote {
			return j
		}
	}

	return -1
}

// placeholder builds the variable opened at index at and returns the index of
// its closing brace.
func (b *builder) placeholder(at, hi int) (int, *Node, error) {
	open := b.toks[at]
	depth := 0

	for j := at; j < hi; j++ {
		switch b.toks[j].Kind {
		case TokenQuote:
			q := b.closeQuote(j, hi)
			if q < 0 {
				return 0, nil, ErrUnterminatedQuote.WithPosition(b.toks[j].Pos)
			}

			j = q

		case TokenBlockStart:
			depth++

		case TokenBlockEnd:
			depth--
			if depth == 0 {
				name := strings.TrimSpace(b.text(at+1, j))
				if name == "" {
					return 0, nil, ErrEmptyName.WithPosition(open.Pos)
				}

				return j, b.node(&Node{
					Kind: NodeVariable,
					Text: name,
					Pos:  open.Pos,
				}), nil
			}
		}
	}

	return 0, nil, ErrUnterminatedPlaceholder.WithPosition(open.Pos)
}

// text concatenates the literal text of tokens in [lo, hi), dropping quote
// markers and resolving escapes.
func (b *builder) text(lo, hi int) string {
	var sb strings.Builder

	for _, tok := range b.toks[lo:hi] {
		if tok.Kind != TokenQuote {
			sb.WriteString(tok.Text())
		}
	}

	return sb.String()
}

// call builds the function call opened at index at and returns the index of
// its closing bracket.
func (b *builder) call(at, hi int) (int, *Node, error) {
	open := b.toks[at]

	// Header: '[' name '('
	paren := at + 1
	for paren < hi {
		kind := b.toks[paren].Kind
		if kind == TokenParenOpen {
			break
		}

		if kind != TokenLiteral && kind != TokenEscape {
			return 0, nil, ErrMalformedCall.
				WithPosition(open.Pos).
				With(slog.String("reason", "missing '('"))
		}

		paren++
	}

	if paren >= hi {
		return 0, nil, ErrMalformedCall.
			WithPosition(open.Pos).
			With(slog.String("reason", "missing '('"))
	}

	name := strings.TrimSpace(b.text(at+1, paren))
	if name == "" {
		return 0, nil, ErrMalformedCall.
			WithPosition(open.Pos).
			With(slog.String("reason", "empty function name"))
	}

	end, err := b.closeParen(paren, hi)
	if err != nil {
		return 0, nil, err
	}

	if end < 0 {
		return 0, nil, ErrUnterminatedCall.
			WithPosition(open.Pos).
			With(slog.String("function", name))
	}

	if end+1 >= hi || b.toks[end+1].Kind != TokenCallClose {
		return 0, nil, ErrMalformedCall.
			WithPosition(open.Pos).
			With(slog.String("function", name)).
			With(slog.String("reason", "missing ']'"))
	}

	b.depth++
	defer func() { b.depth-- }()

	if b.depth > b.maxDepth {
		return 0, nil, ErrMaxDepthExceeded.
			WithPosition(open.Pos).
			With(slog.Int("depth", b.depth)).
			With(slog.Int("max_depth", b.maxDepth))
	}

	b.deepest = max(b.deepest, b.depth)

	args, err := b.arguments(paren+1, end)
	if err != nil {
		return 0, nil, err
	}

	return end + 1, b.node(&Node{
		Kind:     NodeCall,
		Text:     name,
		Children: args,
		Pos:      open.Pos,
	}), nil
}

// closeParen returns the index of the ')' balancing the '(' at index at, or
// -1. The match requires both the paren and the placeholder depth to return
// to zero, so a ')' inside a placeholder does not end the call.
func (b *builder) closeParen(at, hi int) (int, error) {
	parens, blocks := 0, 0

	for j := at; j < hi; j++ {
		switch b.toks[j].Kind {
		case TokenQuote:
			q := b.closeQuote(j, hi)
			if q < 0 {
				return 0, ErrUnterminatedQuote.WithPosition(b.toks[j].Pos)
			}

			j = q

		case TokenParenOpen:
			parens++

		case TokenParenClose:
			parens--
			if parens == 0 && blocks == 0 {
				return j, nil
			}

		case TokenBlockStart:
			blocks++

		case TokenBlockEnd:
			blocks--
		}
	}

	return -1, nil
}

// arguments splits [lo, hi) on top-level commas and builds each segment.
// An empty range has no arguments.
func (b *builder) arguments(lo, hi int) ([]*Node, error) {
	if lo == hi {
		return nil, nil
	}

	var args []*Node

	from := lo
	for _, sep := range append(b.commas(lo, hi), hi) {
		arg, err := b.build(from, sep)
		if err != nil {
			return nil, err
		}

		args = append(args, arg)
		from = sep + 1
	}

	return args, nil
}

// commas returns the indices of commas in [lo, hi) that are not nested in
// parens, placeholders, or quoted literals.
func (b *builder) commas(lo, hi int) []int {
	var (
		idx            []int
		parens, blocks int
	)

	for j := lo; j < hi; j++ {
		switch b.toks[j].Kind {
		case TokenQuote:
			if q := b.closeQuote(j, hi); q >= 0 {
				j = q
			}

		case TokenParenOpen:
			parens++

		case TokenParenClose:
			parens--

		case TokenBlockStart:
			blocks++

		case TokenBlockEnd:
			blocks--

		case TokenComma:
			if parens == 0 && blocks == 0 {
				idx = append(idx, j)
			}
		}
	}

	return idx
}
