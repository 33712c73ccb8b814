package lang

import (
	"log/slog"
	"strconv"
	"strings"
)

// NodeKind identifies the variant held by a [Node].
type NodeKind int

const (
	// NodeSequence is an ordered list of sibling nodes whose successful
	// results are concatenated.
	NodeSequence NodeKind = iota

	// NodeLiteral is fixed text.
	NodeLiteral

	// NodeVariable is a placeholder resolved by name in the [Context].
	NodeVariable

	// NodeCall is a function call with unevaluated argument nodes.
	NodeCall
)

// String returns a string representation of the node kind.
func (k NodeKind) String() string {
	switch k {
	case NodeSequence:
		return "Sequence"

	case NodeLiteral:
		return "Literal"

	case NodeVariable:
		return "Variable"

	case NodeCall:
		return "Call"

	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k NodeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Node is an element of the parse tree.
//
// Text is the literal text of a [NodeLiteral], the name of a [NodeVariable],
// or the function name of a [NodeCall]. Children holds the members of a
// [NodeSequence] or the arguments of a [NodeCall].
//
// A node exclusively owns its children and is not modified after it is
// built.
type Node struct {
	Text     string   `json:"text,omitempty"     yaml:"text,omitempty"`
	Children []*Node  `json:"children,omitempty" yaml:"children,omitempty"`
	Pos      Position `json:"pos"                yaml:"pos"`
	Kind     NodeKind `json:"kind"               yaml:"kind"`
}

// Literal returns a literal node.
func Literal(text string) *Node {
	return &Node{Kind: NodeLiteral, Text: text}
}

// Var returns a variable node.
func Var(name string) *Node {
	return &Node{Kind: NodeVariable, Text: name}
}

// Call returns a function call node.
func Call(name string, args ...*Node) *Node {
	return &Node{Kind: NodeCall, Text: name, Children: args}
}

// Sequence returns a sequence node.
func Sequence(children ...*Node) *Node {
	return &Node{Kind: NodeSequence, Children: children}
}

// Evaluate evaluates n in ctx.
//
// Errors are returned unchanged from nested evaluation. A Cancel or Terminate
// result from any descendant is propagated according to the node kind.
func (n *Node) Evaluate(ctx *Context) (Result, error) {
	switch n.Kind {
	case NodeLiteral:
		return Success(String(n.Text)), nil

	case NodeVariable:
		v, _ := ctx.Lookup(n.Text)

		return Success(v), nil

	case NodeSequence:
		return n.evaluateSequence(ctx)

	case NodeCall:
		return n.evaluateCall(ctx)

	default:
		return Result{}, NewError("invalid node kind").
			With(slog.String("kind", n.Kind.String()))
	}
}

func (n *Node) evaluateSequence(ctx *Context) (Result, error) {
	// A lone child keeps its typed value.
	if len(n.Children) == 1 {
		return n.Children[0].Evaluate(ctx)
	}

	var sb strings.Builder

	for _, child := range n.Children {
		res, err := child.Evaluate(ctx)
		if err != nil {
			return Result{}, err
		}

		switch res.Signal {
		case SignalCancel:
			return res, nil

		case SignalTerminate:
			sb.WriteString(res.String())

			return Terminate(String(sb.String())), nil

		default:
			sb.WriteString(res.String())
		}
	}

	return Success(String(sb.String())), nil
}

func (n *Node) evaluateCall(ctx *Context) (Result, error) {
	fn, err := ctx.resolve(n)
	if err != nil {
		return Result{}, err
	}

	ctx.logger.TraceContext(
		ctx.ctx,
		"call",
		slog.String("function", n.Text),
		slog.Int("argc", len(n.Children)),
	)

	res, err := fn.Evaluate(ctx, n.Children)
	if err != nil {
		return Result{}, err
	}

	if res.Halts() {
		ctx.logger.TraceContext(
			ctx.ctx,
			"halt",
			slog.String("function", n.Text),
			slog.String("signal", res.Signal.String()),
		)
	}

	return res, nil
}

// Walk calls fn for n and each of its descendants in depth-first order.
// The depth of n is 0. If fn returns false, the children of that node are
// skipped.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}

	for _, child := range n.Children {
		child.walk(fn, depth+1)
	}
}

// Source returns template text that parses to a tree equal to n, ignoring
// positions. Delimiters in literal text and names are escaped.
func (n *Node) Source() string {
	var sb strings.Builder

	n.source(&sb)

	return sb.String()
}

func (n *Node) source(sb *strings.Builder) {
	switch n.Kind {
	case NodeLiteral:
		if n.Text == "" {
			sb.WriteString(quoteMark + quoteMark)

			return
		}

		escape(sb, n.Text)

	case NodeVariable:
		sb.WriteByte('{')
		escape(sb, n.Text)
		sb.WriteByte('}')

	case NodeCall:
		sb.WriteByte('[')
		escape(sb, n.Text)
		sb.WriteByte('(')

		for i, arg := range n.Children {
			if i > 0 {
				sb.WriteByte(',')
			}

			arg.source(sb)
		}

		sb.WriteString(")]")

	case NodeSequence:
		for _, child := range n.Children {
			child.source(sb)
		}
	}
}

// escape writes s with every delimiter, backslash, and quote character
// preceded by a backslash.
func escape(sb *strings.Builder, s string) {
	for _, r := range s {
		if _, ok := delimiter(r); ok || r == escapeRune || r == quoteRune {
			sb.WriteRune(escapeRune)
		}

		sb.WriteRune(r)
	}
}

// String returns a compact description of n for debugging.
func (n *Node) String() string {
	switch n.Kind {
	case NodeLiteral:
		return "Literal(" + strconv.Quote(n.Text) + ")"

	case NodeVariable:
		return "Variable(" + n.Text + ")"

	case NodeCall:
		return "Call(" + n.Text + ", " + joinNodes(n.Children) + ")"

	case NodeSequence:
		return "Sequence(" + joinNodes(n.Children) + ")"

	default:
		return "Unknown"
	}
}

func joinNodes(nodes []*Node) string {
	parts := make([]string, len(nodes))
	for i, node := range nodes {
		parts[i] = node.String()
	}

	return "[" + strings.Join(parts, ", ") + "]"
}
