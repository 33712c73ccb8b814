package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// TreeStyle decorates the fields of each line written by [Node.FormatTree].
// A nil field leaves its text unchanged.
type TreeStyle struct {
	Kind     func(a ...any) string
	Text     func(a ...any) string
	Position func(a ...any) string
}

func (s TreeStyle) apply(fn func(a ...any) string, text string) string {
	if fn == nil {
		return text
	}

	return fn(text)
}

// FormatTree writes n as an indented outline, one node per line.
func (n *Node) FormatTree(_ context.Context, w io.Writer, indent int, style TreeStyle) error {
	var err error

	n.Walk(func(node *Node, depth int) bool {
		line := strings.Repeat(" ", depth*indent) + style.apply(style.Kind, node.Kind.String())

		switch node.Kind {
		case NodeLiteral:
			line += " " + style.apply(style.Text, strconv.Quote(node.Text))

		case NodeVariable, NodeCall:
			line += " " + style.apply(style.Text, node.Text)
		}

		line += " " + style.apply(style.Position, "@"+node.Pos.String())

		_, err = fmt.Fprintln(w, line)

		return err == nil
	})

	return err
}

// FormatSource writes the canonical template text of n.
func (n *Node) FormatSource(_ context.Context, w io.Writer) error {
	_, err := fmt.Fprintln(w, n.Source())

	return err
}

// FormatJSON writes n as JSON to the writer.
func (n *Node) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(n, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(n)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes n as YAML to the writer.
func (n *Node) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, n.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// ToMap converts n to nested maps and slices for generic encoders.
func (n *Node) ToMap() map[string]any {
	m := map[string]any{
		"kind": n.Kind.String(),
		"pos":  n.Pos.String(),
	}

	if n.Kind != NodeSequence {
		m["text"] = n.Text
	}

	if len(n.Children) > 0 {
		children := make([]any, len(n.Children))
		for i, child := range n.Children {
			children[i] = child.ToMap()
		}

		m["children"] = children
	}

	return m
}
