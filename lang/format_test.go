package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestFormatTree(t *testing.T) {
	root, err := Parse(context.Background(), "a{b}[c(d)]")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var buf bytes.Buffer
	if err := root.FormatTree(context.Background(), &buf, 2, TreeStyle{}); err != nil {
		t.Fatalf("format error: %v", err)
	}

	want := strings.Join([]string{
		"Sequence @1:1",
		`  Literal "a" @1:1`,
		"  Variable b @1:2",
		"  Call c @1:5",
		`    Literal "d" @1:8`,
		"",
	}, "\n")

	if got := buf.String(); got != want {
		t.Errorf("format mismatch:\nwant: %q\ngot:  %q", want, got)
	}
}

func TestFormatTree_Style(t *testing.T) {
	root, err := Parse(context.Background(), "{v}")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	bracket := func(a ...any) string { return "<" + a[0].(string) + ">" }

	var buf bytes.Buffer

	err = root.FormatTree(context.Background(), &buf, 2, TreeStyle{
		Kind:     bracket,
		Text:     bracket,
		Position: bracket,
	})
	if err != nil {
		t.Fatalf("format error: %v", err)
	}

	if got, want := buf.String(), "<Variable> <v> <@1:1>\n"; got != want {
		t.Errorf("format mismatch:\nwant: %q\ngot:  %q", want, got)
	}
}

func TestFormatSource(t *testing.T) {
	root, err := Parse(context.Background(), "[f('''a,b''', {x})]")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var buf bytes.Buffer
	if err := root.FormatSource(context.Background(), &buf); err != nil {
		t.Fatalf("format error: %v", err)
	}

	if got, want := buf.String(), "[f(a\\,b, {x})]\n"; got != want {
		t.Errorf("format mismatch:\nwant: %q\ngot:  %q", want, got)
	}
}

func TestFormatJSON(t *testing.T) {
	root, err := Parse(context.Background(), "[f(x)]")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	for _, indent := range []int{0, 2} {
		var buf bytes.Buffer
		if err := root.FormatJSON(context.Background(), &buf, indent); err != nil {
			t.Fatalf("format error: %v", err)
		}

		var got struct {
			Kind     string `json:"kind"`
			Text     string `json:"text"`
			Children []struct {
				Kind string `json:"kind"`
				Text string `json:"text"`
			} `json:"children"`
		}

		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON %q: %v", buf.String(), err)
		}

		if got.Kind != "Call" || got.Text != "f" || len(got.Children) != 1 ||
			got.Children[0].Kind != "Literal" || got.Children[0].Text != "x" {
			t.Errorf("unexpected JSON: %s", buf.String())
		}
	}
}

func TestFormatYAML(t *testing.T) {
	root, err := Parse(context.Background(), "[f({x})]")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var buf bytes.Buffer
	if err := root.FormatYAML(context.Background(), &buf, 2); err != nil {
		t.Fatalf("format error: %v", err)
	}

	got := buf.String()
	for _, want := range []string{"kind: Call", "text: f", "kind: Variable", "text: x"} {
		if !strings.Contains(got, want) {
			t.Errorf("YAML missing %q:\n%s", want, got)
		}
	}
}
