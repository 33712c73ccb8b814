package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/ardnew/splice/lang"
)

// Tree parses a template and prints its node tree.
type Tree struct {
	Source `embed:""`

	Format string `default:"text" enum:"text,json,yaml,source" help:"Output format (${enum})."         short:"o"`
	Indent int    `default:"2"                                help:"Spaces per nesting level."`
	Color  string `default:"auto" enum:"auto,always,never"    help:"Colorize text output (${enum})."`
}

// Run executes the tree command.
func (t *Tree) Run(ctx context.Context) error {
	text, err := t.text(ctx)
	if err != nil {
		return err
	}

	eng := engineFrom(ctx)

	root, err := lang.Parse(ctx, text, eng.Options...)
	if err != nil {
		return ErrRender.With(slog.String("command", "tree")).Wrap(err)
	}

	out := streamsFrom(ctx).Out

	switch t.Format {
	case "json":
		err = root.FormatJSON(ctx, out, t.Indent)
	case "yaml":
		err = root.FormatYAML(ctx, out, t.Indent)
	case "source":
		err = root.FormatSource(ctx, out)
	default:
		err = root.FormatTree(ctx, out, t.Indent, treeStyle(t.Color, out))
	}

	if err != nil {
		return ErrWriteOutput.With(slog.String("format", t.Format)).Wrap(err)
	}

	return nil
}

// colorize reports whether output to w should be colored in the given
// mode.
func colorize(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	f, ok := w.(*os.File)

	return ok && os.Getenv("NO_COLOR") == "" &&
		(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func treeStyle(mode string, w io.Writer) lang.TreeStyle {
	if !colorize(mode, w) {
		return lang.TreeStyle{}
	}

	paint := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		c.EnableColor()

		return c.SprintFunc()
	}

	return lang.TreeStyle{
		Kind:     paint(color.FgBlue, color.Bold),
		Text:     paint(color.FgGreen),
		Position: paint(color.FgHiBlack),
	}
}
