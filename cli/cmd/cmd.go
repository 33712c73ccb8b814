package cmd

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/splice/lang"
	"github.com/ardnew/splice/lang/builtin"
	"github.com/ardnew/splice/log"
)

type (
	kongContextKey struct{}
	engineKey      struct{}
	streamsKey     struct{}
)

// WithContext returns a copy of ctx carrying ktx.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, kongContextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(kongContextKey{}).(*kong.Context)

	return ktx
}

// Engine is the template state shared by every command.
type Engine struct {
	Registry *lang.Registry
	Logger   log.Logger
	Options  []lang.Option
}

// WithEngine returns a copy of ctx carrying e.
func WithEngine(ctx context.Context, e *Engine) context.Context {
	return context.WithValue(ctx, engineKey{}, e)
}

// engineFrom returns the Engine stored in ctx, or one with only the builtin
// functions.
func engineFrom(ctx context.Context) *Engine {
	if e, ok := ctx.Value(engineKey{}).(*Engine); ok && e != nil {
		return e
	}

	return &Engine{Registry: builtin.NewRegistry()}
}

// Streams are the standard streams used by commands. Nil fields fall back
// to the process streams.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// WithStreams returns a copy of ctx carrying s.
func WithStreams(ctx context.Context, s Streams) context.Context {
	return context.WithValue(ctx, streamsKey{}, s)
}

func streamsFrom(ctx context.Context) Streams {
	s, _ := ctx.Value(streamsKey{}).(Streams)

	if s.In == nil {
		s.In = os.Stdin
	}

	if s.Out == nil {
		s.Out = os.Stdout
	}

	if s.Err == nil {
		s.Err = os.Stderr
	}

	return s
}

// stdinSource names standard input as a template file.
const stdinSource = "-"

// Source selects the template text of a command: either positional
// arguments or a file.
type Source struct {
	Template []string `arg:"" help:"Template text. Multiple arguments are joined with spaces." optional:""`
	File     string   `       help:"Read the template from FILE ('-' for stdin)."               placeholder:"FILE" short:"f"`
}

// text returns the selected template. A single trailing newline is removed
// from file content.
func (s Source) text(ctx context.Context) (string, error) {
	switch {
	case s.File != "" && len(s.Template) > 0:
		return "", ErrTemplateConflict

	case s.File == stdinSource:
		b, err := io.ReadAll(streamsFrom(ctx).In)
		if err != nil {
			return "", ErrReadTemplate.With(slogFile(s.File)).Wrap(err)
		}

		return chomp(string(b)), nil

	case s.File != "":
		b, err := os.ReadFile(s.File)
		if err != nil {
			return "", ErrReadTemplate.With(slogFile(s.File)).Wrap(err)
		}

		return chomp(string(b)), nil

	case len(s.Template) > 0:
		return strings.Join(s.Template, " "), nil

	default:
		return "", ErrNoTemplate
	}
}

func chomp(s string) string {
	s = strings.TrimSuffix(s, "\n")

	return strings.TrimSuffix(s, "\r")
}
