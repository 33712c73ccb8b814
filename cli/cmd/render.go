package cmd

import (
	"context"
	"fmt"
	"log/slog"
)

// Render expands a template and prints the output.
type Render struct {
	Source `embed:""`

	NoNewline bool `help:"Do not print a trailing newline." short:"n"`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) error {
	text, err := r.text(ctx)
	if err != nil {
		return err
	}

	eng := engineFrom(ctx)

	out, err := eng.Registry.Render(ctx, text, eng.Options...)
	if err != nil {
		return ErrRender.With(slog.String("command", "render")).Wrap(err)
	}

	eng.Logger.DebugContext(ctx, "rendered", slog.Int("bytes", len(out)))

	if !r.NoNewline {
		out += "\n"
	}

	if _, err := fmt.Fprint(streamsFrom(ctx).Out, out); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
