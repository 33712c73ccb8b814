package cmd

import (
	"context"

	"github.com/ardnew/splice/cli/cmd/repl"
)

// Repl starts the interactive template playground.
type Repl struct{}

// Run executes the repl command.
func (Repl) Run(ctx context.Context) error {
	eng := engineFrom(ctx)
	s := streamsFrom(ctx)

	return repl.Run(ctx, eng.Registry,
		repl.WithLogger(eng.Logger),
		repl.WithOptions(eng.Options...),
		repl.WithStreams(s.In, s.Out),
	)
}
