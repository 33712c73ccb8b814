package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"
)

// Funcs lists the registered functions and, optionally, variables.
type Funcs struct {
	All bool `help:"Also list variables and their values." short:"a"`
}

// Run executes the funcs command.
func (f *Funcs) Run(ctx context.Context) error {
	eng := engineFrom(ctx)
	tw := tabwriter.NewWriter(streamsFrom(ctx).Out, 0, 4, 2, ' ', 0)

	for _, name := range eng.Registry.FunctionNames() {
		fn, ok := eng.Registry.Function(name)
		if !ok {
			continue
		}

		fmt.Fprintf(tw, "%s\t%s\n", name, fn.ArgRange())
	}

	if f.All {
		snap := eng.Registry.CreateContext(ctx)

		for _, name := range snap.VariableNames() {
			v, _ := snap.Lookup(name)

			fmt.Fprintf(tw, "{%s}\t%s\t%q\n", name, v.Kind(), v.String())
		}
	}

	if err := tw.Flush(); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
