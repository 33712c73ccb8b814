package cmd

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/ardnew/splice/lang"
)

// Tokens prints the token stream of a template.
type Tokens struct {
	Source `embed:""`
}

// Run executes the tokens command.
func (t *Tokens) Run(ctx context.Context) error {
	text, err := t.text(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(streamsFrom(ctx).Out, 0, 4, 2, ' ', 0)

	for _, tok := range lang.Tokenize(text) {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", tok.Pos, tok.Kind, strconv.Quote(tok.Raw))
	}

	if err := tw.Flush(); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
