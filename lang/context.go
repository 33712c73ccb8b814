package lang

import (
	"context"
	"log/slog"

	"github.com/ardnew/splice/log"
)

// Context is the read-only environment of a single evaluation pass.
//
// It is a snapshot of a [Registry] taken by [Registry.CreateContext], so
// registrations made after it is created do not affect it.
type Context struct {
	ctx       context.Context
	functions map[string]Function
	variables map[string]Variable
	logger    log.Logger
}

// Context returns the context.Context the pass was created with.
func (c *Context) Context() context.Context { return c.ctx }

// Logger returns the logger of the pass.
func (c *Context) Logger() log.Logger { return c.logger }

// Function returns the function registered under name.
func (c *Context) Function(name string) (Function, bool) {
	fn, ok := c.functions[name]

	return fn, ok
}

// Variable returns the variable registered under name.
func (c *Context) Variable(name string) (Variable, bool) {
	v, ok := c.variables[name]

	return v, ok
}

// Lookup returns the current value of the variable registered under name.
// An unregistered name yields an empty Value and false.
func (c *Context) Lookup(name string) (Value, bool) {
	v, ok := c.variables[name]
	if !ok || v == nil {
		return Value{}, false
	}

	return v.Value(), true
}

// FunctionNames returns the names of all functions in c, sorted.
func (c *Context) FunctionNames() []string { return sortedKeys(c.functions) }

// VariableNames returns the names of all variables in c, sorted.
func (c *Context) VariableNames() []string { return sortedKeys(c.variables) }

// EvaluateArg evaluates args[i]. An index out of range yields an empty
// Success, so optional arguments need no length check.
func (c *Context) EvaluateArg(args []*Node, i int) (Result, error) {
	if i < 0 || i >= len(args) {
		return Success(Value{}), nil
	}

	return args[i].Evaluate(c)
}

// Evaluate validates root and then evaluates it.
func (c *Context) Evaluate(root *Node) (Result, error) {
	if err := c.Validate(root); err != nil {
		return Result{}, err
	}

	return root.Evaluate(c)
}

// Validate reports the first call in root, in source order, that names an
// unknown function or passes an argument count outside the function's range.
// Calls in branches that evaluation might skip are checked too.
func (c *Context) Validate(root *Node) error {
	var err error

	root.Walk(func(n *Node, _ int) bool {
		if err != nil {
			return false
		}

		if n.Kind == NodeCall {
			_, err = c.resolve(n)
		}

		return err == nil
	})

	return err
}

// resolve returns the function called by n after checking its argument
// count.
func (c *Context) resolve(n *Node) (Function, error) {
	fn, ok := c.functions[n.Text]
	if !ok || fn == nil {
		return nil, ErrUnknownFunction.
			WithPosition(n.Pos).
			With(slog.String("function", n.Text))
	}

	if r := fn.ArgRange(); !r.Contains(len(n.Children)) {
		return nil, ErrArgumentCount.
			WithPosition(n.Pos).
			With(
				slog.String("function", n.Text),
				slog.Int("argc", len(n.Children)),
				slog.String("want", r.String()),
			)
	}

	return fn, nil
}
