package lang

import (
	"context"
	"log/slog"
	"maps"
	"sync"
)

// Registry owns the functions and variables available to templates.
//
// A Registry is safe for concurrent use. Each evaluation pass works on a
// snapshot created by [Registry.CreateContext], so changes made while a pass
// is running do not affect it.
type Registry struct {
	functions map[string]Function
	variables map[string]Variable
	mu        sync.RWMutex
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		functions: make(map[string]Function),
		variables: make(map[string]Variable),
	}
}

// RegisterFunction registers fn under name, replacing any function already
// registered under it. A nil fn removes the function registered under name.
func (r *Registry) RegisterFunction(name string, fn Function) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if fn == nil {
		delete(r.functions, name)

		return
	}

	r.functions[name] = fn
}

// Register registers each function under its own name.
func (r *Registry) Register(fns ...NamedFunction) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, fn := range fns {
		if fn != nil {
			r.functions[fn.Name()] = fn
		}
	}
}

// RegisterVariable registers v under name, replacing any variable already
// registered under it. A nil v removes the variable registered under name.
func (r *Registry) RegisterVariable(name string, v Variable) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v == nil {
		delete(r.variables, name)

		return
	}

	r.variables[name] = v
}

// SetVariable registers a constant variable with value v under name.
func (r *Registry) SetVariable(name string, v Value) {
	r.RegisterVariable(name, Static(v))
}

// Merge copies every function and variable of other into r. Entries of other
// replace entries of r with the same name.
func (r *Registry) Merge(other *Registry) {
	if other == nil || other == r {
		return
	}

	other.mu.RLock()
	functions := maps.Clone(other.functions)
	variables := maps.Clone(other.variables)
	other.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	maps.Copy(r.functions, functions)
	maps.Copy(r.variables, variables)
}

// Function returns the function registered under name.
func (r *Registry) Function(name string) (Function, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.functions[name]

	return fn, ok
}

// FunctionNames returns the names of all registered functions, sorted.
func (r *Registry) FunctionNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortedKeys(r.functions)
}

// VariableNames returns the names of all registered variables, sorted.
func (r *Registry) VariableNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortedKeys(r.variables)
}

// CreateContext returns a snapshot of r for one evaluation pass.
// Only the [WithLogger] option applies to a Context.
func (r *Registry) CreateContext(ctx context.Context, opts ...Option) *Context {
	o := makeOptions(opts...)

	r.mu.RLock()
	c := &Context{
		ctx:       ctx,
		functions: maps.Clone(r.functions),
		variables: maps.Clone(r.variables),
		logger:    o.logger,
	}
	r.mu.RUnlock()

	o.logger.TraceContext(
		ctx,
		"context created",
		slog.Int("functions", len(c.functions)),
		slog.Int("variables", len(c.variables)),
	)

	return c
}

// Evaluate validates and evaluates root in a new Context and returns the raw
// Result, including any Cancel or Terminate signal.
func (r *Registry) Evaluate(
	ctx context.Context,
	root *Node,
	opts ...Option,
) (Result, error) {
	c := r.CreateContext(ctx, opts...)

	c.logger.TraceContext(ctx, "evaluate start", nodeAttrs(root)...)

	res, err := c.Evaluate(root)
	if err != nil {
		return Result{}, err
	}

	c.logger.TraceContext(
		ctx,
		"evaluate complete",
		slog.String("signal", res.Signal.String()),
	)

	return res, nil
}

// Render parses text and evaluates it against r, returning the output.
//
// A Success yields its value. Any other result is converted by the fallback
// set with [WithFallback]: by default a Cancel yields the empty string and a
// Terminate yields the output produced before it.
func (r *Registry) Render(
	ctx context.Context,
	text string,
	opts ...Option,
) (string, error) {
	root, err := Parse(ctx, text, opts...)
	if err != nil {
		return "", err
	}

	res, err := r.Evaluate(ctx, root, opts...)
	if err != nil {
		return "", err
	}

	if res.Halts() {
		return makeOptions(opts...).fallback(res), nil
	}

	return res.String(), nil
}
