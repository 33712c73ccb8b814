package lang

import "github.com/ardnew/splice/log"

// DefaultMaxDepth is the default maximum nesting depth of function calls.
// Users may modify this before parsing to change the default.
var DefaultMaxDepth = 100

// options holds parse and evaluation configuration.
type options struct {
	logger   log.Logger
	fallback func(Result) string
	maxDepth int
}

// Option configures parsing or evaluation behavior.
type Option func(*options)

// WithMaxDepth sets the maximum nesting depth of function calls.
// A top-level call has depth 1, so a depth less than 1 rejects every call.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFallback sets the function that converts a non-Success top-level
// [Result] into output text. By default a Cancel yields the empty string and
// a Terminate yields the output produced before it.
func WithFallback(fn func(Result) string) Option {
	return func(o *options) {
		o.fallback = fn
	}
}

func makeOptions(opts ...Option) options {
	o := options{
		maxDepth: DefaultMaxDepth,
		fallback: defaultFallback,
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.fallback == nil {
		o.fallback = defaultFallback
	}

	return o
}

func defaultFallback(res Result) string {
	if res.Signal == SignalTerminate {
		return res.String()
	}

	return ""
}
