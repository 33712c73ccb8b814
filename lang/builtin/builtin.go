// Package builtin provides the standard function library for splice
// templates.
//
// Every function evaluates only the arguments it needs, so branches that are
// not selected by if, get, or or are never evaluated.
//
// # Functions
//
//	lower(s)               lowercase s
//	upper(s)               uppercase s
//	trim(s)                s without surrounding whitespace
//	len(s)                 number of runes in s
//	calc(expr)             result of an expr-lang expression over the variables
//	randint(min, max)      uniform random integer in [min, max]
//	get(i, a0, a1, ...)    a_i, or a0 if i is out of range
//	if(cond, then[, else]) then if cond is truthy, else otherwise
//	or(a, b, ...)          first argument that is non-empty and not cancelled
//	cancel()               cancel the enclosing sequence
//	stop([s])              stop evaluation, appending s
//	repeat(n, s)           s evaluated n times
//	env(name[, default])   process environment variable
//	path(a, b, ...)        path elements joined with the OS separator
//	prefix(list, a, ...)   PATH-like list with items prepended
package builtin

import (
	"math/rand/v2"
	"os"

	"github.com/ardnew/splice/lang"
)

// config holds the dependencies of functions that touch the outside world.
type config struct {
	rand      *rand.Rand
	lookup    func(string) (string, bool)
	cacheSize int
}

// Option configures the function library.
type Option func(config) config

// WithRand sets the random source used by randint.
func WithRand(r *rand.Rand) Option {
	return func(c config) config {
		c.rand = r

		return c
	}
}

// WithLookupEnv sets the function used by env to read the environment.
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(c config) config {
		c.lookup = fn

		return c
	}
}

// WithCacheSize sets how many compiled calc expressions are kept. Each
// function library has its own cache.
func WithCacheSize(n int) Option {
	return func(c config) config {
		c.cacheSize = n

		return c
	}
}

func makeConfig(opts ...Option) config {
	c := config{lookup: os.LookupEnv, cacheSize: DefaultCacheSize}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.rand == nil {
		c.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	if c.lookup == nil {
		c.lookup = os.LookupEnv
	}

	return c
}

// Functions returns every builtin function.
func Functions(opts ...Option) []lang.NamedFunction {
	c := makeConfig(opts...)

	return []lang.NamedFunction{
		lang.Named("lower", lower),
		lang.Named("upper", upper),
		lang.Named("trim", trim),
		lang.Named("len", length),
		lang.Named("calc", calc(newProgramCache(c.cacheSize))),
		lang.Named("randint", randint(c.rand)),
		lang.Named("get", get),
		lang.Named("if", ifElse),
		lang.Named("or", or),
		lang.Named("cancel", cancel),
		lang.Named("stop", stop),
		lang.Named("repeat", repeat),
		lang.Named("env", env(c.lookup)),
		lang.Named("path", path),
		lang.Named("prefix", prefix),
	}
}

// Register adds every builtin function to r.
func Register(r *lang.Registry, opts ...Option) {
	r.Register(Functions(opts...)...)
}

// NewRegistry returns a registry containing every builtin function.
func NewRegistry(opts ...Option) *lang.Registry {
	r := lang.NewRegistry()
	Register(r, opts...)

	return r
}
