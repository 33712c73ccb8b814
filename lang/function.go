package lang

import "strconv"

// ArgRange is the inclusive range of argument counts a [Function] accepts.
// If Bounded is false, Max is ignored and the range has no upper limit.
type ArgRange struct {
	Min     int
	Max     int
	Bounded bool
}

// Exactly returns a range accepting exactly n arguments.
func Exactly(n int) ArgRange { return ArgRange{Min: n, Max: n, Bounded: true} }

// AtLeast returns a range accepting n or more arguments.
func AtLeast(n int) ArgRange { return ArgRange{Min: n} }

// Between returns a range accepting from lo to hi arguments, inclusive.
func Between(lo, hi int) ArgRange { return ArgRange{Min: lo, Max: hi, Bounded: true} }

// Contains reports whether n arguments are in range.
func (r ArgRange) Contains(n int) bool {
	return n >= r.Min && (!r.Bounded || n <= r.Max)
}

// String formats r as "N", "MIN..MAX", or "MIN+".
func (r ArgRange) String() string {
	switch {
	case !r.Bounded:
		return strconv.Itoa(r.Min) + "+"

	case r.Min == r.Max:
		return strconv.Itoa(r.Min)

	default:
		return strconv.Itoa(r.Min) + ".." + strconv.Itoa(r.Max)
	}
}

// Function is an operation callable from a template.
//
// Evaluate receives the call's arguments unevaluated. It evaluates any of
// them it needs through [Context.EvaluateArg] or [Node.Evaluate], and must
// return every error those produce. Returning a Cancel result discards only
// the output of the enclosing sequence, while a Terminate result stops the
// whole template.
type Function interface {
	ArgRange() ArgRange
	Evaluate(ctx *Context, args []*Node) (Result, error)
}

// NamedFunction is a Function that carries its registration name.
type NamedFunction interface {
	Function
	Name() string
}

// EvalFunc is the signature of a Function's Evaluate method.
type EvalFunc func(ctx *Context, args []*Node) (Result, error)

type function struct {
	eval  EvalFunc
	arity ArgRange
}

func (f function) ArgRange() ArgRange { return f.arity }

func (f function) Evaluate(ctx *Context, args []*Node) (Result, error) {
	return f.eval(ctx, args)
}

// Func returns a Function accepting arguments in r that evaluates with fn.
func Func(r ArgRange, fn EvalFunc) Function {
	return function{eval: fn, arity: r}
}

type namedFunction struct {
	Function
	name string
}

func (f namedFunction) Name() string { return f.name }

// Named attaches name to fn.
func Named(name string, fn Function) NamedFunction {
	return namedFunction{Function: fn, name: name}
}

// Variable is a named value in a [Context].
type Variable interface {
	Value() Value
}

type static Value

func (s static) Value() Value { return Value(s) }

// Static returns a Variable that always yields v.
func Static(v Value) Variable { return static(v) }

// VariableFunc adapts a function to a Variable whose value is computed on
// each lookup.
type VariableFunc func() Value

// Value calls f.
func (f VariableFunc) Value() Value { return f() }
