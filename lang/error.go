package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Error classes. Every error returned by this package belongs to one of them,
// so callers can test the class with errors.Is.
var (
	// ErrSyntax is the class of errors detected while building the node tree.
	ErrSyntax = NewError("syntax error")

	// ErrArity is the class of errors detected when a call node cannot be
	// dispatched to its function.
	ErrArity = NewError("invalid call")
)

// Syntax errors.
var (
	ErrUnterminatedPlaceholder = newClassError(ErrSyntax, "unterminated placeholder")
	ErrUnterminatedCall        = newClassError(ErrSyntax, "unterminated function call")
	ErrUnterminatedQuote       = newClassError(ErrSyntax, "unterminated quoted literal")
	ErrMalformedCall           = newClassError(ErrSyntax, "malformed function call")
	ErrEmptyName               = newClassError(ErrSyntax, "empty name")
	ErrMaxDepthExceeded        = newClassError(ErrSyntax, "maximum nesting depth exceeded")
)

// Call errors.
var (
	ErrArgumentCount   = newClassError(ErrArity, "argument count out of range")
	ErrUnknownFunction = newClassError(ErrArity, "unknown function")
)

// Error represents an error with optional structured logging attributes and
// source position. It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
	pos   *Position   // Source position, if known

	base  *Error // Sentinel this error was derived from
	class *Error // Class sentinel (ErrSyntax or ErrArity), if any
}

// NewError creates a new sentinel Error with a message.
func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.base = e

	return e
}

func newClassError(class *Error, msg string) *Error {
	e := NewError(msg)
	e.class = class

	return e
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg> at line L, column C: <err>"
	//   2. "<msg>: <err>"
	//   3. "<msg>"
	//   4. "<err>"
	part := make([]string, 0, 2)

	if e.msg != "" {
		msg := e.msg
		if e.pos != nil {
			msg += " at line " + strconv.Itoa(e.pos.Line) +
				", column " + strconv.Itoa(e.pos.Column)
		}

		part = append(part, msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from, or the class
// e belongs to.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.base == nil {
		return false
	}

	return e.base == t.base || (e.class != nil && e.class == t.base)
}

// Position returns the source position attached to e, if any.
func (e *Error) Position() (Position, bool) {
	if e.pos == nil {
		return Position{}, false
	}

	return *e.pos, true
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.pos != nil {
		attrs = append(attrs, slog.Any("position", *e.pos))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

func (e *Error) clone() *Error {
	c := *e

	return &c
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := e.clone()
	c.err = err

	return c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	c := e.clone()
	c.attrs = newAttrs

	return c
}

// WithPosition attaches a source position to the error.
func (e *Error) WithPosition(pos Position) *Error {
	c := e.clone()
	c.pos = &pos

	return c
}
