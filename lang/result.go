package lang

// Signal tags a [Result] with the control flow it requests.
type Signal int

const (
	// SignalSuccess continues evaluation normally.
	SignalSuccess Signal = iota

	// SignalCancel discards the output of the nearest enclosing sequence and
	// keeps propagating until a function converts it.
	SignalCancel

	// SignalTerminate stops the entire evaluation.
	SignalTerminate
)

// String returns a string representation of the signal.
func (s Signal) String() string {
	switch s {
	case SignalSuccess:
		return "Success"

	case SignalCancel:
		return "Cancel"

	case SignalTerminate:
		return "Terminate"

	default:
		return "Unknown"
	}
}

// Result is the outcome of evaluating a [Node].
type Result struct {
	Value  Value
	Signal Signal
}

// Success returns a Result that continues evaluation with v.
func Success(v Value) Result { return Result{Signal: SignalSuccess, Value: v} }

// Cancel returns a Result that discards the enclosing sequence's output.
func Cancel() Result { return Result{Signal: SignalCancel} }

// Terminate returns a Result that stops evaluation, carrying v as the output
// produced so far.
func Terminate(v Value) Result { return Result{Signal: SignalTerminate, Value: v} }

// Halts reports whether r interrupts evaluation, that is, whether the caller
// must return r instead of using its value.
func (r Result) Halts() bool { return r.Signal != SignalSuccess }

// String returns the textual form of r's value.
func (r Result) String() string { return r.Value.String() }
