package lang

import (
	"strconv"
	"strings"
)

// ValueKind identifies the type held by a [Value].
type ValueKind int

const (
	// KindEmpty is the zero Value. It renders as the empty string.
	KindEmpty ValueKind = iota

	// KindString holds a string.
	KindString

	// KindInt holds an int64.
	KindInt

	// KindFloat holds a float64.
	KindFloat

	// KindBool holds a bool.
	KindBool
)

// String returns a string representation of the value kind.
func (k ValueKind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"

	case KindString:
		return "String"

	case KindInt:
		return "Int"

	case KindFloat:
		return "Float"

	case KindBool:
		return "Bool"

	default:
		return "Unknown"
	}
}

// Value is the typed content of a [Result] or [Variable].
// The zero Value is empty.
type Value struct {
	kind ValueKind
	s    string
	i    int64
	f    float64
	b    bool
}

// String creates a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int creates an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float creates a floating-point Value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bool creates a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// ValueOf converts a native Go value to a Value. Strings, bools, integers,
// floats and [fmt.Stringer] values convert directly. Any other type yields
// the empty Value.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return Value{}
	case Value:
		return x
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case int:
		return Int(int64(x))
	case int8:
		return Int(int64(x))
	case int16:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case int64:
		return Int(x)
	case uint:
		return Int(int64(x))
	case uint8:
		return Int(int64(x))
	case uint16:
		return Int(int64(x))
	case uint32:
		return Int(int64(x))
	case uint64:
		return Int(int64(x))
	case float32:
		return Float(float64(x))
	case float64:
		return Float(x)
	case interface{ String() string }:
		return String(x.String())
	default:
		return Value{}
	}
}

// Kind returns the type held by v.
func (v Value) Kind() ValueKind { return v.kind }

// IsEmpty reports whether v renders as the empty string.
func (v Value) IsEmpty() bool {
	return v.kind == KindEmpty || (v.kind == KindString && v.s == "")
}

// String returns the textual form of v.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s

	case KindInt:
		return strconv.FormatInt(v.i, 10)

	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)

	case KindBool:
		return strconv.FormatBool(v.b)

	default:
		return ""
	}
}

// Int returns v as an integer. Strings are parsed as decimal after trimming
// whitespace, and floats are truncated. The second result is false if v has
// no integer interpretation.
func (v Value) Int() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true

	case KindFloat:
		return int64(v.f), true

	case KindBool:
		if v.b {
			return 1, true
		}

		return 0, true

	case KindString:
		i, err := strconv.ParseInt(strings.TrimSpace(v.s), 10, 64)

		return i, err == nil

	default:
		return 0, false
	}
}

// Float returns v as a floating-point number. The second result is false if
// v has no numeric interpretation.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true

	case KindInt:
		return float64(v.i), true

	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)

		return f, err == nil

	default:
		return 0, false
	}
}

// Truthy reports whether v counts as true in a condition.
//
// Booleans are themselves, numbers are true when non-zero, and strings are
// true unless empty or one of "0", "false", "no", "off" (case-insensitive).
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b

	case KindInt:
		return v.i != 0

	case KindFloat:
		return v.f != 0

	case KindString:
		switch strings.ToLower(strings.TrimSpace(v.s)) {
		case "", "0", "false", "no", "off":
			return false
		}

		return true

	default:
		return false
	}
}

// Native returns v as a native Go value: string, int64, float64, bool, or
// nil for an empty Value.
func (v Value) Native() any {
	switch v.kind {
	case KindString:
		return v.s

	case KindInt:
		return v.i

	case KindFloat:
		return v.f

	case KindBool:
		return v.b

	default:
		return nil
	}
}
