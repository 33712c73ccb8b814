package lang

import (
	"math"
	"testing"
)

func TestValue_String(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"empty", Value{}, ""},
		{"string", String("abc"), "abc"},
		{"int", Int(-42), "-42"},
		{"float", Float(1.5), "1.5"},
		{"float integral", Float(2), "2"},
		{"nan", Float(math.NaN()), "NaN"},
		{"bool", Bool(true), "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValue_Int(t *testing.T) {
	tests := []struct {
		v    Value
		want int64
		ok   bool
	}{
		{Int(7), 7, true},
		{Float(3.9), 3, true},
		{Bool(true), 1, true},
		{String(" 12 "), 12, true},
		{String("0x10"), 0, false},
		{String("0b11"), 0, false},
		{String("1_000"), 0, false},
		{String("08"), 8, true},
		{String("010"), 10, true},
		{String("+4"), 4, true},
		{String("-3"), -3, true},
		{String("1.5"), 0, false},
		{String("abc"), 0, false},
		{Value{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.v.Kind().String()+":"+tt.v.String(), func(t *testing.T) {
			got, ok := tt.v.Int()
			if got != tt.want || ok != tt.ok {
				t.Errorf("Int() = %d, %v; want %d, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestValue_Truthy(t *testing.T) {
	tests := []struct {
		v    Value
		want bool
	}{
		{Value{}, false},
		{String(""), false},
		{String("0"), false},
		{String("false"), false},
		{String("FALSE"), false},
		{String(" no "), false},
		{String("off"), false},
		{String("yes"), true},
		{String("anything"), true},
		{Int(0), false},
		{Int(-1), true},
		{Float(0), false},
		{Float(0.1), true},
		{Bool(false), false},
		{Bool(true), true},
	}

	for _, tt := range tests {
		t.Run(tt.v.Kind().String()+":"+tt.v.String(), func(t *testing.T) {
			if got := tt.v.Truthy(); got != tt.want {
				t.Errorf("Truthy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueOf(t *testing.T) {
	tests := []struct {
		in   any
		kind ValueKind
		want string
	}{
		{nil, KindEmpty, ""},
		{"s", KindString, "s"},
		{3, KindInt, "3"},
		{uint16(9), KindInt, "9"},
		{2.25, KindFloat, "2.25"},
		{false, KindBool, "false"},
		{Int(5), KindInt, "5"},
		{struct{}{}, KindEmpty, ""},
	}

	for _, tt := range tests {
		v := ValueOf(tt.in)
		if v.Kind() != tt.kind || v.String() != tt.want {
			t.Errorf("ValueOf(%#v) = %v %q, want %v %q",
				tt.in, v.Kind(), v.String(), tt.kind, tt.want)
		}
	}
}
