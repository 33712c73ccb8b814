package lang

import (
	"errors"
	"strings"
	"testing"
)

// countingFunc records how many times it is invoked.
type countingFunc struct {
	arity ArgRange
	calls int
}

func (f *countingFunc) ArgRange() ArgRange { return f.arity }

func (f *countingFunc) Evaluate(*Context, []*Node) (Result, error) {
	f.calls++

	return Success(String("ok")), nil
}

// testRegistry returns a registry with a few functions exercising each
// control-flow signal.
func testRegistry() *Registry {
	r := NewRegistry()

	r.Register(
		Named("lower", Func(Exactly(1), func(ctx *Context, args []*Node) (Result, error) {
			res, err := ctx.EvaluateArg(args, 0)
			if err != nil || res.Halts() {
				return res, err
			}

			return Success(String(strings.ToLower(res.String()))), nil
		})),
		Named("cancel", Func(Exactly(0), func(*Context, []*Node) (Result, error) {
			return Cancel(), nil
		})),
		Named("stop", Func(Between(0, 1), func(ctx *Context, args []*Node) (Result, error) {
			res, err := ctx.EvaluateArg(args, 0)
			if err != nil || res.Halts() {
				return res, err
			}

			return Terminate(res.Value), nil
		})),
		// guard converts a Cancel from its argument into fixed text.
		Named("guard", Func(Exactly(1), func(ctx *Context, args []*Node) (Result, error) {
			res, err := ctx.EvaluateArg(args, 0)
			if err != nil {
				return res, err
			}

			if res.Signal == SignalCancel {
				return Success(String("caught")), nil
			}

			return res, nil
		})),
		Named("first", Func(AtLeast(1), func(ctx *Context, args []*Node) (Result, error) {
			return ctx.EvaluateArg(args, 0)
		})),
	)

	return r
}

func TestRender_Example(t *testing.T) {
	r := testRegistry()
	r.SetVariable("cool", String("EPIC COOL BEANS"))

	got, err := r.Render(t.Context(), "This is an {cool} [lower(MOMENT)]")
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	if want := "This is an EPIC COOL BEANS moment"; got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRender_UnresolvedVariable(t *testing.T) {
	got, err := NewRegistry().Render(t.Context(), "x{nope}y")
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	if got != "xy" {
		t.Errorf("Render = %q, want %q", got, "xy")
	}
}

func TestRender_ArityRejection(t *testing.T) {
	tests := []struct {
		name   string
		arity  ArgRange
		input  string
		reject bool
	}{
		{name: "exact match", arity: Exactly(1), input: "[f(a)]"},
		{name: "too many", arity: Exactly(1), input: "[f(a,b)]", reject: true},
		{name: "too few", arity: Exactly(1), input: "[f()]", reject: true},
		{name: "between low", arity: Between(1, 2), input: "[f(a)]"},
		{name: "between high", arity: Between(1, 2), input: "[f(a,b)]"},
		{name: "between over", arity: Between(1, 2), input: "[f(a,b,c)]", reject: true},
		{name: "unbounded", arity: AtLeast(2), input: "[f(a,b,c,d,e)]"},
		{name: "unbounded under", arity: AtLeast(2), input: "[f(a)]", reject: true},
		{name: "empty arguments count", arity: Exactly(2), input: "[f(,)]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := &countingFunc{arity: tt.arity}

			r := NewRegistry()
			r.RegisterFunction("f", fn)

			_, err := r.Render(t.Context(), tt.input)

			if tt.reject {
				if !errors.Is(err, ErrArity) || !errors.Is(err, ErrArgumentCount) {
					t.Errorf("error = %v, want %v", err, ErrArgumentCount)
				}

				if fn.calls != 0 {
					t.Errorf("function invoked %d times, want 0", fn.calls)
				}

				return
			}

			if err != nil {
				t.Fatalf("Render error: %v", err)
			}

			if fn.calls != 1 {
				t.Errorf("function invoked %d times, want 1", fn.calls)
			}
		})
	}
}

func TestRender_UnknownFunction(t *testing.T) {
	_, err := NewRegistry().Render(t.Context(), "a [nope(x)]")

	if !errors.Is(err, ErrUnknownFunction) {
		t.Errorf("error = %v, want %v", err, ErrUnknownFunction)
	}

	if !errors.Is(err, ErrArity) {
		t.Errorf("error = %v, want class %v", err, ErrArity)
	}

	if errors.Is(err, ErrSyntax) {
		t.Errorf("error = %v, must not be a syntax error", err)
	}
}

func TestRender_ValidatesUnevaluatedBranches(t *testing.T) {
	r := testRegistry()

	_, err := r.Render(t.Context(), "[first(a,[nope()])]")
	if !errors.Is(err, ErrUnknownFunction) {
		t.Errorf("error = %v, want %v", err, ErrUnknownFunction)
	}

	_, err = r.Render(t.Context(), "[first(a,[lower(x,y)])]")
	if !errors.Is(err, ErrArgumentCount) {
		t.Errorf("error = %v, want %v", err, ErrArgumentCount)
	}
}

func TestRender_Signals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "cancel is contained by guard",
			input: "a[guard(b[cancel()]c)]d",
			want:  "acaughtd",
		},
		{
			name:  "cancel in nested sequence",
			input: "a[guard([lower(X[cancel()])])]d",
			want:  "acaughtd",
		},
		{
			name:  "cancel at top level",
			input: "a[cancel()]b",
			want:  "",
		},
		{
			name:  "terminate keeps prior output",
			input: "a[stop(x)]b",
			want:  "ax",
		},
		{
			name:  "terminate passes through guard",
			input: "a[guard(b[stop(x)]c)]d",
			want:  "abx",
		},
		{
			name:  "terminate without content",
			input: "head [stop()] tail",
			want:  "head ",
		},
		{
			name:  "terminate inside call argument",
			input: "1[lower(A[stop(B)]C)]2",
			want:  "1AB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := testRegistry().Render(t.Context(), tt.input)
			if err != nil {
				t.Fatalf("Render error: %v", err)
			}

			if got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRender_SignalsSkipLaterSiblings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		calls int
	}{
		// The call after the guard still runs.
		{name: "cancel", input: "[guard(a[cancel()][count()])][count()]", calls: 1},
		{name: "terminate", input: "a[stop()][count()]", calls: 0},
		{
			name:  "terminate nested",
			input: "[first([lower(a[stop()][count()])][count()])][count()]",
			calls: 0,
		},
		{
			name:  "terminate through guard",
			input: "[guard([lower(a[stop()][count()])][count()])][count()]",
			calls: 0,
		},
		{
			name:  "terminate in later argument",
			input: "[first(x,[count()])][lower([stop()])][count()]",
			calls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := &countingFunc{arity: Exactly(0)}

			r := testRegistry()
			r.RegisterFunction("count", fn)

			if _, err := r.Render(t.Context(), tt.input); err != nil {
				t.Fatalf("Render error: %v", err)
			}

			if fn.calls != tt.calls {
				t.Errorf("count invoked %d times, want %d", fn.calls, tt.calls)
			}
		})
	}
}

func TestRegistry_Evaluate(t *testing.T) {
	r := testRegistry()

	tests := []struct {
		input  string
		signal Signal
		value  string
	}{
		{input: "plain", signal: SignalSuccess, value: "plain"},
		{input: "a[cancel()]b", signal: SignalCancel, value: ""},
		{input: "a[stop(z)]b", signal: SignalTerminate, value: "az"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			root, err := Parse(t.Context(), tt.input)
			if err != nil {
				t.Fatal(err)
			}

			res, err := r.Evaluate(t.Context(), root)
			if err != nil {
				t.Fatal(err)
			}

			if res.Signal != tt.signal || res.String() != tt.value {
				t.Errorf("Evaluate = %v %q, want %v %q",
					res.Signal, res.String(), tt.signal, tt.value)
			}
		})
	}
}

func TestRender_WithFallback(t *testing.T) {
	fallback := WithFallback(func(res Result) string {
		return "<" + res.Signal.String() + ":" + res.String() + ">"
	})

	r := testRegistry()

	got, err := r.Render(t.Context(), "a[cancel()]", fallback)
	if err != nil {
		t.Fatal(err)
	}

	if want := "<Cancel:>"; got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}

	got, err = r.Render(t.Context(), "a[stop(b)]", fallback)
	if err != nil {
		t.Fatal(err)
	}

	if want := "<Terminate:ab>"; got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestEvaluate_TypedValue(t *testing.T) {
	r := NewRegistry()
	r.SetVariable("n", Int(3))

	root, err := Parse(t.Context(), "{n}")
	if err != nil {
		t.Fatal(err)
	}

	res, err := r.Evaluate(t.Context(), root)
	if err != nil {
		t.Fatal(err)
	}

	if res.Value.Kind() != KindInt {
		t.Errorf("kind = %v, want %v", res.Value.Kind(), KindInt)
	}

	if i, ok := res.Value.Int(); !ok || i != 3 {
		t.Errorf("Int() = %d, %v", i, ok)
	}
}

func TestRegistry_Snapshot(t *testing.T) {
	r := NewRegistry()
	r.SetVariable("a", String("before"))

	ctx := r.CreateContext(t.Context())

	r.SetVariable("a", String("after"))
	r.SetVariable("b", String("new"))
	r.RegisterFunction("f", &countingFunc{})

	if v, _ := ctx.Lookup("a"); v.String() != "before" {
		t.Errorf("snapshot a = %q, want %q", v.String(), "before")
	}

	if _, ok := ctx.Lookup("b"); ok {
		t.Error("snapshot sees variable registered after creation")
	}

	if _, ok := ctx.Function("f"); ok {
		t.Error("snapshot sees function registered after creation")
	}
}

func TestRegistry_Merge(t *testing.T) {
	a := NewRegistry()
	a.SetVariable("x", String("a"))
	a.SetVariable("y", String("a"))

	b := NewRegistry()
	b.SetVariable("y", String("b"))
	b.RegisterFunction("f", &countingFunc{})

	a.Merge(b)

	got, err := a.Render(t.Context(), "{x}{y}[f()]")
	if err != nil {
		t.Fatal(err)
	}

	if got != "abok" {
		t.Errorf("Render = %q, want %q", got, "abok")
	}

	if names := a.FunctionNames(); len(names) != 1 || names[0] != "f" {
		t.Errorf("FunctionNames = %v", names)
	}
}

func TestRegistry_Names(t *testing.T) {
	r := testRegistry()
	r.SetVariable("zeta", String(""))
	r.SetVariable("alpha", String(""))

	want := []string{"cancel", "first", "guard", "lower", "stop"}
	got := r.FunctionNames()

	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("FunctionNames = %v, want %v", got, want)
	}

	if got := r.VariableNames(); strings.Join(got, ",") != "alpha,zeta" {
		t.Errorf("VariableNames = %v", got)
	}
}

func TestRegistry_RegisterNil(t *testing.T) {
	r := testRegistry()
	r.SetVariable("gone", String("x"))

	r.RegisterFunction("lower", nil)
	r.RegisterFunction("absent", nil)
	r.RegisterVariable("gone", nil)
	r.Register(nil)

	if _, ok := r.Function("lower"); ok {
		t.Error("nil function left lower registered")
	}

	if _, ok := r.Function("absent"); ok {
		t.Error("nil function was registered")
	}

	if got := r.VariableNames(); len(got) != 0 {
		t.Errorf("VariableNames = %v, want none", got)
	}

	_, err := r.Render(t.Context(), "[lower(A)]")
	if !errors.Is(err, ErrUnknownFunction) {
		t.Errorf("Render error = %v, want %v", err, ErrUnknownFunction)
	}
}

func TestVariableFunc(t *testing.T) {
	calls := 0

	r := NewRegistry()
	r.RegisterVariable("tick", VariableFunc(func() Value {
		calls++

		return Int(int64(calls))
	}))

	got, err := r.Render(t.Context(), "{tick},{tick}")
	if err != nil {
		t.Fatal(err)
	}

	if got != "1,2" {
		t.Errorf("Render = %q, want %q", got, "1,2")
	}
}

func TestContext_EvaluateArg(t *testing.T) {
	ctx := NewRegistry().CreateContext(t.Context())
	args := []*Node{Literal("a")}

	for _, i := range []int{-1, 1, 5} {
		res, err := ctx.EvaluateArg(args, i)
		if err != nil || res.Halts() || !res.Value.IsEmpty() {
			t.Errorf("EvaluateArg(%d) = %v, %v; want empty success", i, res, err)
		}
	}

	res, err := ctx.EvaluateArg(args, 0)
	if err != nil || res.String() != "a" {
		t.Errorf("EvaluateArg(0) = %v, %v", res, err)
	}
}

func TestArgRange_String(t *testing.T) {
	tests := []struct {
		r    ArgRange
		want string
	}{
		{Exactly(0), "0"},
		{Exactly(2), "2"},
		{Between(1, 3), "1..3"},
		{AtLeast(1), "1+"},
	}

	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.r, got, tt.want)
		}
	}
}
