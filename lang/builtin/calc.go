package builtin

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/splice/lang"
)

// calc returns a function evaluating its argument as an expr-lang
// expression. Every variable of the context is visible to the expression,
// with numeric text parsed as a number. Compile and runtime failures yield
// NaN. Programs are cached by source and environment shape, since a program
// compiled against one set of variable types is not valid for another.
func calc(programs *programCache) lang.Function {
	return lang.Func(lang.Exactly(1), func(ctx *lang.Context, args []*lang.Node) (lang.Result, error) {
		res, err := ctx.EvaluateArg(args, 0)
		if err != nil || res.Halts() {
			return res, err
		}

		source := strings.TrimSpace(res.String())
		if source == "" {
			return lang.Success(lang.Float(math.NaN())), nil
		}

		env, shape := exprEnv(ctx)

		value, err := runExpr(programs, source, shape, env)
		if err != nil {
			ctx.Logger().DebugContext(
				ctx.Context(),
				"calc failed",
				slog.String("source", source),
				slog.Any("error", err),
			)

			return lang.Success(lang.Float(math.NaN())), nil
		}

		return lang.Success(value), nil
	})
}

// exprEnv builds the expression environment from the context variables and
// a key describing its names and types.
func exprEnv(ctx *lang.Context) (map[string]any, string) {
	names := ctx.VariableNames()
	env := make(map[string]any, len(names))

	var shape strings.Builder

	for _, name := range names {
		v, _ := ctx.Lookup(name)

		native := numeric(v)
		env[name] = native

		fmt.Fprintf(&shape, "%s:%T;", name, native)
	}

	return env, shape.String()
}

// numeric converts string values that spell a number to that number.
func numeric(v lang.Value) any {
	if v.Kind() != lang.KindString {
		return v.Native()
	}

	s := strings.TrimSpace(v.String())

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}

	return v.String()
}

func runExpr(
	programs *programCache,
	source, shape string,
	env map[string]any,
) (lang.Value, error) {
	program, err := programs.getOrCompile(source+"\x00"+shape, func() (*vm.Program, error) {
		return expr.Compile(source, expr.Env(env))
	})
	if err != nil {
		return lang.Value{}, err
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return lang.Value{}, err
	}

	if v := lang.ValueOf(out); v.Kind() != lang.KindEmpty || out == nil {
		return v, nil
	}

	return lang.String(fmt.Sprint(out)), nil
}
