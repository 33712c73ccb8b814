package builtin

import (
	"strings"
	"unicode/utf8"

	"github.com/ardnew/splice/lang"
)

// transform returns a one-argument function that maps the text of its
// evaluated argument through fn.
func transform(fn func(string) lang.Value) lang.Function {
	return lang.Func(lang.Exactly(1), func(ctx *lang.Context, args []*lang.Node) (lang.Result, error) {
		res, err := ctx.EvaluateArg(args, 0)
		if err != nil || res.Halts() {
			return res, err
		}

		return lang.Success(fn(res.String())), nil
	})
}

var (
	lower = transform(func(s string) lang.Value {
		return lang.String(strings.ToLower(s))
	})

	upper = transform(func(s string) lang.Value {
		return lang.String(strings.ToUpper(s))
	})

	trim = transform(func(s string) lang.Value {
		return lang.String(strings.TrimSpace(s))
	})

	length = transform(func(s string) lang.Value {
		return lang.Int(int64(utf8.RuneCountInString(s)))
	})
)

// maxRepeat bounds the count accepted by repeat.
const maxRepeat = 1 << 16

var repeat = lang.Func(lang.Exactly(2), func(ctx *lang.Context, args []*lang.Node) (lang.Result, error) {
	res, err := ctx.EvaluateArg(args, 0)
	if err != nil || res.Halts() {
		return res, err
	}

	n, ok := res.Value.Int()
	if !ok || n <= 0 {
		return lang.Success(lang.String("")), nil
	}

	n = min(n, maxRepeat)

	var sb strings.Builder

	for range n {
		body, err := ctx.EvaluateArg(args, 1)
		if err != nil {
			return body, err
		}

		if body.Halts() {
			if body.Signal == lang.SignalTerminate {
				sb.WriteString(body.String())

				return lang.Terminate(lang.String(sb.String())), nil
			}

			return body, nil
		}

		sb.WriteString(body.String())
	}

	return lang.Success(lang.String(sb.String())), nil
})
