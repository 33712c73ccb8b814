package builtin

import (
	"os"
	"path/filepath"

	"github.com/ardnew/mung"

	"github.com/ardnew/splice/lang"
)

// evalAll evaluates every argument in order, stopping at the first error or
// halting result.
func evalAll(ctx *lang.Context, args []*lang.Node) ([]string, lang.Result, error) {
	out := make([]string, len(args))

	for i := range args {
		res, err := ctx.EvaluateArg(args, i)
		if err != nil || res.Halts() {
			return nil, res, err
		}

		out[i] = res.String()
	}

	return out, lang.Result{}, nil
}

// env returns a function that reads a process environment variable, with an
// optional default for unset names.
func env(lookup func(string) (string, bool)) lang.Function {
	return lang.Func(lang.Between(1, 2), func(ctx *lang.Context, args []*lang.Node) (lang.Result, error) {
		res, err := ctx.EvaluateArg(args, 0)
		if err != nil || res.Halts() {
			return res, err
		}

		if v, ok := lookup(res.String()); ok {
			return lang.Success(lang.String(v)), nil
		}

		return ctx.EvaluateArg(args, 1)
	})
}

var path = lang.Func(lang.AtLeast(1), func(ctx *lang.Context, args []*lang.Node) (lang.Result, error) {
	elem, res, err := evalAll(ctx, args)
	if err != nil || res.Halts() {
		return res, err
	}

	return lang.Success(lang.String(filepath.Join(elem...))), nil
})

// prefix prepends items to a PATH-like list delimited by the OS list
// separator.
var prefix = lang.Func(lang.AtLeast(2), func(ctx *lang.Context, args []*lang.Node) (lang.Result, error) {
	items, res, err := evalAll(ctx, args)
	if err != nil || res.Halts() {
		return res, err
	}

	return lang.Success(lang.String(mungPrefix(items[0], items[1:]...))), nil
})

func mungPrefix(list string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()
}
