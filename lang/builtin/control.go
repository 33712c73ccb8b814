package builtin

import "github.com/ardnew/splice/lang"

// get selects one of its arguments by index. The index is evaluated first;
// if it is an integer i with 0 <= i < len(args)-1, argument i+1 is
// evaluated and returned. Otherwise argument 1 is the default.
var get = lang.Func(lang.AtLeast(3), func(ctx *lang.Context, args []*lang.Node) (lang.Result, error) {
	res, err := ctx.EvaluateArg(args, 0)
	if err != nil || res.Halts() {
		return res, err
	}

	i, ok := res.Value.Int()
	if !ok || i < 0 || i >= int64(len(args)-1) {
		i = 0
	}

	return ctx.EvaluateArg(args, int(i)+1)
})

var ifElse = lang.Func(lang.Between(2, 3), func(ctx *lang.Context, args []*lang.Node) (lang.Result, error) {
	res, err := ctx.EvaluateArg(args, 0)
	if err != nil || res.Halts() {
		return res, err
	}

	if res.Value.Truthy() {
		return ctx.EvaluateArg(args, 1)
	}

	// A missing else branch yields an empty result.
	return ctx.EvaluateArg(args, 2)
})

// or returns the first argument that succeeds with a non-empty value.
// Cancelled arguments are skipped.
var or = lang.Func(lang.AtLeast(1), func(ctx *lang.Context, args []*lang.Node) (lang.Result, error) {
	for i := range args {
		res, err := ctx.EvaluateArg(args, i)
		if err != nil {
			return res, err
		}

		switch res.Signal {
		case lang.SignalTerminate:
			return res, nil

		case lang.SignalCancel:
			continue
		}

		if !res.Value.IsEmpty() {
			return res, nil
		}
	}

	return lang.Success(lang.Value{}), nil
})

var cancel = lang.Func(lang.Exactly(0), func(*lang.Context, []*lang.Node) (lang.Result, error) {
	return lang.Cancel(), nil
})

var stop = lang.Func(lang.Between(0, 1), func(ctx *lang.Context, args []*lang.Node) (lang.Result, error) {
	res, err := ctx.EvaluateArg(args, 0)
	if err != nil || res.Halts() {
		return res, err
	}

	return lang.Terminate(res.Value), nil
})
