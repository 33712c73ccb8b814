// Package lang implements the splice template language: a tokenizer, a
// recursive-descent node builder, and a tree-walking evaluator with
// cooperative short-circuit signals.
//
// # Grammar
//
// Informal EBNF:
//
//	Template     → (Literal | Placeholder | Call | Quoted | Escape)*
//	Placeholder  → '{' Name '}'
//	Call         → '[' Name '(' (Arg (',' Arg)*)? ')' ']'
//	Arg          → Template
//	Quoted       → "'''" <any text> "'''"
//	Escape       → '\' <any rune>
//
// Delimiters that do not start one of these constructs are literal text, so
// a template without placeholders or calls renders to itself.
//
// # Example
//
//	r := lang.NewRegistry()
//	r.SetVariable("cool", lang.String("EPIC COOL BEANS"))
//	r.Register(lang.Named("lower", lang.Func(lang.Exactly(1),
//		func(ctx *lang.Context, args []*lang.Node) (lang.Result, error) {
//			res, err := ctx.EvaluateArg(args, 0)
//			if err != nil || res.Halts() {
//				return res, err
//			}
//			return lang.Success(lang.String(strings.ToLower(res.String()))), nil
//		})))
//
//	out, err := r.Render(ctx, "This is an {cool} [lower(MOMENT)]")
//	// out == "This is an EPIC COOL BEANS moment"
//
// # Evaluation
//
// Every node evaluates to a [Result] tagged [Success], [Cancel], or
// [Terminate]. A Cancel discards the output of the nearest enclosing
// sequence and keeps propagating until a function converts it. At the top
// level it renders as the empty string. A Terminate stops the entire
// evaluation and carries the output produced so far.
//
// Function arguments are passed unevaluated. Each [Function] decides which
// arguments to evaluate, which is how conditional functions avoid evaluating
// unused branches.
//
// # Errors
//
// Syntax errors ([ErrSyntax]) abort parsing and arity errors ([ErrArity])
// abort evaluation. Neither is a control-flow signal: they are returned as Go
// errors and never produce partial output.
package lang
