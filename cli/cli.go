package cli

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/splice/cli/cmd"
	"github.com/ardnew/splice/lang"
	"github.com/ardnew/splice/lang/builtin"
	"github.com/ardnew/splice/log"
	"github.com/ardnew/splice/pkg"
)

// CLI is the top-level command-line interface for splice.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print the version and exit."`

	Var      map[string]string `help:"Set variable KEY to VALUE (repeatable)."      mapsep:"none" placeholder:"KEY=VALUE" short:"D"`
	Vars     []string          `help:"Load variables from a YAML mapping (repeatable)." placeholder:"FILE" type:"existingfile"`
	MaxDepth int               `default:"${maxDepth}" help:"Maximum function call nesting depth."`

	Render cmd.Render `cmd:"" default:"withargs" help:"Render a template (default)."`
	Tree   cmd.Tree   `cmd:""                    help:"Print the parse tree of a template."`
	Tokens cmd.Tokens `cmd:""                    help:"Print the token stream of a template."`
	Funcs  cmd.Funcs  `cmd:""                    help:"List registered functions."`
	Repl   cmd.Repl   `cmd:""                    help:"Start the interactive playground."`
	Init   cmd.Init   `cmd:""                    help:"Write a configuration file with the current flag values."`
}

// Run executes the splice CLI with the given context and arguments using the
// process streams. The exit function is called by kong for --help and
// --version and on usage errors.
func Run(ctx context.Context, exit func(code int), args ...string) error {
	return run(ctx, cmd.Streams{}, exit, args...)
}

func run(ctx context.Context, streams cmd.Streams, exit func(code int), args ...string) error {
	var cli CLI

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Apply logger flags before kong reports anything.
	cli.Log.scan(args)

	configFile := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFile,
		cmd.CacheIdentifier:  cacheDir(),
		"maxDepth":           strconv.Itoa(lang.DefaultMaxDepth),
		"version":            pkg.Version(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	opts := []kong.Option{
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups([]kong.Group{cli.Log.group(), cli.Pprof.group()}),
		kong.BindSingletonProvider(func() context.Context { return ctx }),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(resolve(ctx), configFile),
		vars,
	}

	if streams.Out != nil || streams.Err != nil {
		opts = append(opts, kong.Writers(orDiscard(streams.Out), orDiscard(streams.Err)))
	}

	parser, err := kong.New(&cli, opts...)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Log.start(ctx)
	defer cli.Pprof.start(ctx)()

	eng, err := cli.engine(ctx)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithEngine(ctx, eng)
	ctx = cmd.WithStreams(ctx, streams)

	return ktx.Run(ctx)
}

// engine builds the registry and evaluation options from the parsed flags.
// Variables from --vars files are applied in order, then --var values.
func (c *CLI) engine(ctx context.Context) (*cmd.Engine, error) {
	logger := log.Default()
	reg := builtin.NewRegistry()

	for _, path := range c.Vars {
		vars, err := loadVarsFile(ctx, path)
		if err != nil {
			return nil, err
		}

		for _, name := range slices.Sorted(maps.Keys(vars)) {
			reg.SetVariable(name, vars[name])
		}
	}

	for name, value := range c.Var {
		reg.SetVariable(name, lang.String(value))
	}

	logger.DebugContext(ctx, "engine ready",
		slog.Int("functions", len(reg.FunctionNames())),
		slog.Int("variables", len(reg.VariableNames())),
		slog.Int("max_depth", c.MaxDepth),
	)

	return &cmd.Engine{
		Registry: reg,
		Logger:   logger,
		Options: []lang.Option{
			lang.WithMaxDepth(c.MaxDepth),
			lang.WithLogger(logger),
		},
	}, nil
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}

	return w
}
