// Package cli implements the splice command line.
//
// # Usage
//
//	splice [flags] [render] TEMPLATE...
//	splice tree [--format text|json|yaml|source] TEMPLATE...
//	splice tokens TEMPLATE...
//	splice funcs [--all]
//	splice repl
//	splice init [--force]
//
// Render is the default command, so a bare template renders it:
//
//	$ splice -D cool=awesome 'This is an {cool} [lower(MOMENT)]'
//	This is an awesome moment
//
// # Variables
//
// Variables come from YAML files given with --vars, applied in order, and
// then from -D/--var KEY=VALUE flags. See [loadVars] for the file format.
//
// # Configuration
//
// Flag defaults are read from $XDG_CONFIG_HOME/splice/config.yaml, a YAML
// mapping from flag names to values. The init command writes one from the
// current flags.
//
// # Profiling
//
// With the pprof build tag, --pprof-mode and --pprof-dir enable runtime
// profiling through package profile.
package cli
