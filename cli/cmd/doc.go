// Package cmd implements the splice subcommands.
//
// Each command is a kong command struct with a Run(context.Context) method.
// The shared template state ([Engine]) and I/O streams ([Streams]) travel
// in the context.
package cmd

var (
	// CacheIdentifier is the kong variable holding the cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable holding the configuration file
	// path.
	ConfigIdentifier = "config"
)
