// Package cmd implements the openr subcommands.
//
// Commands read their Sources documents from the context populated by
// [WithSourceFiles] and write results to the writer given to [WithOutput],
// which defaults to standard output.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
