package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/openr/cli/cmd"
	"github.com/ardnew/openr/pkg"
)

// CLI is the top-level command-line interface for openr.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit."`

	Source []string `help:"Sources document(s), or '-' for stdin. Later documents override earlier ones." name:"source" placeholder:"FILE" short:"s" type:"existingfile"`

	Run    cmd.Run    `cmd:"" default:"withargs" help:"Resolve the action tokens of a destination document"`
	Get    cmd.Get    `cmd:""                    help:"Print the value at a path in a document"`
	Set    cmd.Set    `cmd:""                    help:"Replace the value at a path in a document"`
	Count  cmd.Count  `cmd:""                    help:"Count unresolved actions and templates in a document"`
	Parse  cmd.Parse  `cmd:""                    help:"Show how a token is classified and parsed"`
	Browse cmd.Browse `cmd:""                    help:"Resolve a destination document and explore it interactively"`
	Init   cmd.Init   `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the openr CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	vars := kong.Vars{
		"version":            pkg.Version,
		cmd.ConfigIdentifier: configPath(configYAML),
		cmd.CacheIdentifier:  cacheDir(),
	}.
		CloneWith(cmd.Vars()).
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags so the logger is configured before kong
	// reports any parse error, wherever the flags appear.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(configJSON)),
		kong.Configuration(resolve(ctx), configPath(configYAML)),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSourceFiles(ctx, cli.Source)

	// Apply settings that have no TextUnmarshaler hook, such as TimeLayout
	// and Caller, along with values loaded from the configuration files.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
