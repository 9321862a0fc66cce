package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/openr/log"
	"github.com/ardnew/openr/prop"
)

// Run resolves a Destination document against the Sources documents.
type Run struct {
	Output output `embed:""`

	Dest  string `help:"Destination document, or '-' for stdin." placeholder:"FILE" required:"" short:"d" type:"existingfile"`
	Query string `help:"Print the result of an expression over the resolved trees instead of the destination." short:"q"`

	MaxTemplatePasses int `default:"${maxTemplatePasses}" help:"Maximum template expansion passes."`
	MaxActionPasses   int `default:"${maxActionPasses}"   help:"Maximum action evaluation passes."`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) error {
	if r.Dest == stdinSource {
		if src := sourceFilesFrom(ctx); src != nil && src.Stdin() != nil {
			return ErrStdinReused
		}
	}

	sources, err := decodeSources(ctx)
	if err != nil {
		return err
	}

	dest, err := readFile(ctx, r.Dest)
	if err != nil {
		return err
	}

	resolver := prop.New(
		prop.WithLogger(log.Default()),
		prop.WithMaxTemplatePasses(r.MaxTemplatePasses),
		prop.WithMaxActionPasses(r.MaxActionPasses),
	)

	dest = resolver.Run(ctx, sources, dest)
	if err := ctx.Err(); err != nil {
		return err
	}

	if n := prop.ActionCount(dest); n > 0 {
		log.InfoContext(ctx, "unresolved actions remain",
			slog.String("file", r.Dest),
			slog.Int("actions", n),
		)
	}

	if r.Query == "" {
		return r.Output.write(ctx, dest)
	}

	result, err := prop.Query(ctx, r.Query, sources, dest)
	if err != nil {
		return err
	}

	return r.Output.write(ctx, result)
}
