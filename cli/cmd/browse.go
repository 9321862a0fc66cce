package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/openr/cli/cmd/browse"
	"github.com/ardnew/openr/log"
	"github.com/ardnew/openr/prop"
)

// Browse resolves a Destination document and explores the result
// interactively.
type Browse struct {
	Dest string `help:"Destination document, or '-' for stdin." placeholder:"FILE" required:"" short:"d" type:"existingfile"`

	MaxTemplatePasses int `default:"${maxTemplatePasses}" help:"Maximum template expansion passes."`
	MaxActionPasses   int `default:"${maxActionPasses}"   help:"Maximum action evaluation passes."`
}

// Run executes the browse command.
func (b *Browse) Run(ctx context.Context) error {
	src := sourceFilesFrom(ctx)
	piped := b.Dest == stdinSource || (src != nil && src.Stdin() != nil)

	if b.Dest == stdinSource && src != nil && src.Stdin() != nil {
		return ErrStdinReused
	}

	sources, err := decodeSources(ctx)
	if err != nil {
		return err
	}

	dest, err := readFile(ctx, b.Dest)
	if err != nil {
		return err
	}

	var cacheDir string
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	resolver := prop.New(
		prop.WithLogger(log.Default()),
		prop.WithMaxTemplatePasses(b.MaxTemplatePasses),
		prop.WithMaxActionPasses(b.MaxActionPasses),
	)

	var opts []tea.ProgramOption
	if piped {
		// Standard input was consumed as a document; read keys from the
		// terminal instead.
		opts = append(opts, tea.WithInputTTY())
	}

	return browse.Run(ctx, sources, dest, resolver, cacheDir, log.Default(), opts...)
}
