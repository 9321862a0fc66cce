package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/openr/prop"
)

// Get prints the value at a path of a document.
type Get struct {
	Output output `embed:""`

	File string `arg:"" help:"Document to read, or '-' for stdin." type:"existingfile"`
	Path string `arg:"" help:"Dot-separated path of the value."`
}

// Run executes the get command.
func (g *Get) Run(ctx context.Context) error {
	tree, err := readFile(ctx, g.File)
	if err != nil {
		return err
	}

	v, ok := prop.Lookup(tree, g.Path)
	if !ok {
		return prop.ErrPathNotFound.With(
			slog.String("file", g.File),
			slog.String("path", g.Path),
		)
	}

	return g.Output.write(ctx, v)
}

// Set replaces the value at a path of a document and prints the document.
type Set struct {
	Output output `embed:""`

	File  string `arg:"" help:"Document to read, or '-' for stdin." type:"existingfile"`
	Path  string `arg:"" help:"Dot-separated path of an existing value."`
	Value string `arg:"" help:"New value, parsed as a YAML scalar or flow collection."`
}

// Run executes the set command.
func (s *Set) Run(ctx context.Context) error {
	tree, err := readFile(ctx, s.File)
	if err != nil {
		return err
	}

	if prop.IsNotFound(prop.Set(tree, s.Path, prop.ParseValue(ctx, s.Value))) {
		return prop.ErrPathNotFound.With(
			slog.String("file", s.File),
			slog.String("path", s.Path),
		)
	}

	return s.Output.write(ctx, tree)
}
