package cmd

import (
	"context"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/openr/prop"
)

// Count prints the number of unresolved actions and templates in a document.
type Count struct {
	Output output `embed:""`

	File string `arg:"" help:"Document to read, or '-' for stdin." type:"existingfile"`
}

// Run executes the count command.
func (c *Count) Run(ctx context.Context) error {
	tree, err := readFile(ctx, c.File)
	if err != nil {
		return err
	}

	return c.Output.write(ctx, yaml.MapSlice{
		{Key: "actions", Value: prop.ActionCount(tree)},
		{Key: "templates", Value: prop.TemplateCount(tree)},
	})
}
