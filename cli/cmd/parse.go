package cmd

import (
	"context"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/openr/prop"
)

// Parse prints the fields of every action token in a string.
type Parse struct {
	Output output `embed:""`

	Token string `arg:"" help:"String containing action tokens."`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) error {
	actions := prop.ParseActions(p.Token)

	out := make([]any, len(actions))
	for i, a := range actions {
		out[i] = yaml.MapSlice{
			{Key: "kind", Value: prop.Classify(a.OriginalText).String()},
			{Key: "verb", Value: a.Verb},
			{Key: "depth", Value: a.Depth},
			{Key: "scope", Value: a.Scope.String()},
			{Key: "params", Value: anySlice(a.Params)},
			{Key: "src", Value: anySlice(a.Src)},
			{Key: "text", Value: a.OriginalText},
		}
	}

	return p.Output.write(ctx, out)
}

func anySlice(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}

	return out
}
