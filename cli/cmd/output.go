package cmd

import (
	"context"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/openr/prop"
)

// Vars returns the kong variables referenced by command flags.
func Vars() kong.Vars {
	formats := make([]string, len(prop.Formats))
	for i, f := range prop.Formats {
		formats[i] = string(f)
	}

	return kong.Vars{
		"formatEnum":        strings.Join(formats, ","),
		"formatDefault":     string(prop.FormatNative),
		"maxTemplatePasses": strconv.Itoa(prop.DefaultMaxTemplatePasses),
		"maxActionPasses":   strconv.Itoa(prop.DefaultMaxActionPasses),
	}
}

// output holds the flags shared by commands that print a tree.
type output struct {
	Format string `default:"${formatDefault}" enum:"${formatEnum}" help:"Output format (${enum})." short:"o"`
	Indent int    `default:"2"                                     help:"Indent width; 0 writes each value on one line."`
}

func (o output) write(ctx context.Context, v any) error {
	f, err := prop.ParseFormat(o.Format)
	if err != nil {
		return err
	}

	return prop.Write(ctx, outputFrom(ctx), v, f, o.Indent)
}
