package browse

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/openr/prop"
)

// session holds the documents being browsed.
type session struct {
	resolver *prop.Resolver
	sources  any
	dest     any // as read, before resolution
	resolved any
}

func newSession(ctx context.Context, sources, dest any, resolver *prop.Resolver) *session {
	s := &session{resolver: resolver, sources: sources}
	s.replace(ctx, dest)

	return s
}

// replace sets the unresolved destination and resolves a copy of it.
func (s *session) replace(ctx context.Context, dest any) {
	s.dest = dest
	s.resolved = s.resolver.Run(ctx, s.sources, prop.Clone(dest))
}

// root is the tree paths are resolved against during browsing.
func (s *session) root() yaml.MapSlice {
	return yaml.MapSlice{
		{Key: "sources", Value: s.sources},
		{Key: "dest", Value: s.resolved},
	}
}

// evaluate renders the value at input if input is a path that exists in
// [session.root], or else the result of input as a query.
func (s *session) evaluate(ctx context.Context, input string) (string, error) {
	if isPath(input) {
		if v, ok := prop.Lookup(s.root(), input); ok {
			return render(ctx, v)
		}
	}

	v, err := prop.Query(ctx, input, s.sources, s.resolved)
	if err != nil {
		return "", err
	}

	return render(ctx, v)
}

func (s *session) paths() string {
	return strings.Join(prop.Paths(s.root()), "\n")
}

func (s *session) counts() string {
	return fmt.Sprintf("actions: %d, templates: %d",
		prop.ActionCount(s.resolved), prop.TemplateCount(s.resolved))
}

func render(ctx context.Context, v any) (string, error) {
	var buf bytes.Buffer
	if err := prop.Write(ctx, &buf, v, prop.FormatNative, 2); err != nil {
		return "", err
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// isPath reports whether input contains nothing but path characters.
func isPath(input string) bool {
	return input != "" && strings.IndexFunc(input, func(r rune) bool {
		return r != '.' && isWordBoundary(r)
	}) < 0
}
