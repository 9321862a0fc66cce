package prop

import (
	"context"
	"log/slog"
	"slices"
	"strings"
)

const (
	childParam  = "child"
	placeholder = "[]"
)

// templateAction returns the first template token of a template marker.
func templateAction(v any) (Action, bool) {
	s, ok := v.(string)
	if !ok {
		return Action{}, false
	}

	tokens := scanTokens(s)
	if classify(s, tokens) != KindTemplate {
		return Action{}, false
	}

	for _, t := range tokens {
		if t.isTemplate() {
			return t.action(s), true
		}
	}

	return Action{}, false
}

func isChild(a Action) bool { return slices.Contains(a.Params, childParam) }

// ExpandTemplates replaces the template markers of dest and returns dest.
//
// First every child marker is replaced by a copy of the Destination subtree
// it names, and child markers inside that copy are replaced once more.
// Then, for at most the configured number of passes and until no markers
// remain, every marker is replaced by a sequence holding one instance of
// its body per element of its driver in sources.
func (r *Resolver) ExpandTemplates(ctx context.Context, sources, dest any) any {
	dest = r.inlineChildren(ctx, dest)

	for pass := range r.maxTemplatePasses {
		markers := templateLeaves(dest)
		if len(markers) == 0 {
			r.logger.DebugContext(ctx, "templates expanded", slog.Int("passes", pass))

			return dest
		}

		for _, m := range markers {
			dest = r.expand(ctx, sources, dest, m.path)
		}
	}

	if n := TemplateCount(dest); n > 0 {
		r.logger.WarnContext(ctx, "template pass limit reached",
			slog.Int("passes", r.maxTemplatePasses),
			slog.Int("remaining", n))
	}

	return dest
}

func templateLeaves(tree any) []leaf {
	var markers []leaf

	for _, l := range leaves(tree, nil, nil) {
		if Classify(l.value) == KindTemplate {
			markers = append(markers, l)
		}
	}

	return markers
}

func (r *Resolver) inlineChildren(ctx context.Context, dest any) any {
	for _, l := range templateLeaves(dest) {
		a, ok := templateAction(l.value)
		if !ok || !isChild(a) {
			continue
		}

		body, ok := lookup(dest, SplitPath(a.src(0)))
		if !ok {
			r.logger.DebugContext(ctx, "child template not found",
				slog.String("path", JoinPath(l.path)),
				slog.Any("action", a))

			continue
		}

		inlined := Clone(body)

		for _, nested := range templateLeaves(inlined) {
			na, ok := templateAction(nested.value)
			if !ok || !isChild(na) {
				continue
			}

			if v, ok := lookup(dest, SplitPath(na.src(0))); ok {
				inlined, _ = replaceAt(inlined, nested.path, Clone(v))
			}
		}

		dest, _ = replaceAt(dest, l.path, inlined)
	}

	return dest
}

// expand replaces the marker at path with the instances of its body.
// A driver that is missing or not a container yields no instances, so the
// marker becomes an empty sequence. A missing body instantiates as nil.
func (r *Resolver) expand(ctx context.Context, sources, dest any, path []string) any {
	v, ok := lookup(dest, path)
	if !ok {
		return dest
	}

	a, ok := templateAction(v)
	if !ok {
		return dest
	}

	body, ok := lookup(dest, SplitPath(a.src(0)))
	if !ok {
		r.logger.TraceContext(ctx, "template body not found",
			slog.String("path", JoinPath(path)), slog.Any("action", a))
	}

	keys, ok := indexKeys(Get(sources, a.src(1)))
	if !ok {
		r.logger.TraceContext(ctx, "template driver not iterable",
			slog.String("path", JoinPath(path)), slog.Any("action", a))
	}

	instances := make([]any, len(keys))
	for i, key := range keys {
		instances[i] = instantiate(body, key)
	}

	dest, _ = replaceAt(dest, path, instances)

	return dest
}

// instantiate returns a copy of body in which every string removes one
// suppression flag from each token and substitutes key for the index
// placeholder.
func instantiate(body any, key string) any {
	c := Clone(body)

	for _, l := range leaves(c, nil, nil) {
		s, ok := l.value.(string)
		if !ok {
			continue
		}

		s = strings.ReplaceAll(s, openDelim+string(suppress), openDelim)
		s = strings.ReplaceAll(s, placeholder, key)

		c, _ = replaceAt(c, l.path, s)
	}

	return c
}
