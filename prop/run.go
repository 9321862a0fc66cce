package prop

import (
	"context"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
)

// Run expands the templates of dest, then evaluates its action tokens
// against sources until none remain or the pass limit is reached. dest is
// modified in place and returned; the returned value differs from dest only
// if dest is itself a single string leaf.
//
// A token of depth 0 is evaluated on every pass; a token of depth N > 0
// first on pass N+1. Leaves are visited in traversal order and read at the
// moment they are visited, so a token sees values produced earlier in the
// same pass. A token whose input is missing is left as is.
func (r *Resolver) Run(ctx context.Context, sources, dest any) any {
	dest = r.ExpandTemplates(ctx, sources, dest)

	remaining := ActionCount(dest)

	for pass := 0; remaining > 0 && pass < r.maxActionPasses; pass++ {
		if err := ctx.Err(); err != nil {
			r.logger.WarnContext(ctx, "resolution canceled",
				slog.Int("pass", pass), slog.String("error", err.Error()))

			return dest
		}

		for _, l := range leaves(dest, nil, nil) {
			dest = r.resolveLeaf(ctx, pass, sources, dest, l.path)
		}

		remaining = ActionCount(dest)

		r.logger.DebugContext(ctx, "action pass complete",
			slog.Int("pass", pass), slog.Int("remaining", remaining))
	}

	if remaining > 0 {
		r.logger.WarnContext(ctx, "unresolved actions remain",
			slog.Int("passes", r.maxActionPasses),
			slog.Int("remaining", remaining))
	}

	return dest
}

func eligible(pass, depth int) bool { return pass > depth || depth == 0 }

// resolveLeaf evaluates the eligible tokens of the leaf at path from left
// to right. String results replace the token text within the leaf; any
// other result replaces the whole leaf and ends evaluation of that leaf.
func (r *Resolver) resolveLeaf(
	ctx context.Context,
	pass int,
	sources, dest any,
	path []string,
) any {
	v, ok := lookup(dest, path)
	if !ok {
		return dest
	}

	s, ok := v.(string)
	if !ok {
		return dest
	}

	tokens := scanTokens(s)
	if classify(s, tokens) != KindAction {
		return dest
	}

	out := s

	for _, t := range tokens {
		if t.suppressed() || !eligible(pass, t.depth) {
			continue
		}

		a := t.action(s)

		result := r.Evaluate(ctx, a, sources, dest)
		if IsNotFound(result) {
			continue
		}

		if str, ok := result.(string); ok {
			out = strings.ReplaceAll(out, a.OriginalText, str)

			continue
		}

		dest, _ = replaceAt(dest, path, Clone(result))

		return dest
	}

	if out != s {
		dest, _ = replaceAt(dest, path, out)
	}

	return dest
}

// ActionCount returns the number of leaves in tree holding an unsuppressed
// action token that is not a template marker.
func ActionCount(tree any) int {
	return count(tree, KindAction)
}

// TemplateCount returns the number of template markers in tree.
func TemplateCount(tree any) int {
	return count(tree, KindTemplate)
}

func count(node any, kind Kind) int {
	switch n := node.(type) {
	case map[string]any, yaml.MapSlice, []any:
		total := 0
		for _, v := range elements(n) {
			total += count(v, kind)
		}

		return total

	default:
		if Classify(n) == kind {
			return 1
		}

		return 0
	}
}
