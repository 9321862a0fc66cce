package prop

import (
	"context"
	"log/slog"
	"maps"
	"math"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/ardnew/openr/log"
)

// verbFunc computes the value of an action whose paths resolve in scope.
type verbFunc func(ctx context.Context, r *Resolver, a Action, scope any) any

var verbs = map[string]verbFunc{
	"get":       evalGet,
	"timestamp": evalTimestamp,
	"join":      evalJoin,
	"implode":   evalImplode,
	"explode":   evalExplode,
	"add":       evalAdd,
	"subtract":  evalSubtract,
	"regexp":    evalRegexp,
}

// Verbs returns the names of all supported verbs, excluding template.
func Verbs() []string {
	return slices.Sorted(maps.Keys(verbs))
}

// Evaluate computes the value of a. Paths in a.Src resolve against dest if
// a.Scope is [ScopeDest] and against sources otherwise.
//
// Evaluate never fails. Verbs that cannot find their input return
// [NotFound]; an unknown verb returns a.OriginalText.
func (r *Resolver) Evaluate(ctx context.Context, a Action, sources, dest any) any {
	scope := sources
	if a.Scope == ScopeDest {
		scope = dest
	}

	fn, ok := verbs[a.Verb]
	if !ok {
		return a.OriginalText
	}

	result := fn(ctx, r, a, scope)

	r.logger.TraceContext(ctx, "evaluate",
		slog.Any("action", a),
		slog.Bool("found", !IsNotFound(result)))

	return result
}

func evalGet(_ context.Context, _ *Resolver, a Action, scope any) any {
	return Get(scope, a.src(0))
}

// evalTimestamp returns the current whole second as epoch seconds, or
// formatted with the layout named by src[0].
func evalTimestamp(_ context.Context, r *Resolver, a Action, _ any) any {
	now := r.clock.Now().Round(time.Second)

	layout := a.src(0)
	if layout == "" || strings.EqualFold(layout, "epoch") {
		return now.Unix()
	}

	if std, ok := log.LookupTimeLayout(layout); ok && std != "" {
		layout = std
	}

	return now.Format(layout)
}

func evalJoin(_ context.Context, _ *Resolver, a Action, scope any) any {
	parts := make([]string, len(a.Src))
	for i, path := range a.Src {
		parts[i] = text(Get(scope, path))
	}

	return strings.Join(parts, a.param(0))
}

func evalImplode(_ context.Context, _ *Resolver, a Action, scope any) any {
	v := Get(scope, a.src(0))
	if IsNotFound(v) {
		return NotFound
	}

	elems := elements(v)
	parts := make([]string, len(elems))

	for i, e := range elems {
		parts[i] = text(e)
	}

	return strings.Join(parts, a.param(0))
}

func evalExplode(ctx context.Context, r *Resolver, a Action, scope any) any {
	v := Get(scope, a.src(0))
	if IsNotFound(v) || isContainer(v) {
		return NotFound
	}

	delim := a.param(0)
	if delim == "" {
		r.logger.DebugContext(ctx, "explode with empty delimiter",
			slog.String("token", a.OriginalText))

		return NotFound
	}

	parts := strings.Split(text(v), delim)
	out := make([]any, len(parts))

	for i, p := range parts {
		out[i] = p
	}

	return out
}

func evalAdd(_ context.Context, _ *Resolver, a Action, scope any) any {
	var sum float64
	for _, n := range operands(scope, a.Src) {
		sum += n
	}

	return sum
}

// evalSubtract takes src[0] literally as the starting total, never as a
// path, and subtracts every operand gathered from the remaining paths.
func evalSubtract(_ context.Context, _ *Resolver, a Action, scope any) any {
	total := number(a.src(0))

	if len(a.Src) > 1 {
		for _, n := range operands(scope, a.Src[1:]) {
			total -= n
		}
	}

	return math.Abs(total)
}

// operands resolves each path and coerces the result to numbers.
// Sequences and mappings contribute one number per element.
func operands(scope any, paths []string) []float64 {
	var out []float64

	for _, path := range paths {
		v := Get(scope, path)
		if !isContainer(v) {
			out = append(out, number(v))

			continue
		}

		for _, e := range elements(v) {
			out = append(out, number(e))
		}
	}

	return out
}

// evalRegexp replaces matches of the first pattern in params within the
// value at src[0]. The replacement is the last src entry with backticks
// trimmed; it may refer to submatches as $1 or ${name}.
func evalRegexp(ctx context.Context, r *Resolver, a Action, scope any) any {
	if len(a.Params) == 0 {
		return NotFound
	}

	pattern := strings.TrimSuffix(strings.TrimPrefix(a.Params[0], "/"), "/")

	re, err := regexp.Compile(pattern)
	if err != nil {
		r.logger.DebugContext(ctx, "invalid pattern",
			slog.String("pattern", a.Params[0]),
			slog.String("token", a.OriginalText),
			slog.String("error", err.Error()))

		return NotFound
	}

	subject := Get(scope, a.src(0))
	if IsNotFound(subject) || isContainer(subject) {
		return NotFound
	}

	var replacement string
	if n := len(a.Src); n > 1 {
		replacement = strings.Trim(a.Src[n-1], string(quote))
	}

	return re.ReplaceAllString(text(subject), replacement)
}
