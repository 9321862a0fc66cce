package prop

import (
	"context"
	"log/slog"

	"github.com/ardnew/mung"
	"github.com/expr-lang/expr"
)

// Query evaluates an expr-lang expression over sources and dest.
//
// The expression environment provides:
//
//	sources, dest                  the trees, with mappings as map[string]any
//	lookup(tree, path)             value at path, or nil
//	actions(tree), templates(tree) unresolved token counts
//	parse(token)                   fields of the first action token
//	mung.prefix(list, delim, item...)
//	mung.prefixif(list, delim, keep, item...)
//	                               delimited list with items moved to the
//	                               front, optionally filtered by keep
func Query(ctx context.Context, expression string, sources, dest any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrQueryEvaluate.Wrap(err)
	}

	env := queryEnv(sources, dest)

	program, err := expr.Compile(expression, expr.Env(env))
	if err != nil {
		return nil, ErrQueryCompile.Wrap(err).
			With(slog.String("expression", expression))
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return nil, ErrQueryEvaluate.Wrap(err).
			With(slog.String("expression", expression))
	}

	return out, nil
}

func queryEnv(sources, dest any) map[string]any {
	return map[string]any{
		"sources":   Plain(sources),
		"dest":      Plain(dest),
		"lookup":    queryLookup,
		"actions":   ActionCount,
		"templates": TemplateCount,
		"parse":     queryParse,
		"mung": map[string]any{
			"prefix":   mungPrefix,
			"prefixif": mungPrefixIf,
		},
	}
}

func queryLookup(tree any, path string) any {
	v, ok := Lookup(tree, path)
	if !ok {
		return nil
	}

	return v
}

func queryParse(s string) map[string]any {
	a := ParseAction(s)

	params := make([]any, len(a.Params))
	for i, p := range a.Params {
		params[i] = p
	}

	src := make([]any, len(a.Src))
	for i, p := range a.Src {
		src[i] = p
	}

	return map[string]any{
		"verb":   a.Verb,
		"depth":  a.Depth,
		"params": params,
		"src":    src,
		"scope":  a.Scope.String(),
		"kind":   Classify(s).String(),
	}
}

func mungPrefix(list, delim string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(delim),
		mung.WithPrefixItems(prefix...),
	).String()
}

func mungPrefixIf(
	list, delim string,
	predicate func(string) bool,
	prefix ...string,
) string {
	return mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(delim),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(predicate),
	).String()
}
