package prop

import (
	"maps"
	"slices"
	"strconv"

	"github.com/goccy/go-yaml"
)

// leaf is a scalar found while walking a tree.
type leaf struct {
	path  []string
	value any
}

// leaves appends every scalar beneath node to out in traversal order and
// returns the extended slice. Mappings of type map[string]any are visited
// in sorted key order, [yaml.MapSlice] in document order.
func leaves(node any, prefix []string, out []leaf) []leaf {
	switch n := node.(type) {
	case map[string]any:
		for _, k := range sortedKeys(n) {
			out = leaves(n[k], extend(prefix, k), out)
		}

	case yaml.MapSlice:
		for _, item := range n {
			out = leaves(item.Value, extend(prefix, keyString(item.Key)), out)
		}

	case []any:
		for i, v := range n {
			out = leaves(v, extend(prefix, strconv.Itoa(i)), out)
		}

	default:
		out = append(out, leaf{path: prefix, value: node})
	}

	return out
}

// Paths returns the path of every node beneath tree, parents before
// children, in traversal order.
func Paths(tree any) []string {
	return paths(tree, nil, nil)
}

func paths(node any, prefix []string, out []string) []string {
	visit := func(key string, v any) {
		p := extend(prefix, key)
		out = append(out, JoinPath(p))
		out = paths(v, p, out)
	}

	switch n := node.(type) {
	case map[string]any:
		for _, k := range sortedKeys(n) {
			visit(k, n[k])
		}

	case yaml.MapSlice:
		for _, item := range n {
			visit(keyString(item.Key), item.Value)
		}

	case []any:
		for i, v := range n {
			visit(strconv.Itoa(i), v)
		}
	}

	return out
}

// Clone returns a deep copy of tree. Scalars are returned as is.
func Clone(tree any) any {
	switch n := tree.(type) {
	case map[string]any:
		c := make(map[string]any, len(n))
		for k, v := range n {
			c[k] = Clone(v)
		}

		return c

	case yaml.MapSlice:
		c := make(yaml.MapSlice, len(n))
		for i, item := range n {
			c[i] = yaml.MapItem{Key: item.Key, Value: Clone(item.Value)}
		}

		return c

	case []any:
		c := make([]any, len(n))
		for i, v := range n {
			c[i] = Clone(v)
		}

		return c

	default:
		return tree
	}
}

// Merge combines the top-level entries of trees into one mapping. Entries
// of later trees replace entries of earlier ones with the same key, keeping
// the position of the first. Trees that are not mappings are ignored.
func Merge(trees ...any) yaml.MapSlice {
	var merged yaml.MapSlice

	pos := make(map[string]int)

	put := func(key, value any) {
		k := keyString(key)
		if i, ok := pos[k]; ok {
			merged[i].Value = value

			return
		}

		pos[k] = len(merged)
		merged = append(merged, yaml.MapItem{Key: k, Value: value})
	}

	for _, tree := range trees {
		switch n := tree.(type) {
		case map[string]any:
			for _, k := range sortedKeys(n) {
				put(k, n[k])
			}

		case yaml.MapSlice:
			for _, item := range n {
				put(item.Key, item.Value)
			}
		}
	}

	return merged
}

// Plain converts every [yaml.MapSlice] in tree to map[string]any.
// The result shares no containers with tree.
func Plain(tree any) any {
	switch n := tree.(type) {
	case yaml.MapSlice:
		m := make(map[string]any, len(n))
		for _, item := range n {
			m[keyString(item.Key)] = Plain(item.Value)
		}

		return m

	case map[string]any:
		m := make(map[string]any, len(n))
		for k, v := range n {
			m[k] = Plain(v)
		}

		return m

	case []any:
		s := make([]any, len(n))
		for i, v := range n {
			s[i] = Plain(v)
		}

		return s

	default:
		return tree
	}
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}

func extend(prefix []string, key string) []string {
	return append(prefix[:len(prefix):len(prefix)], key)
}
