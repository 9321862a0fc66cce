package prop

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Separator delimits the keys of a path.
const Separator = "."

// Missing is the type of [NotFound].
type Missing struct{}

// NotFound is returned by [Get] and [Set] when a path does not exist.
// It renders as the empty string.
var NotFound = Missing{}

func (Missing) String() string { return "" }

// MarshalJSON encodes NotFound as null.
func (Missing) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// MarshalYAML encodes NotFound as null.
func (Missing) MarshalYAML() (any, error) { return nil, nil }

// IsNotFound reports whether v is [NotFound].
func IsNotFound(v any) bool {
	_, ok := v.(Missing)

	return ok
}

// Get returns the value at path in tree, or [NotFound].
func Get(tree any, path string) any {
	if v, ok := Lookup(tree, path); ok {
		return v
	}

	return NotFound
}

// Lookup returns the value at path in tree and whether it exists.
func Lookup(tree any, path string) (any, bool) {
	return lookup(tree, SplitPath(path))
}

// Set overwrites the value at path in tree and returns value.
// Every key of path must already exist; otherwise tree is left unchanged
// and Set returns [NotFound]. Containers are modified in place.
func Set(tree any, path string, value any) any {
	if !assign(tree, SplitPath(path), value) {
		return NotFound
	}

	return value
}

// SplitPath splits a path into its keys.
func SplitPath(path string) []string {
	return strings.Split(path, Separator)
}

// JoinPath joins keys into a path.
func JoinPath(keys []string) string {
	return strings.Join(keys, Separator)
}

func lookup(tree any, keys []string) (any, bool) {
	node := tree

	for _, key := range keys {
		next, ok := child(node, key)
		if !ok {
			return nil, false
		}

		node = next
	}

	return node, true
}

func child(node any, key string) (any, bool) {
	switch n := node.(type) {
	case map[string]any:
		v, ok := n[key]

		return v, ok

	case yaml.MapSlice:
		for _, item := range n {
			if keyString(item.Key) == key {
				return item.Value, true
			}
		}

	case []any:
		if i, ok := index(key, len(n)); ok {
			return n[i], true
		}
	}

	return nil, false
}

// assign replaces the existing value at keys. It never creates nodes.
func assign(tree any, keys []string, value any) bool {
	if len(keys) == 0 {
		return false
	}

	last := len(keys) - 1

	parent, ok := lookup(tree, keys[:last])
	if !ok {
		return false
	}

	key := keys[last]

	switch n := parent.(type) {
	case map[string]any:
		if _, ok := n[key]; ok {
			n[key] = value

			return true
		}

	case yaml.MapSlice:
		for i := range n {
			if keyString(n[i].Key) == key {
				n[i].Value = value

				return true
			}
		}

	case []any:
		if i, ok := index(key, len(n)); ok {
			n[i] = value

			return true
		}
	}

	return false
}

// replaceAt is assign for a root that may itself be the target.
// It returns the (possibly new) root.
func replaceAt(root any, keys []string, value any) (any, bool) {
	if len(keys) == 0 {
		return value, true
	}

	return root, assign(root, keys, value)
}

// index parses key as a canonical sequence index below n.
func index(key string, n int) (int, bool) {
	i, err := strconv.Atoi(key)
	if err != nil || i < 0 || i >= n || strconv.Itoa(i) != key {
		return 0, false
	}

	return i, true
}

func keyString(key any) string {
	if s, ok := key.(string); ok {
		return s
	}

	return fmt.Sprint(key)
}
