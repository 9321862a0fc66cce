package prop

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// isContainer reports whether v is a mapping or sequence.
func isContainer(v any) bool {
	switch v.(type) {
	case map[string]any, yaml.MapSlice, []any:
		return true
	}

	return false
}

// elements returns the items of a sequence or the values of a mapping,
// in traversal order. Any other value is returned as its only element.
func elements(v any) []any {
	switch n := v.(type) {
	case []any:
		return n

	case yaml.MapSlice:
		out := make([]any, len(n))
		for i, item := range n {
			out[i] = item.Value
		}

		return out

	case map[string]any:
		out := make([]any, 0, len(n))
		for _, k := range sortedKeys(n) {
			out = append(out, n[k])
		}

		return out
	}

	return []any{v}
}

// indexKeys returns the keys a template driver is iterated by: sequence
// indices or mapping keys. ok is false for anything else.
func indexKeys(v any) (keys []string, ok bool) {
	switch n := v.(type) {
	case []any:
		keys = make([]string, len(n))
		for i := range n {
			keys[i] = strconv.Itoa(i)
		}

	case yaml.MapSlice:
		keys = make([]string, len(n))
		for i, item := range n {
			keys[i] = keyString(item.Key)
		}

	case map[string]any:
		keys = sortedKeys(n)

	default:
		return nil, false
	}

	return keys, true
}

// text renders a value for string contexts. NotFound and nil render empty;
// containers render in native syntax.
func text(v any) string {
	switch n := v.(type) {
	case nil, Missing:
		return ""
	case string:
		return n
	case bool:
		return strconv.FormatBool(n)
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32)
	}

	if isContainer(v) {
		return formatInline(v)
	}

	return fmt.Sprint(v)
}

// number coerces a scalar to float64. Strings contribute their longest
// leading decimal literal after leading whitespace, so "12 apples" is 12
// and "apples" is 0. Booleans are 1 or 0. Anything else is 0.
func number(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case bool:
		if n {
			return 1
		}
	case string:
		f, _ := strconv.ParseFloat(numericPrefix(n), 64)

		return f
	}

	return 0
}

// numericPrefix returns the longest prefix of s (after leading whitespace)
// that is a decimal floating-point literal, or "" if there is none.
func numericPrefix(s string) string {
	s = strings.TrimLeft(s, " \t\n\r\v\f")

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}

	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
			digits++
		}

		if digits > 0 {
			i = j
		}
	}

	if digits == 0 {
		return ""
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}

		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}

			i = j
		}
	}

	return s[:i]
}
