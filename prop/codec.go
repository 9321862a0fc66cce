package prop

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format selects the syntax [Write] encodes a tree in.
type Format string

const (
	FormatNative Format = "native"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatNative, FormatJSON, FormatYAML}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}

	return "", ErrInvalidFormat.With(slog.String("format", s))
}

// ReadTree decodes one YAML or JSON document from r. Mappings are decoded
// as [yaml.MapSlice] so that document order is kept. Empty input yields an
// empty mapping.
func ReadTree(ctx context.Context, r io.Reader) (any, error) {
	var tree any

	err := yaml.NewDecoder(r, yaml.UseOrderedMap()).DecodeContext(ctx, &tree)

	switch {
	case errors.Is(err, io.EOF):
		return yaml.MapSlice{}, nil
	case err != nil:
		return nil, ErrDecodeTree.Wrap(err)
	case tree == nil:
		return yaml.MapSlice{}, nil
	}

	return tree, nil
}

// ParseValue decodes a single YAML value, such as a scalar or a flow
// collection, from s. Input that is not valid YAML is returned as a string.
func ParseValue(ctx context.Context, s string) any {
	var v any

	err := yaml.UnmarshalContext(ctx, []byte(s), &v, yaml.UseOrderedMap())
	if err != nil || (v == nil && !isNullLiteral(s)) {
		return s
	}

	return v
}

// Write encodes tree to w in format f. A positive indent selects
// multi-line output; zero selects the most compact form of the format.
func Write(ctx context.Context, w io.Writer, tree any, f Format, indent int) error {
	var err error

	switch f {
	case FormatNative:
		_, err = io.WriteString(w, formatNative(tree, indent)+"\n")

	case FormatJSON:
		err = writeJSON(w, tree, indent)

	case FormatYAML:
		err = writeYAML(ctx, w, tree, indent)

	default:
		return ErrInvalidFormat.With(slog.String("format", string(f)))
	}

	if err != nil {
		return ErrEncodeTree.Wrap(err).With(slog.String("format", string(f)))
	}

	return nil
}

func writeJSON(w io.Writer, tree any, indent int) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}

	return enc.Encode(ordered{tree})
}

// marshalJSON is [json.Marshal] without HTML escaping, so tokens keep their
// "->" and documents their "<" and ">".
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func writeYAML(ctx context.Context, w io.Writer, tree any, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, tree, opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

// ordered encodes a tree as JSON, keeping the key order of [yaml.MapSlice].
type ordered struct{ v any }

func (o ordered) MarshalJSON() ([]byte, error) {
	switch n := o.v.(type) {
	case yaml.MapSlice:
		var b bytes.Buffer

		b.WriteByte('{')

		for i, item := range n {
			if i > 0 {
				b.WriteByte(',')
			}

			key, err := marshalJSON(keyString(item.Key))
			if err != nil {
				return nil, err
			}

			val, err := marshalJSON(ordered{item.Value})
			if err != nil {
				return nil, err
			}

			b.Write(key)
			b.WriteByte(':')
			b.Write(val)
		}

		b.WriteByte('}')

		return b.Bytes(), nil

	case []any:
		items := make([]ordered, len(n))
		for i, v := range n {
			items[i] = ordered{v}
		}

		return marshalJSON(items)

	case map[string]any:
		m := make(map[string]ordered, len(n))
		for k, v := range n {
			m[k] = ordered{v}
		}

		return marshalJSON(m)

	default:
		return marshalJSON(n)
	}
}

// formatInline renders a tree on one line in native syntax.
func formatInline(tree any) string { return formatNative(tree, 0) }

// formatNative renders a tree in native syntax: mappings as { key: value },
// sequences as [ a, b ]. A positive indent places each entry on its own
// line.
func formatNative(tree any, indent int) string {
	var b strings.Builder

	writeNative(&b, tree, indent, 0)

	return b.String()
}

func writeNative(b *strings.Builder, v any, indent, depth int) {
	type entry struct {
		key   string
		value any
	}

	var (
		entries      []entry
		open, closed string
	)

	switch n := v.(type) {
	case yaml.MapSlice:
		open, closed = "{", "}"
		for _, item := range n {
			entries = append(entries, entry{keyString(item.Key), item.Value})
		}

	case map[string]any:
		open, closed = "{", "}"
		for _, k := range sortedKeys(n) {
			entries = append(entries, entry{k, n[k]})
		}

	case []any:
		open, closed = "[", "]"
		for _, e := range n {
			entries = append(entries, entry{value: e})
		}

	default:
		b.WriteString(nativeScalar(v))

		return
	}

	b.WriteString(open)

	if len(entries) == 0 {
		b.WriteString(closed)

		return
	}

	for i, e := range entries {
		switch {
		case indent > 0:
			b.WriteByte('\n')
			b.WriteString(strings.Repeat(" ", (depth+1)*indent))
		case i > 0:
			b.WriteString(", ")
		default:
			b.WriteByte(' ')
		}

		if open == "{" {
			b.WriteString(nativeScalar(e.key))
			b.WriteString(": ")
		}

		writeNative(b, e.value, indent, depth+1)

		if indent > 0 {
			b.WriteByte(',')
		}
	}

	if indent > 0 {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", depth*indent))
	} else {
		b.WriteByte(' ')
	}

	b.WriteString(closed)
}

func nativeScalar(v any) string {
	switch n := v.(type) {
	case nil:
		return "null"
	case Missing:
		return ""
	case string:
		if needsQuoting(n) {
			return strconv.Quote(n)
		}

		return n
	}

	return text(v)
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}

	return strings.ContainsAny(s, " \t\r\n\"'\\{}[]:,")
}

func isNullLiteral(s string) bool {
	switch strings.TrimSpace(s) {
	case "null", "Null", "NULL", "~":
		return true
	}

	return false
}
