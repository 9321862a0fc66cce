package prop

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
)

func TestReadTreeKeepsOrder(t *testing.T) {
	tree, err := ReadTree(t.Context(), strings.NewReader("zeta: 1\nalpha:\n  y: 2\n  x: 3\n"))
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"zeta", "alpha", "alpha.y", "alpha.x"}, Paths(tree)); diff != "" {
		t.Errorf("Paths mismatch (-want +got):\n%s", diff)
	}
}

func TestReadTreeEmpty(t *testing.T) {
	for _, in := range []string{"", "\n", "# comment only\n"} {
		tree, err := ReadTree(t.Context(), strings.NewReader(in))
		if err != nil {
			t.Fatalf("ReadTree(%q): %v", in, err)
		}

		if diff := cmp.Diff(any(yaml.MapSlice{}), tree); diff != "" {
			t.Errorf("ReadTree(%q) mismatch (-want +got):\n%s", in, diff)
		}
	}
}

func TestReadTreeInvalid(t *testing.T) {
	_, err := ReadTree(t.Context(), strings.NewReader("a: [1, 2\n"))
	if !errors.Is(err, ErrDecodeTree) {
		t.Errorf("ReadTree error = %v, want %v", err, ErrDecodeTree)
	}
}

func TestWriteNative(t *testing.T) {
	tree := yaml.MapSlice{
		{Key: "b", Value: 1},
		{Key: "a", Value: "x y"},
		{Key: "list", Value: []any{"p", nil}},
		{Key: "empty", Value: yaml.MapSlice{}},
	}

	tests := []struct {
		indent int
		want   string
	}{
		{0, `{ b: 1, a: "x y", list: [ p, null ], empty: {} }` + "\n"},
		{2, strings.Join([]string{
			"{",
			"  b: 1,",
			`  a: "x y",`,
			"  list: [",
			"    p,",
			"    null,",
			"  ],",
			"  empty: {},",
			"}",
		}, "\n") + "\n"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		if err := Write(t.Context(), &buf, tree, FormatNative, tt.indent); err != nil {
			t.Fatal(err)
		}

		if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
			t.Errorf("indent %d mismatch (-want +got):\n%s", tt.indent, diff)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	tree := yaml.MapSlice{
		{Key: "b", Value: 1},
		{Key: "a", Value: []any{yaml.MapSlice{{Key: "z", Value: true}, {Key: "y", Value: nil}}}},
		{Key: "m", Value: map[string]any{"k": "v"}},
		{Key: "gone", Value: NotFound},
	}

	var buf bytes.Buffer
	if err := Write(t.Context(), &buf, tree, FormatJSON, 0); err != nil {
		t.Fatal(err)
	}

	want := `{"b":1,"a":[{"z":true,"y":null}],"m":{"k":"v"},"gone":null}` + "\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("JSON mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteJSONKeepsTokenText(t *testing.T) {
	tree := yaml.MapSlice{
		{Key: "u", Value: "{{openr->get()::missing}}"},
		{Key: "e", Value: []any{"<Baz>", map[string]any{"k": "a & b"}}},
	}

	tests := []struct {
		indent int
		want   string
	}{
		{0, `{"u":"{{openr->get()::missing}}","e":["<Baz>",{"k":"a & b"}]}` + "\n"},
		{2, strings.Join([]string{
			"{",
			`  "u": "{{openr->get()::missing}}",`,
			`  "e": [`,
			`    "<Baz>",`,
			"    {",
			`      "k": "a & b"`,
			"    }",
			"  ]",
			"}",
		}, "\n") + "\n"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		if err := Write(t.Context(), &buf, tree, FormatJSON, tt.indent); err != nil {
			t.Fatal(err)
		}

		if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
			t.Errorf("indent %d mismatch (-want +got):\n%s", tt.indent, diff)
		}
	}
}

func TestWriteYAMLReadsBack(t *testing.T) {
	tree, err := ReadTree(t.Context(), strings.NewReader("b: one\na:\n  - x\n  - y\n"))
	if err != nil {
		t.Fatal(err)
	}

	for _, indent := range []int{0, 2} {
		var buf bytes.Buffer
		if err := Write(t.Context(), &buf, tree, FormatYAML, indent); err != nil {
			t.Fatal(err)
		}

		back, err := ReadTree(t.Context(), &buf)
		if err != nil {
			t.Fatalf("indent %d: %v", indent, err)
		}

		if diff := cmp.Diff(tree, back); diff != "" {
			t.Errorf("indent %d mismatch (-want +got):\n%s", indent, diff)
		}
	}
}

func TestWriteInvalidFormat(t *testing.T) {
	err := Write(t.Context(), &bytes.Buffer{}, yaml.MapSlice{}, Format("toml"), 0)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Write error = %v, want %v", err, ErrInvalidFormat)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"native": FormatNative,
		"JSON":   FormatJSON,
		" yaml ": FormatYAML,
	} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("ParseFormat(xml) error = %v, want %v", err, ErrInvalidFormat)
	}
}

func TestParseValue(t *testing.T) {
	ctx := t.Context()

	if got := ParseValue(ctx, "hello world"); got != "hello world" {
		t.Errorf("ParseValue(string) = %#v", got)
	}

	if got := ParseValue(ctx, ""); got != "" {
		t.Errorf("ParseValue(empty) = %#v", got)
	}

	if got := ParseValue(ctx, "null"); got != nil {
		t.Errorf("ParseValue(null) = %#v", got)
	}

	if got := ParseValue(ctx, "true"); got != true {
		t.Errorf("ParseValue(true) = %#v", got)
	}

	if got := ParseValue(ctx, "42"); text(got) != "42" || IsNotFound(got) {
		t.Errorf("ParseValue(42) = %#v", got)
	} else if _, isString := got.(string); isString {
		t.Errorf("ParseValue(42) = %#v, want a number", got)
	}

	if got := ParseValue(ctx, `"42"`); got != "42" {
		t.Errorf("ParseValue(quoted) = %#v", got)
	}

	got := ParseValue(ctx, "[a, b]")
	if diff := cmp.Diff(any([]any{"a", "b"}), got); diff != "" {
		t.Errorf("ParseValue(flow sequence) mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorIs(t *testing.T) {
	err := ErrPathNotFound.Wrap(errors.New("boom"))

	if !errors.Is(err, ErrPathNotFound) {
		t.Error("wrapped error does not match its sentinel")
	}

	if errors.Is(err, ErrDecodeTree) {
		t.Error("wrapped error matches an unrelated sentinel")
	}

	if got := err.Error(); got != "path not found: boom" {
		t.Errorf("Error() = %q", got)
	}
}
