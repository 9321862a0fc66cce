package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/openr/prop"
)

var jsonOutput = output{Format: "json", Indent: 0}

func capture(ctx context.Context) (context.Context, *bytes.Buffer) {
	var buf bytes.Buffer

	return WithOutput(ctx, &buf), &buf
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	sources := writeFile(t, dir, "sources.yaml", "foo: Foo Value\nbar:\n  baz: Baz\n")
	dest := writeFile(t, dir, "dest.yaml", strings.Join([]string{
		`d: "{{openr->get()::foo}}"`,
		`e: "<{{openr->get()::bar.baz}}>"`,
		`n: plain`,
		`u: "{{openr->get()::missing}}"`,
	}, "\n")+"\n")

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name: "destination",
			want: `{"d":"Foo Value","e":"<Baz>","n":"plain","u":"{{openr->get()::missing}}"}`,
		},
		{
			name:  "query",
			query: `dest.d + "!"`,
			want:  `"Foo Value!"`,
		},
		{
			name:  "query counts",
			query: `actions(dest)`,
			want:  `1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := capture(WithSourceFiles(t.Context(), []string{sources}))

			cmd := &Run{Output: jsonOutput, Dest: dest, Query: tt.query}
			require.NoError(t, cmd.Run(ctx))
			require.Equal(t, tt.want+"\n", out.String())
		})
	}
}

func TestRunCommandDestFromStdin(t *testing.T) {
	ctx := WithInput(t.Context(), strings.NewReader(`d: "{{openr->timestamp()::2006}}"`+"\n"))
	ctx, out := capture(ctx)

	require.NoError(t, (&Run{Output: jsonOutput, Dest: "-"}).Run(ctx))

	var got map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got["d"], 4)
}

func TestRunCommandErrors(t *testing.T) {
	dir := t.TempDir()
	sources := writeFile(t, dir, "sources.yaml", "a: b\n")
	broken := writeFile(t, dir, "broken.yaml", "a: [1, 2\n")

	t.Run("stdin reused", func(t *testing.T) {
		ctx := WithInput(t.Context(), strings.NewReader("a: b\n"))
		ctx = WithSourceFiles(ctx, []string{"-"})

		err := (&Run{Output: jsonOutput, Dest: "-"}).Run(ctx)
		require.ErrorIs(t, err, ErrStdinReused)
	})

	t.Run("missing destination", func(t *testing.T) {
		ctx := WithSourceFiles(t.Context(), []string{sources})

		err := (&Run{Output: jsonOutput, Dest: filepath.Join(dir, "nope.yaml")}).Run(ctx)
		require.ErrorIs(t, err, prop.ErrReadInput)
	})

	t.Run("invalid source", func(t *testing.T) {
		ctx := WithSourceFiles(t.Context(), []string{broken})

		err := (&Run{Output: jsonOutput, Dest: sources}).Run(ctx)
		require.ErrorIs(t, err, prop.ErrDecodeTree)
	})

	t.Run("invalid query", func(t *testing.T) {
		err := (&Run{Output: jsonOutput, Dest: sources, Query: "1 +"}).Run(t.Context())
		require.ErrorIs(t, err, prop.ErrQueryCompile)
	})

	t.Run("invalid format", func(t *testing.T) {
		err := (&Run{Output: output{Format: "xml"}, Dest: sources}).Run(t.Context())
		require.ErrorIs(t, err, prop.ErrInvalidFormat)
	})
}

func TestGetCommand(t *testing.T) {
	file := writeFile(t, t.TempDir(), "doc.yaml", "bar:\n  baz: Baz\n  list: [x, y]\n")

	tests := []struct {
		path string
		want string
	}{
		{"bar.baz", `"Baz"`},
		{"bar.list", `["x","y"]`},
		{"bar.list.1", `"y"`},
		{"bar", `{"baz":"Baz","list":["x","y"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			ctx, out := capture(t.Context())

			require.NoError(t, (&Get{Output: jsonOutput, File: file, Path: tt.path}).Run(ctx))
			require.Equal(t, tt.want+"\n", out.String())
		})
	}

	err := (&Get{Output: jsonOutput, File: file, Path: "bar.nope"}).Run(t.Context())
	require.ErrorIs(t, err, prop.ErrPathNotFound)
}

func TestSetCommand(t *testing.T) {
	file := writeFile(t, t.TempDir(), "doc.yaml", "a:\n  b: old\n  c: keep\n")

	tests := []struct {
		value string
		want  string
	}{
		{"new value", `{"a":{"b":"new value","c":"keep"}}`},
		{"42", `{"a":{"b":42,"c":"keep"}}`},
		{"[1, two]", `{"a":{"b":[1,"two"],"c":"keep"}}`},
		{"null", `{"a":{"b":null,"c":"keep"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			ctx, out := capture(t.Context())

			require.NoError(t, (&Set{Output: jsonOutput, File: file, Path: "a.b", Value: tt.value}).Run(ctx))
			require.Equal(t, tt.want+"\n", out.String())
		})
	}

	err := (&Set{Output: jsonOutput, File: file, Path: "a.x", Value: "v"}).Run(t.Context())
	require.ErrorIs(t, err, prop.ErrPathNotFound)
}

func TestCountCommand(t *testing.T) {
	file := writeFile(t, t.TempDir(), "doc.yaml", strings.Join([]string{
		`tpl: {v: "{{!openr->get()::items.[]}}"}`,
		`out: "{{openr->template()::tpl,items}}"`,
		`a: "{{openr->get()::x}}"`,
		`b: "{{openr->get()::y}} and {{openr->get()::z}}"`,
	}, "\n")+"\n")

	ctx, out := capture(t.Context())

	require.NoError(t, (&Count{Output: jsonOutput, File: file}).Run(ctx))
	require.Equal(t, `{"actions":2,"templates":1}`+"\n", out.String())
}

func TestParseCommand(t *testing.T) {
	ctx, out := capture(t.Context())

	token := "x {{openr(2)->join(`-`, `__dest`)::a, b}} y {{!openr->template()::t,n}}"
	require.NoError(t, (&Parse{Output: jsonOutput, Token: token}).Run(ctx))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 2)

	require.Equal(t, "action", got[0]["kind"])
	require.Equal(t, "join", got[0]["verb"])
	require.Equal(t, "dest", got[0]["scope"])
	require.InDelta(t, 2, got[0]["depth"], 0)
	require.Equal(t, []any{"a", "b"}, got[0]["src"])
	require.Equal(t, "{{openr(2)->join(`-`, `__dest`)::a, b}}", got[0]["text"])

	require.Equal(t, "template", got[1]["kind"])
	require.Equal(t, "template", got[1]["verb"])
	require.Equal(t, "sources", got[1]["scope"])
}

func TestBrowseCommandErrors(t *testing.T) {
	dir := t.TempDir()
	broken := writeFile(t, dir, "broken.yaml", "a: [1, 2\n")

	t.Run("stdin reused", func(t *testing.T) {
		ctx := WithInput(t.Context(), strings.NewReader("a: b\n"))
		ctx = WithSourceFiles(ctx, []string{"-"})

		err := (&Browse{Dest: "-"}).Run(ctx)
		require.ErrorIs(t, err, ErrStdinReused)
	})

	t.Run("invalid destination", func(t *testing.T) {
		err := (&Browse{Dest: broken}).Run(t.Context())
		require.ErrorIs(t, err, prop.ErrDecodeTree)
	})
}
