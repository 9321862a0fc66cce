package prop

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
)

func TestRunAllActions(t *testing.T) {
	tests := []struct {
		name    string
		sources map[string]any
		dest    map[string]any
		want    map[string]any
	}{
		{
			name:    "get",
			sources: map[string]any{"foo": "Foo Value"},
			dest:    map[string]any{"d": "{{openr->get()::foo}}"},
			want:    map[string]any{"d": "Foo Value"},
		},
		{
			name:    "add coerces strings and sequences",
			sources: map[string]any{"a": "1", "b": []any{"2"}},
			dest:    map[string]any{"d": "{{openr->add()::a,b}}"},
			want:    map[string]any{"d": 3.0},
		},
		{
			name:    "implode",
			sources: map[string]any{"a": []any{1, 2, 3}},
			dest:    map[string]any{"d": "{{openr->implode(`,`)::a}}"},
			want:    map[string]any{"d": "1,2,3"},
		},
		{
			name:    "template",
			sources: map[string]any{"items": []any{map[string]any{"x": 1}, map[string]any{"x": 2}}},
			dest: map[string]any{
				"tpl": map[string]any{"v": "{{!openr->get()::items.[].x}}"},
				"out": "{{openr->template()::tpl,items}}",
			},
			want: map[string]any{
				"tpl": map[string]any{"v": "{{!openr->get()::items.[].x}}"},
				"out": []any{map[string]any{"v": 1}, map[string]any{"v": 2}},
			},
		},
		{
			name:    "mid-string substitution",
			sources: map[string]any{"foo": "Bar"},
			dest:    map[string]any{"d": "XX {{openr->get()::foo}} XX"},
			want:    map[string]any{"d": "XX Bar XX"},
		},
		{
			name:    "unresolvable path is left as is",
			sources: map[string]any{"foo": "Bar"},
			dest:    map[string]any{"d": "{{openr->get()::fooo}}"},
			want:    map[string]any{"d": "{{openr->get()::fooo}}"},
		},
		{
			name:    "several tokens in one leaf",
			sources: map[string]any{"a": "A", "b": "B"},
			dest:    map[string]any{"d": "{{openr->get()::a}}/{{openr->get()::b}}/{{openr->get()::a}}"},
			want:    map[string]any{"d": "A/B/A"},
		},
		{
			name:    "non-string result replaces whole leaf",
			sources: map[string]any{"a": 2},
			dest:    map[string]any{"d": "sum: {{openr->add()::a}}"},
			want:    map[string]any{"d": 2.0},
		},
		{
			name:    "suppressed token is inert",
			sources: map[string]any{"a": "A"},
			dest:    map[string]any{"d": "{{!openr->get()::a}} {{openr->get()::a}}"},
			want:    map[string]any{"d": "{{!openr->get()::a}} A"},
		},
		{
			name:    "dest reference converges",
			sources: map[string]any{"foo": "Foo"},
			dest: map[string]any{
				"a": "{{openr->get(__dest)::b}}",
				"b": "{{openr->get()::foo}}",
			},
			want: map[string]any{"a": "Foo", "b": "Foo"},
		},
		{
			name:    "literal values are untouched",
			sources: map[string]any{},
			dest:    map[string]any{"s": "plain", "n": 4, "z": nil, "e": ""},
			want:    map[string]any{"s": "plain", "n": 4, "z": nil, "e": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RunAllActions(tt.sources, tt.dest)

			if diff := cmp.Diff(any(tt.want), got); diff != "" {
				t.Errorf("RunAllActions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunSeesEarlierResultsInSamePass(t *testing.T) {
	sources := map[string]any{"x": "X"}
	dest := yaml.MapSlice{
		{Key: "b", Value: "{{openr->get()::x}}"},
		{Key: "a", Value: "{{openr->get(__dest)::b}}"},
	}

	got := newTestResolver(WithMaxActionPasses(1)).Run(t.Context(), sources, dest)

	want := yaml.MapSlice{{Key: "b", Value: "X"}, {Key: "a", Value: "X"}}
	if diff := cmp.Diff(any(want), got); diff != "" {
		t.Errorf("Run mismatch (-want +got):\n%s", diff)
	}
}

func TestRunDefersByDepth(t *testing.T) {
	const token = "{{openr(2)->get()::x}}"

	tests := []struct {
		passes int
		want   any
	}{
		{1, token},
		{3, token},
		{4, "X"},
	}

	for _, tt := range tests {
		sources := map[string]any{"x": "X"}
		dest := map[string]any{"d": token}

		got := newTestResolver(WithMaxActionPasses(tt.passes)).Run(t.Context(), sources, dest)
		if diff := cmp.Diff(tt.want, Get(got, "d")); diff != "" {
			t.Errorf("after %d passes (-want +got):\n%s", tt.passes, diff)
		}
	}
}

func TestEligible(t *testing.T) {
	tests := []struct {
		pass, depth int
		want        bool
	}{
		{0, 0, true},
		{5, 0, true},
		{0, 1, false},
		{1, 1, false},
		{2, 1, true},
		{9, 9, false},
	}

	for _, tt := range tests {
		if got := eligible(tt.pass, tt.depth); got != tt.want {
			t.Errorf("eligible(%d, %d) = %v, want %v", tt.pass, tt.depth, got, tt.want)
		}
	}
}

func TestRunTerminatesOnCycle(t *testing.T) {
	dest := map[string]any{
		"a": "{{openr->get(__dest)::b}}",
		"b": "{{openr->get(__dest)::a}}",
	}

	got := newTestResolver().Run(t.Context(), map[string]any{}, dest)

	if n := ActionCount(got); n != 2 {
		t.Errorf("ActionCount = %d, want 2", n)
	}
}

func TestRunRootLeaf(t *testing.T) {
	got := newTestResolver().Run(t.Context(), map[string]any{"foo": "F"}, "<{{openr->get()::foo}}>")

	if got != "<F>" {
		t.Errorf("Run on string root = %v, want <F>", got)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	dest := map[string]any{"d": "{{openr->get()::foo}}"}
	got := newTestResolver().Run(ctx, map[string]any{"foo": "F"}, dest)

	if diff := cmp.Diff("{{openr->get()::foo}}", Get(got, "d")); diff != "" {
		t.Errorf("canceled run modified tree (-want +got):\n%s", diff)
	}
}

func readFixture(t *testing.T, name string) any {
	t.Helper()

	f, err := os.Open(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	tree, err := ReadTree(t.Context(), f)
	if err != nil {
		t.Fatal(err)
	}

	return tree
}

func TestRunFixture(t *testing.T) {
	sources := readFixture(t, "sources.yaml")
	dest := readFixture(t, "dest.yaml")

	if n := TemplateCount(dest); n != 3 {
		t.Fatalf("fixture TemplateCount = %d, want 3", n)
	}

	got := newTestResolver().Run(t.Context(), sources, dest)

	tests := []struct {
		path string
		want any
	}{
		{"dest_foo_test", "Foo Value"},
		{"dest_foo", "Foo Value"},
		{"dest_bar.dest_baz", "Baz Value"},
		{"dest_bar.dest_qux1.dest_nestedKey", "Foo Value"},
		{"dest_bar.dest_qux2.dest_nestedKey", "Nested Value2"},
		{"dest_bing.dest_nestedKey", "Nested Value3"},
		{"dest_empty", ""},
		{"dest_joined", "Nested Value1, Nested Value3"},
		{"dest_not_action", "I'm not an action!"},
		{"dest_timestamp", testNow.Unix()},
		{"dest_add_numbers", 3.0},
		{"dest_subtract_numbers", 94.0},
		{"dest_replace", "XX Foo Value is also Baz Value XX"},
		{"dest_array_1", "1,2,3,4,5,6,7,8,9"},
		{"dest_array_2", []any{"1", "2", "3", "4", "5", "6", "7", "8", "9"}},
		{"source_2_dest", "source_2_val"},
		{"source_2_prop_dest", "source_2_prop_val"},
		{"regexp_destination", "F-okay"},
		{"regexp_2", "F-okay SO....?"},
		{"regexp_3", "I don't know about this: F-okay"},
		{"dest_products.0.template-type", "SUV"},
		{"dest_products.1.template-type", "TRUCK"},
		{"dest_products.1.template-model", "F-150"},
		{"dest_products.2.template-make", "Ford 2"},
		{"dest_products.0.template-more", "SUV-more0"},
		{"dest_products.1.template_nested.temp_less_1", "SUV-less1"},
		{"dest_products.2.template_nested.temp_embedded.temp_less_2", "SUV-less2"},
		{"dest_products.3", NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Get(got, tt.path)); diff != "" {
				t.Errorf("Get(%q) mismatch (-want +got):\n%s", tt.path, diff)
			}
		})
	}

	if n := ActionCount(got); n != 0 {
		t.Errorf("ActionCount = %d, want 0", n)
	}

	if n := TemplateCount(got); n != 0 {
		t.Errorf("TemplateCount = %d, want 0", n)
	}
}
