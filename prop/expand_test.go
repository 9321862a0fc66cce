package prop

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExpandTemplates(t *testing.T) {
	tests := []struct {
		name    string
		sources map[string]any
		dest    map[string]any
		want    map[string]any
	}{
		{
			name:    "sequence driver",
			sources: map[string]any{"items": []any{map[string]any{"x": 1}, map[string]any{"x": 2}}},
			dest: map[string]any{
				"tpl": map[string]any{"v": "{{!openr->get()::items.[].x}}"},
				"out": "{{openr->template()::tpl,items}}",
			},
			want: map[string]any{
				"tpl": map[string]any{"v": "{{!openr->get()::items.[].x}}"},
				"out": []any{
					map[string]any{"v": "{{openr->get()::items.0.x}}"},
					map[string]any{"v": "{{openr->get()::items.1.x}}"},
				},
			},
		},
		{
			name:    "mapping driver",
			sources: map[string]any{"env": map[string]any{"prod": "p", "dev": "d"}},
			dest: map[string]any{
				"tpl": []any{"{{!openr->get()::env.[]}}", "name=[]", 3},
				"out": "{{openr->template()::tpl,env}}",
			},
			want: map[string]any{
				"tpl": []any{"{{!openr->get()::env.[]}}", "name=[]", 3},
				"out": []any{
					[]any{"{{openr->get()::env.dev}}", "name=dev", 3},
					[]any{"{{openr->get()::env.prod}}", "name=prod", 3},
				},
			},
		},
		{
			name:    "empty driver",
			sources: map[string]any{"items": []any{}},
			dest: map[string]any{
				"tpl": map[string]any{"v": "x"},
				"out": "{{openr->template()::tpl,items}}",
			},
			want: map[string]any{
				"tpl": map[string]any{"v": "x"},
				"out": []any{},
			},
		},
		{
			name:    "missing driver",
			sources: map[string]any{},
			dest: map[string]any{
				"tpl": map[string]any{"v": "x"},
				"out": "{{openr->template()::tpl,items}}",
			},
			want: map[string]any{
				"tpl": map[string]any{"v": "x"},
				"out": []any{},
			},
		},
		{
			name:    "scalar driver",
			sources: map[string]any{"items": "abc"},
			dest: map[string]any{
				"tpl": map[string]any{"v": "x"},
				"out": "{{openr->template()::tpl,items}}",
			},
			want: map[string]any{
				"tpl": map[string]any{"v": "x"},
				"out": []any{},
			},
		},
		{
			name:    "missing body",
			sources: map[string]any{"items": []any{1}},
			dest:    map[string]any{"out": "{{openr->template()::tpl,items}}"},
			want:    map[string]any{"out": []any{nil}},
		},
		{
			name:    "double suppression survives one expansion",
			sources: map[string]any{"items": []any{"a"}},
			dest: map[string]any{
				"tpl": map[string]any{"v": "{{!!openr->get()::x}}"},
				"out": "{{openr->template()::tpl,items}}",
			},
			want: map[string]any{
				"tpl": map[string]any{"v": "{{!!openr->get()::x}}"},
				"out": []any{map[string]any{"v": "{{!openr->get()::x}}"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newTestResolver().ExpandTemplates(t.Context(), tt.sources, tt.dest)

			if diff := cmp.Diff(any(tt.want), got); diff != "" {
				t.Errorf("ExpandTemplates mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExpandTemplatesIsIdempotent(t *testing.T) {
	sources := map[string]any{"items": []any{"a", "b"}}
	dest := map[string]any{
		"tpl": map[string]any{"v": "{{!openr->get()::items.[]}}"},
		"out": "{{openr->template()::tpl,items}}",
	}

	r := newTestResolver()

	once := r.ExpandTemplates(t.Context(), sources, dest)
	if n := TemplateCount(once); n != 0 {
		t.Fatalf("TemplateCount after expansion = %d, want 0", n)
	}

	want := Clone(once)

	twice := r.ExpandTemplates(t.Context(), sources, once)
	if diff := cmp.Diff(want, twice); diff != "" {
		t.Errorf("second expansion changed tree (-want +got):\n%s", diff)
	}

	if n := TemplateCount(twice); n != 0 {
		t.Errorf("TemplateCount after second expansion = %d, want 0", n)
	}
}

func TestExpandTemplatesInlinesChildren(t *testing.T) {
	sources := map[string]any{
		"products":   []any{"p0", "p1"},
		"additional": []any{"a0", "a1"},
	}

	dest := map[string]any{
		"inner": map[string]any{
			"less": "{{!openr->get()::additional.[]}}",
		},
		"outer": map[string]any{
			"more":   "{{!openr->get()::additional.[]}}",
			"nested": "{{!openr->template(`child`)::inner,additional}}",
		},
		"body": map[string]any{
			"name":  "{{!openr->get()::products.[]}}",
			"child": "{{!openr->template(`child`)::outer,additional}}",
		},
		"out": "{{openr->template()::body,products}}",
	}

	got := newTestResolver().ExpandTemplates(t.Context(), sources, dest)

	instance := func(i string) any {
		return map[string]any{
			"name": "{{openr->get()::products." + i + "}}",
			"child": map[string]any{
				"more":   "{{openr->get()::additional." + i + "}}",
				"nested": map[string]any{"less": "{{openr->get()::additional." + i + "}}"},
			},
		}
	}

	if diff := cmp.Diff([]any{instance("0"), instance("1")}, Get(got, "out")); diff != "" {
		t.Errorf("expanded instances mismatch (-want +got):\n%s", diff)
	}

	if n := TemplateCount(got); n != 0 {
		t.Errorf("TemplateCount = %d, want 0", n)
	}
}

func TestExpandTemplatesNestedMarkerConverges(t *testing.T) {
	sources := map[string]any{
		"items": []any{
			map[string]any{"name": "a", "subs": []any{"x", "y"}},
			map[string]any{"name": "b", "subs": []any{"z"}},
		},
	}
	dest := map[string]any{
		"tpl": map[string]any{
			"name": "{{!openr->get()::items.[].name}}",
			"subs": "{{!openr->template()::sub,items.[].subs}}",
		},
		"sub": "s",
		"out": "{{openr->template()::tpl,items}}",
	}

	got := newTestResolver().ExpandTemplates(t.Context(), sources, dest)

	if n := TemplateCount(got); n != 0 {
		t.Fatalf("TemplateCount after expansion = %d, want 0", n)
	}

	want := []any{
		map[string]any{"name": "{{openr->get()::items.0.name}}", "subs": []any{"s", "s"}},
		map[string]any{"name": "{{openr->get()::items.1.name}}", "subs": []any{"s"}},
	}
	if diff := cmp.Diff(want, Get(got, "out")); diff != "" {
		t.Errorf("out mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(any([]any{}), Get(got, "tpl.subs")); diff != "" {
		t.Errorf("tpl.subs mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandTemplatesStopsAtPassLimit(t *testing.T) {
	// Each instance of tpl holds another marker expanding tpl again.
	sources := map[string]any{"items": []any{1}}
	dest := map[string]any{
		"tpl": map[string]any{"again": "{{!openr->template()::tpl,items}}"},
		"out": "{{openr->template()::tpl,items}}",
	}

	r := newTestResolver(WithMaxTemplatePasses(3))
	got := r.ExpandTemplates(t.Context(), sources, dest)

	if n := TemplateCount(got); n == 0 {
		t.Error("self-referencing template converged unexpectedly")
	}
}
