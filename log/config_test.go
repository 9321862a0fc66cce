package log

import (
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{" info ", LevelInfo},
		{"WARN", LevelWarn},
		{"error", LevelError},
		{"debug+4", LevelInfo},
		{"bogus", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"text", FormatText},
		{"yaml", DefaultFormat},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseFormat(tt.in); got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevelsAndFormats(t *testing.T) {
	var levels []string
	for l := range Levels() {
		levels = append(levels, l)
	}

	if len(levels) != 5 || levels[0] != "trace" || levels[4] != "error" {
		t.Errorf("Levels() = %v", levels)
	}

	var formats []string
	for f := range Formats() {
		formats = append(formats, f)
	}

	if len(formats) != 2 || formats[0] != "text" || formats[1] != "json" {
		t.Errorf("Formats() = %v", formats)
	}
}

func TestOptionsSetFields(t *testing.T) {
	c := apply(config{},
		WithLevel(LevelWarn),
		WithFormat(FormatJSON),
		WithCaller(true),
		WithPretty(true),
	)

	if c.mutex == nil {
		t.Fatal("expected option to allocate mutex")
	}

	if c.level != LevelWarn {
		t.Errorf("level = %v, want %v", c.level, LevelWarn)
	}

	if c.format != FormatJSON {
		t.Errorf("format = %v, want %v", c.format, FormatJSON)
	}

	if !c.caller || !c.pretty {
		t.Errorf("caller = %v, pretty = %v, want both true", c.caller, c.pretty)
	}
}

func TestWithDefaults(t *testing.T) {
	c := apply(config{}, WithLevel(LevelError), WithDefaults(nil))

	if c.level != DefaultLevel {
		t.Errorf("level = %v, want %v", c.level, DefaultLevel)
	}

	if c.format != DefaultFormat {
		t.Errorf("format = %v, want %v", c.format, DefaultFormat)
	}

	if c.output == nil {
		t.Error("expected non-nil output for nil writer")
	}
}

func TestMakeFormatTimeFunc(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

	tests := []struct {
		layout string
		want   string
	}{
		{"rfc3339", "2024-03-05T14:07:09Z"},
		{"RFC-3339", "2024-03-05T14:07:09Z"},
		{"kitchen", "2:07PM"},
		{"date", "2024-03-05"},
		{"2006/01/02", "2024/03/05"},
		{"none", ""},
		{"  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			if got := makeFormatTimeFunc(tt.layout)(ts); got != tt.want {
				t.Errorf("format(%q) = %q, want %q", tt.layout, got, tt.want)
			}
		})
	}
}

func TestLookupTimeLayout(t *testing.T) {
	if layout, ok := LookupTimeLayout("UnixDate"); !ok || layout != time.UnixDate {
		t.Errorf("LookupTimeLayout(UnixDate) = %q, %v", layout, ok)
	}

	if _, ok := LookupTimeLayout("15:04"); ok {
		t.Error("expected reference layout not to be a named layout")
	}

	n := 0
	for range TimeLayouts() {
		n++
	}

	if n != len(timeLayout) {
		t.Errorf("TimeLayouts yielded %d entries, want %d", n, len(timeLayout))
	}
}
