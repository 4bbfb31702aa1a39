package metrics_test

import (
	"testing"

	"github.com/petasbytes/toolloop/internal/metrics"
)

func TestCountFeatures(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want metrics.Features
	}{
		{"empty", "", metrics.Features{}},
		{"single word", "weather", metrics.Features{Bytes: 7, Runes: 7, Words: 1, Lines: 1}},
		{"prompt", "What is 2 plus 3?", metrics.Features{Bytes: 17, Runes: 17, Words: 5, Lines: 1}},
		{"multibyte", "héllö 世界", metrics.Features{Bytes: 14, Runes: 8, Words: 2, Lines: 1}},
		{"trailing newline", "a\nb\n", metrics.Features{Bytes: 4, Runes: 4, Words: 2, Lines: 3}},
		{"crlf", "a\r\nb\r\nc", metrics.Features{Bytes: 7, Runes: 7, Words: 3, Lines: 3}},
		{"mixed whitespace", "  foo\tbar   baz  ", metrics.Features{Bytes: 17, Runes: 17, Words: 3, Lines: 1}},
		{"only whitespace", " \t\n", metrics.Features{Bytes: 3, Runes: 3, Words: 0, Lines: 2}},
		{"nbsp splits", "foo\u00a0bar", metrics.Features{Bytes: 8, Runes: 7, Words: 2, Lines: 1}},
		{"zero width space joins", "foo\u200bbar", metrics.Features{Bytes: 9, Runes: 7, Words: 1, Lines: 1}},
		{"emoji", "👍👍", metrics.Features{Bytes: 8, Runes: 2, Words: 1, Lines: 1}},
		{"invalid utf8", "a\xffb", metrics.Features{Bytes: 3, Runes: 3, Words: 1, Lines: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := metrics.CountFeatures(tc.in); got != tc.want {
				t.Fatalf("CountFeatures(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestFeatures_Fields(t *testing.T) {
	got := metrics.CountFeatures("add 2 and 3").Fields()
	want := map[string]any{"bytes": 11, "runes": 11, "words": 4, "lines": 1}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %v, want %v", k, got[k], v)
		}
	}
	if len(got) != len(want) {
		t.Errorf("got %d fields, want %d", len(got), len(want))
	}
}
