package literal

import (
	"sort"
	"testing"

	"github.com/DasIch/editor/regex/syntax"
)

func extract(t *testing.T, pattern string) (Seq, bool) {
	t.Helper()
	re, err := syntax.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q) = %v", pattern, err)
	}
	return ExtractPrefixes(re, DefaultConfig())
}

func texts(s Seq) []string {
	out := make([]string, 0, s.Len())
	for _, l := range s.Literals() {
		out = append(out, l.Text)
	}
	sort.Strings(out)
	return out
}

func TestExtractPrefixes(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
		ok      bool
	}{
		{"abc", []string{"abc"}, true},
		{"a", []string{"a"}, true},
		{"a|b", []string{"a", "b"}, true},
		{"foo|bar", []string{"bar", "foo"}, true},
		// The starred tail cannot contribute, but the literal head is a
		// required prefix.
		{"ab+", []string{"ab"}, true},
		{"(ab)+", []string{"ab"}, true},
		{"ab*", []string{"a"}, true},
		{"a.*b", []string{"a"}, true},
		// Small classes expand into the cross product.
		{"[ab]c", []string{"ac", "bc"}, true},
		{"x[a-c]", []string{"xa", "xb", "xc"}, true},
		// Nullable patterns have no usable prefix.
		{"", nil, false},
		{"a*", nil, false},
		{"a*b", nil, false},
		// Wide constructs make extraction unusable.
		{".", nil, false},
		{".a", nil, false},
		{"[^a]b", nil, false},
		{"[a-z]x", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			seq, ok := extract(t, tt.pattern)
			if ok != tt.ok {
				t.Fatalf("ok = %t, want %t", ok, tt.ok)
			}
			if !ok {
				return
			}
			got := texts(seq)
			if len(got) != len(tt.want) {
				t.Fatalf("prefixes = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("prefixes = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestExtractPrefixes_Completeness(t *testing.T) {
	seq, ok := extract(t, "abc")
	if !ok || seq.Len() != 1 {
		t.Fatalf("extract(abc) = (%v, %t)", seq, ok)
	}
	if !seq.Literals()[0].Complete {
		t.Error("literal of a pure-literal pattern not complete")
	}

	seq, ok = extract(t, "ab+")
	if !ok || seq.Len() != 1 {
		t.Fatalf("extract(ab+) = (%v, %t)", seq, ok)
	}
	if seq.Literals()[0].Complete {
		t.Error("prefix of an open-ended pattern marked complete")
	}
}

func TestExtractPrefixes_Caps(t *testing.T) {
	cfg := Config{MaxLiterals: 2, MaxClassSize: 10}
	re, err := syntax.Parse("a|b|c")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ExtractPrefixes(re, cfg); ok {
		t.Error("extraction exceeded MaxLiterals without reporting unusable")
	}
}
