package syntax

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, pattern string) Regex {
	t.Helper()
	re, err := Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q) = %v", pattern, err)
	}
	return re
}

func TestParse_Shapes(t *testing.T) {
	alpha := DefaultAlphabet()
	ab := Concatenation{Left: Character{R: 'a'}, Right: Character{R: 'b'}}
	tests := []struct {
		pattern string
		want    Regex
	}{
		{"", Epsilon{}},
		{"a", Character{R: 'a'}},
		{"ab", ab},
		{"a|b*", Union{
			Left:  Character{R: 'a'},
			Right: Repetition{Inner: Character{R: 'b'}},
		}},
		{"a|b|c", Union{
			Left: Character{R: 'a'},
			Right: Union{
				Left:  Character{R: 'b'},
				Right: Character{R: 'c'},
			},
		}},
		{"(a)", Group{Inner: Character{R: 'a'}}},
		{"()", Group{Inner: Epsilon{}}},
		{"a*", Repetition{Inner: Character{R: 'a'}}},
		{"a**", Repetition{Inner: Repetition{Inner: Character{R: 'a'}}}},
		// Star binds to the rightmost atom of a concatenation.
		{"ab*", Concatenation{
			Left:  Character{R: 'a'},
			Right: Repetition{Inner: Character{R: 'b'}},
		}},
		// One-or-more duplicates the whole expression built so far and
		// stars the copy.
		{"a+", Concatenation{
			Left:  Character{R: 'a'},
			Right: Repetition{Inner: Character{R: 'a'}},
		}},
		{"ab+", Concatenation{
			Left:  ab,
			Right: Repetition{Inner: ab},
		}},
		{"(ab)+", Concatenation{
			Left:  Group{Inner: ab},
			Right: Repetition{Inner: Group{Inner: ab}},
		}},
		{`\*`, Character{R: '*'}},
		{`\\`, Character{R: '\\'}},
		{".", Any{Alphabet: alpha}},
		{"[ab]", Either{Items: []ClassItem{
			Character{R: 'a'},
			Character{R: 'b'},
		}}},
		{"[a-c]", Either{Items: []ClassItem{
			Range{Lo: 'a', Hi: 'c', Alphabet: alpha},
		}}},
		{"[a-cx]", Either{Items: []ClassItem{
			Range{Lo: 'a', Hi: 'c', Alphabet: alpha},
			Character{R: 'x'},
		}}},
		{"[^ab]", Neither{
			Items:    []ClassItem{Character{R: 'a'}, Character{R: 'b'}},
			Alphabet: alpha,
		}},
		{`[\]]`, Either{Items: []ClassItem{Character{R: ']'}}}},
		{`[a-\]]`, Either{Items: []ClassItem{
			Range{Lo: 'a', Hi: ']', Alphabet: alpha},
		}}},
		// Duplicate class members collapse; bodies are sets.
		{"[aa]", Either{Items: []ClassItem{Character{R: 'a'}}}},
		{"(a|b)c", Concatenation{
			Left: Group{Inner: Union{
				Left:  Character{R: 'a'},
				Right: Character{R: 'b'},
			}},
			Right: Character{R: 'c'},
		}},
		// A union with an empty branch collapses to the other branch.
		{"a|", Character{R: 'a'}},
		{"|", Epsilon{}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got := mustParse(t, tt.pattern)
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		pattern    string
		reason     string
		annotation string
	}{
		{
			"+",
			"+ is not preceded by a repeatable expression",
			"+\n^",
		},
		{
			"*",
			"* is not preceded by a repeatable expression",
			"*\n^",
		},
		{
			"a|*b",
			"* is not preceded by a repeatable expression",
			"a|*b\n  ^",
		},
		{
			"(a",
			"unexpected end of string, expected ) corresponding to (",
			"(a\n^-^",
		},
		{
			"(a]",
			"expected ) corresponding to (, got ]",
			"(a]\n^-^",
		},
		{
			")",
			"found unmatched )",
			")\n^",
		},
		{
			"a)",
			"found unmatched )",
			"a)\n ^",
		},
		{
			"a]",
			"found unmatched ]",
			"a]\n ^",
		},
		{
			"[a",
			"unexpected end of string, expected ] corresponding to [",
			"[a\n^-^",
		},
		{
			"[-a]",
			"range is missing start",
			"[-a]\n^",
		},
		{
			"[a-b-c]",
			"range is missing start",
			"[a-b-c]\n   ^",
		},
		{
			"[a-]",
			"expected character, found instruction: ]",
			"[a-]\n   ^",
		},
		{
			`\`,
			"unexpected end of string, following escape character",
			"\\\n ^",
		},
		{
			`a\`,
			"unexpected end of string, following escape character",
			"a\\\n  ^",
		},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := Parse(tt.pattern)
			var perr *ParserError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) = %v, want *ParserError", tt.pattern, err)
			}
			if perr.Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", perr.Reason, tt.reason)
			}
			if perr.Annotation != tt.annotation {
				t.Errorf("Annotation = %q, want %q", perr.Annotation, tt.annotation)
			}
		})
	}
}

func TestParse_RenderRoundTrip(t *testing.T) {
	l := DefaultLanguage()
	patterns := []string{
		"",
		"a",
		"ab",
		"a|b",
		"a|b*",
		"a*",
		"a**",
		"(ab)",
		"(a|b)c",
		"(ab)+",
		"[ab]",
		"[a-c]",
		"[^ab]",
		`\*a`,
		".a.",
	}
	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			first := mustParse(t, pattern)
			rendered := l.Render(first)
			second, err := Parse(rendered)
			if err != nil {
				t.Fatalf("Parse(Render) of %q via %q: %v", pattern, rendered, err)
			}
			if !second.Equal(first) {
				t.Errorf("round trip of %q via %q: %#v != %#v", pattern, rendered, second, first)
			}
		})
	}
}

func TestParser_CustomLanguage(t *testing.T) {
	language := DefaultLanguage()
	language.Union = '/'
	language.Any = '_'
	p := NewParser(language, DefaultAlphabet())
	got, err := p.Parse("a/_")
	if err != nil {
		t.Fatalf("Parse(a/_) = %v", err)
	}
	want := Union{Left: Character{R: 'a'}, Right: Any{Alphabet: DefaultAlphabet()}}
	if !got.Equal(want) {
		t.Errorf("Parse(a/_) = %#v, want %#v", got, want)
	}
	// With the union marker rebound, | is an ordinary character.
	got, err = p.Parse("|")
	if err != nil {
		t.Fatalf("Parse(|) = %v", err)
	}
	if !got.Equal(Character{R: '|'}) {
		t.Errorf("Parse(|) = %#v", got)
	}
}

func TestParser_CustomAlphabet(t *testing.T) {
	alpha := NewAlphabet(RuneRange{'a', 'z'})
	p := NewParser(DefaultLanguage(), alpha)
	got, err := p.Parse(".")
	if err != nil {
		t.Fatalf("Parse(.) = %v", err)
	}
	if !got.Equal(Any{Alphabet: alpha}) {
		t.Errorf("Parse(.) = %#v", got)
	}
}
