// Package regex compiles patterns written in a configurable surface syntax
// into interchangeable matchers and provides the shared matching contract:
// longest-prefix match, leftmost find, non-overlapping find-all and
// substitution.
//
// A pattern is parsed into an AST, compiled to an epsilon-NFA by Thompson
// construction, determinized by subset construction and flattened to a
// transition table. All three automata implement Matcher and agree on every
// input; the compiled Regex matches with the table and, when the pattern
// has a usable literal-prefix set, scans with an Aho-Corasick prefilter.
package regex

import "strings"

// Matcher is the capability every compiled automaton provides: the length
// in code points of the longest prefix of the input it accepts. ok is false
// when no prefix, not even the empty one, is accepted.
//
// Find, FindAll and the substitution operations are derived from Matcher
// alone, so they behave identically across the NFA, DFA and table engines.
type Matcher interface {
	MatchRunes(rs []rune) (end int, ok bool)
}

// Span is a [Start, End) region in code-point offsets.
type Span struct {
	Start, End int
}

// Find is a match result: the full source string and the span of the
// matched region.
type Find struct {
	Source string
	Span   Span
}

// Text returns the matched region of the source.
func (f Find) Text() string {
	rs := []rune(f.Source)
	return string(rs[f.Span.Start:f.Span.End])
}

// Equal reports whether both finds locate the same span in the same
// source.
func (f Find) Equal(other Find) bool {
	return f.Source == other.Source && f.Span == other.Span
}

// Match returns the longest-prefix match length of s against m.
func Match(m Matcher, s string) (end int, ok bool) {
	return m.MatchRunes([]rune(s))
}

// FindAt returns the leftmost match in s at or after offset, attempting a
// match at every offset up to and including the end of the string. A
// nullable pattern finds the zero-length span (k, k) at any position k.
func FindAt(m Matcher, s string, offset int) (Find, bool) {
	rs := []rune(s)
	return findAtRunes(m, s, rs, offset)
}

func findAtRunes(m Matcher, s string, rs []rune, offset int) (Find, bool) {
	for ; offset <= len(rs); offset++ {
		if end, ok := m.MatchRunes(rs[offset:]); ok {
			return Find{Source: s, Span: Span{Start: offset, End: offset + end}}, true
		}
	}
	return Find{}, false
}

// FindAll returns the non-overlapping matches of m in s, leftmost first.
// If n > 0 it returns at most n matches; otherwise all. The scan resumes at
// the end of the previous span and advances one extra code point after a
// zero-length match, so it always terminates.
func FindAll(m Matcher, s string, n int) []Find {
	rs := []rune(s)
	return findAllWith(func(offset int) (Find, bool) {
		return findAtRunes(m, s, rs, offset)
	}, len(rs), n)
}

func findAllWith(findAt func(offset int) (Find, bool), size, n int) []Find {
	var finds []Find
	offset := 0
	for offset <= size {
		if n > 0 && len(finds) >= n {
			break
		}
		f, ok := findAt(offset)
		if !ok {
			break
		}
		finds = append(finds, f)
		if f.Span.End == f.Span.Start {
			offset = f.Span.End + 1
		} else {
			offset = f.Span.End
		}
	}
	return finds
}

// Subn replaces every match of m in s with repl and returns the result and
// the number of replacements.
func Subn(m Matcher, s, repl string) (string, int) {
	return SubnFunc(m, s, func(Find) string { return repl })
}

// Sub is Subn without the count.
func Sub(m Matcher, s, repl string) string {
	result, _ := Subn(m, s, repl)
	return result
}

// SubnFunc replaces every match of m in s with repl(find) and returns the
// result and the number of replacements.
func SubnFunc(m Matcher, s string, repl func(Find) string) (string, int) {
	return subnFinds(s, FindAll(m, s, -1), repl)
}

// SubFunc is SubnFunc without the count.
func SubFunc(m Matcher, s string, repl func(Find) string) string {
	result, _ := SubnFunc(m, s, repl)
	return result
}

// subnFinds stitches the unmatched regions of s around the replacements.
func subnFinds(s string, finds []Find, repl func(Find) string) (string, int) {
	if len(finds) == 0 {
		return s, 0
	}
	rs := []rune(s)
	var b strings.Builder
	prev := 0
	for _, f := range finds {
		b.WriteString(string(rs[prev:f.Span.Start]))
		b.WriteString(repl(f))
		prev = f.Span.End
	}
	b.WriteString(string(rs[prev:]))
	return b.String(), len(finds)
}
