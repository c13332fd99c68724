package regex

import (
	"github.com/DasIch/editor/regex/dfa"
	"github.com/DasIch/editor/regex/nfa"
	"github.com/DasIch/editor/regex/syntax"
)

// Regex is a compiled pattern.
//
// Compilation runs the whole pipeline — parse, Thompson construction,
// subset construction, table flattening — and keeps all three automata:
// the table drives matching, the NFA and DFA remain available as the
// reference engines. A Regex is safe for concurrent use after compilation.
type Regex struct {
	pattern string
	ast     syntax.Regex

	nfa   *nfa.NFA
	dfa   *dfa.DFA
	table *dfa.Table

	prefilter *prefilter
}

// Compile compiles a pattern written in the default language over the
// default alphabet.
func Compile(pattern string) (*Regex, error) {
	return CompileWith(pattern, syntax.DefaultLanguage(), syntax.DefaultAlphabet())
}

// CompileWith compiles a pattern written in the given language over the
// given alphabet. The returned error is a *syntax.ParserError.
func CompileWith(pattern string, language syntax.Language, alphabet syntax.Alphabet) (*Regex, error) {
	ast, err := syntax.NewParser(language, alphabet).Parse(pattern)
	if err != nil {
		return nil, err
	}
	n := nfa.Compile(ast)
	d := dfa.FromNFA(n)
	return &Regex{
		pattern:   pattern,
		ast:       ast,
		nfa:       n,
		dfa:       d,
		table:     dfa.NewTable(d),
		prefilter: newPrefilter(ast),
	}, nil
}

// MustCompile is Compile, panicking on error. Useful for patterns known to
// be valid at compile time.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("regex: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// String returns the source pattern.
func (r *Regex) String() string {
	return r.pattern
}

// AST returns the parsed pattern.
func (r *Regex) AST() syntax.Regex {
	return r.ast
}

// NFA returns the epsilon-NFA engine.
func (r *Regex) NFA() *nfa.NFA {
	return r.nfa
}

// DFA returns the subset-constructed engine.
func (r *Regex) DFA() *dfa.DFA {
	return r.dfa
}

// Table returns the flat transition-table engine.
func (r *Regex) Table() *dfa.Table {
	return r.table
}

// Match returns the length in code points of the longest prefix of s in
// the pattern's language. ok is false if no prefix, not even the empty
// one, matches.
func (r *Regex) Match(s string) (end int, ok bool) {
	return r.table.Match(s)
}

// MatchRunes is Match over a code-point slice, satisfying Matcher.
func (r *Regex) MatchRunes(rs []rune) (end int, ok bool) {
	return r.table.MatchRunes(rs)
}

// Find returns the leftmost match in s.
func (r *Regex) Find(s string) (Find, bool) {
	return r.FindAt(s, 0)
}

// FindAt returns the leftmost match in s at or after offset (in code
// points). When the pattern has a literal prefilter the scan jumps between
// candidate offsets instead of advancing one code point at a time.
func (r *Regex) FindAt(s string, offset int) (Find, bool) {
	rs := []rune(s)
	if r.prefilter == nil {
		return findAtRunes(r.table, s, rs, offset)
	}
	return r.findFiltered(s, rs, newRuneIndex(s), offset)
}

func (r *Regex) findFiltered(s string, rs []rune, idx runeIndex, offset int) (Find, bool) {
	haystack := []byte(s)
	for offset <= len(rs) {
		b, ok := r.prefilter.next(haystack, idx.bytePos(offset))
		if !ok {
			return Find{}, false
		}
		candidate := idx.runePos(b)
		if end, ok := r.table.MatchRunes(rs[candidate:]); ok {
			return Find{Source: s, Span: Span{Start: candidate, End: candidate + end}}, true
		}
		offset = candidate + 1
	}
	return Find{}, false
}

// FindAll returns the non-overlapping matches in s, leftmost first. If
// n > 0 it returns at most n matches; otherwise all.
func (r *Regex) FindAll(s string, n int) []Find {
	rs := []rune(s)
	if r.prefilter == nil {
		return findAllWith(func(offset int) (Find, bool) {
			return findAtRunes(r.table, s, rs, offset)
		}, len(rs), n)
	}
	idx := newRuneIndex(s)
	return findAllWith(func(offset int) (Find, bool) {
		return r.findFiltered(s, rs, idx, offset)
	}, len(rs), n)
}

// Subn replaces every match in s with repl, returning the result and the
// number of replacements.
func (r *Regex) Subn(s, repl string) (string, int) {
	return r.SubnFunc(s, func(Find) string { return repl })
}

// Sub is Subn without the count.
func (r *Regex) Sub(s, repl string) string {
	result, _ := r.Subn(s, repl)
	return result
}

// SubnFunc replaces every match in s with repl(find), returning the result
// and the number of replacements.
func (r *Regex) SubnFunc(s string, repl func(Find) string) (string, int) {
	return subnFinds(s, r.FindAll(s, -1), repl)
}

// SubFunc is SubnFunc without the count.
func (r *Regex) SubFunc(s string, repl func(Find) string) string {
	result, _ := r.SubnFunc(s, repl)
	return result
}
