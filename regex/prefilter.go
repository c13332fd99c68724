package regex

import (
	"sort"

	"github.com/coregx/ahocorasick"

	"github.com/DasIch/editor/regex/literal"
	"github.com/DasIch/editor/regex/syntax"
)

// prefilter scans for the next offset at which a match can possibly start,
// using an Aho-Corasick automaton over the pattern's required literal
// prefixes. Only patterns with an exact, bounded, non-empty prefix set get
// one; everything else falls back to attempting a match at every offset.
type prefilter struct {
	auto *ahocorasick.Automaton
}

// newPrefilter returns nil when the pattern has no usable prefix set.
func newPrefilter(re syntax.Regex) *prefilter {
	seq, ok := literal.ExtractPrefixes(re, literal.DefaultConfig())
	if !ok {
		return nil
	}
	builder := ahocorasick.NewBuilder()
	for _, lit := range seq.Literals() {
		builder.AddPattern([]byte(lit.Text))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &prefilter{auto: auto}
}

// next returns the smallest candidate byte offset >= at, or ok=false when
// no candidate remains and therefore no match can start at or after at.
func (p *prefilter) next(haystack []byte, at int) (int, bool) {
	if at >= len(haystack) {
		return 0, false
	}
	m := p.auto.Find(haystack, at)
	if m == nil {
		return 0, false
	}
	return m.Start, true
}

// runeIndex maps byte offsets to code-point offsets for one source string.
type runeIndex struct {
	// byteOf[i] is the byte offset of code point i; the final entry is
	// len(source).
	byteOf []int
}

func newRuneIndex(s string) runeIndex {
	byteOf := make([]int, 0, len(s)+1)
	for i := range s {
		byteOf = append(byteOf, i)
	}
	byteOf = append(byteOf, len(s))
	return runeIndex{byteOf: byteOf}
}

// bytePos returns the byte offset of code point i.
func (x runeIndex) bytePos(i int) int {
	return x.byteOf[i]
}

// runePos returns the code-point offset of byte offset b, which must lie
// on a code-point boundary; prefilter candidates always do, because the
// automaton's patterns are whole code-point sequences.
func (x runeIndex) runePos(b int) int {
	return sort.SearchInts(x.byteOf, b)
}
