package nfa

import (
	"github.com/DasIch/editor/regex/syntax"
)

// Compile builds an epsilon-NFA from the AST by Thompson construction.
// Every construct of the language is compilable, so Compile is total.
func Compile(re syntax.Regex) *NFA {
	b := &builder{}
	f := b.compile(re)
	return &NFA{states: b.states, start: f.start, final: f.final}
}

type builder struct {
	states []state
}

// frag is an NFA fragment with one start and one final state.
type frag struct {
	start, final StateID
}

func (b *builder) newState(match bool) StateID {
	b.states = append(b.states, state{match: match})
	return StateID(len(b.states) - 1)
}

func (b *builder) addRange(from StateID, lo, hi rune, to StateID) {
	s := &b.states[from]
	s.transitions = append(s.transitions, Transition{Lo: lo, Hi: hi, Next: to})
}

func (b *builder) addEpsilon(from, to StateID) {
	s := &b.states[from]
	s.epsilon = append(s.epsilon, to)
}

func (b *builder) setFinal(id StateID, match bool) {
	b.states[id].match = match
}

func (b *builder) compile(re syntax.Regex) frag {
	switch re := re.(type) {
	case syntax.Epsilon:
		f := b.fragment()
		b.addEpsilon(f.start, f.final)
		return f

	case syntax.Character:
		f := b.fragment()
		b.addRange(f.start, re.R, re.R, f.final)
		return f

	case syntax.Any:
		return b.rangesFragment(re.Alphabet.Ranges())

	case syntax.Either:
		return b.rangesFragment(classRanges(re.Items))

	case syntax.Neither:
		covered := syntax.NewAlphabet(classRanges(re.Items)...)
		return b.rangesFragment(re.Alphabet.Subtract(covered.Ranges()).Ranges())

	case syntax.Range:
		return b.rangesFragment(re.Alphabet.Intersect(re.Lo, re.Hi))

	case syntax.Concatenation:
		left := b.compile(re.Left)
		right := b.compile(re.Right)
		b.addEpsilon(left.final, right.start)
		b.setFinal(left.final, false)
		return frag{start: left.start, final: right.final}

	case syntax.Union:
		left := b.compile(re.Left)
		right := b.compile(re.Right)
		f := b.fragment()
		b.addEpsilon(f.start, left.start)
		b.addEpsilon(f.start, right.start)
		b.addEpsilon(left.final, f.final)
		b.setFinal(left.final, false)
		b.addEpsilon(right.final, f.final)
		b.setFinal(right.final, false)
		return f

	case syntax.Repetition:
		inner := b.compile(re.Inner)
		f := b.fragment()
		b.addEpsilon(f.start, inner.start)
		b.addEpsilon(f.start, f.final)
		b.addEpsilon(inner.final, f.start)
		b.setFinal(inner.final, false)
		return f

	case syntax.Group:
		return b.compile(re.Inner)

	default:
		panic("nfa: unknown regex variant")
	}
}

// fragment allocates a fresh start state and a fresh final state.
func (b *builder) fragment() frag {
	final := b.newState(true)
	start := b.newState(false)
	return frag{start: start, final: final}
}

// rangesFragment builds a fragment whose start state consumes any code
// point of the given ranges.
func (b *builder) rangesFragment(ranges []syntax.RuneRange) frag {
	f := b.fragment()
	for _, r := range ranges {
		b.addRange(f.start, r.Lo, r.Hi, f.final)
	}
	return f
}

// classRanges resolves a class body to rune ranges. Characters are taken
// verbatim; ranges expand within their own alphabet.
func classRanges(items []syntax.ClassItem) []syntax.RuneRange {
	var out []syntax.RuneRange
	for _, item := range items {
		switch item := item.(type) {
		case syntax.Character:
			out = append(out, syntax.RuneRange{Lo: item.R, Hi: item.R})
		case syntax.Range:
			out = append(out, item.Alphabet.Intersect(item.Lo, item.Hi)...)
		}
	}
	return out
}
