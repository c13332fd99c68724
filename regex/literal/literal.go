// Package literal extracts literal prefixes from the regex AST for
// prefilter optimization.
//
// A compiled pattern whose matches all have to begin with one of a small
// set of literals can be scanned with a multi-literal automaton instead of
// attempting a match at every offset. Extraction is exact or not at all:
// if the prefix set cannot be bounded, extraction reports unusable and the
// caller falls back to the plain scan.
package literal

import "github.com/DasIch/editor/regex/syntax"

// Config bounds extraction so pathological patterns cannot blow up the
// prefix set.
type Config struct {
	// MaxLiterals limits the number of alternative prefixes.
	MaxLiterals int

	// MaxClassSize limits the number of code points a character class may
	// contribute; larger classes make extraction unusable.
	MaxClassSize int
}

// DefaultConfig returns caps suitable for typical patterns.
func DefaultConfig() Config {
	return Config{
		MaxLiterals:  64,
		MaxClassSize: 10,
	}
}

// Literal is one extracted prefix. Complete marks a literal covering an
// entire match rather than a proper prefix.
type Literal struct {
	Text     string
	Complete bool
}

// Seq is a set of alternative literal prefixes. Every match of the source
// pattern starts with one of them.
type Seq struct {
	lits []Literal
}

// Literals returns the extracted prefixes.
func (s Seq) Literals() []Literal {
	return s.lits
}

// Len returns the number of prefixes.
func (s Seq) Len() int {
	return len(s.lits)
}

// ExtractPrefixes computes the exact required-prefix set of re. ok is
// false when no usable set exists: the pattern is nullable, a class or
// wildcard is too wide, or a cap was exceeded.
func ExtractPrefixes(re syntax.Regex, cfg Config) (Seq, bool) {
	e := extractor{cfg: cfg}
	lits, _, ok := e.extract(re)
	if !ok || len(lits) == 0 {
		return Seq{}, false
	}
	for _, l := range lits {
		if l.Text == "" {
			return Seq{}, false
		}
	}
	return Seq{lits: lits}, true
}

type extractor struct {
	cfg Config
}

// extract returns the prefix set of re. complete reports that every
// literal covers a whole match of re; ok=false means unusable.
func (e *extractor) extract(re syntax.Regex) (lits []Literal, complete bool, ok bool) {
	switch re := re.(type) {
	case syntax.Epsilon:
		return []Literal{{Text: "", Complete: true}}, true, true

	case syntax.Character:
		return []Literal{{Text: string(re.R), Complete: true}}, true, true

	case syntax.Group:
		return e.extract(re.Inner)

	case syntax.Concatenation:
		left, leftComplete, ok := e.extract(re.Left)
		if !ok {
			return nil, false, false
		}
		if !leftComplete {
			return markIncomplete(left), false, true
		}
		right, rightComplete, ok := e.extract(re.Right)
		if !ok || len(left)*len(right) > e.cfg.MaxLiterals {
			return markIncomplete(left), false, true
		}
		var out []Literal
		for _, l := range left {
			for _, r := range right {
				out = append(out, Literal{
					Text:     l.Text + r.Text,
					Complete: r.Complete,
				})
			}
		}
		return out, rightComplete, true

	case syntax.Union:
		left, leftComplete, ok := e.extract(re.Left)
		if !ok {
			return nil, false, false
		}
		right, rightComplete, ok := e.extract(re.Right)
		if !ok {
			return nil, false, false
		}
		out := append(left, right...)
		if len(out) > e.cfg.MaxLiterals {
			return nil, false, false
		}
		return out, leftComplete && rightComplete, true

	case syntax.Either:
		return e.expandItems(re.Items)

	case syntax.Range:
		return e.expandItems([]syntax.ClassItem{re})

	default:
		// Repetition is nullable, Any and Neither are as wide as the
		// alphabet; none yields a bounded required prefix.
		return nil, false, false
	}
}

// expandItems enumerates a class body into one-rune literals, within the
// class size cap.
func (e *extractor) expandItems(items []syntax.ClassItem) ([]Literal, bool, bool) {
	var lits []Literal
	for _, item := range items {
		switch item := item.(type) {
		case syntax.Character:
			lits = append(lits, Literal{Text: string(item.R), Complete: true})
		case syntax.Range:
			for _, rr := range item.Alphabet.Intersect(item.Lo, item.Hi) {
				for r := rr.Lo; r <= rr.Hi; r++ {
					lits = append(lits, Literal{Text: string(r), Complete: true})
					if len(lits) > e.cfg.MaxClassSize {
						return nil, false, false
					}
				}
			}
		}
		if len(lits) > e.cfg.MaxClassSize {
			return nil, false, false
		}
	}
	return lits, true, true
}

func markIncomplete(lits []Literal) []Literal {
	out := make([]Literal, len(lits))
	for i, l := range lits {
		out[i] = Literal{Text: l.Text, Complete: false}
	}
	return out
}
