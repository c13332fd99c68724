package syntax

import "strings"

// Input wraps a pattern as a code-point sequence with a forward cursor and
// arbitrary lookahead. The parser is its only mutator.
type Input struct {
	source string
	runes  []rune
	// position is the index of the most recently consumed code point, or -1
	// before the first read.
	position int
}

// NewInput returns an input positioned before the first code point of s.
func NewInput(s string) *Input {
	return &Input{source: s, runes: []rune(s), position: -1}
}

// Position returns the index of the most recently consumed code point, or
// -1 if nothing has been consumed.
func (in *Input) Position() int {
	return in.position
}

// IsConsumed reports whether every code point has been consumed.
func (in *Input) IsConsumed() bool {
	return in.position+1 >= len(in.runes)
}

// Next consumes and returns the next code point. ok is false at end of
// input.
func (in *Input) Next() (r rune, ok bool) {
	if in.IsConsumed() {
		return 0, false
	}
	in.position++
	return in.runes[in.position], true
}

// NextOr consumes and returns the next code point, or fails with a
// ParserError carrying reason and a caret one past the consumed input.
func (in *Input) NextOr(reason string) (rune, error) {
	r, ok := in.Next()
	if !ok {
		return 0, &ParserError{
			Reason:     reason,
			Annotation: in.Annotate(in.position + 1),
		}
	}
	return r, nil
}

// Lookahead returns the nth upcoming code point without consuming it; n is
// 1-based. ok is false if fewer than n code points remain.
func (in *Input) Lookahead(n int) (r rune, ok bool) {
	i := in.position + n
	if i >= len(in.runes) {
		return 0, false
	}
	return in.runes[i], true
}

// Consume advances the cursor by n code points. It must not run past the
// end of input; the parser only consumes what it has looked ahead at.
func (in *Input) Consume(n int) {
	for i := 0; i < n; i++ {
		if _, ok := in.Next(); !ok {
			panic("syntax: consume past end of input")
		}
	}
}

// Annotate renders the source with a caret under the code point at
// position.
func (in *Input) Annotate(position int) string {
	var b strings.Builder
	b.WriteString(in.source)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", position))
	b.WriteByte('^')
	return b.String()
}

// AnnotateRange renders the source with carets under start and end and
// hyphens joining them.
func (in *Input) AnnotateRange(start, end int) string {
	if end <= start {
		return in.Annotate(start)
	}
	var b strings.Builder
	b.WriteString(in.source)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", start))
	b.WriteByte('^')
	b.WriteString(strings.Repeat("-", end-start-1))
	b.WriteByte('^')
	return b.String()
}
