// Package syntax implements the concrete regex surface syntax: the language
// descriptor naming the metasyntax markers, the lookahead input buffer with
// caret annotations, the AST, and the recursive-descent parser.
package syntax

import "strings"

// Language names the single-code-point markers of the surface syntax. All
// derived sets (special characters, repetition characters, end characters)
// are functions of these eleven markers.
//
// The zero value is not useful; start from DefaultLanguage and override
// individual markers as needed.
type Language struct {
	Escape           rune
	Union            rune
	GroupBegin       rune
	GroupEnd         rune
	EitherBegin      rune
	EitherEnd        rune
	NeitherIndicator rune
	ZeroOrMore       rune
	OneOrMore        rune
	Range            rune
	Any              rune
}

// DefaultLanguage returns the descriptor with the conventional markers:
//
//	\ | ( ) [ ] ^ * + - .
func DefaultLanguage() Language {
	return Language{
		Escape:           '\\',
		Union:            '|',
		GroupBegin:       '(',
		GroupEnd:         ')',
		EitherBegin:      '[',
		EitherEnd:        ']',
		NeitherIndicator: '^',
		ZeroOrMore:       '*',
		OneOrMore:        '+',
		Range:            '-',
		Any:              '.',
	}
}

// Equal reports whether both descriptors name the same eleven markers.
func (l Language) Equal(other Language) bool {
	return l == other
}

// IsSpecial reports whether r is one of the markers that require escaping to
// be used literally. The neither indicator is not special outside a class
// body.
func (l Language) IsSpecial(r rune) bool {
	switch r {
	case l.Escape, l.Union, l.GroupBegin, l.GroupEnd, l.EitherBegin,
		l.EitherEnd, l.ZeroOrMore, l.OneOrMore, l.Range, l.Any:
		return true
	}
	return false
}

// IsRepetition reports whether r is a repetition marker.
func (l Language) IsRepetition(r rune) bool {
	return r == l.ZeroOrMore || r == l.OneOrMore
}

// IsEnd reports whether r closes an enclosing construct.
func (l Language) IsEnd(r rune) bool {
	return r == l.GroupEnd || r == l.EitherEnd
}

// EscapeRune returns r as surface syntax, escaped if it is a special marker.
func (l Language) EscapeRune(r rune) string {
	if l.IsSpecial(r) {
		return string([]rune{l.Escape, r})
	}
	return string(r)
}

// EscapeString escapes every special marker in s.
func (l Language) EscapeString(s string) string {
	var b strings.Builder
	for _, r := range s {
		b.WriteString(l.EscapeRune(r))
	}
	return b.String()
}

// Render writes re back as surface syntax in this language. Rendering a
// parsed expression and parsing it again yields a structurally equal AST,
// modulo the one-or-more desugaring performed at parse time.
func (l Language) Render(re Regex) string {
	var b strings.Builder
	l.render(&b, re)
	return b.String()
}

func (l Language) render(b *strings.Builder, re Regex) {
	switch re := re.(type) {
	case Epsilon:
	case Any:
		b.WriteRune(l.Any)
	case Character:
		b.WriteString(l.EscapeRune(re.R))
	case Concatenation:
		l.render(b, re.Left)
		l.render(b, re.Right)
	case Union:
		l.render(b, re.Left)
		b.WriteRune(l.Union)
		l.render(b, re.Right)
	case Repetition:
		l.render(b, re.Inner)
		b.WriteRune(l.ZeroOrMore)
	case Group:
		b.WriteRune(l.GroupBegin)
		l.render(b, re.Inner)
		b.WriteRune(l.GroupEnd)
	case Either:
		b.WriteRune(l.EitherBegin)
		// A leading neither indicator is escaped so the class is not read
		// back as negated.
		if len(re.Items) > 0 {
			var lead rune
			switch item := re.Items[0].(type) {
			case Character:
				lead = item.R
			case Range:
				lead = item.Lo
			}
			if lead == l.NeitherIndicator {
				b.WriteRune(l.Escape)
			}
		}
		l.renderItems(b, re.Items)
		b.WriteRune(l.EitherEnd)
	case Neither:
		b.WriteRune(l.EitherBegin)
		b.WriteRune(l.NeitherIndicator)
		l.renderItems(b, re.Items)
		b.WriteRune(l.EitherEnd)
	case Range:
		b.WriteString(l.EscapeRune(re.Lo))
		b.WriteRune(l.Range)
		b.WriteString(l.EscapeRune(re.Hi))
	}
}

func (l Language) renderItems(b *strings.Builder, items []ClassItem) {
	for _, item := range items {
		switch item := item.(type) {
		case Character:
			b.WriteString(l.EscapeRune(item.R))
		case Range:
			l.render(b, item)
		}
	}
}
