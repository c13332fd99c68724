// Package tokenizer drives a priority-ordered list of compiled matchers
// over an input.
//
// Disambiguation is first-match, not longest-match: the first definition
// whose pattern matches at the cursor wins, so declaration order encodes
// priority (declare "ab+" before "a+" to prefer the combined form).
package tokenizer

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/DasIch/editor/regex"
	"github.com/DasIch/editor/regex/syntax"
)

// Definition pairs a pattern with the tag of the tokens it produces.
type Definition struct {
	Pattern string
	Tag     string
}

// Token is one scanned lexeme. Span is in code-point offsets of the full
// input.
type Token struct {
	Tag    string
	Lexeme string
	Span   regex.Span
}

// Equal reports whether both tokens carry the same tag, lexeme and span.
func (t Token) Equal(other Token) bool {
	return t == other
}

// Error reports that no definition matches at the cursor. Position is the
// code-point offset of the unconsumable remainder.
type Error struct {
	Reason   string
	Position int
}

func (e *Error) Error() string {
	return e.Reason
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithLogger routes compile and scan debug logging to log.
func WithLogger(log *logrus.Logger) Option {
	return func(t *Tokenizer) {
		t.log = log
	}
}

// WithLanguage compiles the definitions in the given surface language.
func WithLanguage(language syntax.Language) Option {
	return func(t *Tokenizer) {
		t.language = language
	}
}

// WithAlphabet compiles the definitions over the given alphabet.
func WithAlphabet(alphabet syntax.Alphabet) Option {
	return func(t *Tokenizer) {
		t.alphabet = alphabet
	}
}

type definition struct {
	tag string
	re  *regex.Regex
}

// Tokenizer scans input with its definitions in declaration order.
type Tokenizer struct {
	defs     []definition
	language syntax.Language
	alphabet syntax.Alphabet
	log      *logrus.Logger
}

// New compiles the definitions. A definition whose pattern fails to parse
// aborts construction with the parser's error.
func New(defs []Definition, opts ...Option) (*Tokenizer, error) {
	t := &Tokenizer{
		language: syntax.DefaultLanguage(),
		alphabet: syntax.DefaultAlphabet(),
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	for _, def := range defs {
		re, err := regex.CompileWith(def.Pattern, t.language, t.alphabet)
		if err != nil {
			return nil, err
		}
		t.log.WithFields(logrus.Fields{
			"tag":     def.Tag,
			"pattern": def.Pattern,
			"states":  re.Table().NumStates(),
		}).Debug("compiled definition")
		t.defs = append(t.defs, definition{tag: def.Tag, re: re})
	}
	return t, nil
}

// Tokenize scans s into tokens. Scanning stops at the first position no
// definition matches; the error carries that position. A zero-width match
// counts as no match, so every emitted token consumes input and the scan
// terminates.
func (t *Tokenizer) Tokenize(s string) ([]Token, error) {
	rs := []rune(s)
	var tokens []Token
	cursor := 0
	for cursor < len(rs) {
		token, ok := t.matchToken(rs, cursor)
		if !ok {
			err := &Error{
				Reason:   fmt.Sprintf("string cannot be further consumed at position %d", cursor),
				Position: cursor,
			}
			t.log.WithField("position", cursor).Debug("tokenizer stuck")
			return nil, err
		}
		tokens = append(tokens, token)
		cursor = token.Span.End
	}
	return tokens, nil
}

// matchToken tries the definitions in declaration order at the cursor.
func (t *Tokenizer) matchToken(rs []rune, cursor int) (Token, bool) {
	for _, def := range t.defs {
		end, ok := def.re.MatchRunes(rs[cursor:])
		if !ok || end == 0 {
			continue
		}
		return Token{
			Tag:    def.tag,
			Lexeme: string(rs[cursor : cursor+end]),
			Span:   regex.Span{Start: cursor, End: cursor + end},
		}, true
	}
	return Token{}, false
}
