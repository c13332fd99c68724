package syntax

import "fmt"

// Parser parses surface syntax in a given language into an AST. The
// alphabet is what Any, Neither and Range resolve against.
type Parser struct {
	Language Language
	Alphabet Alphabet
}

// NewParser returns a parser for the given language and alphabet.
func NewParser(language Language, alphabet Alphabet) *Parser {
	return &Parser{Language: language, Alphabet: alphabet}
}

// Parse parses pattern with the default language and alphabet.
func Parse(pattern string) (Regex, error) {
	return NewParser(DefaultLanguage(), DefaultAlphabet()).Parse(pattern)
}

// Parse parses pattern into an AST. The first syntax error aborts the parse
// and is returned as a *ParserError.
func (p *Parser) Parse(pattern string) (Regex, error) {
	in := NewInput(pattern)
	result, err := p.parseExpression(in)
	if err != nil {
		return nil, err
	}
	if !in.IsConsumed() {
		c, _ := in.Next()
		if p.Language.IsEnd(c) {
			return nil, &ParserError{
				Reason:     fmt.Sprintf("found unmatched %c", c),
				Annotation: in.Annotate(in.Position()),
			}
		}
		return nil, &ParserError{
			Reason:     "unexpected unconsumed input, please report this as a bug",
			Annotation: in.Annotate(in.Position()),
		}
	}
	return result, nil
}

// parseExpression parses until the input is consumed or an end character of
// an enclosing construct is seen. result stays nil until the first atom so
// that repetition markers can detect a missing operand.
func (p *Parser) parseExpression(in *Input) (Regex, error) {
	var result Regex
	for {
		c, ok := in.Lookahead(1)
		if !ok {
			break
		}
		switch {
		case c == p.Language.Escape:
			in.Consume(1)
			r, err := in.NextOr("unexpected end of string, following escape character")
			if err != nil {
				return nil, err
			}
			result = concatOr(result, Character{R: r})

		case p.Language.IsRepetition(c):
			in.Consume(1)
			if result == nil {
				return nil, &ParserError{
					Reason:     fmt.Sprintf("%c is not preceded by a repeatable expression", c),
					Annotation: in.Annotate(in.Position()),
				}
			}
			if c == p.Language.OneOrMore {
				result = NewConcatenation(result, result)
			}
			if cc, isConcat := result.(Concatenation); isConcat {
				result = NewConcatenation(cc.Left, Repetition{Inner: cc.Right})
			} else {
				result = Repetition{Inner: result}
			}

		case c == p.Language.Union:
			in.Consume(1)
			rest, err := p.parseExpression(in)
			if err != nil {
				return nil, err
			}
			result = NewUnion(finish(result), rest)

		case c == p.Language.GroupBegin:
			group, err := p.parseGroup(in)
			if err != nil {
				return nil, err
			}
			result = concatOr(result, group)

		case c == p.Language.EitherBegin:
			class, err := p.parseEitherOrNeither(in)
			if err != nil {
				return nil, err
			}
			result = concatOr(result, class)

		case c == p.Language.Any:
			in.Consume(1)
			result = concatOr(result, Any{Alphabet: p.Alphabet})

		case p.Language.IsEnd(c):
			return finish(result), nil

		default:
			in.Consume(1)
			result = concatOr(result, Character{R: c})
		}
	}
	return finish(result), nil
}

// parseGroup parses a balanced group. The opening marker has been seen via
// lookahead but not consumed.
func (p *Parser) parseGroup(in *Input) (Regex, error) {
	in.Consume(1)
	start := in.Position()
	inner, err := p.parseExpression(in)
	if err != nil {
		return nil, err
	}
	if err := p.expectClosing(in, start, p.Language.GroupBegin, p.Language.GroupEnd); err != nil {
		return nil, err
	}
	return Group{Inner: inner}, nil
}

// parseEitherOrNeither parses a character class, with an optional leading
// neither indicator negating it.
func (p *Parser) parseEitherOrNeither(in *Input) (Regex, error) {
	in.Consume(1)
	start := in.Position()
	negated := false
	if c, ok := in.Lookahead(1); ok && c == p.Language.NeitherIndicator {
		in.Consume(1)
		negated = true
	}
	items, err := p.parseClassBody(in)
	if err != nil {
		return nil, err
	}
	if err := p.expectClosing(in, start, p.Language.EitherBegin, p.Language.EitherEnd); err != nil {
		return nil, err
	}
	if negated {
		return Neither{Items: items, Alphabet: p.Alphabet}, nil
	}
	return Either{Items: items}, nil
}

// parseClassBody accumulates characters and ranges until the closing marker
// or end of input; the caller checks the closing marker.
func (p *Parser) parseClassBody(in *Input) ([]ClassItem, error) {
	var items []ClassItem
	for {
		c, ok := in.Lookahead(1)
		if !ok || c == p.Language.EitherEnd {
			break
		}
		in.Consume(1)
		switch c {
		case p.Language.Escape:
			r, err := in.NextOr("unexpected end of string, following escape character")
			if err != nil {
				return nil, err
			}
			items = appendItem(items, Character{R: r})

		case p.Language.Range:
			last, rest, ok := popCharacter(items)
			if !ok {
				return nil, &ParserError{
					Reason:     "range is missing start",
					Annotation: in.Annotate(in.Position() - 1),
				}
			}
			end, err := p.parseCharacter(in)
			if err != nil {
				return nil, err
			}
			items = appendItem(rest, Range{Lo: last.R, Hi: end.R, Alphabet: p.Alphabet})

		default:
			items = appendItem(items, Character{R: c})
		}
	}
	return items, nil
}

// parseCharacter parses the end of a range: a literal code point, possibly
// escaped. An unescaped special marker is rejected.
func (p *Parser) parseCharacter(in *Input) (Character, error) {
	r, err := in.NextOr("unexpected end of string")
	if err != nil {
		return Character{}, err
	}
	if r == p.Language.Escape {
		r, err = in.NextOr("unexpected end of string")
		if err != nil {
			return Character{}, err
		}
	} else if p.Language.IsSpecial(r) {
		return Character{}, &ParserError{
			Reason:     fmt.Sprintf("expected character, found instruction: %c", r),
			Annotation: in.Annotate(in.Position()),
		}
	}
	return Character{R: r}, nil
}

// expectClosing consumes the end marker corresponding to the begin marker
// consumed at position start, reporting a ranged annotation from start on
// failure.
func (p *Parser) expectClosing(in *Input, start int, begin, end rune) error {
	c, ok := in.Next()
	if !ok {
		return &ParserError{
			Reason: fmt.Sprintf(
				"unexpected end of string, expected %c corresponding to %c",
				end, begin,
			),
			Annotation: in.AnnotateRange(start, in.Position()+1),
		}
	}
	if c != end {
		return &ParserError{
			Reason: fmt.Sprintf(
				"expected %c corresponding to %c, got %c",
				end, begin, c,
			),
			Annotation: in.AnnotateRange(start, in.Position()),
		}
	}
	return nil
}

// concatOr concatenates onto result, or starts it.
func concatOr(result, re Regex) Regex {
	if result == nil {
		return re
	}
	return NewConcatenation(result, re)
}

// finish turns an empty expression into Epsilon.
func finish(result Regex) Regex {
	if result == nil {
		return Epsilon{}
	}
	return result
}

// popCharacter removes the most recently accumulated item if it is a
// Character; a range cannot start from a range.
func popCharacter(items []ClassItem) (Character, []ClassItem, bool) {
	if len(items) == 0 {
		return Character{}, items, false
	}
	last, ok := items[len(items)-1].(Character)
	if !ok {
		return Character{}, items, false
	}
	return last, items[:len(items)-1], true
}

// appendItem adds item unless an equal item is already present, matching
// the set semantics of class bodies.
func appendItem(items []ClassItem, item ClassItem) []ClassItem {
	for _, existing := range items {
		if existing.Equal(item) {
			return items
		}
	}
	return append(items, item)
}
