// Command editortest runs the built-in self checks of the editor
// infrastructure packages: regex pipeline, tokenizer, rope and OT.
//
// Usage:
//
//	editortest [-v] test
//
// The test subcommand runs every check and exits non-zero if any fails.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/DasIch/editor/ot"
	"github.com/DasIch/editor/regex"
	"github.com/DasIch/editor/regex/syntax"
	"github.com/DasIch/editor/rope"
	"github.com/DasIch/editor/tokenizer"
)

func main() {
	log := logrus.New()
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: editortest [-v] test\n\n")
		fmt.Fprintf(flag.CommandLine.Output(), "commands:\n  test\truns the internal test suite\n\nflags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if flag.NArg() != 1 || flag.Arg(0) != "test" {
		flag.Usage()
		os.Exit(2)
	}

	checks := []struct {
		name string
		run  func() error
	}{
		{"parse", checkParse},
		{"parse-errors", checkParseErrors},
		{"match", checkMatch},
		{"agreement", checkAgreement},
		{"tokenizer", checkTokenizer},
		{"rope", checkRope},
		{"ot", checkOT},
	}

	failed := 0
	for _, check := range checks {
		if err := check.run(); err != nil {
			failed++
			log.WithField("check", check.name).WithError(err).Error("check failed")
			continue
		}
		log.WithField("check", check.name).Info("check passed")
	}
	if failed > 0 {
		log.WithField("failed", failed).Error("self test failed")
		os.Exit(1)
	}
	log.WithField("checks", len(checks)).Info("self test passed")
}

func checkParse() error {
	re, err := syntax.Parse("a|b*")
	if err != nil {
		return errors.Wrap(err, "a|b*")
	}
	want := syntax.Union{
		Left:  syntax.Character{R: 'a'},
		Right: syntax.Repetition{Inner: syntax.Character{R: 'b'}},
	}
	if !re.Equal(want) {
		return errors.Errorf("a|b* parsed to %#v", re)
	}
	return nil
}

func checkParseErrors() error {
	cases := []struct {
		pattern    string
		reason     string
		annotation string
	}{
		{"+", "+ is not preceded by a repeatable expression", "+\n^"},
		{"(a", "unexpected end of string, expected ) corresponding to (", "(a\n^-^"},
	}
	for _, c := range cases {
		_, err := syntax.Parse(c.pattern)
		var perr *syntax.ParserError
		if !errors.As(err, &perr) {
			return errors.Errorf("%s: expected parser error, got %v", c.pattern, err)
		}
		if perr.Reason != c.reason || perr.Annotation != c.annotation {
			return errors.Errorf("%s: got (%q, %q)", c.pattern, perr.Reason, perr.Annotation)
		}
	}
	return nil
}

func checkMatch() error {
	re, err := regex.Compile("(ab)+")
	if err != nil {
		return errors.Wrap(err, "(ab)+")
	}
	if end, ok := re.Match("ababab"); !ok || end != 6 {
		return errors.Errorf("match ababab: got (%d, %t)", end, ok)
	}
	finds := re.FindAll("abcab", -1)
	if len(finds) != 2 ||
		finds[0].Span != (regex.Span{Start: 0, End: 2}) ||
		finds[1].Span != (regex.Span{Start: 3, End: 5}) {
		return errors.Errorf("find all abcab: got %v", finds)
	}
	if result, n := re.Subn("dababd", "c"); result != "dcd" || n != 1 {
		return errors.Errorf("subn dababd: got (%q, %d)", result, n)
	}
	return nil
}

func checkAgreement() error {
	patterns := []string{"", "a", "ab", "a|b", "a*", "(ab)+", "[a-c]x", "[^a]", ".a"}
	inputs := []string{"", "a", "b", "ab", "abab", "ax", "bx", "cx", "xa", "ba"}
	for _, pattern := range patterns {
		re, err := regex.Compile(pattern)
		if err != nil {
			return errors.Wrap(err, pattern)
		}
		for _, input := range inputs {
			ne, nok := re.NFA().Match(input)
			de, dok := re.DFA().Match(input)
			te, tok := re.Table().Match(input)
			if ne != de || ne != te || nok != dok || nok != tok {
				return errors.Errorf(
					"%q on %q: nfa (%d, %t) dfa (%d, %t) table (%d, %t)",
					pattern, input, ne, nok, de, dok, te, tok,
				)
			}
		}
	}
	return nil
}

func checkTokenizer() error {
	t, err := tokenizer.New([]tokenizer.Definition{
		{Pattern: "ab+", Tag: "AB"},
		{Pattern: "a+", Tag: "A"},
		{Pattern: "b+", Tag: "B"},
	})
	if err != nil {
		return errors.Wrap(err, "tokenizer")
	}
	tokens, err := t.Tokenize("ababaab")
	if err != nil {
		return errors.Wrap(err, "ababaab")
	}
	want := []tokenizer.Token{
		{Tag: "AB", Lexeme: "abab", Span: regex.Span{Start: 0, End: 4}},
		{Tag: "A", Lexeme: "aa", Span: regex.Span{Start: 4, End: 6}},
		{Tag: "B", Lexeme: "b", Span: regex.Span{Start: 6, End: 7}},
	}
	if len(tokens) != len(want) {
		return errors.Errorf("ababaab: got %v", tokens)
	}
	for i := range want {
		if !tokens[i].Equal(want[i]) {
			return errors.Errorf("ababaab: got %v", tokens)
		}
	}
	_, err = t.Tokenize("ababaabbcaa")
	var terr *tokenizer.Error
	if !errors.As(err, &terr) || terr.Position != 8 {
		return errors.Errorf("ababaabbcaa: got %v", err)
	}
	return nil
}

func checkRope() error {
	if c := rope.New("ab").Concat(rope.New("cd")).At(2); c != 'c' {
		return errors.Errorf("concat index: got %q", c)
	}
	if n := rope.New("ab").Repeat(3).Length(); n != 6 {
		return errors.Errorf("repeat length: got %d", n)
	}
	inserted := rope.New("hello").Inserted(2, rope.New("XX"))
	if !inserted.Equal(rope.New("heXXllo")) {
		return errors.Errorf("inserted: got %q", inserted.String())
	}
	deleted, err := inserted.Deleted(2, rope.New("XX"))
	if err != nil {
		return errors.Wrap(err, "deleted")
	}
	if !deleted.Equal(rope.New("hello")) {
		return errors.Errorf("deleted: got %q", deleted.String())
	}
	return nil
}

func checkOT() error {
	doc := rope.New("shared document")
	i1 := ot.Insert{Start: 0, Text: "my "}
	i2 := ot.Insert{Start: 7, Text: "new "}

	left, err := applyAll(doc, i1, i2.Include(i1)...)
	if err != nil {
		return errors.Wrap(err, "i1 then i2'")
	}
	right, err := applyAll(doc, i2, i1.Include(i2)...)
	if err != nil {
		return errors.Wrap(err, "i2 then i1'")
	}
	if !left.Equal(right) {
		return errors.Errorf("TP1 violated: %q vs %q", left.String(), right.String())
	}

	op := ot.Delete{Start: 7, Text: "document"}
	applied, err := op.Apply(doc)
	if err != nil {
		return errors.Wrap(err, "apply")
	}
	reverted, err := op.Undo().Apply(applied)
	if err != nil {
		return errors.Wrap(err, "undo")
	}
	if !reverted.Equal(doc) {
		return errors.Errorf("undo law violated: %q", reverted.String())
	}
	return nil
}

func applyAll(doc rope.Rope, first ot.Operation, rest ...ot.Operation) (rope.Rope, error) {
	doc, err := first.Apply(doc)
	if err != nil {
		return rope.Rope{}, err
	}
	for _, op := range rest {
		doc, err = op.Apply(doc)
		if err != nil {
			return rope.Rope{}, err
		}
	}
	return doc, nil
}
