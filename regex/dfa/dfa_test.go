package dfa

import (
	"testing"

	"github.com/DasIch/editor/regex/nfa"
	"github.com/DasIch/editor/regex/syntax"
)

func compileDFA(t *testing.T, pattern string) *DFA {
	t.Helper()
	re, err := syntax.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q) = %v", pattern, err)
	}
	return FromNFA(nfa.Compile(re))
}

func TestFromNFA_Match(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		end     int
		ok      bool
	}{
		{"a", "a", 1, true},
		{"a", "b", 0, false},
		{"a", "", 0, false},
		{"", "", 0, true},
		{"", "x", 0, true},
		{"a*", "aab", 2, true},
		{"a*", "b", 0, true},
		{"a|ab", "ab", 2, true},
		{"ab|a", "ax", 1, true},
		{"(a|b)*abb", "ababb", 5, true},
		{"(a|b)*abb", "abab", 0, false}, // no prefix ends in abb
		{"[^a]", "b", 1, true},
		{"[^a]", "a", 0, false},
		{".", "ß", 1, true},
		{"(ab)+", "ababx", 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			d := compileDFA(t, tt.pattern)
			end, ok := d.Match(tt.input)
			if end != tt.end || ok != tt.ok {
				t.Errorf("Match(%q) = (%d, %t), want (%d, %t)", tt.input, end, ok, tt.end, tt.ok)
			}
		})
	}
}

func TestFromNFA_Structure(t *testing.T) {
	d := compileDFA(t, "ab")
	if d.NumStates() != 3 {
		t.Errorf("NumStates() = %d, want 3", d.NumStates())
	}
	if d.IsFinal(d.Start()) {
		t.Error("start state final for ab")
	}
	finals := 0
	for id := 0; id < d.NumStates(); id++ {
		if d.IsFinal(id) {
			finals++
		}
	}
	if finals != 1 {
		t.Errorf("%d final states, want 1", finals)
	}
}

func TestFromNFA_ClosureInterning(t *testing.T) {
	// Both union branches read the same character, so subset construction
	// must merge them into one successor state.
	d := compileDFA(t, "ax|ay")
	if d.NumStates() != 4 {
		t.Errorf("NumStates() = %d, want 4", d.NumStates())
	}
}

func TestFromNFA_RangeEdges(t *testing.T) {
	d := compileDFA(t, "[a-c]")
	trans := d.Transitions(d.Start())
	if len(trans) != 1 || trans[0].Lo != 'a' || trans[0].Hi != 'c' {
		t.Errorf("Transitions(start) = %v, want one [a-c] edge", trans)
	}
}

func TestFromNFA_SplitsOverlappingRanges(t *testing.T) {
	// [a-c] and [b-d] overlap; determinization has to cut the alphabet at
	// the boundaries while keeping the language intact.
	d := compileDFA(t, "[a-c]x|[b-d]y")
	for _, tt := range []struct {
		input string
		end   int
		ok    bool
	}{
		{"ax", 2, true},
		{"bx", 2, true},
		{"by", 2, true},
		{"dy", 2, true},
		{"ay", 0, false},
		{"dx", 0, false},
	} {
		end, ok := d.Match(tt.input)
		if end != tt.end || ok != tt.ok {
			t.Errorf("Match(%q) = (%d, %t), want (%d, %t)", tt.input, end, ok, tt.end, tt.ok)
		}
	}
}

func TestNewTable_Match(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		end     int
		ok      bool
	}{
		{"a", "a", 1, true},
		{"a", "b", 0, false},
		{"", "x", 0, true},
		{"a*", "aab", 2, true},
		{"ab|a", "ax", 1, true},
		{"(a|b)*abb", "ababb", 5, true},
		{"[^a]", "a", 0, false},
		{"(ab)+", "ababx", 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			table := NewTable(compileDFA(t, tt.pattern))
			end, ok := table.Match(tt.input)
			if end != tt.end || ok != tt.ok {
				t.Errorf("Match(%q) = (%d, %t), want (%d, %t)", tt.input, end, ok, tt.end, tt.ok)
			}
		})
	}
}

func TestNewTable_Renumbering(t *testing.T) {
	d := compileDFA(t, "ab|cd")
	table := NewTable(d)
	if table.NumStates() != d.NumStates() {
		t.Errorf("NumStates() = %d, want %d", table.NumStates(), d.NumStates())
	}
	// Index 0 is the start state and every edge stays within the table.
	seen := map[int]bool{0: true}
	for i := 0; i < table.NumStates(); i++ {
		for _, e := range table.Row(i) {
			if e.Next < 0 || e.Next >= table.NumStates() {
				t.Fatalf("row %d edge to %d outside [0, %d)", i, e.Next, table.NumStates())
			}
			seen[e.Next] = true
		}
	}
	if len(seen) != table.NumStates() {
		t.Errorf("%d reachable indices, want %d", len(seen), table.NumStates())
	}
	finals := table.Finals()
	if len(finals) == 0 {
		t.Fatal("no final indices")
	}
	for _, f := range finals {
		if !table.IsFinal(f) {
			t.Errorf("Finals() lists %d but IsFinal(%d) = false", f, f)
		}
	}
}
