package dfa

import (
	"encoding/binary"
	"sort"

	"github.com/DasIch/editor/regex/nfa"
)

// FromNFA runs the subset construction. DFA states are epsilon-closures of
// NFA state sets, interned by their sorted id tuple so each distinct
// closure appears exactly once. A DFA state is final iff its closure
// contains the NFA's final state.
//
// Edges carry rune ranges; the closure's outgoing NFA edges are cut into
// elementary segments at their boundary points, so every segment is covered
// all-or-nothing by each edge.
func FromNFA(n *nfa.NFA) *DFA {
	d := &DFA{}
	intern := make(map[string]int)
	var closures [][]nfa.StateID

	addState := func(closure []nfa.StateID) int {
		key := closureKey(closure)
		if id, ok := intern[key]; ok {
			return id
		}
		id := len(d.states)
		intern[key] = id
		d.states = append(d.states, state{match: anyFinal(n, closure)})
		closures = append(closures, closure)
		return id
	}

	d.start = addState(n.Closure([]nfa.StateID{n.Start()}))

	for idx := 0; idx < len(d.states); idx++ {
		closure := closures[idx]
		var edges []nfa.Transition
		for _, id := range closure {
			edges = append(edges, n.Transitions(id)...)
		}
		if len(edges) == 0 {
			continue
		}

		cuts := make([]rune, 0, len(edges)*2)
		for _, e := range edges {
			cuts = append(cuts, e.Lo, e.Hi+1)
		}
		sort.Slice(cuts, func(i, j int) bool { return cuts[i] < cuts[j] })
		cuts = dedupRunes(cuts)

		var transitions []Transition
		for i := 0; i+1 < len(cuts); i++ {
			lo, hi := cuts[i], cuts[i+1]-1
			var targets []nfa.StateID
			for _, e := range edges {
				if e.Lo <= lo && hi <= e.Hi {
					targets = append(targets, e.Next)
				}
			}
			if len(targets) == 0 {
				continue
			}
			next := addState(n.Closure(targets))
			if m := len(transitions) - 1; m >= 0 &&
				transitions[m].Next == next && transitions[m].Hi+1 == lo {
				transitions[m].Hi = hi
				continue
			}
			transitions = append(transitions, Transition{Lo: lo, Hi: hi, Next: next})
		}
		d.states[idx].transitions = transitions
	}
	return d
}

func anyFinal(n *nfa.NFA, closure []nfa.StateID) bool {
	for _, id := range closure {
		if n.IsFinal(id) {
			return true
		}
	}
	return false
}

// closureKey encodes a sorted closure as a byte string usable as a map key.
func closureKey(closure []nfa.StateID) string {
	buf := make([]byte, 4*len(closure))
	for i, id := range closure {
		binary.LittleEndian.PutUint32(buf[4*i:], uint32(id))
	}
	return string(buf)
}

func dedupRunes(rs []rune) []rune {
	out := rs[:0]
	for i, r := range rs {
		if i == 0 || r != rs[i-1] {
			out = append(out, r)
		}
	}
	return out
}
