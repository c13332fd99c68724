// Package nfa implements an epsilon-NFA built from the regex AST by
// Thompson construction.
//
// States live in an arena and are addressed by integer ids; edges carry
// inclusive rune ranges and epsilon edges are ordered id lists. This keeps
// the graph free of ownership cycles even though repetition introduces
// back-edges, and makes closure sets cheap to intern during subset
// construction.
package nfa

import (
	"sort"

	"github.com/DasIch/editor/internal/sparse"
)

// StateID uniquely identifies an NFA state within its arena.
type StateID uint32

// Transition is an edge consuming one code point in [Lo, Hi].
type Transition struct {
	Lo, Hi rune
	Next   StateID
}

type state struct {
	transitions []Transition
	epsilon     []StateID
	match       bool
}

// NFA is an epsilon-NFA with one start and one final state. It is immutable
// after construction and safe for concurrent matching.
type NFA struct {
	states []state
	start  StateID
	final  StateID
}

// Start returns the start state id.
func (n *NFA) Start() StateID {
	return n.start
}

// Final returns the final state id.
func (n *NFA) Final() StateID {
	return n.final
}

// NumStates returns the number of states in the arena.
func (n *NFA) NumStates() int {
	return len(n.states)
}

// Transitions returns the consuming edges out of id. The slice is owned by
// the NFA and must not be modified.
func (n *NFA) Transitions(id StateID) []Transition {
	return n.states[id].transitions
}

// IsFinal reports whether id is a final state.
func (n *NFA) IsFinal(id StateID) bool {
	return n.states[id].match
}

// Closure returns the epsilon-closure of ids as a sorted slice: the
// smallest superset of ids closed under following epsilon edges.
func (n *NFA) Closure(ids []StateID) []StateID {
	set := sparse.New(uint32(len(n.states)))
	for _, id := range ids {
		n.closureInto(set, id)
	}
	out := make([]StateID, 0, set.Len())
	for _, v := range set.Values() {
		out = append(out, StateID(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// closureInto inserts id and everything epsilon-reachable from it.
func (n *NFA) closureInto(set *sparse.Set, id StateID) {
	stack := []StateID{id}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if set.Contains(uint32(s)) {
			continue
		}
		set.Insert(uint32(s))
		for _, e := range n.states[s].epsilon {
			if !set.Contains(uint32(e)) {
				stack = append(stack, e)
			}
		}
	}
}

// Match returns the length of the longest prefix of s accepted by the NFA.
// ok is false if no prefix, not even the empty one, is accepted.
func (n *NFA) Match(s string) (end int, ok bool) {
	return n.MatchRunes([]rune(s))
}

// MatchRunes is Match over a code-point slice. Offsets count code points.
//
// The simulation keeps the active set epsilon-closed after every step and
// records the last offset at which it contained the final state.
func (n *NFA) MatchRunes(rs []rune) (end int, ok bool) {
	cur := sparse.New(uint32(len(n.states)))
	next := sparse.New(uint32(len(n.states)))
	n.closureInto(cur, n.start)

	last := -1
	if n.anyFinal(cur) {
		last = 0
	}
	for i, r := range rs {
		next.Clear()
		for _, v := range cur.Values() {
			for _, t := range n.states[v].transitions {
				if t.Lo <= r && r <= t.Hi {
					n.closureInto(next, t.Next)
				}
			}
		}
		cur, next = next, cur
		if cur.Len() == 0 {
			break
		}
		if n.anyFinal(cur) {
			last = i + 1
		}
	}
	if last < 0 {
		return 0, false
	}
	return last, true
}

func (n *NFA) anyFinal(set *sparse.Set) bool {
	for _, v := range set.Values() {
		if n.states[v].match {
			return true
		}
	}
	return false
}
