package dfa

// Table is the DFA flattened to a transition table: one row of range edges
// per state, indexed by integers assigned breadth-first from the start
// state, which is always index 0, plus the set of final indices.
//
// Every reachable DFA state has exactly one row.
type Table struct {
	rows  [][]Transition
	final []bool
}

// NewTable flattens d by breadth-first traversal from the start state,
// assigning indices in visit order and rewriting every state reference to
// its index.
func NewTable(d *DFA) *Table {
	t := &Table{
		rows:  make([][]Transition, 0, d.NumStates()),
		final: make([]bool, 0, d.NumStates()),
	}
	index := make(map[int]int, d.NumStates())

	visit := func(id int) int {
		if i, ok := index[id]; ok {
			return i
		}
		i := len(t.rows)
		index[id] = i
		t.rows = append(t.rows, nil)
		t.final = append(t.final, d.IsFinal(id))
		return i
	}

	queue := []int{d.Start()}
	visit(d.Start())
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		src := d.Transitions(id)
		row := make([]Transition, len(src))
		for i, e := range src {
			if _, seen := index[e.Next]; !seen {
				queue = append(queue, e.Next)
			}
			row[i] = Transition{Lo: e.Lo, Hi: e.Hi, Next: visit(e.Next)}
		}
		t.rows[index[id]] = row
	}
	return t
}

// NumStates returns the number of rows.
func (t *Table) NumStates() int {
	return len(t.rows)
}

// IsFinal reports whether row index is final.
func (t *Table) IsFinal(index int) bool {
	return t.final[index]
}

// Finals returns the sorted final indices.
func (t *Table) Finals() []int {
	var out []int
	for i, f := range t.final {
		if f {
			out = append(out, i)
		}
	}
	return out
}

// Row returns the edges of row index, sorted by Lo. The slice is owned by
// the table and must not be modified.
func (t *Table) Row(index int) []Transition {
	return t.rows[index]
}

// Match returns the length of the longest prefix of s accepted by the
// table. ok is false if no prefix, not even the empty one, is accepted.
func (t *Table) Match(s string) (end int, ok bool) {
	return t.MatchRunes([]rune(s))
}

// MatchRunes is Match over a code-point slice. Offsets count code points.
func (t *Table) MatchRunes(rs []rune) (end int, ok bool) {
	cur := 0
	last := -1
	if t.final[cur] {
		last = 0
	}
	for i, r := range rs {
		next, stepped := step(t.rows[cur], r)
		if !stepped {
			break
		}
		cur = next
		if t.final[cur] {
			last = i + 1
		}
	}
	if last < 0 {
		return 0, false
	}
	return last, true
}
