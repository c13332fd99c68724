package syntax

// Regex is a node of the abstract syntax tree. Nodes are immutable values;
// equality is structural.
type Regex interface {
	// Equal reports whether other is structurally equal to this node.
	Equal(other Regex) bool

	isRegex()
}

// ClassItem is a member of a character class body: a single Character or an
// inclusive Range.
type ClassItem interface {
	Regex
	isClassItem()
}

// Epsilon matches the empty string.
type Epsilon struct{}

// Any matches any one code point of its alphabet.
type Any struct {
	Alphabet Alphabet
}

// Character matches exactly one code point.
type Character struct {
	R rune
}

// Concatenation matches Left followed by Right.
type Concatenation struct {
	Left, Right Regex
}

// Union matches Left or Right.
type Union struct {
	Left, Right Regex
}

// Repetition matches zero or more occurrences of Inner.
type Repetition struct {
	Inner Regex
}

// Group is a structural grouping with no capture semantics.
type Group struct {
	Inner Regex
}

// Either matches any one code point covered by its items.
type Either struct {
	Items []ClassItem
}

// Neither matches any code point of its alphabet not covered by its items.
type Neither struct {
	Items    []ClassItem
	Alphabet Alphabet
}

// Range matches any code point x of its alphabet with Lo <= x <= Hi. It
// appears only inside class bodies.
type Range struct {
	Lo, Hi   rune
	Alphabet Alphabet
}

func (Epsilon) isRegex()       {}
func (Any) isRegex()           {}
func (Character) isRegex()     {}
func (Concatenation) isRegex() {}
func (Union) isRegex()         {}
func (Repetition) isRegex()    {}
func (Group) isRegex()         {}
func (Either) isRegex()        {}
func (Neither) isRegex()       {}
func (Range) isRegex()         {}

func (Character) isClassItem() {}
func (Range) isClassItem()     {}

// NewConcatenation builds a concatenation, collapsing an Epsilon operand to
// the other operand.
func NewConcatenation(left, right Regex) Regex {
	if _, ok := left.(Epsilon); ok {
		return right
	}
	if _, ok := right.(Epsilon); ok {
		return left
	}
	return Concatenation{Left: left, Right: right}
}

// NewUnion builds a union, collapsing an Epsilon operand to the other
// operand.
func NewUnion(left, right Regex) Regex {
	if _, ok := left.(Epsilon); ok {
		return right
	}
	if _, ok := right.(Epsilon); ok {
		return left
	}
	return Union{Left: left, Right: right}
}

// NewCharacters builds the concatenation of the code points of s. An empty
// string collapses to Epsilon.
func NewCharacters(s string) Regex {
	var result Regex = Epsilon{}
	for _, r := range s {
		result = NewConcatenation(result, Character{R: r})
	}
	return result
}

// Equal implementations. A node is only equal to a node of the same variant.

func (Epsilon) Equal(other Regex) bool {
	_, ok := other.(Epsilon)
	return ok
}

func (a Any) Equal(other Regex) bool {
	o, ok := other.(Any)
	return ok && a.Alphabet.Equal(o.Alphabet)
}

func (c Character) Equal(other Regex) bool {
	o, ok := other.(Character)
	return ok && c.R == o.R
}

func (c Concatenation) Equal(other Regex) bool {
	o, ok := other.(Concatenation)
	return ok && c.Left.Equal(o.Left) && c.Right.Equal(o.Right)
}

func (u Union) Equal(other Regex) bool {
	o, ok := other.(Union)
	return ok && u.Left.Equal(o.Left) && u.Right.Equal(o.Right)
}

func (r Repetition) Equal(other Regex) bool {
	o, ok := other.(Repetition)
	return ok && r.Inner.Equal(o.Inner)
}

func (g Group) Equal(other Regex) bool {
	o, ok := other.(Group)
	return ok && g.Inner.Equal(o.Inner)
}

func (e Either) Equal(other Regex) bool {
	o, ok := other.(Either)
	return ok && itemsEqual(e.Items, o.Items)
}

func (n Neither) Equal(other Regex) bool {
	o, ok := other.(Neither)
	return ok && itemsEqual(n.Items, o.Items) && n.Alphabet.Equal(o.Alphabet)
}

func (r Range) Equal(other Regex) bool {
	o, ok := other.(Range)
	return ok && r.Lo == o.Lo && r.Hi == o.Hi && r.Alphabet.Equal(o.Alphabet)
}

// itemsEqual compares class bodies as sets: the parser deduplicates on
// insert, so equal bodies have equal lengths regardless of order.
func itemsEqual(a, b []ClassItem) bool {
	if len(a) != len(b) {
		return false
	}
	for _, item := range a {
		found := false
		for _, other := range b {
			if item.Equal(other) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
