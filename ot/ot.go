// Package ot implements the operational-transformation primitives an
// editor needs for concurrent insert and delete operations: inclusion
// transformation, undo, and application to documents.
//
// An operation records the position its string was inserted at or deleted
// from in the document it originated against. Including a concurrent
// operation rewrites those positions so the operation can be applied after
// it. Positions are closed on the left and open on the right, and count
// code points.
package ot

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DasIch/editor/rope"
)

// ErrOutOfRange reports an insertion position outside the document.
var ErrOutOfRange = errors.New("ot: position out of range")

// Operation is an insert or a delete.
type Operation interface {
	// Undo returns the operation that reverts this one.
	Undo() Operation

	// Include transforms this operation against a concurrent other that
	// has been applied to the same base document. It returns the
	// replacement operations: usually one, two for a delete split by a
	// concurrent insert into its range.
	Include(other Operation) []Operation

	// Apply performs the operation on doc, returning the new document.
	Apply(doc rope.Rope) (rope.Rope, error)

	isOperation()
}

// Insert inserts Text at Start.
type Insert struct {
	Start int
	Text  string
}

// Delete removes Text at Start. The document is expected to contain Text
// there; Apply fails otherwise.
type Delete struct {
	Start int
	Text  string
}

func (Insert) isOperation() {}
func (Delete) isOperation() {}

// Len returns the operation's string length in code points.
func (i Insert) Len() int {
	return len([]rune(i.Text))
}

// End returns Start + Len.
func (i Insert) End() int {
	return i.Start + i.Len()
}

// Len returns the operation's string length in code points.
func (d Delete) Len() int {
	return len([]rune(d.Text))
}

// End returns Start + Len.
func (d Delete) End() int {
	return d.Start + d.Len()
}

// Undo returns the delete reverting this insert.
func (i Insert) Undo() Operation {
	return Delete{Start: i.Start, Text: i.Text}
}

// Undo returns the insert reverting this delete.
func (d Delete) Undo() Operation {
	return Insert{Start: d.Start, Text: d.Text}
}

// Include transforms the insert against a concurrent operation.
func (i Insert) Include(other Operation) []Operation {
	switch o := other.(type) {
	case Insert:
		if i.Start >= o.Start {
			return []Operation{Insert{Start: i.Start + o.Len(), Text: i.Text}}
		}
		return []Operation{i}
	case Delete:
		switch {
		case i.Start > o.End():
			return []Operation{Insert{Start: i.Start - o.Len(), Text: i.Text}}
		case i.Start > o.Start:
			return []Operation{Insert{Start: o.Start, Text: i.Text}}
		default:
			return []Operation{i}
		}
	}
	panic(fmt.Sprintf("ot: include against %T", other))
}

// Include transforms the delete against a concurrent operation.
func (d Delete) Include(other Operation) []Operation {
	switch o := other.(type) {
	case Insert:
		switch {
		case d.End() <= o.Start:
			return []Operation{d}
		case o.Start <= d.Start:
			return []Operation{Delete{Start: d.Start + o.Len(), Text: d.Text}}
		default:
			// The insert lands inside the deleted range: the delete
			// splits around the inserted string.
			rs := []rune(d.Text)
			k := o.Start - d.Start
			return []Operation{
				Delete{Start: d.Start, Text: string(rs[:k])},
				Delete{Start: o.Start + o.Len(), Text: string(rs[k:])},
			}
		}
	case Delete:
		rs := []rune(d.Text)
		switch {
		case o.Start >= d.End():
			return []Operation{d}
		case d.Start >= o.End():
			return []Operation{Delete{Start: d.Start - o.Len(), Text: d.Text}}
		case o.Start <= d.Start && d.End() <= o.End():
			// The other delete covers this one entirely.
			return []Operation{Delete{Start: d.Start, Text: ""}}
		case o.Start <= d.Start:
			// The other delete covers this one's head.
			return []Operation{Delete{
				Start: o.Start,
				Text:  string(rs[len(rs)-(d.End()-o.End()):]),
			}}
		case o.End() >= d.End():
			// The other delete covers this one's tail.
			return []Operation{Delete{
				Start: d.Start,
				Text:  string(rs[o.Start-d.Start:]),
			}}
		default:
			// The other delete lies strictly inside this one.
			k := o.Start - d.Start
			return []Operation{Delete{
				Start: d.Start,
				Text:  string(rs[:k]) + string(rs[k+o.Len():]),
			}}
		}
	}
	panic(fmt.Sprintf("ot: include against %T", other))
}

// Apply inserts the operation's string into doc.
func (i Insert) Apply(doc rope.Rope) (rope.Rope, error) {
	if i.Start < 0 || i.Start > doc.Length() {
		return rope.Rope{}, fmt.Errorf("%w: %d not in [0, %d]", ErrOutOfRange, i.Start, doc.Length())
	}
	return doc.Inserted(i.Start, rope.New(i.Text)), nil
}

// Apply removes the operation's string from doc, surfacing the rope's
// precondition errors.
func (d Delete) Apply(doc rope.Rope) (rope.Rope, error) {
	return doc.Deleted(d.Start, rope.New(d.Text))
}

// wire is the serialized form: {"kind": "insert"|"delete", "start": int,
// "string": text}.
type wire struct {
	Kind   string `json:"kind"`
	Start  int    `json:"start"`
	String string `json:"string"`
}

// MarshalJSON encodes the insert in wire form.
func (i Insert) MarshalJSON() ([]byte, error) {
	return json.Marshal(wire{Kind: "insert", Start: i.Start, String: i.Text})
}

// MarshalJSON encodes the delete in wire form.
func (d Delete) MarshalJSON() ([]byte, error) {
	return json.Marshal(wire{Kind: "delete", Start: d.Start, String: d.Text})
}

// Decode parses an operation from wire form.
func Decode(data []byte) (Operation, error) {
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	switch w.Kind {
	case "insert":
		return Insert{Start: w.Start, Text: w.String}, nil
	case "delete":
		return Delete{Start: w.Start, Text: w.String}, nil
	default:
		return nil, fmt.Errorf("ot: unknown operation kind %q", w.Kind)
	}
}
