// Package cursor provides the immutable text position shared by the grammar
// parser, the combinators and the match engine, together with the two-case
// Result algebra the combinators return.
package cursor

import "fmt"

// Cursor is a position inside a text. Every move returns a new Cursor; the
// underlying rune slice is shared read-only between all cursors derived from
// the same New call.
type Cursor struct {
	text  []rune
	pos   int
	meter *Meter
}

// New creates a cursor at the start of text.
func New(text string) Cursor {
	return Cursor{text: []rune(text)}
}

// At creates a cursor at rune offset pos of text.
func At(text string, pos int) Cursor {
	return New(text).Advance(pos)
}

// WithMeter returns a copy of c that reports work to m. A nil meter means
// the cursor is unmetered.
func (c Cursor) WithMeter(m *Meter) Cursor {
	c.meter = m
	return c
}

// Pos returns the rune offset of the cursor.
func (c Cursor) Pos() int { return c.pos }

// Len returns the total text length in runes.
func (c Cursor) Len() int { return len(c.text) }

// Rest returns the number of runes left after the cursor.
func (c Cursor) Rest() int { return len(c.text) - c.pos }

// HasNext reports whether at least one rune remains.
func (c Cursor) HasNext() bool { return c.pos < len(c.text) }

// IsEmpty reports whether the cursor is at the end of the text.
func (c Cursor) IsEmpty() bool { return c.pos >= len(c.text) }

// Head returns the rune under the cursor. It panics when the cursor is empty.
func (c Cursor) Head() rune {
	if c.IsEmpty() {
		panic("cursor: Head called on an empty cursor")
	}
	return c.text[c.pos]
}

// TryHead returns the rune under the cursor, if any.
func (c Cursor) TryHead() (rune, bool) {
	if c.IsEmpty() {
		return 0, false
	}
	return c.text[c.pos], true
}

// PeekNext returns the rune after the head, if any.
func (c Cursor) PeekNext() (rune, bool) {
	if c.pos+1 >= len(c.text) {
		return 0, false
	}
	return c.text[c.pos+1], true
}

// Advance moves forward n runes. n must not exceed Rest.
func (c Cursor) Advance(n int) Cursor {
	if n < 0 || n > c.Rest() {
		panic(fmt.Sprintf("cursor: cannot advance %d runes with %d remaining", n, c.Rest()))
	}
	c.pos += n
	return c
}

// Backtrack moves back n runes. n must not exceed Pos.
func (c Cursor) Backtrack(n int) Cursor {
	if n < 0 || n > c.pos {
		panic(fmt.Sprintf("cursor: cannot backtrack %d runes from offset %d", n, c.pos))
	}
	c.pos -= n
	return c
}

// ContainsAhead reports whether r occurs at or after the cursor.
func (c Cursor) ContainsAhead(r rune) bool {
	for _, x := range c.text[c.pos:] {
		if x == r {
			return true
		}
	}
	return false
}

// Since returns the text between rune offset from and the cursor.
func (c Cursor) Since(from int) string {
	return string(c.text[from:c.pos])
}

// Remaining returns the text from the cursor to the end.
func (c Cursor) Remaining() string {
	return string(c.text[c.pos:])
}

// Step charges one unit of work to the cursor's meter. It returns false once
// the meter refuses further work.
func (c Cursor) Step() bool {
	return c.meter.Step()
}

// Meter returns the meter attached to the cursor, possibly nil.
func (c Cursor) Meter() *Meter { return c.meter }

func (c Cursor) String() string {
	return fmt.Sprintf("%q@%d", string(c.text), c.pos)
}
