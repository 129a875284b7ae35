// Package ast defines the parsed form of a pattern: a closed set of term
// node types. Nodes are built bottom-up by the parser and treated as
// immutable afterwards.
package ast

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvertedRange is returned when a class range has its high end below its low end.
	ErrInvertedRange = errors.New("range upper bound is below its lower bound")
	// ErrInvalidBounds is returned when a repetition has min > max or a negative bound.
	ErrInvalidBounds = errors.New("invalid repetition bounds")
)

// NodeType discriminates the term node kinds.
type NodeType int

const (
	// UNKNOWN is the zero value.
	UNKNOWN NodeType = iota
	// LITERAL is a single literal character.
	LITERAL
	// WILDCARD is '.', an escaped class letter or an escaped literal.
	WILDCARD
	// CHARACTER_CLASS is a bracketed set.
	CHARACTER_CLASS
	// RANGE is an inclusive character range inside a class.
	RANGE
	// SEQUENCE is a run of terms matched one after another.
	SEQUENCE
	// GROUP is a parenthesized sequence.
	GROUP
	// ALTERNATION is an ordered choice between two terms.
	ALTERNATION
	// QUANTIFIER repeats its body.
	QUANTIFIER
)

func (n NodeType) String() string {
	switch n {
	case LITERAL:
		return "Literal"
	case WILDCARD:
		return "Wildcard"
	case CHARACTER_CLASS:
		return "CharacterClass"
	case RANGE:
		return "Range"
	case SEQUENCE:
		return "Sequence"
	case GROUP:
		return "Group"
	case ALTERNATION:
		return "Alternation"
	case QUANTIFIER:
		return "Quantifier"
	default:
		return "Unknown"
	}
}

// Node is a pattern term. The set of implementations is closed to this package.
type Node interface {
	Type() NodeType
	// String renders the node back to pattern syntax.
	String() string
	node()
}

// ClassMember is a node that may appear inside a character class.
type ClassMember interface {
	Node
	classMember()
}

// Literal matches one exact character.
type Literal struct {
	Char rune
}

func (*Literal) Type() NodeType { return LITERAL }
func (*Literal) node()          {}
func (*Literal) classMember()   {}

func (l *Literal) String() string { return string(l.Char) }

// WildcardKind selects the predicate of a Wildcard.
type WildcardKind int

const (
	// AnyChar is '.'.
	AnyChar WildcardKind = iota
	// Space is \s: space or tab only.
	Space
	// NotSpace is \S: anything but space, tab, CR, LF, VT and FF.
	NotSpace
	// Digit is \d.
	Digit
	// NotDigit is \D.
	NotDigit
	// Word is \w: ASCII letter or digit.
	Word
	// NotWord is \W.
	NotWord
	// IdentChar is \i: ASCII letter or underscore.
	IdentChar
	// NotIdentChar is \I.
	NotIdentChar
	// EscapedLiteral is a backslash followed by a character with no class meaning.
	EscapedLiteral
)

var wildcardLetters = map[rune]WildcardKind{
	's': Space,
	'S': NotSpace,
	'd': Digit,
	'D': NotDigit,
	'w': Word,
	'W': NotWord,
	'i': IdentChar,
	'I': NotIdentChar,
}

// WildcardFor returns the class kind denoted by an escaped letter.
func WildcardFor(letter rune) (WildcardKind, bool) {
	k, ok := wildcardLetters[letter]
	return k, ok
}

// Wildcard matches one character out of a predefined set. Char holds the
// escape letter for class kinds and the escaped character for EscapedLiteral.
type Wildcard struct {
	Kind WildcardKind
	Char rune
}

// NewWildcard builds the wildcard for a backslash escape of c.
func NewWildcard(c rune) *Wildcard {
	if k, ok := WildcardFor(c); ok {
		return &Wildcard{Kind: k, Char: c}
	}
	return &Wildcard{Kind: EscapedLiteral, Char: c}
}

// Dot returns the '.' wildcard.
func Dot() *Wildcard { return &Wildcard{Kind: AnyChar, Char: '.'} }

func (*Wildcard) Type() NodeType { return WILDCARD }
func (*Wildcard) node()          {}
func (*Wildcard) classMember()   {}

func (w *Wildcard) String() string {
	if w.Kind == AnyChar {
		return "."
	}
	return `\` + string(w.Char)
}

// Range is an inclusive character range, Lo <= Hi.
type Range struct {
	Lo rune
	Hi rune
}

// NewRange validates and builds a range.
func NewRange(lo, hi rune) (*Range, error) {
	if hi < lo {
		return nil, fmt.Errorf("%w: %q-%q", ErrInvertedRange, lo, hi)
	}
	return &Range{Lo: lo, Hi: hi}, nil
}

func (*Range) Type() NodeType { return RANGE }
func (*Range) node()          {}
func (*Range) classMember()   {}

func (r *Range) String() string { return string(r.Lo) + "-" + string(r.Hi) }

// CharacterClass matches one character listed by its members, or for a
// blacklist one character not listed.
type CharacterClass struct {
	Whitelist bool
	Members   []ClassMember
}

func (*CharacterClass) Type() NodeType { return CHARACTER_CLASS }
func (*CharacterClass) node()          {}

func (c *CharacterClass) String() string {
	var b strings.Builder
	b.WriteByte('[')
	if !c.Whitelist {
		b.WriteByte('^')
	}
	for i, m := range c.Members {
		if l, ok := m.(*Literal); ok && needsClassEscape(l.Char, i == 0) {
			b.WriteByte('\\')
		}
		b.WriteString(m.String())
	}
	b.WriteByte(']')
	return b.String()
}

func needsClassEscape(c rune, first bool) bool {
	switch c {
	case ']', '\\', '-':
		return true
	case '^':
		return first
	}
	return false
}

// Sequence matches its terms one after another.
type Sequence struct {
	Terms []Node
}

func (*Sequence) Type() NodeType { return SEQUENCE }
func (*Sequence) node()          {}

func (s *Sequence) String() string { return Render(s.Terms) }

// Render joins a term list back to pattern syntax. An alternation that
// shares the list with other terms is parenthesized, otherwise its right
// side would absorb the terms that follow it when parsed again.
func Render(terms []Node) string {
	var b strings.Builder
	for _, t := range terms {
		if _, ok := t.(*Alternation); ok && len(terms) > 1 {
			b.WriteString("(" + t.String() + ")")
			continue
		}
		b.WriteString(t.String())
	}
	return b.String()
}

// Group is a parenthesized sequence.
type Group struct {
	Body *Sequence
}

func (*Group) Type() NodeType { return GROUP }
func (*Group) node()          {}

func (g *Group) String() string { return "(" + g.Body.String() + ")" }

// Alternation tries Left, then Right.
type Alternation struct {
	Left  Node
	Right Node
}

func (*Alternation) Type() NodeType { return ALTERNATION }
func (*Alternation) node()          {}

func (a *Alternation) String() string {
	left := a.Left.String()
	if _, ok := a.Left.(*Alternation); ok {
		left = "(" + left + ")"
	}
	return left + "|" + a.Right.String()
}

// QuantifierKind is the syntactic form of a quantifier.
type QuantifierKind int

const (
	// Star is '*'.
	Star QuantifierKind = iota
	// Plus is '+'.
	Plus
	// Optional is '?'.
	Optional
	// Exact is '{n}'.
	Exact
	// AtLeast is '{n,}'.
	AtLeast
	// Between is '{m,n}'.
	Between
)

// Quantifier repeats Body. Min and Max are only meaningful for the brace
// kinds; Bounds gives the effective limits for every kind.
type Quantifier struct {
	Kind QuantifierKind
	Min  int
	Max  int
	Body Node
}

// NewQuantifier builds a quantifier around an already parsed body.
func NewQuantifier(kind QuantifierKind, min, max int, body Node) (*Quantifier, error) {
	if min < 0 || max < 0 {
		return nil, fmt.Errorf("%w: negative count", ErrInvalidBounds)
	}
	if kind == Between && min > max {
		return nil, fmt.Errorf("%w: {%d,%d}", ErrInvalidBounds, min, max)
	}
	switch kind {
	case Star, Plus, Optional:
		min, max = 0, 0
	case Exact:
		max = min
	case AtLeast:
		max = 0
	}
	return &Quantifier{Kind: kind, Min: min, Max: max, Body: body}, nil
}

// Bounds returns the repetition limits. When bounded is false max is
// meaningless and the repetition is open-ended.
func (q *Quantifier) Bounds() (min, max int, bounded bool) {
	switch q.Kind {
	case Star:
		return 0, 0, false
	case Plus:
		return 1, 0, false
	case Optional:
		return 0, 1, true
	case Exact:
		return q.Min, q.Min, true
	case AtLeast:
		return q.Min, 0, false
	default:
		return q.Min, q.Max, true
	}
}

func (*Quantifier) Type() NodeType { return QUANTIFIER }
func (*Quantifier) node()          {}

func (q *Quantifier) String() string {
	return q.Body.String() + q.Symbol()
}

// Symbol renders only the quantifier suffix.
func (q *Quantifier) Symbol() string {
	switch q.Kind {
	case Star:
		return "*"
	case Plus:
		return "+"
	case Optional:
		return "?"
	case Exact:
		return "{" + strconv.Itoa(q.Min) + "}"
	case AtLeast:
		return "{" + strconv.Itoa(q.Min) + ",}"
	default:
		return "{" + strconv.Itoa(q.Min) + "," + strconv.Itoa(q.Max) + "}"
	}
}

// Children returns the direct sub-terms of n.
func Children(n Node) []Node {
	switch x := n.(type) {
	case *CharacterClass:
		out := make([]Node, len(x.Members))
		for i, m := range x.Members {
			out[i] = m
		}
		return out
	case *Sequence:
		return x.Terms
	case *Group:
		return x.Body.Terms
	case *Alternation:
		return []Node{x.Left, x.Right}
	case *Quantifier:
		return []Node{x.Body}
	default:
		return nil
	}
}
