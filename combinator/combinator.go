// Package combinator implements the matching primitives a compiled pattern is
// built from. A Parser is a pure function from a cursor to a result; composed
// parsers are immutable values that can be shared across goroutines.
package combinator

import (
	"math"
	"strings"

	"github.com/shibukawa/snapregex/cursor"
)

// Unbounded is the maximum used by open-ended repetitions.
const Unbounded = math.MaxInt

// Parser matches a prefix of the text under a cursor.
type Parser interface {
	Apply(in cursor.Cursor) cursor.Result
}

// Func adapts a plain function to Parser.
type Func func(in cursor.Cursor) cursor.Result

// Apply calls f.
func (f Func) Apply(in cursor.Cursor) cursor.Result { return f(in) }

func single(match func(rune) bool) Parser {
	return Func(func(in cursor.Cursor) cursor.Result {
		r, ok := in.TryHead()
		if !ok || !match(r) {
			return cursor.Failure()
		}
		return cursor.Success(string(r), in.Advance(1))
	})
}

func isLetter(r rune) bool { return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') }

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

var (
	// AnyChar consumes any single character.
	AnyChar = single(func(rune) bool { return true })
	// Letter consumes one ASCII letter.
	Letter = single(isLetter)
	// Digit consumes one ASCII digit.
	Digit = single(isDigit)
	// Empty always succeeds without consuming input.
	Empty Parser = Func(func(in cursor.Cursor) cursor.Result {
		return cursor.SuccessN("", in, 0)
	})
)

// Literal consumes exactly c.
func Literal(c rune) Parser {
	return single(func(r rune) bool { return r == c })
}

// ExcludeSet consumes one character that is not in chars.
func ExcludeSet(chars ...rune) Parser {
	set := make(map[rune]struct{}, len(chars))
	for _, c := range chars {
		set[c] = struct{}{}
	}
	return single(func(r rune) bool {
		_, excluded := set[r]
		return !excluded
	})
}

// Sequence runs p1 then p2 on what p1 left. The matched texts are joined.
func Sequence(p1, p2 Parser) Parser {
	return Func(func(in cursor.Cursor) cursor.Result {
		first := p1.Apply(in)
		if !first.IsSuccess() {
			return first
		}
		second := p2.Apply(first.Remaining())
		if !second.IsSuccess() {
			return second
		}
		return cursor.Success(first.Text()+second.Text(), second.Remaining())
	})
}

// Concat folds Sequence over parsers from the left. An empty list yields
// Empty.
func Concat(parsers ...Parser) Parser {
	if len(parsers) == 0 {
		return Empty
	}
	acc := parsers[0]
	for _, p := range parsers[1:] {
		acc = Sequence(acc, p)
	}
	return acc
}

// OrderedChoice returns the first success of p1 and p2. Once an alternative
// has succeeded the other is never revisited.
func OrderedChoice(p1, p2 Parser) Parser {
	return Func(func(in cursor.Cursor) cursor.Result {
		if r := p1.Apply(in); r.IsSuccess() {
			return r
		}
		return p2.Apply(in)
	})
}

// AnyOf tries parsers in order and returns the first success. An empty list
// never matches.
func AnyOf(parsers ...Parser) Parser {
	return Func(func(in cursor.Cursor) cursor.Result {
		for _, p := range parsers {
			if r := p.Apply(in); r.IsSuccess() {
				return r
			}
		}
		return cursor.Failure()
	})
}

// Repeat applies p greedily. With bounded set, at most max repetitions are
// taken; otherwise max is ignored. The success carries the number of accepted
// repetitions as its unit count.
func Repeat(p Parser, min, max int, bounded bool) Parser {
	satisfied := func(count int) bool {
		if bounded {
			return count >= min && count <= max
		}
		return count >= min
	}
	return Func(func(in cursor.Cursor) cursor.Result {
		last := cursor.Failure()
		// zero repetitions satisfy min 0 even with no input left
		if min == 0 {
			last = cursor.SuccessN("", in, 0)
		}
		var text strings.Builder
		count := 0
		for in.HasNext() {
			if !in.Step() {
				return cursor.Failure()
			}
			r := p.Apply(in)
			if !r.IsSuccess() {
				if satisfied(count) {
					return last
				}
				return r
			}
			count++
			if bounded && count > max {
				return last
			}
			text.WriteString(r.Text())
			last = cursor.SuccessN(text.String(), r.Remaining(), count)
			if r.Remaining().Pos() == in.Pos() {
				// a zero-width body matches identically on every further repetition
				if count < min {
					count = min
					last = last.WithUnits(count)
				}
				break
			}
			in = r.Remaining()
		}
		if satisfied(count) {
			return last
		}
		return cursor.Failure()
	})
}
