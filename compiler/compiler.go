// Package compiler lowers pattern terms to combinator parsers.
package compiler

import (
	"fmt"

	"github.com/shibukawa/snapregex/ast"
	cb "github.com/shibukawa/snapregex/combinator"
)

// Term is one compiled top-level term.
type Term struct {
	Node   ast.Node
	Parser cb.Parser
	// Repeats is set for quantified terms; their results count repetitions
	// and the engine may give repetitions back when a later term fails.
	Repeats bool
}

// Program is the compiled form of a term list.
type Program struct {
	Terms []Term
	// Parser matches the whole term list in one pass without backtracking.
	Parser cb.Parser
}

// Build compiles every term and the folded single-pass parser.
func Build(terms []ast.Node) *Program {
	prog := &Program{Terms: make([]Term, len(terms))}
	parsers := make([]cb.Parser, len(terms))
	for i, n := range terms {
		p := Compile(n)
		_, repeats := n.(*ast.Quantifier)
		prog.Terms[i] = Term{Node: n, Parser: p, Repeats: repeats}
		parsers[i] = p
	}
	prog.Parser = cb.Concat(parsers...)
	return prog
}

// not-space excludes the full whitespace set, while \s only accepts space and tab.
var nonSpace = []rune{' ', '\t', '\r', '\n', '\v', '\f'}

// Compile lowers a single node.
func Compile(n ast.Node) cb.Parser {
	switch x := n.(type) {
	case *ast.Literal:
		return cb.Literal(x.Char)
	case *ast.Wildcard:
		return wildcard(x)
	case *ast.Range:
		return rangeOf(x)
	case *ast.CharacterClass:
		if x.Whitelist {
			members := make([]cb.Parser, len(x.Members))
			for i, m := range x.Members {
				members[i] = Compile(m)
			}
			return cb.AnyOf(members...)
		}
		return cb.ExcludeSet(excluded(x.Members)...)
	case *ast.Sequence:
		return sequence(x.Terms)
	case *ast.Group:
		return sequence(x.Body.Terms)
	case *ast.Alternation:
		return cb.OrderedChoice(Compile(x.Left), Compile(x.Right))
	case *ast.Quantifier:
		min, max, bounded := x.Bounds()
		if !bounded {
			max = cb.Unbounded
		}
		return cb.Repeat(Compile(x.Body), min, max, bounded)
	default:
		panic(fmt.Sprintf("compiler: unsupported node %T", n))
	}
}

func sequence(terms []ast.Node) cb.Parser {
	parsers := make([]cb.Parser, len(terms))
	for i, t := range terms {
		parsers[i] = Compile(t)
	}
	return cb.Concat(parsers...)
}

func wildcard(w *ast.Wildcard) cb.Parser {
	switch w.Kind {
	case ast.AnyChar:
		return cb.AnyChar
	case ast.Space:
		return cb.OrderedChoice(cb.Literal(' '), cb.Literal('\t'))
	case ast.NotSpace:
		return cb.ExcludeSet(nonSpace...)
	case ast.Digit:
		return cb.Digit
	case ast.NotDigit:
		return cb.ExcludeSet(chars('0', '9')...)
	case ast.Word:
		return cb.OrderedChoice(cb.Letter, cb.Digit)
	case ast.NotWord:
		return cb.ExcludeSet(append(letters(), chars('0', '9')...)...)
	case ast.IdentChar:
		return cb.OrderedChoice(cb.Letter, cb.Literal('_'))
	case ast.NotIdentChar:
		return cb.ExcludeSet(append(letters(), '_')...)
	default:
		return cb.Literal(w.Char)
	}
}

func rangeOf(r *ast.Range) cb.Parser {
	set := chars(r.Lo, r.Hi)
	parsers := make([]cb.Parser, len(set))
	for i, c := range set {
		parsers[i] = cb.Literal(c)
	}
	return cb.AnyOf(parsers...)
}

// excluded lists the characters a blacklist class rejects. Only literal
// members are negated: a wildcard contributes its escape letter, so [^\d]
// rejects 'd' rather than digits, and a range contributes nothing, so [^a-z]
// still accepts 'b'.
func excluded(members []ast.ClassMember) []rune {
	var out []rune
	for _, m := range members {
		switch x := m.(type) {
		case *ast.Literal:
			out = append(out, x.Char)
		case *ast.Wildcard:
			out = append(out, x.Char)
		}
	}
	return out
}

func chars(lo, hi rune) []rune {
	out := make([]rune, 0, hi-lo+1)
	for c := lo; c <= hi; c++ {
		out = append(out, c)
	}
	return out
}

func letters() []rune {
	return append(chars('a', 'z'), chars('A', 'Z')...)
}
