// Package inspect summarizes the term structure of a pattern for diagnostics.
package inspect

import (
	"fmt"
	"io"
	"strings"

	"github.com/shibukawa/snapregex/ast"
	"github.com/shibukawa/snapregex/parser"
)

// Inspect parses the pattern read from r and returns its term tree. A
// trailing newline is not part of the pattern.
func Inspect(r io.Reader, opt InspectOptions) (InspectResult, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return InspectResult{}, fmt.Errorf("read input: %w", err)
	}

	return InspectPattern(strings.TrimRight(string(b), "\r\n"), opt)
}

// InspectPattern is Inspect for an in-memory pattern.
func InspectPattern(pattern string, opt InspectOptions) (InspectResult, error) {
	res := InspectResult{Pattern: pattern, Terms: []TermInfo{}}

	terms, err := parser.Parse(pattern)
	if err != nil {
		if opt.Strict {
			return res, fmt.Errorf("parse: %w", err)
		}

		res.Notes = append(res.Notes, err.Error())

		return res, nil
	}

	if len(terms) == 0 {
		res.Notes = append(res.Notes, "pattern has no terms and never matches")
	}

	for i, t := range terms {
		info := describe(t)
		info.Index = i + 1
		res.Terms = append(res.Terms, info)
	}

	return res, nil
}

func describe(n ast.Node) TermInfo {
	info := TermInfo{Kind: n.Type().String(), Text: n.String()}

	switch x := n.(type) {
	case *ast.Wildcard:
		info.Kind = wildcardKind(x)
	case *ast.CharacterClass:
		info.Negated = !x.Whitelist
	case *ast.Quantifier:
		min, max, bounded := x.Bounds()
		info.Quantifier = x.Symbol()
		info.Min = min
		info.Max = max
		if !bounded {
			info.Max = -1
		}
	}

	for _, c := range ast.Children(n) {
		info.Children = append(info.Children, describe(c))
	}

	return info
}

func wildcardKind(w *ast.Wildcard) string {
	switch w.Kind {
	case ast.AnyChar:
		return "AnyChar"
	case ast.Space:
		return "Space"
	case ast.NotSpace:
		return "NotSpace"
	case ast.Digit:
		return "Digit"
	case ast.NotDigit:
		return "NotDigit"
	case ast.Word:
		return "Word"
	case ast.NotWord:
		return "NotWord"
	case ast.IdentChar:
		return "IdentChar"
	case ast.NotIdentChar:
		return "NotIdentChar"
	default:
		return "EscapedLiteral"
	}
}
