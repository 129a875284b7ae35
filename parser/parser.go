// Package parser turns pattern text into the term list of package ast.
//
// The grammar is parsed by recursive descent directly over a cursor; there is
// no separate tokenization pass. Whitespace between terms is ignored, but it
// is significant inside character classes.
//
//	Pattern     := Expr*
//	Expr        := '(' Expr* ')' Quantifier? | QTerm Quantifier? | AllTerm
//	AllTerm     := QTerm | AllTerm '|' AllTerm
//	QTerm       := CharacterClass | TokenRun
//	TokenRun    := Token+
//	Token       := EscapedChar | '.' | Literal
//	Quantifier  := '*' | '+' | '?' | '{' N '}' | '{' N ',' '}' | '{' N ',' N '}'
//
// A quantifier binds to a group, a class or a single token. A run of tokens
// stops right before a token that carries a quantifier, so "abc+" parses as
// the run "ab" followed by "c+".
package parser

import (
	"errors"
	"fmt"

	"github.com/shibukawa/snapregex/ast"
	"github.com/shibukawa/snapregex/cursor"
)

type parser struct {
	pattern string
}

// Parse parses a whole pattern. It either returns every top-level term or a
// *SyntaxError; partial results are never returned.
func Parse(pattern string) ([]ast.Node, error) {
	p := &parser{pattern: pattern}
	c := cursor.New(pattern)

	var terms []ast.Node
	for {
		c = skipSpace(c)
		if c.IsEmpty() {
			break
		}
		term, rest, err := p.expr(c)
		if err != nil {
			return nil, p.critical(c, err)
		}
		terms = append(terms, term)
		c = rest
	}

	return terms, nil
}

// critical converts a rule mismatch at c into a syntax error.
func (p *parser) critical(c cursor.Cursor, err error) error {
	if errors.Is(err, errNotMatch) {
		return p.fail(c, nil, "unexpected %q", c.Head())
	}
	return err
}

func (p *parser) fail(c cursor.Cursor, cause error, format string, args ...any) error {
	return &SyntaxError{
		Pattern: p.pattern,
		Offset:  c.Pos(),
		Reason:  fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// expr parses one Expr, including a trailing alternation chain.
func (p *parser) expr(c cursor.Cursor) (ast.Node, cursor.Cursor, error) {
	c = skipSpace(c)
	if c.IsEmpty() {
		return nil, c, errNotMatch
	}

	var (
		term ast.Node
		err  error
	)
	if c.Head() == '(' {
		term, c, err = p.group(c)
	} else {
		term, c, err = p.qterm(c)
	}
	if err != nil {
		return nil, c, err
	}

	bar := skipSpace(c)
	if bar.HasNext() && bar.Head() == '|' {
		right, rest, err := p.expr(bar.Advance(1))
		if errors.Is(err, errNotMatch) {
			return nil, c, p.fail(bar, nil, "alternation has no right-hand side")
		}
		if err != nil {
			return nil, c, err
		}
		return &ast.Alternation{Left: term, Right: right}, rest, nil
	}

	return term, c, nil
}

func (p *parser) group(c cursor.Cursor) (ast.Node, cursor.Cursor, error) {
	open := c
	if !c.ContainsAhead(')') {
		return nil, c, p.fail(open, nil, "unmatched '('")
	}

	c = c.Advance(1)
	var inner []ast.Node
	for {
		c = skipSpace(c)
		if c.IsEmpty() {
			return nil, c, p.fail(open, nil, "unmatched '('")
		}
		if c.Head() == ')' {
			c = c.Advance(1)
			break
		}
		term, rest, err := p.expr(c)
		if err != nil {
			return nil, c, p.critical(c, err)
		}
		inner = append(inner, term)
		c = rest
	}

	return p.quantified(&ast.Group{Body: &ast.Sequence{Terms: inner}}, c)
}

// qterm parses a character class or a token run.
func (p *parser) qterm(c cursor.Cursor) (ast.Node, cursor.Cursor, error) {
	if c.Head() == '[' {
		class, rest, err := p.class(c)
		if err != nil {
			return nil, c, err
		}
		return p.quantified(class, rest)
	}

	first, rest, err := p.token(c)
	if err != nil {
		return nil, c, err
	}
	if startsQuantifier(rest) {
		return p.quantified(first, rest)
	}

	run := []ast.Node{first}
	c = rest
	for {
		tok, after, err := p.token(c)
		if errors.Is(err, errNotMatch) {
			break
		}
		if err != nil {
			return nil, c, err
		}
		if startsQuantifier(after) {
			break
		}
		run = append(run, tok)
		c = after
	}

	if len(run) == 1 {
		return first, c, nil
	}
	return &ast.Sequence{Terms: run}, c, nil
}

// token parses one escaped character, '.' or literal.
func (p *parser) token(c cursor.Cursor) (ast.Node, cursor.Cursor, error) {
	c = skipSpace(c)
	if c.IsEmpty() {
		return nil, c, errNotMatch
	}

	switch h := c.Head(); {
	case h == '\\':
		escaped, ok := c.PeekNext()
		if !ok {
			return nil, c, p.fail(c, nil, "dangling escape at end of pattern")
		}
		return ast.NewWildcard(escaped), c.Advance(2), nil
	case h == '.':
		return ast.Dot(), c.Advance(1), nil
	case isReserved(h):
		return nil, c, errNotMatch
	default:
		return &ast.Literal{Char: h}, c.Advance(1), nil
	}
}

// quantified wraps body in the quantifier at c, if there is one.
func (p *parser) quantified(body ast.Node, c cursor.Cursor) (ast.Node, cursor.Cursor, error) {
	q, rest, found, err := p.quantifier(c, body)
	if err != nil {
		return nil, c, err
	}
	if !found {
		return body, c, nil
	}
	return q, rest, nil
}

func (p *parser) quantifier(c cursor.Cursor, body ast.Node) (ast.Node, cursor.Cursor, bool, error) {
	c = skipSpace(c)
	if c.IsEmpty() {
		return nil, c, false, nil
	}

	var (
		kind     ast.QuantifierKind
		min, max int
		rest     = c.Advance(1)
	)
	switch c.Head() {
	case '*':
		kind = ast.Star
	case '+':
		kind = ast.Plus
	case '?':
		kind = ast.Optional
	case '{':
		var err error
		kind, min, max, rest, err = p.brace(c)
		if err != nil {
			return nil, c, false, err
		}
	default:
		return nil, c, false, nil
	}

	q, err := ast.NewQuantifier(kind, min, max, body)
	if err != nil {
		return nil, c, false, p.fail(c, err, "invalid quantifier")
	}
	return q, rest, true, nil
}

func startsQuantifier(c cursor.Cursor) bool {
	c = skipSpace(c)
	if c.IsEmpty() {
		return false
	}
	switch c.Head() {
	case '*', '+', '?', '{':
		return true
	}
	return false
}

func isReserved(r rune) bool {
	switch r {
	case '(', ')', '[', ']', '{', '}', '.', '|', '*', '+', '?', '\\':
		return true
	}
	return false
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func skipSpace(c cursor.Cursor) cursor.Cursor {
	for c.HasNext() && isSpace(c.Head()) {
		c = c.Advance(1)
	}
	return c
}
