package parser

import (
	"github.com/shibukawa/snapregex/ast"
	"github.com/shibukawa/snapregex/cursor"
)

// class parses a bracketed character class starting at '['. Whitespace is
// part of the set here, so no skipping happens between members.
func (p *parser) class(c cursor.Cursor) (ast.Node, cursor.Cursor, error) {
	open := c
	if !c.ContainsAhead(']') {
		return nil, c, p.fail(open, nil, "unmatched '['")
	}

	c = c.Advance(1)
	whitelist := true
	if c.HasNext() && c.Head() == '^' {
		whitelist = false
		c = c.Advance(1)
	}

	var members []ast.ClassMember
	for {
		if c.IsEmpty() {
			return nil, c, p.fail(open, nil, "unmatched '['")
		}
		if c.Head() == ']' {
			c = c.Advance(1)
			break
		}
		member, rest, err := p.classItem(c)
		if err != nil {
			return nil, c, err
		}
		if rest.Pos() == c.Pos() {
			panic("parser: class item consumed no input")
		}
		members = append(members, member)
		c = rest
	}

	return &ast.CharacterClass{Whitelist: whitelist, Members: members}, c, nil
}

// classItem parses a single class member: an escape, a range or a literal.
func (p *parser) classItem(c cursor.Cursor) (ast.ClassMember, cursor.Cursor, error) {
	h := c.Head()

	if h == '\\' {
		escaped, ok := c.PeekNext()
		if !ok {
			return nil, c, p.fail(c, nil, "dangling escape in character class")
		}
		if _, isClass := ast.WildcardFor(escaped); isClass {
			return ast.NewWildcard(escaped), c.Advance(2), nil
		}
		return &ast.Literal{Char: escaped}, c.Advance(2), nil
	}

	// "c-X" is a range unless the dash closes the class or ends the text.
	if next, ok := c.PeekNext(); ok && next == '-' {
		dash := c.Advance(1)
		if hi, ok := dash.PeekNext(); ok && hi != ']' {
			rng, err := ast.NewRange(h, hi)
			if err != nil {
				return nil, c, p.fail(c, err, "invalid range %q-%q", h, hi)
			}
			return rng, dash.Advance(2), nil
		}
	}

	return &ast.Literal{Char: h}, c.Advance(1), nil
}
