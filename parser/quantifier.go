package parser

import (
	"strconv"
	"strings"

	pc "github.com/shibukawa/parsercombinator"

	"github.com/shibukawa/snapregex/ast"
	"github.com/shibukawa/snapregex/cursor"
)

func runeOf(typeName string, want rune) pc.Parser[rune] {
	return func(pctx *pc.ParseContext[rune], tokens []pc.Token[rune]) (int, []pc.Token[rune], error) {
		if len(tokens) > 0 && tokens[0].Val == want {
			tok := tokens[0]
			tok.Type = typeName
			return 1, []pc.Token[rune]{tok}, nil
		}

		return 0, nil, pc.ErrNotMatch
	}
}

// number folds a run of ASCII digits into one token.
func number(typeName string) pc.Parser[rune] {
	return func(pctx *pc.ParseContext[rune], tokens []pc.Token[rune]) (int, []pc.Token[rune], error) {
		var digits strings.Builder
		n := 0
		for n < len(tokens) && '0' <= tokens[n].Val && tokens[n].Val <= '9' {
			digits.WriteRune(tokens[n].Val)
			n++
		}
		if n == 0 {
			return 0, nil, pc.ErrNotMatch
		}

		return n, []pc.Token[rune]{{
			Type: typeName,
			Pos:  tokens[0].Pos,
			Val:  tokens[0].Val,
			Raw:  digits.String(),
		}}, nil
	}
}

var braceQuantifier = pc.Seq(
	runeOf("open", '{'),
	number("min"),
	pc.Optional(pc.Seq(runeOf("comma", ','), pc.Optional(number("max")))),
	runeOf("close", '}'),
	pc.EOS[rune](),
)

// brace parses "{n}", "{n,}" or "{m,n}" at c. Whitespace inside the braces
// is ignored.
func (p *parser) brace(c cursor.Cursor) (ast.QuantifierKind, int, int, cursor.Cursor, error) {
	open := c

	var tokens []pc.Token[rune]
	for {
		c = skipSpace(c)
		if c.IsEmpty() {
			return 0, 0, 0, open, p.fail(open, nil, "unterminated repetition count")
		}
		r := c.Head()
		tokens = append(tokens, pc.Token[rune]{
			Type: "raw",
			Pos:  &pc.Pos{Line: 1, Col: c.Pos() + 1, Index: c.Pos()},
			Val:  r,
			Raw:  string(r),
		})
		c = c.Advance(1)
		if r == '}' {
			break
		}
	}

	pctx := pc.NewParseContext[rune]()
	_, parsed, err := braceQuantifier(pctx, tokens)
	if err != nil {
		return 0, 0, 0, open, p.fail(open, nil, "malformed repetition count")
	}

	var (
		min, max      int
		comma, hasMax bool
	)
	for _, tok := range parsed {
		switch tok.Type {
		case "min", "max":
			v, err := strconv.Atoi(tok.Raw)
			if err != nil {
				return 0, 0, 0, open, p.fail(open, err, "repetition count out of range")
			}
			if tok.Type == "min" {
				min = v
			} else {
				max, hasMax = v, true
			}
		case "comma":
			comma = true
		}
	}

	switch {
	case hasMax:
		return ast.Between, min, max, c, nil
	case comma:
		return ast.AtLeast, min, 0, c, nil
	default:
		return ast.Exact, min, min, c, nil
	}
}
