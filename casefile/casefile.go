// Package casefile reads regex case documents.
//
// A case document is a markdown file:
//
//	---
//	max_steps: 10000
//	---
//	# Title
//
//	## Pattern
//
//	```regex
//	.+e.+g
//	```
//
//	## Cases
//
//	| subject      | match        |
//	|--------------|--------------|
//	| `processing` | `processing` |
//	| nothing      | -            |
//
// A match cell of "-" expects no match. Cells wrapped in a code span are
// taken verbatim; other cells are trimmed. Documents with "invalid: true" in
// their front matter expect the pattern to be rejected and carry no cases.
package casefile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Sentinel errors
var (
	ErrInvalidFrontMatter     = errors.New("invalid front matter")
	ErrMissingRequiredSection = errors.New("missing required section")
	ErrInvalidCaseTable       = errors.New("invalid case table")
)

// NoMatch is the match cell that expects the pattern not to match.
const NoMatch = "-"

// Meta is the front matter of a case document.
type Meta struct {
	Description string `yaml:"description"`
	// MaxSteps overrides the configured step budget when positive.
	MaxSteps int `yaml:"max_steps"`
	// Invalid expects the pattern to fail to compile.
	Invalid bool `yaml:"invalid"`
}

// Case is one row of the cases table.
type Case struct {
	Line     int
	Subject  string
	Expected string
	// Matched is false when the row expects no match.
	Matched bool
}

// Document is a parsed case document.
type Document struct {
	Path        string
	Title       string
	Meta        Meta
	Pattern     string
	PatternLine int
	Cases       []Case
}

// ParseFile reads and parses the document at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	doc.Path = path

	return doc, nil
}

// Parse parses a case document.
func Parse(reader io.Reader) (*Document, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	meta, body, skipped, err := parseFrontMatter(string(content))
	if err != nil {
		return nil, err
	}

	src := []byte(body)
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	root := md.Parser().Parse(text.NewReader(src))
	lines := newIndexToLine(src, skipped)

	doc := &Document{Meta: meta}
	sections := map[string][]ast.Node{}

	var current string

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			switch h.Level {
			case 1:
				doc.Title = nodeText(h, src)
				current = ""
			case 2:
				current = strings.ToLower(nodeText(h, src))
				sections[current] = nil
			}

			continue
		}

		if current != "" {
			sections[current] = append(sections[current], n)
		}
	}

	pattern, start, ok := findPattern(sections["pattern"], src)
	if !ok {
		return nil, fmt.Errorf("%w: ## Pattern with a fenced code block", ErrMissingRequiredSection)
	}

	doc.Pattern = pattern
	doc.PatternLine = lines.lineFor(start)

	if meta.Invalid {
		return doc, nil
	}

	cases, err := findCases(sections["cases"], src, lines)
	if err != nil {
		return nil, err
	}

	doc.Cases = cases

	return doc, nil
}

// parseFrontMatter splits YAML front matter from the markdown body. skipped
// is the number of lines removed from the top of the document.
func parseFrontMatter(content string) (Meta, string, int, error) {
	var meta Meta

	if !strings.HasPrefix(content, "---\n") {
		return meta, content, 0, nil
	}

	endIndex := strings.Index(content[4:], "\n---")
	if endIndex == -1 {
		return meta, "", 0, ErrInvalidFrontMatter
	}

	endIndex += 4

	frontMatter := content[4:endIndex]
	remaining := content[endIndex+4:]

	err := yaml.UnmarshalWithOptions([]byte(frontMatter), &meta, yaml.Strict())
	if err != nil {
		return meta, "", 0, fmt.Errorf("%w: %w", ErrInvalidFrontMatter, err)
	}

	return meta, remaining, strings.Count(content[:endIndex+4], "\n"), nil
}

func findPattern(nodes []ast.Node, src []byte) (string, int, bool) {
	for _, n := range nodes {
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			continue
		}

		var b strings.Builder

		blockLines := block.Lines()
		for i := range blockLines.Len() {
			b.Write(blockLines.At(i).Value(src))
		}

		start := 0
		if blockLines.Len() > 0 {
			start = blockLines.At(0).Start
		}

		return strings.TrimRight(b.String(), "\r\n"), start, true
	}

	return "", 0, false
}

func findCases(nodes []ast.Node, src []byte, lines *indexToLine) ([]Case, error) {
	for _, n := range nodes {
		table, ok := n.(*extast.Table)
		if !ok {
			continue
		}

		var cases []Case

		for row := table.FirstChild(); row != nil; row = row.NextSibling() {
			if _, ok := row.(*extast.TableRow); !ok {
				continue
			}

			var (
				cells []string
				start = -1
			)

			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				value, at := cellText(cell, src)
				if start < 0 {
					start = at
				}

				cells = append(cells, value)
			}

			if len(cells) < 2 {
				return nil, fmt.Errorf("%w: row at line %d needs subject and match cells", ErrInvalidCaseTable, lines.lineFor(start))
			}

			c := Case{Line: lines.lineFor(start), Subject: cells[0]}
			if cells[1] != NoMatch {
				c.Expected = cells[1]
				c.Matched = true
			}

			cases = append(cases, c)
		}

		return cases, nil
	}

	return nil, fmt.Errorf("%w: ## Cases with a table", ErrMissingRequiredSection)
}

// cellText returns the text of a table cell and the source offset of its
// first segment, or -1 for an empty cell.
func cellText(cell ast.Node, src []byte) (string, int) {
	if span, ok := cell.FirstChild().(*ast.CodeSpan); ok && span.NextSibling() == nil {
		return rawText(span, src), firstSegment(span)
	}

	return strings.TrimSpace(rawText(cell, src)), firstSegment(cell)
}

func rawText(node ast.Node, src []byte) string {
	var result strings.Builder

	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch t := n.(type) {
		case *ast.Text:
			result.Write(t.Segment.Value(src))
		case *ast.String:
			result.Write(t.Value)
		}

		return ast.WalkContinue, nil
	})

	return result.String()
}

func firstSegment(node ast.Node) int {
	start := -1

	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			start = t.Segment.Start
			return ast.WalkStop, nil
		}

		return ast.WalkContinue, nil
	})

	return start
}

func nodeText(n ast.Node, src []byte) string {
	return strings.TrimSpace(rawText(n, src))
}
