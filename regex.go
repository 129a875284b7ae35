// Package snapregex is a small backtracking regular expression engine.
//
// A pattern is parsed into a list of top-level terms, each term is compiled
// to a parser combinator, and matching walks the terms over the subject,
// giving characters back from greedy repetitions when a later term fails.
// The first offset at which every term is satisfied wins.
//
// Compiled patterns are immutable and may be used from several goroutines.
package snapregex

import (
	"context"
	"strings"

	"github.com/shibukawa/snapregex/ast"
	"github.com/shibukawa/snapregex/compiler"
	"github.com/shibukawa/snapregex/cursor"
	"github.com/shibukawa/snapregex/engine"
	"github.com/shibukawa/snapregex/parser"
)

// Match is the outcome of a match call.
type Match = engine.Match

// Options tunes matching; see engine.Options.
type Options = engine.Options

// Regex is a compiled pattern.
type Regex struct {
	pattern string
	terms   []ast.Node
	prog    *compiler.Program
	opts    Options
}

// Compile parses and compiles pattern. On failure the error wraps
// ErrPatternSyntax and no Regex is returned.
func Compile(pattern string) (*Regex, error) {
	terms, err := parser.Parse(pattern)
	if err != nil {
		return nil, err
	}

	return &Regex{
		pattern: pattern,
		terms:   terms,
		prog:    compiler.Build(terms),
	}, nil
}

// MustCompile is like Compile but panics on a syntax error.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("snapregex: Compile(" + quote(pattern) + "): " + err.Error())
	}
	return re
}

// WithOptions returns a copy of re that matches with opts.
func (re *Regex) WithOptions(opts Options) *Regex {
	c := *re
	c.opts = opts
	return &c
}

// Built reports whether the pattern has at least one term. A pattern
// without terms compiles but never matches.
func (re *Regex) Built() bool { return len(re.terms) > 0 }

// Terms returns the parsed top-level terms. The nodes must not be modified;
// use ast.CloneAll for an editable copy.
func (re *Regex) Terms() []ast.Node { return re.terms }

// Program returns the compiled term list.
func (re *Regex) Program() *compiler.Program { return re.prog }

func (re *Regex) String() string { return re.pattern }

// Match finds the leftmost match in subject with the regex's options.
func (re *Regex) Match(subject string) (Match, error) {
	return re.MatchContext(context.Background(), subject)
}

// MatchContext is Match bounded by ctx.
func (re *Regex) MatchContext(ctx context.Context, subject string) (Match, error) {
	return engine.Run(ctx, re.prog, subject, re.opts)
}

// MatchString reports whether subject contains a match. A search stopped by
// the step budget counts as no match.
func (re *Regex) MatchString(subject string) bool {
	m, err := re.Match(subject)
	return err == nil && m.Matched
}

// QuickMatch applies the whole pattern as a single combinator at each offset.
// It never gives characters back between terms, so it can miss matches that
// Match finds, such as "a*a" on "aa".
func (re *Regex) QuickMatch(subject string) Match {
	if len(re.terms) == 0 {
		return Match{}
	}

	start := cursor.New(subject)
	for offset := 0; offset < start.Len(); offset++ {
		r := re.prog.Parser.Apply(start.Advance(offset))
		if r.IsSuccess() && r.Text() != "" {
			return Match{Matched: true, Text: r.Text(), Offset: offset}
		}
	}
	return Match{}
}

// ReplaceAllStringFunc replaces every non-overlapping match in src with the
// result of repl. The search stops early, leaving the rest of src untouched,
// if a match call fails.
func (re *Regex) ReplaceAllStringFunc(src string, repl func(string) string) string {
	var b strings.Builder
	rest := []rune(src)
	for len(rest) > 0 {
		m, err := re.Match(string(rest))
		if err != nil || !m.Matched {
			break
		}
		end := m.Offset + len([]rune(m.Text))
		b.WriteString(string(rest[:m.Offset]))
		b.WriteString(repl(m.Text))
		rest = rest[end:]
	}
	b.WriteString(string(rest))
	return b.String()
}

func quote(s string) string {
	return "`" + s + "`"
}
