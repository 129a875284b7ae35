package compiler

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/snapregex/ast"
	"github.com/shibukawa/snapregex/cursor"
	"github.com/shibukawa/snapregex/parser"
)

func compileOne(t *testing.T, pattern string) *Program {
	t.Helper()
	terms, err := parser.Parse(pattern)
	assert.NoError(t, err)
	return Build(terms)
}

func accepts(p *Program, subject string) (string, bool) {
	r := p.Parser.Apply(cursor.New(subject))
	return r.Text(), r.IsSuccess()
}

func TestCompileRangeCoversExactlyItsLetters(t *testing.T) {
	prog := compileOne(t, "[a-z]")

	for c := rune(0); c < 128; c++ {
		_, ok := accepts(prog, string(c))
		assert.Equal(t, c >= 'a' && c <= 'z', ok, "char %q", c)
	}
}

func TestCompileWildcards(t *testing.T) {
	tests := []struct {
		pattern string
		accept  string
		reject  string
	}{
		{pattern: ".", accept: "a\n \t", reject: ""},
		{pattern: `\s`, accept: " \t", reject: "\r\na"},
		{pattern: `\S`, accept: "a1_-", reject: " \t\r\n\v\f"},
		{pattern: `\d`, accept: "0123456789", reject: "a_ "},
		{pattern: `\D`, accept: "a_ ", reject: "0123456789"},
		{pattern: `\w`, accept: "aZ09", reject: "_- "},
		{pattern: `\W`, accept: "_- ", reject: "aZ09"},
		{pattern: `\i`, accept: "aZ_", reject: "0- "},
		{pattern: `\I`, accept: "0- ", reject: "aZ_"},
		{pattern: `\.`, accept: ".", reject: "a"},
		{pattern: `\\`, accept: `\`, reject: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			prog := compileOne(t, tt.pattern)
			for _, c := range tt.accept {
				text, ok := accepts(prog, string(c))
				assert.True(t, ok, "expected %q to match", c)
				assert.Equal(t, string(c), text)
			}
			for _, c := range tt.reject {
				_, ok := accepts(prog, string(c))
				assert.False(t, ok, "expected %q not to match", c)
			}
		})
	}
}

func TestCompileClasses(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		subject string
		want    string
		ok      bool
	}{
		{name: "whitelist literal", pattern: "[xyz]", subject: "y", want: "y", ok: true},
		{name: "whitelist miss", pattern: "[xyz]", subject: "a", ok: false},
		{name: "whitelist wildcard", pattern: `[\d_]`, subject: "7", want: "7", ok: true},
		{name: "blacklist literal", pattern: "[^abc]", subject: "b", ok: false},
		{name: "blacklist passes others", pattern: "[^abc]", subject: "d", want: "d", ok: true},
		{name: "blacklist range is not negated", pattern: "[^0-9]", subject: "5", want: "5", ok: true},
		{name: "blacklist range beside literal", pattern: "[^a-zq]", subject: "b", want: "b", ok: true},
		{name: "blacklist literal beside range", pattern: "[^a-zq]", subject: "q", ok: false},
		{name: "blacklist wildcard excludes only its letter", pattern: `[^\d]`, subject: "5", want: "5", ok: true},
		{name: "blacklist wildcard letter", pattern: `[^\d]`, subject: "d", ok: false},
		{name: "empty class", pattern: "[]", subject: "a", ok: false},
		{name: "empty blacklist", pattern: "[^]", subject: "a", want: "a", ok: true},
		{name: "class at end of input", pattern: "[^a]", subject: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, ok := accepts(compileOne(t, tt.pattern), tt.subject)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, text)
			}
		})
	}
}

func TestCompileComposites(t *testing.T) {
	tests := []struct {
		pattern string
		subject string
		want    string
		ok      bool
	}{
		{pattern: "abc", subject: "abcd", want: "abc", ok: true},
		{pattern: "(ab)c", subject: "abc", want: "abc", ok: true},
		{pattern: "()a", subject: "a", want: "a", ok: true},
		{pattern: "ab|cd", subject: "cd", want: "cd", ok: true},
		{pattern: "a*", subject: "aaab", want: "aaa", ok: true},
		{pattern: "a+", subject: "b", ok: false},
		{pattern: "a?b", subject: "b", want: "b", ok: true},
		{pattern: "a{2}", subject: "aaa", want: "aa", ok: true},
		{pattern: "a{2,}", subject: "aaaa", want: "aaaa", ok: true},
		{pattern: "a{2,3}", subject: "aaaa", want: "aaa", ok: true},
		{pattern: "a{3}", subject: "aa", ok: false},
		// \w commits to the letter branch and never retries the digit branch
		{pattern: `\wb`, subject: "ab", want: "ab", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.subject, func(t *testing.T) {
			text, ok := accepts(compileOne(t, tt.pattern), tt.subject)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, text)
			}
		})
	}
}

func TestBuildTerms(t *testing.T) {
	prog := compileOne(t, "ab+[cd]")
	assert.Equal(t, 3, len(prog.Terms))
	assert.False(t, prog.Terms[0].Repeats)
	assert.True(t, prog.Terms[1].Repeats)
	assert.False(t, prog.Terms[2].Repeats)
	assert.Equal(t, "b+", prog.Terms[1].Node.String())

	empty := Build(nil)
	assert.Equal(t, 0, len(empty.Terms))
	r := empty.Parser.Apply(cursor.New("x"))
	assert.True(t, r.IsSuccess())
	assert.Equal(t, 0, r.Units())
}

func TestCompileUnknownNodePanics(t *testing.T) {
	var n ast.Node
	assert.Panics(t, func() { Compile(n) })
}
