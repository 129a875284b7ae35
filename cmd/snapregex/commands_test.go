package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/snapregex"
	"github.com/shibukawa/snapregex/inspect"
)

func newTestContext(t *testing.T, stdin string) (*Context, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	return &Context{
		Config: filepath.Join(t.TempDir(), "snapregex.yaml"),
		Stdin:  strings.NewReader(stdin),
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

func TestMatchCmd(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		subject string
		want    string
	}{
		{"match", "bc", "abcabc", "\"bc\"\n"},
		{"backoff", ".+e.+g", "processing", "\"processing\"\n"},
		{"failure", "xyz", "abc", "Failure\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, stdout, _ := newTestContext(t, "")
			cmd := &MatchCmd{Pattern: tt.pattern, Subject: tt.subject, MaxSteps: -1}
			assert.NoError(t, cmd.Run(ctx))
			assert.Equal(t, tt.want, stdout.String())
		})
	}

	t.Run("syntax error", func(t *testing.T) {
		ctx, _, _ := newTestContext(t, "")
		cmd := &MatchCmd{Pattern: "(abc", Subject: "abc", MaxSteps: -1}
		assert.IsError(t, cmd.Run(ctx), snapregex.ErrPatternSyntax)
	})

	t.Run("step budget", func(t *testing.T) {
		ctx, _, _ := newTestContext(t, "")
		cmd := &MatchCmd{Pattern: "a*b", Subject: strings.Repeat("a", 100), MaxSteps: 10}
		assert.IsError(t, cmd.Run(ctx), snapregex.ErrStepBudgetExceeded)
	})

	t.Run("trace", func(t *testing.T) {
		ctx, _, stderr := newTestContext(t, "")
		cmd := &MatchCmd{Pattern: "a*a", Subject: "aa", MaxSteps: -1, Trace: true}
		assert.NoError(t, cmd.Run(ctx))
		assert.Contains(t, stderr.String(), "backtracking")
		assert.Contains(t, stderr.String(), "matched")
	})
}

func TestInspectCmd(t *testing.T) {
	ctx, stdout, _ := newTestContext(t, "")
	cmd := &InspectCmd{Pattern: "ab+", Format: "json"}
	assert.NoError(t, cmd.Run(ctx))

	var res inspect.InspectResult
	assert.NoError(t, json.Unmarshal(stdout.Bytes(), &res))
	assert.Equal(t, "ab+", res.Pattern)
	assert.Equal(t, 2, len(res.Terms))
	assert.Equal(t, "Quantifier", res.Terms[1].Kind)

	for _, format := range []string{"text", "yaml", "csv"} {
		ctx, stdout, _ := newTestContext(t, "")
		cmd := &InspectCmd{Pattern: "ab+", Format: format}
		assert.NoError(t, cmd.Run(ctx))
		assert.Contains(t, stdout.String(), "b+")
	}

	ctx, _, _ = newTestContext(t, "")
	assert.IsError(t, (&InspectCmd{Pattern: "[a", Format: "text", Strict: true}).Run(ctx), snapregex.ErrPatternSyntax)
	assert.IsError(t, (&InspectCmd{Pattern: "a", Format: "xml"}).Run(ctx), ErrUnknownFormat)
}

func TestGrepCmd(t *testing.T) {
	t.Run("stdin", func(t *testing.T) {
		ctx, stdout, _ := newTestContext(t, "apple\nbanana\ncherry\n")
		cmd := &GrepCmd{Pattern: "an+a"}
		assert.NoError(t, cmd.Run(ctx))
		assert.Equal(t, "banana\n", stdout.String())
	})

	t.Run("no match", func(t *testing.T) {
		ctx, stdout, _ := newTestContext(t, "apple\n")
		cmd := &GrepCmd{Pattern: `\d`}
		assert.IsError(t, cmd.Run(ctx), ErrNoMatch)
		assert.Equal(t, "", stdout.String())
	})

	t.Run("long line", func(t *testing.T) {
		line := strings.Repeat("x", 100*1024) + "42"
		ctx, stdout, _ := newTestContext(t, line+"\n")
		cmd := &GrepCmd{Pattern: `\d+`}
		assert.NoError(t, cmd.Run(ctx))
		assert.Equal(t, line+"\n", stdout.String())
	})

	t.Run("files", func(t *testing.T) {
		dir := t.TempDir()
		first := filepath.Join(dir, "first.txt")
		second := filepath.Join(dir, "second.txt")
		assert.NoError(t, os.WriteFile(first, []byte("id 42\nnone\n"), 0o644))
		assert.NoError(t, os.WriteFile(second, []byte("x7\n"), 0o644))

		ctx, stdout, _ := newTestContext(t, "")
		cmd := &GrepCmd{Pattern: `\d+`, Files: []string{first, second}}
		assert.NoError(t, cmd.Run(ctx))
		assert.Equal(t, first+":id 42\n"+second+":x7\n", stdout.String())

		ctx, stdout, _ = newTestContext(t, "")
		cmd = &GrepCmd{Pattern: `\d+`, Files: []string{first}, Count: true}
		assert.NoError(t, cmd.Run(ctx))
		assert.Equal(t, "1\n", stdout.String())
	})
}

func TestTestCmd(t *testing.T) {
	ctx, stdout, _ := newTestContext(t, "")
	cmd := &TestCmd{Paths: []string{filepath.Join("..", "..", "testdata", "cases")}}
	assert.NoError(t, cmd.Run(ctx))
	assert.Contains(t, stdout.String(), "All cases passed!")

	dir := t.TempDir()
	src := "# Wrong\n\n## Pattern\n\n```\na+\n```\n\n## Cases\n\n| subject | match |\n|---|---|\n| `aa` | `a` |\n"
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "wrong.md"), []byte(src), 0o644))

	ctx, _, _ = newTestContext(t, "")
	cmd = &TestCmd{Paths: []string{dir}}
	assert.IsError(t, cmd.Run(ctx), ErrCasesFailed)

	ctx, _, _ = newTestContext(t, "")
	cmd = &TestCmd{Paths: []string{t.TempDir()}}
	assert.IsError(t, cmd.Run(ctx), ErrNoCaseFilesFound)
}

func TestCompareCmd(t *testing.T) {
	ctx, stdout, _ := newTestContext(t, "")
	cmd := &CompareCmd{Pattern: "(ab)+b", Subjects: []string{"abab", "abb"}}
	assert.NoError(t, cmd.Run(ctx))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Equal(t, []string{
		`"abab": snapregex="abab" go=Failure differs`,
		`"abb": snapregex="abb" go="abb" same`,
	}, lines)

	ctx, _, _ = newTestContext(t, "")
	assert.IsError(t, (&CompareCmd{Pattern: "a"}).Run(ctx), ErrNoSubjects)
}

func TestVersionCmd(t *testing.T) {
	ctx, stdout, _ := newTestContext(t, "")
	assert.NoError(t, (&VersionCmd{}).Run(ctx))
	assert.Equal(t, "snapregex v0.1.0\n", stdout.String())
}
