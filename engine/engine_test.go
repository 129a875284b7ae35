package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/snapregex/compiler"
	"github.com/shibukawa/snapregex/parser"
)

func build(t *testing.T, pattern string) *compiler.Program {
	t.Helper()
	terms, err := parser.Parse(pattern)
	assert.NoError(t, err)
	return compiler.Build(terms)
}

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		subject string
		matched bool
		text    string
		offset  int
	}{
		{name: "leftmost offset", pattern: "bc", subject: "abcabc", matched: true, text: "bc", offset: 1},
		{name: "no match", pattern: "abc", subject: "xyz"},
		{name: "empty subject", pattern: "a", subject: ""},
		{name: "greedy then literal", pattern: "a+b", subject: "aaab", matched: true, text: "aaab"},
		{name: "give back one repetition", pattern: "a*a", subject: "aaa", matched: true, text: "aaa"},
		{name: "give back to digit", pattern: `\d+\d`, subject: "x12345", matched: true, text: "12345", offset: 1},
		{name: "optional missing", pattern: "x*y", subject: "y", matched: true, text: "y"},
		{name: "zero width rejected", pattern: "a*", subject: "bbb"},
		{name: "quantifier as last term keeps greed", pattern: "ab*", subject: "abbbc", matched: true, text: "abbb"},
		{name: "bounded count", pattern: "a{2}b", subject: "aaab", matched: true, text: "aab", offset: 1},
		{name: "alternation", pattern: "cat|dog", subject: "hotdog", matched: true, text: "dog", offset: 3},
		{name: "class with quantifier", pattern: "[a-c]+d", subject: "xxabcabd", matched: true, text: "abcabd", offset: 2},
		{name: "walks the whole subject", pattern: ".+e.+g", subject: "processing", matched: true, text: "processing"},
		{name: "runes", pattern: "é*é", subject: "xéé", matched: true, text: "éé", offset: 1},
		{name: "give back cannot cross the offset", pattern: "a+ab", subject: "aab", matched: true, text: "aab"},
		{name: "exhausted marks", pattern: "a+b", subject: "aaac"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Run(context.Background(), build(t, tt.pattern), tt.subject, Options{})
			assert.NoError(t, err)
			assert.Equal(t, tt.matched, m.Matched)
			if tt.matched {
				assert.Equal(t, tt.text, m.Text)
				assert.Equal(t, tt.offset, m.Offset)
			}
		})
	}
}

func TestRunEmptyProgramNeverMatches(t *testing.T) {
	prog := compiler.Build(nil)
	for _, subject := range []string{"", "abc"} {
		m, err := Run(context.Background(), prog, subject, Options{})
		assert.NoError(t, err)
		assert.False(t, m.Matched)
	}
}

// Repetitions of multi-character bodies are given back one character at a
// time, so a repetition can be split. Go's regexp finds no match here.
func TestRunSplitsMultiCharacterRepetition(t *testing.T) {
	m, err := Run(context.Background(), build(t, "(ab)+b"), "abab", Options{})
	assert.NoError(t, err)
	assert.True(t, m.Matched)
	assert.Equal(t, "abab", m.Text)
}

func TestRunStepBudget(t *testing.T) {
	subject := strings.Repeat("a", 100)

	_, err := Run(context.Background(), build(t, "a*b"), subject, Options{MaxSteps: 10})
	assert.IsError(t, err, ErrStepBudgetExceeded)

	m, err := Run(context.Background(), build(t, "a*b"), subject+"b", Options{MaxSteps: 0})
	assert.NoError(t, err)
	assert.True(t, m.Matched)
	assert.True(t, m.Steps > 0)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, build(t, "a*b"), strings.Repeat("a", 1000), Options{})
	assert.IsError(t, err, context.Canceled)
}

func TestRunTrace(t *testing.T) {
	var states []State
	tracer := TracerFunc(func(ev Event) { states = append(states, ev.State) })

	_, err := Run(context.Background(), build(t, "bc"), "abc", Options{Tracer: tracer})
	assert.NoError(t, err)
	assert.Equal(t, []State{Scanning, Walking, NoMatchAtOffset, Scanning, Walking, Matched}, states)

	var events []Event
	tracer = TracerFunc(func(ev Event) { events = append(events, ev) })
	_, err = Run(context.Background(), build(t, "a*a"), "aa", Options{Tracer: tracer})
	assert.NoError(t, err)

	var back *Event
	for i := range events {
		if events[i].State == Backtracking {
			back = &events[i]
			break
		}
	}
	assert.NotZero(t, back)
	assert.Equal(t, 1, back.Term)
	assert.Equal(t, 1, back.Pos)
	assert.Equal(t, "a", back.Text)
	assert.Equal(t, "backtracking", back.State.String())
}
