// Package engine runs a compiled term list against a subject with the
// mark-stack backtracking strategy.
//
// Offsets are scanned left to right and the first offset at which every term
// is satisfied wins. At each offset the terms are walked in order; a
// quantified term that is not the last one leaves a mark recording how many
// repetitions it could give back. When a later term fails the newest mark is
// popped, one character is returned from the accumulated match and walking
// resumes at the term following the quantifier.
package engine

import (
	"context"
	"time"

	"github.com/shibukawa/snapregex/compiler"
	"github.com/shibukawa/snapregex/cursor"
)

// ErrStepBudgetExceeded is returned when Options.MaxSteps is exhausted.
var ErrStepBudgetExceeded = cursor.ErrStepBudgetExceeded

// Options tunes a single match call.
type Options struct {
	// MaxSteps bounds the work of one call; zero or less means unlimited.
	MaxSteps int
	// Timeout bounds the wall time of one call; zero means none.
	Timeout time.Duration
	// Tracer receives state transitions; nil disables tracing.
	Tracer Tracer
}

// Match is the outcome of a match call. A failed match is not an error.
type Match struct {
	Matched bool
	Text    string
	Offset  int
	Steps   int
}

type mark struct {
	reps   int
	resume int
}

type run struct {
	prog   *compiler.Program
	meter  *cursor.Meter
	tracer Tracer
}

// Run finds the leftmost match of prog in subject. The returned error is
// non-nil only when the step budget or ctx stopped the search.
func Run(ctx context.Context, prog *compiler.Program, subject string, opts Options) (Match, error) {
	if len(prog.Terms) == 0 {
		return Match{}, nil
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	r := &run{
		prog:   prog,
		meter:  cursor.NewMeter(ctx, opts.MaxSteps),
		tracer: opts.Tracer,
	}
	if r.tracer == nil {
		r.tracer = nopTracer{}
	}

	start := cursor.New(subject).WithMeter(r.meter)
	for offset := 0; offset < start.Len(); offset++ {
		if !r.meter.Step() {
			return Match{Steps: r.meter.Steps()}, r.meter.Err()
		}
		r.tracer.Trace(Event{State: Scanning, Offset: offset, Pos: offset})

		text, ok := r.walk(start.Advance(offset))
		if err := r.meter.Err(); err != nil {
			return Match{Steps: r.meter.Steps()}, err
		}
		if ok {
			r.tracer.Trace(Event{State: Matched, Offset: offset, Pos: offset + len([]rune(text)), Text: text})
			return Match{Matched: true, Text: text, Offset: offset, Steps: r.meter.Steps()}, nil
		}
		r.tracer.Trace(Event{State: NoMatchAtOffset, Offset: offset, Pos: offset})
	}

	return Match{Steps: r.meter.Steps()}, nil
}

// walk tries to satisfy every term starting exactly at in.
func (r *run) walk(in cursor.Cursor) (string, bool) {
	offset := in.Pos()
	terms := r.prog.Terms

	var (
		marks []mark
		text  []rune
		idx   int
	)
	for idx < len(terms) {
		if !r.meter.Step() {
			return "", false
		}
		r.tracer.Trace(Event{State: Walking, Offset: offset, Term: idx, Pos: in.Pos(), Text: string(text)})

		term := terms[idx]
		res := term.Parser.Apply(in)
		if res.IsSuccess() {
			text = append(text, []rune(res.Text())...)
			in = res.Remaining()
			if term.Repeats && idx < len(terms)-1 && res.Units() > 0 {
				marks = append(marks, mark{reps: res.Units(), resume: idx + 1})
			}
			idx++
			continue
		}

		if len(marks) == 0 || len(text) == 0 {
			return "", false
		}
		top := marks[len(marks)-1]
		marks = marks[:len(marks)-1]

		text = text[:len(text)-1]
		in = in.Backtrack(1)
		top.reps--
		if top.reps > 0 {
			marks = append(marks, top)
		}
		idx = top.resume
		r.tracer.Trace(Event{State: Backtracking, Offset: offset, Term: idx, Pos: in.Pos(), Text: string(text)})
	}

	// zero-width results never count as a match
	if len(text) == 0 {
		return "", false
	}
	return string(text), true
}
