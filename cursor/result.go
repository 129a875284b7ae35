package cursor

import "fmt"

// Result is the outcome of applying a parser to a cursor: either a success
// carrying the matched text, the cursor after the match and a unit count, or
// a failure.
//
// Units is 1 for single-step parsers. Repetition parsers store the number of
// accepted repetitions there instead of a character count, and the match
// engine relies on that when it gives repetitions back.
type Result struct {
	ok        bool
	text      string
	units     int
	remaining Cursor
}

// Success builds a one-unit success.
func Success(text string, remaining Cursor) Result {
	return Result{ok: true, text: text, units: 1, remaining: remaining}
}

// SuccessN builds a success with an explicit unit count.
func SuccessN(text string, remaining Cursor, units int) Result {
	if units < 0 {
		panic("cursor: unit count must be greater than or equal to zero")
	}
	return Result{ok: true, text: text, units: units, remaining: remaining}
}

// Failure builds a failed result.
func Failure() Result {
	return Result{}
}

// IsSuccess reports whether the parser matched.
func (r Result) IsSuccess() bool { return r.ok }

// Text returns the matched text. It is empty for failures.
func (r Result) Text() string { return r.text }

// Units returns the consumed-unit count of a success.
func (r Result) Units() int { return r.units }

// Remaining returns the cursor after the match.
func (r Result) Remaining() Cursor { return r.remaining }

// WithUnits returns a copy of a success with a different unit count.
func (r Result) WithUnits(n int) Result {
	if !r.ok {
		return r
	}
	return SuccessN(r.text, r.remaining, n)
}

func (r Result) String() string {
	if !r.ok {
		return "Failure"
	}
	return fmt.Sprintf("%q units:%d", r.text, r.units)
}
