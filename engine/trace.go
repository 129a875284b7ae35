package engine

// State is a match state-machine state.
type State int

const (
	// Scanning starts the attempt at a new offset.
	Scanning State = iota
	// Walking applies the term at Event.Term.
	Walking
	// Backtracking gave one character back and resumes at Event.Term.
	Backtracking
	// Matched ends the search successfully.
	Matched
	// NoMatchAtOffset abandons the current offset.
	NoMatchAtOffset
)

func (s State) String() string {
	switch s {
	case Scanning:
		return "scanning"
	case Walking:
		return "walking"
	case Backtracking:
		return "backtracking"
	case Matched:
		return "matched"
	case NoMatchAtOffset:
		return "no-match-at-offset"
	default:
		return "unknown"
	}
}

// Event is one state transition. Pos is the subject cursor position and Text
// the characters accumulated at the current offset so far.
type Event struct {
	State  State
	Offset int
	Term   int
	Pos    int
	Text   string
}

// Tracer observes a match. It is called synchronously from the matching
// goroutine.
type Tracer interface {
	Trace(ev Event)
}

// TracerFunc adapts a function to Tracer.
type TracerFunc func(ev Event)

// Trace calls f.
func (f TracerFunc) Trace(ev Event) { f(ev) }

type nopTracer struct{}

func (nopTracer) Trace(Event) {}
