package parser

import (
	"errors"
	"fmt"
)

// Sentinel errors - Parser related
var (
	// ErrPatternSyntax is the sentinel every pattern syntax error unwraps to.
	ErrPatternSyntax = errors.New("invalid pattern syntax")

	// errNotMatch signals that a grammar rule does not apply at the current
	// position. It never escapes Parse.
	errNotMatch = errors.New("not match")
)

// SyntaxError describes why a pattern could not be parsed.
type SyntaxError struct {
	Pattern string
	Offset  int
	Reason  string
	Cause   error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s at offset %d in %q", ErrPatternSyntax, e.Reason, e.Offset, e.Pattern)
}

// Unwrap exposes both the syntax sentinel and the underlying cause, if any.
func (e *SyntaxError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrPatternSyntax, e.Cause}
	}
	return []error{ErrPatternSyntax}
}
