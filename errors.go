package snapregex

import (
	"errors"

	"github.com/shibukawa/snapregex/engine"
	"github.com/shibukawa/snapregex/parser"
)

// Common errors used throughout the snapregex package
var (
	// ErrPatternSyntax is returned by Compile for any unparseable pattern.
	// The concrete error is a *parser.SyntaxError.
	ErrPatternSyntax = parser.ErrPatternSyntax
	// ErrStepBudgetExceeded is returned when a match runs out of its step budget.
	ErrStepBudgetExceeded = engine.ErrStepBudgetExceeded

	// ErrConfigValidation is returned when configuration validation fails.
	ErrConfigValidation = errors.New("configuration validation failed")
	// ErrInvalidColorMode indicates output.color is not one of auto, always, never.
	ErrInvalidColorMode = errors.New("invalid color mode")
	// ErrNegativeLimit indicates a negative step budget, timeout or parallelism.
	ErrNegativeLimit = errors.New("limit must not be negative")
)
