package cursor

import (
	"context"
	"errors"
	"fmt"
)

// ErrStepBudgetExceeded is reported when a match runs out of its step budget.
var ErrStepBudgetExceeded = errors.New("match step budget exceeded")

// contextCheckInterval is how many steps pass between context polls.
const contextCheckInterval = 256

// Meter bounds the work of one match attempt. It is owned by a single match
// call and must not be shared between goroutines.
type Meter struct {
	ctx   context.Context
	limit int
	steps int
	err   error
}

// NewMeter creates a meter. limit <= 0 disables the step budget; ctx may
// carry a deadline or be cancelled.
func NewMeter(ctx context.Context, limit int) *Meter {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Meter{ctx: ctx, limit: limit}
}

// Step records one unit of work. A nil meter always allows it.
func (m *Meter) Step() bool {
	if m == nil {
		return true
	}
	if m.err != nil {
		return false
	}
	m.steps++
	if m.limit > 0 && m.steps > m.limit {
		m.err = fmt.Errorf("%w: limit %d", ErrStepBudgetExceeded, m.limit)
		return false
	}
	if m.steps%contextCheckInterval == 0 {
		if err := m.ctx.Err(); err != nil {
			m.err = err
			return false
		}
	}
	return true
}

// Steps returns the work recorded so far.
func (m *Meter) Steps() int {
	if m == nil {
		return 0
	}
	return m.steps
}

// Err returns why the meter stopped, or nil.
func (m *Meter) Err() error {
	if m == nil {
		return nil
	}
	return m.err
}
