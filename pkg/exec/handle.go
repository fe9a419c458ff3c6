package exec

import (
	"context"
	"fmt"
)

// Outcome is the terminal result of one command: Ok carries the raw value,
// Failed carries the cause. Exactly one of Value/Err is meaningful.
type Outcome struct {
	Value interface{}
	Err   error
}

// Handle is a future-like handle for one in-flight command. It resolves to
// exactly one Outcome; the outcome is never replaced.
//
// Abandoning a handle (returning from Wait on ctx cancellation, or never
// waiting at all) does not un-send the command: the remote node may still
// have applied it. After abandoning, re-check remote state before retrying
// rather than assuming non-application.
type Handle struct {
	desc    string
	done    chan struct{}
	outcome Outcome // written once, before done closes
}

func newHandle(desc string) *Handle {
	return &Handle{
		desc: desc,
		done: make(chan struct{}),
	}
}

// resolve sets the outcome. Must be called exactly once.
func (h *Handle) resolve(o Outcome) {
	h.outcome = o
	close(h.done)
}

// Done is closed once the command has resolved.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the command resolves or ctx is done, and returns the
// outcome. A ctx error means the handle was abandoned, not that the command
// failed; it may still resolve later.
func (h *Handle) Wait(ctx context.Context) (interface{}, error) {
	select {
	case <-h.done:
		return h.outcome.Value, h.outcome.Err
	case <-ctx.Done():
		return nil, fmt.Errorf("abandoned %s: %w", h.desc, ctx.Err())
	}
}

// Outcome returns the resolved outcome, or false if still in flight.
func (h *Handle) Outcome() (Outcome, bool) {
	select {
	case <-h.done:
		return h.outcome, true
	default:
		return Outcome{}, false
	}
}

func (h *Handle) String() string {
	return h.desc
}
