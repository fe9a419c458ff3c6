package logsink

import (
	"sync"
)

// Event is one captured log event. Cause is nil for successes.
type Event struct {
	Msg   string
	Cause error
}

// Capture is a Sink which records events for tests.
type Capture struct {
	mu     sync.Mutex
	events []Event
}

func NewCapture() *Capture {
	return &Capture{}
}

func (c *Capture) Success(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, Event{Msg: msg})
}

func (c *Capture) Failure(msg string, cause error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, Event{Msg: msg, Cause: cause})
}

func (c *Capture) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}
