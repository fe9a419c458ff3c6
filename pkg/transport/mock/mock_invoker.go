// Package mock provides a scripted Invoker for tests. It records every
// command in issuance order, and returns whatever response was primed for
// the command name, defaulting to OK.
package mock

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/hashslot/slotctl/pkg/transport"
)

type Call struct {
	Name string
	Args []string
}

func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return fmt.Sprintf("%s %s", c.Name, strings.Join(c.Args, " "))
}

type response struct {
	value interface{}
	err   error
	panik interface{}
}

type Invoker struct {
	mu    sync.Mutex
	calls []Call

	// Primed responses, keyed by command name, consumed FIFO. A name with no
	// primed responses answers OK.
	queued map[string][]response
}

var _ transport.Invoker = (*Invoker)(nil)

func New() *Invoker {
	return &Invoker{
		queued: map[string][]response{},
	}
}

// Prime queues a successful response for the next invocation of name.
func (inv *Invoker) Prime(name string, value interface{}) {
	inv.push(name, response{value: value})
}

// PrimeErr queues a failure for the next invocation of name.
func (inv *Invoker) PrimeErr(name string, err error) {
	inv.push(name, response{err: err})
}

// PrimePanic makes the next invocation of name panic synchronously, to
// exercise the caller's recovery path.
func (inv *Invoker) PrimePanic(name string, v interface{}) {
	inv.push(name, response{panik: v})
}

func (inv *Invoker) push(name string, r response) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.queued[name] = append(inv.queued[name], r)
}

func (inv *Invoker) Invoke(ctx context.Context, name string, args ...string) (interface{}, error) {
	inv.mu.Lock()
	inv.calls = append(inv.calls, Call{Name: name, Args: args})

	q := inv.queued[name]
	if len(q) == 0 {
		inv.mu.Unlock()
		return transport.OK, nil
	}

	r := q[0]
	inv.queued[name] = q[1:]
	inv.mu.Unlock()

	if r.panik != nil {
		panic(r.panik)
	}

	return r.value, r.err
}

// Calls returns a copy of every call made so far, in issuance order.
func (inv *Invoker) Calls() []Call {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	out := make([]Call, len(inv.calls))
	copy(out, inv.calls)
	return out
}

// Commands returns just the command names, in issuance order. Convenient for
// asserting sequencing.
func (inv *Invoker) Commands() []string {
	calls := inv.Calls()
	out := make([]string, len(calls))
	for i := range calls {
		out[i] = calls[i].Name
	}
	return out
}
