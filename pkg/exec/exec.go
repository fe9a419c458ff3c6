// Package exec wraps every administrative command in a uniform asynchronous
// execution discipline: invoke the transport exactly once, normalize any
// failure (including a synchronous panic from the invocation itself) into
// one Failed outcome, and emit exactly one log event per outcome.
package exec

import (
	"context"
	"fmt"

	"github.com/hashslot/slotctl/pkg/logsink"
	"github.com/hashslot/slotctl/pkg/transport"
)

// Exec issues one command through inv and returns a handle to its outcome.
// desc is the human-readable description of the attempted operation (e.g.
// "migrating slot 42 to node X"), used for the log event, not the raw
// command name.
//
// Callers never need two failure paths: a panic raised synchronously by the
// invocation is converted into the same Failed outcome as a transport error.
// The original cause is logged and then re-surfaced through the handle; it
// is never swallowed.
func Exec(ctx context.Context, inv transport.Invoker, sink logsink.Sink, desc string, name string, args ...string) *Handle {
	return run(ctx, inv, sink, desc, name, args, nil)
}

// ExecOK is Exec for commands whose only meaningful result is the OK
// acknowledgment. Any other terminal value resolves as a failure, and the
// outcome value is nil on success; this is binary, not value-preserving.
func ExecOK(ctx context.Context, inv transport.Invoker, sink logsink.Sink, desc string, name string, args ...string) *Handle {
	return run(ctx, inv, sink, desc, name, args, func(v interface{}) (interface{}, error) {
		if !transport.IsOK(v) {
			return nil, fmt.Errorf("expected %s, got %v", transport.OK, v)
		}
		return nil, nil
	})
}

// Fail returns a handle which has already resolved to a failure, emitting
// the failure log event. For operations which fail before any command can
// be issued (e.g. a join whose target doesn't resolve), so callers see the
// same outcome shape either way.
func Fail(sink logsink.Sink, desc string, err error) *Handle {
	h := newHandle(desc)
	sink.Failure(desc, err)
	h.resolve(Outcome{Err: err})
	return h
}

func run(ctx context.Context, inv transport.Invoker, sink logsink.Sink, desc string, name string, args []string, normalize func(interface{}) (interface{}, error)) *Handle {
	h := newHandle(desc)

	go func() {
		v, err := invoke(ctx, inv, name, args)

		if err == nil && normalize != nil {
			v, err = normalize(v)
		}

		if err != nil {
			sink.Failure(desc, err)
			h.resolve(Outcome{Err: err})
			return
		}

		sink.Success(desc)
		h.resolve(Outcome{Value: v})
	}()

	return h
}

// invoke calls the transport exactly once, converting a panic into an error
// so both failure modes share one channel.
func invoke(ctx context.Context, inv transport.Invoker, name string, args []string) (v interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			v = nil
			err = fmt.Errorf("%s: panic: %v", name, r)
		}
	}()

	return inv.Invoke(ctx, name, args...)
}
