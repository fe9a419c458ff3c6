// Package transport defines the contract between this library and the
// low-level wire client which actually talks to a cluster node. The wire
// client itself is not implemented here; callers bring their own.
package transport

import (
	"context"
)

// Invoker executes a single administrative command against one cluster node
// and returns its raw response: a string, an int64, or a []string, depending
// on the command. Invoke blocks until the command resolves or ctx is done.
//
// The invoker is assumed to deliver commands issued sequentially by a single
// caller in issuance order. That's required by the migration sequencing in
// pkg/admin; callers needing strict cross-command order must await each
// command before issuing the next.
//
// Timeouts and retries are the invoker's (or its caller's) concern. Nothing
// in this library retries, and nothing imposes a deadline beyond ctx.
type Invoker interface {
	Invoke(ctx context.Context, name string, args ...string) (interface{}, error)
}

// OK is the acknowledgment response for commands whose only meaningful
// result is that they were applied.
const OK = "OK"

// IsOK returns whether a raw response is the simple acknowledgment string.
// Commands wrapped with this have a binary outcome: any other terminal value
// is a failure, not a result.
func IsOK(v interface{}) bool {
	s, ok := v.(string)
	return ok && s == OK
}
