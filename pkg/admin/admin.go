// Package admin drives the administrative protocol of a slot-sharded KV
// cluster: membership, replication, and the slot-migration state machine.
// One Admin is bound to one node's transport; operations against other nodes
// need their own Admin.
//
// All state lives on the cluster, not here. The Admin only issues
// transitions and re-queries to confirm; it never caches a topology, never
// retries, and never verifies preconditions beyond sequencing what it is
// told. Whether a failed step should be retried or the migration aborted is
// the caller's decision, because only the caller knows what else is in
// flight.
package admin

import (
	"github.com/hashslot/slotctl/pkg/discovery"
	"github.com/hashslot/slotctl/pkg/logsink"
	"github.com/hashslot/slotctl/pkg/transport"
)

// Codec encodes application-level keys into their wire representation and
// back. Commands which take or return keys pass through this; everything
// else ignores it.
type Codec interface {
	Encode(key string) string
	Decode(raw string) (string, error)
}

// RawCodec passes keys through unchanged.
type RawCodec struct{}

func (RawCodec) Encode(key string) string          { return key }
func (RawCodec) Decode(raw string) (string, error) { return raw, nil }

// Admin issues administrative commands against a single cluster node.
type Admin struct {
	inv   transport.Invoker
	codec Codec
	res   discovery.Resolver
	sink  logsink.Sink
}

// New binds an Admin to one node's transport. The codec is used for key
// commands, the resolver for canonicalizing join targets, and the sink
// receives exactly one event per command outcome.
func New(inv transport.Invoker, codec Codec, res discovery.Resolver, sink logsink.Sink) *Admin {
	return &Admin{
		inv:   inv,
		codec: codec,
		res:   res,
		sink:  sink,
	}
}
