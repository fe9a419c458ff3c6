// Package topo builds typed point-in-time snapshots of the cluster's own
// view of itself, from the listing format the cluster software uses to
// describe its members. Snapshots are immutable; to observe a change, fetch
// and parse a new one.
package topo

import (
	"fmt"
	"strings"

	"github.com/hashslot/slotctl/pkg/api"
)

// Node is one cluster member as described by a topology listing. Immutable
// snapshot; never mutated in place, only replaced by re-fetching.
type Node struct {
	ID     api.NodeID
	Remote api.Remote
	Role   api.Role
	Link   api.LinkState

	// PrimaryID is the node this one replicates, if it's a replica.
	PrimaryID api.NodeID

	// Flags are the raw flag tokens, e.g. "myself", "master", "fail?".
	Flags []string

	// Slots this node owns, when it's a primary.
	Slots []api.SlotRange

	// Transient per-slot marks bracketing live migrations. Migrating maps a
	// slot moving out to its destination; Importing maps a slot being
	// received to its source.
	Migrating map[api.Slot]api.NodeID
	Importing map[api.Slot]api.NodeID
}

// Myself returns whether this node produced the listing.
func (n Node) Myself() bool {
	for _, f := range n.Flags {
		if f == "myself" {
			return true
		}
	}
	return false
}

// OwnsSlot returns whether the node claims the given slot as stable.
func (n Node) OwnsSlot(s api.Slot) bool {
	for _, r := range n.Slots {
		if r.Contains(s) {
			return true
		}
	}
	return false
}

// SlotCount returns the total number of slots the node owns.
func (n Node) SlotCount() int {
	c := 0
	for _, r := range n.Slots {
		c += r.Count()
	}
	return c
}

func (n Node) String() string {
	return fmt.Sprintf("N{%s %s %s}", n.ID, n.Remote.Addr(), n.Role)
}

// Topology is one point-in-time view of the cluster membership, in listing
// order. In a converged cluster the primaries' slot ranges partition the
// whole slot space; during a migration that may be transiently violated for
// the slots in flight, and callers must tolerate it.
type Topology []Node

// Find returns the node with the given id, if present.
func (t Topology) Find(id api.NodeID) (Node, bool) {
	for _, n := range t {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Self returns the node which produced the listing, if it flagged itself.
func (t Topology) Self() (Node, bool) {
	for _, n := range t {
		if n.Myself() {
			return n, true
		}
	}
	return Node{}, false
}

// Owner returns the primary which claims the given slot as stable, if any.
func (t Topology) Owner(s api.Slot) (Node, bool) {
	for _, n := range t {
		if n.Role == api.RolePrimary && n.OwnsSlot(s) {
			return n, true
		}
	}
	return Node{}, false
}

// Primaries returns the nodes whose role is primary, in listing order.
func (t Topology) Primaries() Topology {
	return t.withRole(api.RolePrimary)
}

// Replicas returns the nodes whose role is replica, in listing order.
func (t Topology) Replicas() Topology {
	return t.withRole(api.RoleReplica)
}

func (t Topology) withRole(role api.Role) Topology {
	out := Topology{}
	for _, n := range t {
		if n.Role == role {
			out = append(out, n)
		}
	}
	return out
}

// In returns the subset of the topology whose ids are in the given set,
// preserving listing order.
func (t Topology) In(ids ...api.NodeID) Topology {
	member := map[api.NodeID]struct{}{}
	for _, id := range ids {
		member[id] = struct{}{}
	}

	out := Topology{}
	for _, n := range t {
		if _, ok := member[n.ID]; ok {
			out = append(out, n)
		}
	}
	return out
}

// IDs returns the node ids in listing order. Mostly for logs and tests.
func (t Topology) IDs() []api.NodeID {
	out := make([]api.NodeID, len(t))
	for i := range t {
		out[i] = t[i].ID
	}
	return out
}

func (t Topology) String() string {
	s := make([]string, len(t))
	for i := range t {
		s[i] = t[i].String()
	}
	return fmt.Sprintf("{%s}", strings.Join(s, " "))
}
