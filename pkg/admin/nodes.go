package admin

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hashslot/slotctl/pkg/api"
	"github.com/hashslot/slotctl/pkg/discovery"
	"github.com/hashslot/slotctl/pkg/exec"
	"github.com/hashslot/slotctl/pkg/topo"
)

// Join asks this node to meet the given peer, adding it to the cluster. The
// peer's host is canonicalized first, because the cluster join protocol
// identifies peers by address, not name; if the name doesn't resolve, the
// join is aborted rather than issued with an unresolved name.
func (a *Admin) Join(ctx context.Context, peer api.Remote) *exec.Handle {
	desc := fmt.Sprintf("joining cluster with peer %s", peer.Addr())

	peer, err := discovery.Canonicalize(ctx, a.res, peer)
	if err != nil {
		return a.abort(desc, err)
	}

	return exec.ExecOK(ctx, a.inv, a.sink, fmt.Sprintf("%s (%s)", desc, peer.Addr()),
		"CLUSTER", "MEET", peer.Host, strconv.Itoa(peer.Port))
}

// Forget removes the given node from this node's view of the cluster. The
// node's own id is looked up first to annotate the log event; that lookup is
// best-effort, and the forget is issued regardless.
func (a *Admin) Forget(ctx context.Context, node api.NodeID) *exec.Handle {
	self := a.selfForLog(ctx)
	desc := fmt.Sprintf("node %s forgetting node %s", self, node)
	return exec.ExecOK(ctx, a.inv, a.sink, desc,
		"CLUSTER", "FORGET", node.String())
}

// Replicate makes this node a replica of the given primary.
func (a *Admin) Replicate(ctx context.Context, primary api.NodeID) *exec.Handle {
	self, err := a.MyID(ctx)
	if err != nil {
		return a.abort(fmt.Sprintf("replicating node %s", primary), err)
	}

	desc := fmt.Sprintf("node %s replicating node %s", self, primary)
	return exec.ExecOK(ctx, a.inv, a.sink, desc,
		"CLUSTER", "REPLICATE", primary.String())
}

// Failover promotes this node (a replica) to primary. With force, the node
// takes over without negotiating with its old primary; use that only when
// the primary is gone.
func (a *Admin) Failover(ctx context.Context, force bool) *exec.Handle {
	self, err := a.MyID(ctx)
	if err != nil {
		return a.abort("failing over", err)
	}

	desc := fmt.Sprintf("failing over to node %s (force=%t)", self, force)
	args := []string{"FAILOVER"}
	if force {
		args = append(args, "FORCE")
	}

	return exec.ExecOK(ctx, a.inv, a.sink, desc, "CLUSTER", args...)
}

// Reset wipes this node's cluster state. A hard reset also discards the
// node's id, so it comes back as a brand-new member.
func (a *Admin) Reset(ctx context.Context, hard bool) *exec.Handle {
	self, err := a.MyID(ctx)
	if err != nil {
		return a.abort("resetting", err)
	}

	mode := "SOFT"
	if hard {
		mode = "HARD"
	}

	desc := fmt.Sprintf("resetting node %s (%s)", self, mode)
	return exec.ExecOK(ctx, a.inv, a.sink, desc,
		"CLUSTER", "RESET", mode)
}

// MyID returns the id of the node this Admin is bound to.
func (a *Admin) MyID(ctx context.Context) (api.NodeID, error) {
	h := exec.Exec(ctx, a.inv, a.sink, "fetching own node id",
		"CLUSTER", "MYID")

	v, err := h.Wait(ctx)
	if err != nil {
		return api.ZeroNodeID, err
	}

	s, ok := v.(string)
	if !ok {
		return api.ZeroNodeID, fmt.Errorf("expected string response, got %T", v)
	}

	return api.NodeID(s), nil
}

// Nodes fetches and parses this node's current view of the cluster. The
// snapshot is yours; it's never cached here, so re-fetch when staleness
// matters.
func (a *Admin) Nodes(ctx context.Context) (topo.Topology, error) {
	h := exec.Exec(ctx, a.inv, a.sink, "fetching topology",
		"CLUSTER", "NODES")

	v, err := h.Wait(ctx)
	if err != nil {
		return nil, err
	}

	raw, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("expected string response, got %T", v)
	}

	return topo.Parse(raw)
}

// Info fetches and parses the cluster health summary, e.g. to check
// cluster_slots_assigned before attempting mutations.
func (a *Admin) Info(ctx context.Context) (map[string]string, error) {
	h := exec.Exec(ctx, a.inv, a.sink, "fetching cluster info",
		"CLUSTER", "INFO")

	v, err := h.Wait(ctx)
	if err != nil {
		return nil, err
	}

	raw, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("expected string response, got %T", v)
	}

	return topo.ParseInfo(raw)
}

// selfForLog is MyID for log annotation only: lookup failures degrade to a
// placeholder instead of failing the enclosing operation.
func (a *Admin) selfForLog(ctx context.Context) string {
	id, err := a.MyID(ctx)
	if err != nil {
		return "(unknown)"
	}
	return id.String()
}

// abort returns a handle which has already failed, without invoking the
// transport. Same outcome shape and same single log event as a transport
// failure, so callers still have just one failure path.
func (a *Admin) abort(desc string, err error) *exec.Handle {
	return exec.Fail(a.sink, desc, err)
}
