package admin

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hashslot/slotctl/pkg/api"
	"github.com/hashslot/slotctl/pkg/exec"
)

// The slot-migration state machine, per slot:
//
//	Stable(src) -> Migrating(src->dst) & Importing(dst<-src) -> Reassigned(dst)
//
// Both transient marks must be set (on their respective nodes) before any
// key is copied, and AssignSlot on the destination plus SetSlotStable /
// UnassignSlot on the source must both succeed before the migration is
// complete. Clearing one mark without the other leaves the cluster in a
// non-terminal, inconsistent state.
//
// The Admin sequences exactly what it's asked to and nothing more: it does
// not check that SetSlotImporting succeeded before accepting AssignSlot.
// Callers own that ordering (see the Begin/Finish helpers), and own the
// decision to retry or abort when a step fails. On failure the transient
// marks are left in place; there is no auto-rollback.

// SetSlotMigrating marks a slot on this node as moving out to dest. The
// cluster tolerates redundant marks, so reissuing with the same destination
// is a no-op success.
func (a *Admin) SetSlotMigrating(ctx context.Context, slot api.Slot, dest api.NodeID) *exec.Handle {
	desc := fmt.Sprintf("migrating slot %d to node %s", slot, dest)
	return exec.ExecOK(ctx, a.inv, a.sink, desc,
		"CLUSTER", "SETSLOT", slot.String(), "MIGRATING", dest.String())
}

// SetSlotImporting marks a slot on this node as being received from source.
// Idempotent in the same way as SetSlotMigrating.
func (a *Admin) SetSlotImporting(ctx context.Context, slot api.Slot, source api.NodeID) *exec.Handle {
	desc := fmt.Sprintf("importing slot %d from node %s", slot, source)
	return exec.ExecOK(ctx, a.inv, a.sink, desc,
		"CLUSTER", "SETSLOT", slot.String(), "IMPORTING", source.String())
}

// SetSlotStable clears any transient mark on this node for the slot. Used
// both to abort a migration and to finalize one after reassignment.
func (a *Admin) SetSlotStable(ctx context.Context, slot api.Slot) *exec.Handle {
	desc := fmt.Sprintf("stabilizing slot %d", slot)
	return exec.ExecOK(ctx, a.inv, a.sink, desc,
		"CLUSTER", "SETSLOT", slot.String(), "STABLE")
}

// AssignSlot makes the authoritative ownership change, pointing the slot at
// the given node. Only issue this once the slot's data has fully copied;
// the copy itself is the transport's (or operator's) business, not ours.
func (a *Admin) AssignSlot(ctx context.Context, slot api.Slot, node api.NodeID) *exec.Handle {
	desc := fmt.Sprintf("assigning slot %d to node %s", slot, node)
	return exec.ExecOK(ctx, a.inv, a.sink, desc,
		"CLUSTER", "SETSLOT", slot.String(), "NODE", node.String())
}

// UnassignSlot removes the slot from this node's ownership.
func (a *Admin) UnassignSlot(ctx context.Context, slot api.Slot) *exec.Handle {
	desc := fmt.Sprintf("unassigning slot %d", slot)
	return exec.ExecOK(ctx, a.inv, a.sink, desc,
		"CLUSTER", "DELSLOTS", slot.String())
}

// CountKeysInSlot returns the number of keys the node holds in the slot.
// Callers poll this on the source to detect when a migration's data copy is
// complete (it reaches zero) before finalizing.
func (a *Admin) CountKeysInSlot(ctx context.Context, slot api.Slot) (int64, error) {
	desc := fmt.Sprintf("counting keys in slot %d", slot)
	h := exec.Exec(ctx, a.inv, a.sink, desc,
		"CLUSTER", "COUNTKEYSINSLOT", slot.String())

	v, err := h.Wait(ctx)
	if err != nil {
		return 0, err
	}

	return asInt(v)
}

// KeysInSlot returns up to limit keys the node holds in the slot, in the
// order the node reports them, decoded through the codec. An empty slot
// yields an empty slice, not an error.
func (a *Admin) KeysInSlot(ctx context.Context, slot api.Slot, limit int) ([]string, error) {
	desc := fmt.Sprintf("listing up to %d keys in slot %d", limit, slot)
	h := exec.Exec(ctx, a.inv, a.sink, desc,
		"CLUSTER", "GETKEYSINSLOT", slot.String(), strconv.Itoa(limit))

	v, err := h.Wait(ctx)
	if err != nil {
		return nil, err
	}

	raw, ok := v.([]string)
	if !ok {
		return nil, fmt.Errorf("expected []string response, got %T", v)
	}

	keys := make([]string, len(raw))
	for i, r := range raw {
		keys[i], err = a.codec.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("decoding key %d: %w", i, err)
		}
	}

	return keys, nil
}

func asInt(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	}
	return 0, fmt.Errorf("expected integer response, got %T", v)
}
