package admin

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hashslot/slotctl/pkg/api"
)

// Migration pairs the two sides of one slot move. The Admins are bound to
// the source and destination nodes; the ids are the cluster's names for
// those same nodes. Getting those pairings wrong is not detectable here --
// the cluster will accept the marks either way.
type Migration struct {
	Slot     api.Slot
	Source   *Admin
	SourceID api.NodeID
	Dest     *Admin
	DestID   api.NodeID
}

// Begin sets both transient marks: Migrating on the source, Importing on
// the destination. Both must succeed before any key is copied; Begin awaits
// both and fails if either side failed. A failed Begin leaves whichever
// mark did land in place -- re-issue (the marks are idempotent) or Abort,
// whichever the situation calls for.
func (m Migration) Begin(ctx context.Context) error {
	var g errgroup.Group

	g.Go(func() error {
		_, err := m.Source.SetSlotMigrating(ctx, m.Slot, m.DestID).Wait(ctx)
		return err
	})

	g.Go(func() error {
		_, err := m.Dest.SetSlotImporting(ctx, m.Slot, m.SourceID).Wait(ctx)
		return err
	})

	return g.Wait()
}

// Drained reports whether the source holds no more keys in the slot, i.e.
// the data copy is complete and the migration can be finalized. Poll this;
// the copy itself happens outside this library.
func (m Migration) Drained(ctx context.Context) (bool, error) {
	n, err := m.Source.CountKeysInSlot(ctx, m.Slot)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// Finish finalizes the migration: the authoritative ownership change on the
// destination first, then clearing the transient marks on both sides and
// releasing the source's claim. Only call this once Drained; nothing here
// re-checks.
//
// If a step fails, Finish returns the failure and stops. It does not roll
// anything back: by this point the destination may already own the slot,
// and only the caller knows whether retrying the remaining steps is safer
// than abandoning them.
func (m Migration) Finish(ctx context.Context) error {
	if _, err := m.Dest.AssignSlot(ctx, m.Slot, m.DestID).Wait(ctx); err != nil {
		return err
	}

	var g errgroup.Group

	g.Go(func() error {
		_, err := m.Dest.SetSlotStable(ctx, m.Slot).Wait(ctx)
		return err
	})

	g.Go(func() error {
		// Same node, so these two are ordered. Clear the mark, then release
		// the claim.
		if _, err := m.Source.SetSlotStable(ctx, m.Slot).Wait(ctx); err != nil {
			return err
		}
		_, err := m.Source.UnassignSlot(ctx, m.Slot).Wait(ctx)
		return err
	})

	return g.Wait()
}

// Abort clears the transient marks on both sides, returning the slot to
// stable on its current owner. Only safe before Finish has started; after
// that, the ownership change may already have landed.
func (m Migration) Abort(ctx context.Context) error {
	var g errgroup.Group

	g.Go(func() error {
		_, err := m.Source.SetSlotStable(ctx, m.Slot).Wait(ctx)
		return err
	})

	g.Go(func() error {
		_, err := m.Dest.SetSlotStable(ctx, m.Slot).Wait(ctx)
		return err
	})

	return g.Wait()
}
