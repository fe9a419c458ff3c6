// Package watch polls a node's view of the cluster and notifies on
// membership changes. The cluster has no push channel for topology, so this
// is a poll loop; the interval is jittered so a fleet of watchers doesn't
// thundering-herd the node they all watch.
package watch

import (
	"context"
	"sync"
	"time"

	"github.com/lthibault/jitterbug"

	"github.com/hashslot/slotctl/pkg/api"
	"github.com/hashslot/slotctl/pkg/topo"
)

type Config struct {
	// How often to re-fetch the topology.
	Interval time.Duration

	// Stdev of the jitter applied to each interval. Zero means a tenth of
	// the interval.
	Stdev time.Duration
}

// Source provides topology snapshots. *admin.Admin satisfies this.
type Source interface {
	Nodes(ctx context.Context) (topo.Topology, error)
}

type Watcher struct {
	cfg Config
	src Source

	// Called when a node appears in / vanishes from the topology. Invoked
	// from the watch goroutine, so keep them quick.
	add    func(topo.Node)
	remove func(topo.Node)

	mu     sync.RWMutex
	known  map[api.NodeID]topo.Node
	latest topo.Topology
}

func New(cfg Config, src Source, add, remove func(topo.Node)) *Watcher {
	if cfg.Stdev == 0 {
		cfg.Stdev = cfg.Interval / 10
	}

	return &Watcher{
		cfg:    cfg,
		src:    src,
		add:    add,
		remove: remove,
		known:  map[api.NodeID]topo.Node{},
	}
}

// Run polls until ctx is done. The first fetch happens immediately, so
// callers can start the watcher and promptly see the initial membership via
// the add callback.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := jitterbug.New(w.cfg.Interval, &jitterbug.Norm{Stdev: w.cfg.Stdev})
	defer ticker.Stop()

	for {
		if err := w.tick(ctx); err != nil {
			// A failed poll isn't fatal; the next tick re-fetches. The
			// error is surfaced only if the caller tears us down.
			select {
			case <-ctx.Done():
				return err
			default:
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *Watcher) tick(ctx context.Context) error {
	t, err := w.src.Nodes(ctx)
	if err != nil {
		return err
	}

	seen := map[api.NodeID]struct{}{}
	added := []topo.Node{}
	removed := []topo.Node{}

	w.mu.Lock()

	for _, n := range t {
		seen[n.ID] = struct{}{}

		if _, ok := w.known[n.ID]; !ok {
			w.known[n.ID] = n
			added = append(added, n)
		}
	}

	for id, n := range w.known {
		if _, ok := seen[id]; !ok {
			delete(w.known, id)
			removed = append(removed, n)
		}
	}

	w.latest = t
	w.mu.Unlock()

	// Call back outside the lock, in case a callback turns around and calls
	// Latest.
	for _, n := range added {
		if w.add != nil {
			w.add(n)
		}
	}
	for _, n := range removed {
		if w.remove != nil {
			w.remove(n)
		}
	}

	return nil
}

// Latest returns the most recent snapshot, or nil before the first
// successful poll.
func (w *Watcher) Latest() topo.Topology {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.latest
}
