// Package discovery finds cluster nodes by name and turns names into the
// numeric addresses the cluster join protocol requires.
//
// This is not a general-purpose service discovery interface! It's just the
// specific thing this library needs: a way to get candidate seed nodes, and
// a way to canonicalize their addresses, without letting Consul or DNS
// details get all over the place.
package discovery

import (
	"context"

	"github.com/hashslot/slotctl/pkg/api"
)

// Seeder returns candidate cluster nodes, e.g. to join or to fetch a first
// topology from. Implementations are backed by Consul, DNS, or a static
// list; see the subpackages.
type Seeder interface {
	Seeds(ctx context.Context) ([]api.Remote, error)
}

// Static is a Seeder over a fixed list of remotes. The fallback when there's
// no discovery infrastructure to ask.
type Static []api.Remote

func (s Static) Seeds(ctx context.Context) ([]api.Remote, error) {
	out := make([]api.Remote, len(s))
	copy(out, s)
	return out, nil
}
