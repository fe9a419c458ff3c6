package discovery

import (
	"context"
	"fmt"
	"net"

	"github.com/hashslot/slotctl/pkg/api"
)

// Resolver looks a hostname up and returns one numeric address for it.
type Resolver interface {
	Resolve(ctx context.Context, host string) (string, error)
}

// NetResolver returns a Resolver backed by the system resolver.
func NetResolver() Resolver {
	return &netResolver{r: net.DefaultResolver}
}

type netResolver struct {
	r *net.Resolver
}

func (nr *netResolver) Resolve(ctx context.Context, host string) (string, error) {
	addrs, err := nr.r.LookupHost(ctx, host)
	if err != nil {
		return "", err
	}
	if len(addrs) == 0 {
		return "", fmt.Errorf("no addresses for %q", host)
	}

	return addrs[0], nil
}

// Canonicalize returns rem with its host replaced by a resolved numeric
// address, leaving every other field unchanged. An already-numeric host
// passes through untouched, so canonicalizing twice is a no-op. Failure is
// an api.ResolutionError, and must abort whatever operation needed the
// address (e.g. a join) rather than proceed with an unresolved name.
func Canonicalize(ctx context.Context, r Resolver, rem api.Remote) (api.Remote, error) {
	if net.ParseIP(rem.Host) != nil {
		return rem, nil
	}

	addr, err := r.Resolve(ctx, rem.Host)
	if err != nil {
		return api.Remote{}, &api.ResolutionError{Host: rem.Host, Err: err}
	}

	rem.Host = addr
	return rem, nil
}
