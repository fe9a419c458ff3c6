// Package mock provides fixed-answer discovery doubles for tests.
package mock

import (
	"context"
	"fmt"

	"github.com/hashslot/slotctl/pkg/discovery"
)

// Resolver answers lookups from a static hosts table.
type Resolver struct {
	Hosts map[string]string
}

var _ discovery.Resolver = (*Resolver)(nil)

func (r *Resolver) Resolve(ctx context.Context, host string) (string, error) {
	addr, ok := r.Hosts[host]
	if !ok {
		return "", fmt.Errorf("no such host %q", host)
	}
	return addr, nil
}
