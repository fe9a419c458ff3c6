// Package consul finds cluster seed nodes via the Consul service catalog.
// Nodes are expected to be registered (by their deployment tooling, not by
// this library) under a single service name.
package consul

import (
	"context"

	"github.com/hashicorp/consul/api"

	capi "github.com/hashslot/slotctl/pkg/api"
	"github.com/hashslot/slotctl/pkg/discovery"
)

type Seeder struct {
	svcName string
	consul  *api.Client
}

var _ discovery.Seeder = (*Seeder)(nil)

func New(serviceName string, cfg *api.Config) (*Seeder, error) {
	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return &Seeder{
		svcName: serviceName,
		consul:  client,
	}, nil
}

func (s *Seeder) Seeds(ctx context.Context) ([]capi.Remote, error) {
	opts := (&api.QueryOptions{}).WithContext(ctx)

	res, _, err := s.consul.Catalog().Service(s.svcName, "", opts)
	if err != nil {
		return nil, err
	}

	output := make([]capi.Remote, len(res))
	for i, r := range res {
		output[i] = capi.Remote{
			Host: r.ServiceAddress,
			Port: r.ServicePort,
		}

		// Services registered without an explicit address inherit the agent
		// node's address.
		if output[i].Host == "" {
			output[i].Host = r.Address
		}
	}

	return output, nil
}
