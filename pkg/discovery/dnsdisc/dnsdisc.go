// Package dnsdisc finds cluster seed nodes via DNS-SD: an SRV lookup for a
// service name, then an A lookup for each SRV target. Useful where the
// cluster is deployed behind a DNS zone (e.g. headless services) rather than
// a Consul catalog.
package dnsdisc

import (
	"context"
	"fmt"
	"strings"

	"github.com/miekg/dns"

	"github.com/hashslot/slotctl/pkg/api"
	"github.com/hashslot/slotctl/pkg/discovery"
)

type Seeder struct {
	// Service is the SRV name to look up, e.g. "_kv._tcp.cluster.example.com.".
	service string

	// Server is the DNS server to ask, as host:port.
	server string

	client *dns.Client
}

var _ discovery.Seeder = (*Seeder)(nil)

func New(service, server string) *Seeder {
	return &Seeder{
		service: dns.Fqdn(service),
		server:  server,
		client:  &dns.Client{},
	}
}

func (s *Seeder) Seeds(ctx context.Context) ([]api.Remote, error) {
	srvs, err := s.querySRV(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]api.Remote, 0, len(srvs))
	for _, srv := range srvs {
		addr, err := s.queryA(ctx, srv.Target)
		if err != nil {
			return nil, err
		}

		out = append(out, api.Remote{
			Host: addr,
			Port: int(srv.Port),
		})
	}

	return out, nil
}

func (s *Seeder) querySRV(ctx context.Context) ([]*dns.SRV, error) {
	m := &dns.Msg{}
	m.SetQuestion(s.service, dns.TypeSRV)

	res, _, err := s.client.ExchangeContext(ctx, m, s.server)
	if err != nil {
		return nil, err
	}
	if res.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("SRV %s: %s", s.service, dns.RcodeToString[res.Rcode])
	}

	srvs := []*dns.SRV{}
	for _, rr := range res.Answer {
		if srv, ok := rr.(*dns.SRV); ok {
			srvs = append(srvs, srv)
		}
	}

	return srvs, nil
}

func (s *Seeder) queryA(ctx context.Context, target string) (string, error) {
	m := &dns.Msg{}
	m.SetQuestion(dns.Fqdn(target), dns.TypeA)

	res, _, err := s.client.ExchangeContext(ctx, m, s.server)
	if err != nil {
		return "", err
	}

	for _, rr := range res.Answer {
		if a, ok := rr.(*dns.A); ok {
			return a.A.String(), nil
		}
	}

	return "", fmt.Errorf("no A record for %q", strings.TrimSuffix(target, "."))
}
