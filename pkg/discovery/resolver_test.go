package discovery_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashslot/slotctl/pkg/api"
	"github.com/hashslot/slotctl/pkg/discovery"
	"github.com/hashslot/slotctl/pkg/discovery/mock"
)

func TestCanonicalize(t *testing.T) {
	ctx := context.Background()
	res := &mock.Resolver{Hosts: map[string]string{"kv-1.example.com": "10.0.0.1"}}

	rem, err := discovery.Canonicalize(ctx, res, api.Remote{Host: "kv-1.example.com", Port: 6379})
	require.NoError(t, err)
	assert.Equal(t, api.Remote{Host: "10.0.0.1", Port: 6379}, rem)

	// Idempotent: canonicalizing the result returns it unchanged, without
	// consulting the resolver (10.0.0.1 isn't in the hosts table).
	again, err := discovery.Canonicalize(ctx, res, rem)
	require.NoError(t, err)
	assert.Equal(t, rem, again)
}

func TestCanonicalizeIPv6(t *testing.T) {
	ctx := context.Background()
	res := &mock.Resolver{Hosts: map[string]string{}}

	rem, err := discovery.Canonicalize(ctx, res, api.Remote{Host: "::1", Port: 6379})
	require.NoError(t, err)
	assert.Equal(t, "::1", rem.Host)
}

func TestCanonicalizeUnknownHost(t *testing.T) {
	ctx := context.Background()
	res := &mock.Resolver{Hosts: map[string]string{}}

	_, err := discovery.Canonicalize(ctx, res, api.Remote{Host: "nope.example.com", Port: 6379})
	require.Error(t, err)

	rerr := &api.ResolutionError{}
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "nope.example.com", rerr.Host)
}

func TestStaticSeeder(t *testing.T) {
	ctx := context.Background()
	s := discovery.Static{
		{Host: "10.0.0.1", Port: 6379},
		{Host: "10.0.0.2", Port: 6379},
	}

	seeds, err := s.Seeds(ctx)
	require.NoError(t, err)
	assert.Len(t, seeds, 2)

	// The returned slice is a copy; callers can't mutate the seeder.
	seeds[0].Host = "changed"
	again, _ := s.Seeds(ctx)
	assert.Equal(t, "10.0.0.1", again[0].Host)
}
