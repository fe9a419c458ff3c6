package admin

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashslot/slotctl/pkg/logsink"
	"github.com/hashslot/slotctl/pkg/transport/mock"
)

func newTestAdmin() (*Admin, *mock.Invoker, *logsink.Capture) {
	inv := mock.New()
	sink := logsink.NewCapture()
	a := New(inv, RawCodec{}, nil, sink)
	return a, inv, sink
}

func TestSlotCommands(t *testing.T) {
	ctx := context.Background()

	examples := []struct {
		name string
		call func(a *Admin) error
		want string
	}{
		{
			name: "migrating",
			call: func(a *Admin) error {
				_, err := a.SetSlotMigrating(ctx, 42, "nB").Wait(ctx)
				return err
			},
			want: "CLUSTER SETSLOT 42 MIGRATING nB",
		},
		{
			name: "importing",
			call: func(a *Admin) error {
				_, err := a.SetSlotImporting(ctx, 42, "nA").Wait(ctx)
				return err
			},
			want: "CLUSTER SETSLOT 42 IMPORTING nA",
		},
		{
			name: "stable",
			call: func(a *Admin) error {
				_, err := a.SetSlotStable(ctx, 42).Wait(ctx)
				return err
			},
			want: "CLUSTER SETSLOT 42 STABLE",
		},
		{
			name: "assign",
			call: func(a *Admin) error {
				_, err := a.AssignSlot(ctx, 42, "nB").Wait(ctx)
				return err
			},
			want: "CLUSTER SETSLOT 42 NODE nB",
		},
		{
			name: "unassign",
			call: func(a *Admin) error {
				_, err := a.UnassignSlot(ctx, 42).Wait(ctx)
				return err
			},
			want: "CLUSTER DELSLOTS 42",
		},
	}

	for _, ex := range examples {
		t.Run(ex.name, func(t *testing.T) {
			a, inv, sink := newTestAdmin()
			require.NoError(t, ex.call(a))

			calls := inv.Calls()
			require.Len(t, calls, 1)
			assert.Equal(t, ex.want, calls[0].String())

			// One success event per command.
			events := sink.Events()
			require.Len(t, events, 1)
			assert.NoError(t, events[0].Cause)
		})
	}
}

func TestCountKeysInSlot(t *testing.T) {
	ctx := context.Background()
	a, inv, _ := newTestAdmin()

	inv.Prime("CLUSTER", int64(7))

	n, err := a.CountKeysInSlot(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	calls := inv.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "CLUSTER COUNTKEYSINSLOT 42", calls[0].String())
}

func TestKeysInSlot(t *testing.T) {
	ctx := context.Background()
	a, inv, _ := newTestAdmin()

	inv.Prime("CLUSTER", []string{"user:1001", "user:1002"})

	keys, err := a.KeysInSlot(ctx, 42, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"user:1001", "user:1002"}, keys)

	calls := inv.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "CLUSTER GETKEYSINSLOT 42 10", calls[0].String())
}

func TestKeysInSlotEmpty(t *testing.T) {
	ctx := context.Background()
	a, inv, _ := newTestAdmin()

	// An empty slot yields an empty sequence, not a failure.
	inv.Prime("CLUSTER", []string{})

	keys, err := a.KeysInSlot(ctx, 42, 10)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestKeysInSlotDecodes(t *testing.T) {
	ctx := context.Background()
	inv := mock.New()
	a := New(inv, suffixCodec{}, nil, logsink.Nop)

	inv.Prime("CLUSTER", []string{"k1.enc", "k2.enc"})

	keys, err := a.KeysInSlot(ctx, 42, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"k1", "k2"}, keys)
}

// suffixCodec marks encoded keys with a suffix, so tests can tell whether a
// key passed through Encode/Decode.
type suffixCodec struct{}

func (suffixCodec) Encode(key string) string { return key + ".enc" }

func (suffixCodec) Decode(raw string) (string, error) {
	return strings.TrimSuffix(raw, ".enc"), nil
}

// The controller sequences exactly what it's told: assigning a slot without
// ever marking it importing is the caller's mistake to make, and must issue
// cleanly in the order requested.
func TestNoPreconditionChecks(t *testing.T) {
	ctx := context.Background()
	a, inv, _ := newTestAdmin()

	_, err := a.AssignSlot(ctx, 42, "nB").Wait(ctx)
	require.NoError(t, err)
	_, err = a.SetSlotStable(ctx, 42).Wait(ctx)
	require.NoError(t, err)

	calls := inv.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "CLUSTER SETSLOT 42 NODE nB", calls[0].String())
	assert.Equal(t, "CLUSTER SETSLOT 42 STABLE", calls[1].String())
}
