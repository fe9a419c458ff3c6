package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashslot/slotctl/pkg/logsink"
	"github.com/hashslot/slotctl/pkg/transport/mock"
)

func newTestMigration() (Migration, *mock.Invoker, *mock.Invoker) {
	srcInv := mock.New()
	dstInv := mock.New()

	m := Migration{
		Slot:     42,
		Source:   New(srcInv, RawCodec{}, nil, logsink.Nop),
		SourceID: "nA",
		Dest:     New(dstInv, RawCodec{}, nil, logsink.Nop),
		DestID:   "nB",
	}

	return m, srcInv, dstInv
}

func TestMigrationBegin(t *testing.T) {
	ctx := context.Background()
	m, srcInv, dstInv := newTestMigration()

	require.NoError(t, m.Begin(ctx))

	srcCalls := srcInv.Calls()
	require.Len(t, srcCalls, 1)
	assert.Equal(t, "CLUSTER SETSLOT 42 MIGRATING nB", srcCalls[0].String())

	dstCalls := dstInv.Calls()
	require.Len(t, dstCalls, 1)
	assert.Equal(t, "CLUSTER SETSLOT 42 IMPORTING nA", dstCalls[0].String())
}

func TestMigrationBeginFailure(t *testing.T) {
	ctx := context.Background()
	m, _, dstInv := newTestMigration()

	cause := errors.New("node unreachable")
	dstInv.PrimeErr("CLUSTER", cause)

	err := m.Begin(ctx)
	assert.ErrorIs(t, err, cause)

	// No rollback was attempted: the destination saw only the failed mark,
	// and whatever landed on the source stays in place. Retry or Abort is
	// the caller's call.
	assert.Len(t, dstInv.Calls(), 1)
}

func TestMigrationDrained(t *testing.T) {
	ctx := context.Background()
	m, srcInv, _ := newTestMigration()

	srcInv.Prime("CLUSTER", int64(3))
	srcInv.Prime("CLUSTER", int64(0))

	drained, err := m.Drained(ctx)
	require.NoError(t, err)
	assert.False(t, drained)

	drained, err = m.Drained(ctx)
	require.NoError(t, err)
	assert.True(t, drained)
}

func TestMigrationFinish(t *testing.T) {
	ctx := context.Background()
	m, srcInv, dstInv := newTestMigration()

	require.NoError(t, m.Finish(ctx))

	// The authoritative ownership change lands on the destination first,
	// then the marks clear and the source releases its claim.
	dstCalls := dstInv.Calls()
	require.Len(t, dstCalls, 2)
	assert.Equal(t, "CLUSTER SETSLOT 42 NODE nB", dstCalls[0].String())
	assert.Equal(t, "CLUSTER SETSLOT 42 STABLE", dstCalls[1].String())

	srcCalls := srcInv.Calls()
	require.Len(t, srcCalls, 2)
	assert.Equal(t, "CLUSTER SETSLOT 42 STABLE", srcCalls[0].String())
	assert.Equal(t, "CLUSTER DELSLOTS 42", srcCalls[1].String())
}

func TestMigrationFinishStopsOnAssignFailure(t *testing.T) {
	ctx := context.Background()
	m, srcInv, dstInv := newTestMigration()

	cause := errors.New("moved")
	dstInv.PrimeErr("CLUSTER", cause)

	err := m.Finish(ctx)
	assert.ErrorIs(t, err, cause)

	// Nothing after the failed assign: the transient marks are left in
	// place, not rolled back.
	assert.Len(t, dstInv.Calls(), 1)
	assert.Empty(t, srcInv.Calls())
}

func TestMigrationAbort(t *testing.T) {
	ctx := context.Background()
	m, srcInv, dstInv := newTestMigration()

	require.NoError(t, m.Abort(ctx))

	srcCalls := srcInv.Calls()
	require.Len(t, srcCalls, 1)
	assert.Equal(t, "CLUSTER SETSLOT 42 STABLE", srcCalls[0].String())

	dstCalls := dstInv.Calls()
	require.Len(t, dstCalls, 1)
	assert.Equal(t, "CLUSTER SETSLOT 42 STABLE", dstCalls[0].String())
}

// The full flow, end to end: both marks, drain, assign, stabilize. This is
// the happy path an operator's rebalancer drives.
func TestMigrationFullFlow(t *testing.T) {
	ctx := context.Background()
	m, srcInv, dstInv := newTestMigration()

	require.NoError(t, m.Begin(ctx))

	srcInv.Prime("CLUSTER", int64(0))
	drained, err := m.Drained(ctx)
	require.NoError(t, err)
	require.True(t, drained)

	require.NoError(t, m.Finish(ctx))

	assert.Equal(t, []string{
		"CLUSTER SETSLOT 42 MIGRATING nB",
		"CLUSTER COUNTKEYSINSLOT 42",
		"CLUSTER SETSLOT 42 STABLE",
		"CLUSTER DELSLOTS 42",
	}, callStrings(srcInv))

	assert.Equal(t, []string{
		"CLUSTER SETSLOT 42 IMPORTING nA",
		"CLUSTER SETSLOT 42 NODE nB",
		"CLUSTER SETSLOT 42 STABLE",
	}, callStrings(dstInv))
}

func callStrings(inv *mock.Invoker) []string {
	calls := inv.Calls()
	out := make([]string, len(calls))
	for i := range calls {
		out[i] = calls[i].String()
	}
	return out
}
