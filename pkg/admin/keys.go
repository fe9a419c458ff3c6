package admin

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hashslot/slotctl/pkg/exec"
)

// Plain key commands. These are one-shot RPC wrappers with no interesting
// state; they exist so an operator driving a migration can touch keys
// through the same Admin (and the same codec and log sink) without a second
// client.

// Del deletes the given keys and returns how many existed.
func (a *Admin) Del(ctx context.Context, keys ...string) (int64, error) {
	args := make([]string, len(keys))
	for i, k := range keys {
		args[i] = a.codec.Encode(k)
	}

	desc := fmt.Sprintf("deleting %d keys", len(keys))
	h := exec.Exec(ctx, a.inv, a.sink, desc, "DEL", args...)

	v, err := h.Wait(ctx)
	if err != nil {
		return 0, err
	}

	return asInt(v)
}

// Expire sets a time-to-live on the key. Returns false if the key doesn't
// exist.
func (a *Admin) Expire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	desc := fmt.Sprintf("expiring key %q in %s", key, ttl)
	h := exec.Exec(ctx, a.inv, a.sink, desc,
		"EXPIRE", a.codec.Encode(key), strconv.FormatInt(int64(ttl.Seconds()), 10))

	return asBool(h.Wait(ctx))
}

// Persist clears any time-to-live on the key. Returns false if the key
// doesn't exist or had no expiry.
func (a *Admin) Persist(ctx context.Context, key string) (bool, error) {
	desc := fmt.Sprintf("persisting key %q", key)
	h := exec.Exec(ctx, a.inv, a.sink, desc,
		"PERSIST", a.codec.Encode(key))

	return asBool(h.Wait(ctx))
}

// TTL returns the key's remaining time-to-live in whole seconds, following
// the cluster's convention: -1 if the key has no expiry, -2 if it doesn't
// exist.
func (a *Admin) TTL(ctx context.Context, key string) (int64, error) {
	desc := fmt.Sprintf("fetching ttl of key %q", key)
	h := exec.Exec(ctx, a.inv, a.sink, desc,
		"TTL", a.codec.Encode(key))

	v, err := h.Wait(ctx)
	if err != nil {
		return 0, err
	}

	return asInt(v)
}

func asBool(v interface{}, err error) (bool, error) {
	if err != nil {
		return false, err
	}

	n, err := asInt(v)
	if err != nil {
		return false, err
	}

	return n == 1, nil
}
