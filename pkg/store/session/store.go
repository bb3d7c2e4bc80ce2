// Package session holds the only cross-component shared state of the funnel:
// per-session variant assignments, exit-intent once-flags and advisory visit
// counters. Last write wins across tabs; nothing here is billing-grade.
package session

import (
	"context"
	"time"
)

// Store is a small session-scoped KV. PutIfAbsent must be atomic so that
// concurrent assignment calls for one session converge on a single value.
type Store interface {
	// PutIfAbsent stores value under key unless a value is already present,
	// and returns the value that ended up winning.
	PutIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (string, error)
	// Get returns the stored value and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// SetFlag marks key and reports whether this call was the first to do so.
	SetFlag(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Increment bumps a counter, creating it with the given ttl.
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)
	// Delete removes a key. Used by QA variant resets only.
	Delete(ctx context.Context, key string) error
}
