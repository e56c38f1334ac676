// Package cache is the read-through accelerator in front of the durable
// store. It is best-effort and advisory: a failed or stale cache must only
// cost extra round trips, never correctness.
package cache

import (
	"context"
	"time"
)

// SchemaVersion tags every key so that value-format changes invalidate old
// entries automatically.
const SchemaVersion = "v1"

// Store is a namespaced key/value store with expiration. Get returns
// ok=false on a miss; an error indicates the tier itself failed (callers
// treat that as a miss too).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Key builds a "<feature>:<schemaVersion>:<id>" cache key
func Key(feature, id string) string {
	return feature + ":" + SchemaVersion + ":" + id
}
