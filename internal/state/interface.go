// internal/state/interface.go
package state

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("state: key not found")

// SnapshotKey is the one slot the playback session is persisted under.
const SnapshotKey = "lastPlayed"

// Store is a small durable key-value store. Each key is a single slot:
// writes replace the previous value, last write wins.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Verify implementations satisfy Store at compile time.
var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*RedisStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
