package ports

import "context"

// Port: a key-value blob store used to persist store snapshots between runs.
type SnapshotStore interface {
	// Return the blob saved under key, or domain.ErrSnapshotNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	// Replace the blob saved under key.
	Save(ctx context.Context, key string, blob []byte) error
}
