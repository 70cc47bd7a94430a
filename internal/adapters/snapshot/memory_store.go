package snapshot

import (
	"context"
	"fmt"
	"ride-match-service/internal/domain"
	"ride-match-service/internal/ports"
	"slices"
	"sync"
)

// MemoryStore keeps snapshots in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
	// FailSaves makes every Save return an error.
	FailSaves bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("load snapshot %q: %w", key, domain.ErrSnapshotNotFound)
	}
	return slices.Clone(b), nil
}

func (s *MemoryStore) Save(_ context.Context, key string, blob []byte) error {
	if err := checkKey(key); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailSaves {
		return fmt.Errorf("save snapshot %q: memory store configured to fail", key)
	}
	s.blobs[key] = slices.Clone(blob)
	return nil
}

var _ ports.SnapshotStore = (*MemoryStore)(nil)
