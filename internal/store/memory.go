package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore holds encoded collections in process memory. Records are
// copied on both save and load.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[Collection][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[Collection][]byte)}
}

func (s *MemoryStore) LoadAll(ctx context.Context, c Collection, dest any) error {
	if err := checkCollection(c); err != nil {
		return err
	}

	s.mu.RLock()
	data, ok := s.data[c]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decoding %s: %w", c, err)
	}
	return nil
}

func (s *MemoryStore) SaveAll(ctx context.Context, c Collection, records any) error {
	if err := checkCollection(c); err != nil {
		return err
	}
	if _, err := sliceLen(records); err != nil {
		return err
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", c, err)
	}

	s.mu.Lock()
	s.data[c] = data
	s.mu.Unlock()
	return nil
}

var (
	_ Store = (*GormStore)(nil)
	_ Store = (*RedisStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
