package checkpoint

import (
	"context"
	"encoding/json"
	"sync"
)

// MemStore keeps the checkpoint in memory. Used in tests and for
// throwaway runs where persistence is not wanted.
type MemStore struct {
	mu   sync.Mutex
	data []byte
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Load(_ context.Context) (*Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil, ErrNotFound
	}

	var meta Metadata
	if err := json.Unmarshal(s.data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *MemStore) Save(_ context.Context, meta *Metadata) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

func (s *MemStore) Delete(_ context.Context) error {
	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()
	return nil
}
