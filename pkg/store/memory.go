package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory board store for tests and development.
type MemoryStore struct {
	mu     sync.RWMutex
	boards map[string]*Board
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{boards: make(map[string]*Board)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	board, ok := s.boards[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *board
	return &copied, nil
}

func (s *MemoryStore) Put(ctx context.Context, board *Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	board.UpdatedAt = time.Now().UTC()
	copied := *board
	s.boards[board.ID] = &copied
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.boards[id]; !ok {
		return ErrNotFound
	}
	delete(s.boards, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	boards := make([]*Board, 0, len(s.boards))
	for _, board := range s.boards {
		copied := *board
		boards = append(boards, &copied)
	}
	return boards, nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
