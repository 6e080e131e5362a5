package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// FileStore is a file-based board store for CLI usage.
// Boards are stored as JSON files in a base directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based board store.
// If baseDir is empty, defaults to ~/.config/snarl/boards/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "snarl", "boards")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create board dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) boardPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Get(ctx context.Context, id string) (*Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.boardPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read board file: %w", err)
	}

	var board Board
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, fmt.Errorf("parse board: %w", err)
	}
	return &board, nil
}

func (s *FileStore) Put(ctx context.Context, board *Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	board.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(board, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal board: %w", err)
	}

	if err := os.WriteFile(s.boardPath(board.ID), data, 0600); err != nil {
		return fmt.Errorf("write board file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.boardPath(id)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("remove board file: %w", err)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]*Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read board dir: %w", err)
	}

	var boards []*Board
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		var board Board
		if err := json.Unmarshal(data, &board); err != nil {
			// Skip unreadable entries rather than failing the listing.
			continue
		}
		boards = append(boards, &board)
	}
	return boards, nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for board files.
func (s *FileStore) Path() string { return s.baseDir }

var _ Store = (*FileStore)(nil)
