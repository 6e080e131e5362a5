// Package store provides persistence for named boards.
//
// A board is a named, serialized snarl container plus bookkeeping
// timestamps. The [Store] interface abstracts the backend:
//
//   - [MemoryStore]: in-memory, for tests and throwaway use
//   - [FileStore]: JSON files in a directory, for CLI usage
//   - [RedisStore]: Redis, for shared deployments
//   - [MongoStore]: MongoDB, for durable multi-instance deployments
//
// Board identifiers are random UUIDs; the human-facing name is a
// separate, non-unique field.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a board does not exist.
	ErrNotFound = errors.New("board not found")
)

// Board is a named, persisted graph.
type Board struct {
	ID        string          `json:"id" bson:"_id"`
	Name      string          `json:"name" bson:"name"`
	Graph     json.RawMessage `json:"graph" bson:"graph"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" bson:"updated_at"`
}

// NewBoard creates a board with a fresh identifier and the given
// serialized graph.
func NewBoard(name string, graph json.RawMessage) *Board {
	now := time.Now().UTC()
	return &Board{
		ID:        uuid.NewString(),
		Name:      name,
		Graph:     graph,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Store is the interface for board storage backends.
type Store interface {
	// Get retrieves a board by ID. Returns ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*Board, error)

	// Put stores a board, overwriting any existing board with the same
	// ID, and refreshes its UpdatedAt timestamp.
	Put(ctx context.Context, board *Board) error

	// Delete removes a board. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// List returns all boards. The order is not guaranteed.
	List(ctx context.Context) ([]*Board, error)

	// Close releases backend resources.
	Close() error
}
