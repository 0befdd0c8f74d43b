// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/agenda/internal/models"
)

// ErrEmptyName is returned when a person without a name reaches the store.
var ErrEmptyName = errors.New("person name is required")

// Store defines the interface for person storage operations.
// This abstraction allows swapping storage backends without changing the
// repository or view-model.
type Store interface {
	// UpsertPerson inserts the person, or replaces the existing record with the
	// same ID (when set) or the same name and phone. ID and timestamps are
	// filled in.
	// Watchers receive the new full list.
	UpsertPerson(ctx context.Context, person *models.Person) error

	// DeletePerson removes the record with person.ID, or the record matching
	// both name and phone when ID is empty. Deleting a missing record is a no-op.
	DeletePerson(ctx context.Context, person models.Person) error

	// ListPeople returns every stored person ordered by name.
	ListPeople(ctx context.Context) ([]models.Person, error)

	// WatchPeople returns a channel that yields the full list immediately and
	// again after every change, until ctx is done or the store is closed.
	// Snapshots arrive in commit order; a slow reader may skip intermediate
	// snapshots but never sees an older one after a newer one.
	WatchPeople(ctx context.Context) (<-chan []models.Person, error)

	// Close releases any resources held by the store and closes all watchers.
	Close() error
}
