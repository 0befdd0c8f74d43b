// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/agenda/internal/models"
	"github.com/mmynk/agenda/internal/storage"
	"github.com/mmynk/agenda/internal/storage/notify"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store using SQLite.
//
// Writes are serialized by mu, and each write publishes the resulting list
// before releasing it, so watchers observe snapshots in commit order.
type Store struct {
	db       *sql.DB
	mu       sync.Mutex
	watchers *notify.Broadcaster[[]models.Person]
}

// New creates a new Store with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*Store, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single local writer; one connection also keeps PRAGMAs in effect.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{
		db:       db,
		watchers: notify.New[[]models.Person](),
	}, nil
}

// Close closes every watcher and then the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.watchers.Close()
	return s.db.Close()
}

// WatchPeople subscribes to the live list of people.
func (s *Store) WatchPeople(ctx context.Context) (<-chan []models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	people, err := s.ListPeople(ctx)
	if err != nil {
		return nil, err
	}

	ch, err := s.watchers.Subscribe(ctx, people)
	if err != nil {
		return nil, fmt.Errorf("failed to watch people: %w", err)
	}

	slog.Debug("Watcher subscribed", "people_count", len(people), "watchers", s.watchers.Len())
	return ch, nil
}

// publish sends the current list to every watcher. Must be called with s.mu held.
// A failed read is logged rather than returned: the write it follows has
// already been committed.
func (s *Store) publish(ctx context.Context) {
	people, err := s.ListPeople(ctx)
	if err != nil {
		slog.Error("Failed to refresh watchers", "error", err)
		return
	}
	s.watchers.Publish(people)
}
