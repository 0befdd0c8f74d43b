// Package repository adapts the person store for the presentation layer.
package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmynk/agenda/internal/metrics"
	"github.com/mmynk/agenda/internal/models"
	"github.com/mmynk/agenda/internal/storage"
)

// Repository forwards person operations to a storage.Store, recording
// metrics and logs around each call. It runs on the caller's goroutine.
type Repository struct {
	store   storage.Store
	metrics *metrics.Store
}

// New creates a Repository over store. m may be nil.
func New(store storage.Store, m *metrics.Store) *Repository {
	return &Repository{store: store, metrics: m}
}

// Upsert stores person, inserting or replacing it.
func (r *Repository) Upsert(ctx context.Context, person *models.Person) error {
	start := time.Now()
	err := r.store.UpsertPerson(ctx, person)
	r.metrics.Observe(metrics.OpUpsert, start, err)

	if err != nil {
		slog.Error("Upsert failed", "name", person.Name, "error", err)
		return err
	}
	slog.Info("Person saved", "person_id", person.ID, "name", person.Name)
	return nil
}

// Delete removes person. Missing records are not an error.
func (r *Repository) Delete(ctx context.Context, person models.Person) error {
	start := time.Now()
	err := r.store.DeletePerson(ctx, person)
	r.metrics.Observe(metrics.OpDelete, start, err)

	if err != nil {
		slog.Error("Delete failed", "person_id", person.ID, "name", person.Name, "error", err)
		return err
	}
	slog.Info("Person deleted", "person_id", person.ID, "name", person.Name)
	return nil
}

// Watch returns the live list of people.
func (r *Repository) Watch(ctx context.Context) (<-chan []models.Person, error) {
	start := time.Now()
	ch, err := r.store.WatchPeople(ctx)
	r.metrics.Observe(metrics.OpWatch, start, err)

	if err != nil {
		slog.Error("Watch failed", "error", err)
		return nil, err
	}
	return ch, nil
}
