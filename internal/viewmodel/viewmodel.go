// Package viewmodel holds the presentation state of the people screen.
package viewmodel

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mmynk/agenda/internal/metrics"
	"github.com/mmynk/agenda/internal/models"
	"github.com/mmynk/agenda/internal/storage/notify"
	"github.com/mmynk/agenda/internal/worker"
)

// Repository is the subset of repository.Repository the view-model needs.
type Repository interface {
	Upsert(ctx context.Context, person *models.Person) error
	Delete(ctx context.Context, person models.Person) error
	Watch(ctx context.Context) (<-chan []models.Person, error)
}

// Executor runs tasks off the caller's goroutine.
type Executor interface {
	Submit(task worker.Task) error
}

const errorBuffer = 8

// PersonViewModel caches the live list of people and issues mutations in the
// background. Mutating calls return as soon as the work is queued; their
// effect shows up through the next snapshot.
type PersonViewModel struct {
	repo    Repository
	exec    Executor
	metrics *metrics.Store

	mu     sync.RWMutex
	people []models.Person

	updates *notify.Broadcaster[[]models.Person]
	errs    chan error

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a PersonViewModel. m may be nil.
func New(repo Repository, exec Executor, m *metrics.Store) *PersonViewModel {
	return &PersonViewModel{
		repo:    repo,
		exec:    exec,
		metrics: m,
		people:  []models.Person{},
		updates: notify.New[[]models.Person](),
		errs:    make(chan error, errorBuffer),
	}
}

// Start subscribes to the live list. It must be called once.
func (vm *PersonViewModel) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	snapshots, err := vm.repo.Watch(ctx)
	if err != nil {
		cancel()
		return fmt.Errorf("failed to watch people: %w", err)
	}

	vm.cancel = cancel
	vm.done = make(chan struct{})

	go func() {
		defer close(vm.done)
		defer vm.updates.Close()

		for people := range snapshots {
			vm.mu.Lock()
			vm.people = people
			vm.updates.Publish(people)
			vm.mu.Unlock()

			vm.metrics.Snapshot(len(people))
			slog.Debug("Snapshot received", "people_count", len(people))
		}
	}()
	return nil
}

// People returns a copy of the latest snapshot.
func (vm *PersonViewModel) People() []models.Person {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	out := make([]models.Person, len(vm.people))
	copy(out, vm.people)
	return out
}

// Updates returns a channel carrying the current list followed by every new
// snapshot, in order. Slices are shared and must not be modified.
func (vm *PersonViewModel) Updates(ctx context.Context) (<-chan []models.Person, error) {
	// Held across Subscribe so no snapshot is published in between.
	vm.mu.Lock()
	defer vm.mu.Unlock()

	return vm.updates.Subscribe(ctx, vm.people)
}

// Errors carries background failures meant for the user, e.g. a failed save.
// Errors are dropped when nobody drains the channel.
func (vm *PersonViewModel) Errors() <-chan error {
	return vm.errs
}

// Submit registers a new person. It reports false, without side effects,
// when name or phone is blank or the work could not be queued.
func (vm *PersonViewModel) Submit(name, phone string) bool {
	return vm.save(models.Person{}, name, phone)
}

// Update replaces the name and phone of an existing person, keeping its ID.
func (vm *PersonViewModel) Update(person models.Person, name, phone string) bool {
	return vm.save(person, name, phone)
}

func (vm *PersonViewModel) save(person models.Person, name, phone string) bool {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return false
	}

	person.Name = name
	person.Phone = phone

	err := vm.exec.Submit(func(ctx context.Context) error {
		if err := vm.repo.Upsert(ctx, &person); err != nil {
			err = fmt.Errorf("failed to save %s: %w", name, err)
			vm.report(err)
			return err
		}
		return nil
	})
	if err != nil {
		vm.report(fmt.Errorf("failed to save %s: %w", name, err))
		return false
	}
	return true
}

// Remove deletes person in the background.
func (vm *PersonViewModel) Remove(person models.Person) {
	err := vm.exec.Submit(func(ctx context.Context) error {
		if err := vm.repo.Delete(ctx, person); err != nil {
			err = fmt.Errorf("failed to delete %s: %w", person.Name, err)
			vm.report(err)
			return err
		}
		return nil
	})
	if err != nil {
		vm.report(fmt.Errorf("failed to delete %s: %w", person.Name, err))
	}
}

// Close stops the live subscription and closes all Updates channels.
func (vm *PersonViewModel) Close() {
	if vm.cancel == nil {
		vm.updates.Close()
		return
	}
	vm.cancel()
	<-vm.done
}

func (vm *PersonViewModel) report(err error) {
	select {
	case vm.errs <- err:
	default:
		slog.Warn("Dropped error notice", "error", err)
	}
}
