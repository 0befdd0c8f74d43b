// Package worker runs store mutations off the UI goroutine.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrClosed is returned by Submit after Close.
	ErrClosed = errors.New("worker pool closed")
	// ErrQueueFull is returned by Submit when no queue slot is free.
	ErrQueueFull = errors.New("worker queue full")
)

// Task is a unit of background work.
type Task func(ctx context.Context) error

// Options configures a Pool.
type Options struct {
	// Workers is the number of goroutines draining the queue. Default 1.
	Workers int
	// QueueSize bounds the number of pending tasks. Default 16.
	QueueSize int
	// OnError receives every non-nil task error. Called from a worker goroutine.
	OnError func(error)
}

// Pool is a fixed set of goroutines consuming a bounded task queue.
// Submit never blocks; tasks have no individual cancellation.
type Pool struct {
	tasks   chan Task
	onError func(error)
	group   *errgroup.Group
	ctx     context.Context

	mu     sync.RWMutex
	closed bool
}

// New starts a Pool. Tasks receive ctx; cancelling it does not stop the
// workers, Close does.
func New(ctx context.Context, opts Options) *Pool {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 16
	}

	p := &Pool{
		tasks:   make(chan Task, opts.QueueSize),
		onError: opts.OnError,
		group:   &errgroup.Group{},
		ctx:     context.WithoutCancel(ctx),
	}

	for i := 0; i < opts.Workers; i++ {
		p.group.Go(p.run)
	}
	slog.Debug("Worker pool started", "workers", opts.Workers, "queue_size", opts.QueueSize)
	return p
}

// Submit enqueues task.
func (p *Pool) Submit(task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrClosed
	}
	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting tasks, runs everything already queued and waits for
// the workers to exit. Safe to call more than once.
func (p *Pool) Close() error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()

	return p.group.Wait()
}

func (p *Pool) run() error {
	for task := range p.tasks {
		if err := task(p.ctx); err != nil && p.onError != nil {
			p.onError(err)
		}
	}
	return nil
}
