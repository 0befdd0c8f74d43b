// Package notify fans out full snapshots to live-query subscribers.
package notify

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Subscribe after Close.
var ErrClosed = errors.New("broadcaster closed")

// Broadcaster delivers the latest value of T to every subscriber.
//
// Each subscriber owns a one-slot channel. When a subscriber has not read the
// previous value yet, Publish replaces it, so a reader only ever falls behind
// by skipping values, never by seeing them out of order. Values are shared
// between subscribers and must be treated as read-only.
type Broadcaster[T any] struct {
	mu     sync.Mutex
	subs   map[*subscriber[T]]struct{}
	closed bool
	done   chan struct{}
}

type subscriber[T any] struct {
	ch chan T
}

// New creates an empty Broadcaster.
func New[T any]() *Broadcaster[T] {
	return &Broadcaster[T]{
		subs: make(map[*subscriber[T]]struct{}),
		done: make(chan struct{}),
	}
}

// Subscribe registers a subscriber whose channel already holds initial.
// The channel is closed when ctx is done or the broadcaster is closed.
//
// Callers that need initial to be consistent with later Publish calls must
// serialize Subscribe with Publish themselves.
func (b *Broadcaster[T]) Subscribe(ctx context.Context, initial T) (<-chan T, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}

	sub := &subscriber[T]{ch: make(chan T, 1)}
	sub.ch <- initial
	b.subs[sub] = struct{}{}

	go func() {
		select {
		case <-ctx.Done():
		case <-b.done:
		}
		b.remove(sub)
	}()

	return sub.ch, nil
}

// Publish hands v to every current subscriber, replacing any value it has
// not consumed yet. It never blocks on a slow reader.
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for sub := range b.subs {
		select {
		case sub.ch <- v:
			continue
		default:
		}
		// Slot taken by a stale value: drop it and retry once. Only Publish
		// sends, and it holds b.mu, so the slot is free after the drain.
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- v:
		default:
		}
	}
}

// Len returns the number of active subscribers.
func (b *Broadcaster[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close closes every subscriber channel. Further Subscribe calls fail and
// Publish becomes a no-op.
func (b *Broadcaster[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	close(b.done)
	for sub := range b.subs {
		delete(b.subs, sub)
		close(sub.ch)
	}
}

func (b *Broadcaster[T]) remove(sub *subscriber[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[sub]; !ok {
		return
	}
	delete(b.subs, sub)
	close(sub.ch)
}
