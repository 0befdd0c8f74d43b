package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPool_RunsTasks(t *testing.T) {
	p := New(context.Background(), Options{Workers: 3, QueueSize: 10})

	var ran atomic.Int32
	for i := 0; i < 10; i++ {
		require.NoError(t, p.Submit(func(context.Context) error {
			ran.Add(1)
			return nil
		}))
	}

	require.NoError(t, p.Close())
	assert.Equal(t, int32(10), ran.Load())
}

func TestPool_ReportsErrors(t *testing.T) {
	var (
		mu   sync.Mutex
		errs []error
	)
	p := New(context.Background(), Options{OnError: func(err error) {
		mu.Lock()
		defer mu.Unlock()
		errs = append(errs, err)
	}})

	boom := errors.New("boom")
	require.NoError(t, p.Submit(func(context.Context) error { return boom }))
	require.NoError(t, p.Submit(func(context.Context) error { return nil }))
	require.NoError(t, p.Close())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], boom)
}

func TestPool_QueueFull(t *testing.T) {
	p := New(context.Background(), Options{Workers: 1, QueueSize: 1})

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, p.Submit(func(context.Context) error {
		close(started)
		<-release
		return nil
	}))
	<-started

	// Worker busy; one slot left in the queue.
	require.NoError(t, p.Submit(func(context.Context) error { return nil }))
	assert.ErrorIs(t, p.Submit(func(context.Context) error { return nil }), ErrQueueFull)

	close(release)
	require.NoError(t, p.Close())
}

func TestPool_SubmitAfterClose(t *testing.T) {
	p := New(context.Background(), Options{})
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	assert.ErrorIs(t, p.Submit(func(context.Context) error { return nil }), ErrClosed)
}

func TestPool_TaskContextOutlivesParentCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := New(ctx, Options{})
	cancel()

	var taskErr error
	require.NoError(t, p.Submit(func(ctx context.Context) error {
		taskErr = ctx.Err()
		return nil
	}))
	require.NoError(t, p.Close())
	assert.NoError(t, taskErr)
}
