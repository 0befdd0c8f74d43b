package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/agenda/internal/metrics"
	"github.com/mmynk/agenda/internal/models"
	"github.com/mmynk/agenda/internal/storage/sqlite"
)

// failingStore embeds a real store and fails every write.
type failingStore struct {
	*sqlite.Store
	err error
}

func (f failingStore) UpsertPerson(context.Context, *models.Person) error { return f.err }
func (f failingStore) DeletePerson(context.Context, models.Person) error  { return f.err }

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRepository_ForwardsToStore(t *testing.T) {
	reg := prometheus.NewRegistry()
	repo := New(newStore(t), metrics.NewStore(reg))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := repo.Watch(ctx)
	require.NoError(t, err)
	assert.Empty(t, <-ch)

	p := &models.Person{Name: "Ana", Phone: "(11) 91234-5678"}
	require.NoError(t, repo.Upsert(ctx, p))
	assert.NotEmpty(t, p.ID)

	people := <-ch
	require.Len(t, people, 1)
	assert.Equal(t, "Ana", people[0].Name)

	require.NoError(t, repo.Delete(ctx, *p))
	assert.Empty(t, <-ch)

	count, err := testutil.GatherAndCount(reg, "agenda_store_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRepository_ReturnsStoreErrors(t *testing.T) {
	boom := errors.New("disk I/O error")
	repo := New(failingStore{Store: newStore(t), err: boom}, nil)

	err := repo.Upsert(context.Background(), &models.Person{Name: "Ana", Phone: "(11) 9"})
	assert.ErrorIs(t, err, boom)

	err = repo.Delete(context.Background(), models.Person{Name: "Ana"})
	assert.ErrorIs(t, err, boom)
}
