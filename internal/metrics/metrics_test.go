package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestStore_Observe(t *testing.T) {
	m := NewStore(prometheus.NewRegistry())

	m.Observe(OpUpsert, time.Now(), nil)
	m.Observe(OpUpsert, time.Now(), errors.New("disk full"))
	m.Observe(OpDelete, time.Now(), nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues(OpUpsert, ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues(OpUpsert, ResultError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues(OpDelete, ResultOK)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.latency))
}

func TestStore_Snapshot(t *testing.T) {
	m := NewStore(prometheus.NewRegistry())

	m.Snapshot(3)
	m.Snapshot(2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.snapshots))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.people))
}

func TestStore_NilIsNoop(t *testing.T) {
	var m *Store
	assert.NotPanics(t, func() {
		m.Observe(OpWatch, time.Now(), nil)
		m.Snapshot(1)
	})
}
