package core

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/JonMunkholm/graphtool/internal/ingest"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore(ttl time.Duration) (*DatasetStore, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewDatasetStore(ttl, 0)
	s.now = clock.Now
	return s, clock
}

func TestDatasetStore_PutGetDelete(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	defer s.Close()

	res := &ingest.Result{Format: ingest.FormatCSV}
	u := s.Put("a.csv", res)
	require.NotEmpty(t, u.ID)

	got, err := s.Get(u.ID)
	require.NoError(t, err)
	assert.Same(t, res, got.Result)
	assert.Equal(t, "a.csv", got.FileName)

	other := s.Put("a.csv", res)
	assert.NotEqual(t, u.ID, other.ID)

	require.NoError(t, s.Delete(u.ID))
	_, err = s.Get(u.ID)
	assert.ErrorIs(t, err, ErrDatasetNotFound)
	assert.ErrorIs(t, s.Delete(u.ID), ErrDatasetNotFound)
	assert.Equal(t, 1, s.Len())
}

func TestDatasetStore_Expiry(t *testing.T) {
	s, clock := newTestStore(time.Hour)
	defer s.Close()

	u := s.Put("a.csv", &ingest.Result{})

	clock.Advance(50 * time.Minute)
	_, err := s.Get(u.ID)
	require.NoError(t, err, "use refreshes expiry")

	clock.Advance(50 * time.Minute)
	_, err = s.Get(u.ID)
	require.NoError(t, err)

	clock.Advance(61 * time.Minute)
	_, err = s.Get(u.ID)
	assert.ErrorIs(t, err, ErrDatasetNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestDatasetStore_Sweep(t *testing.T) {
	s, clock := newTestStore(time.Minute)
	defer s.Close()

	s.Put("old.csv", &ingest.Result{})
	clock.Advance(2 * time.Minute)
	fresh := s.Put("new.csv", &ingest.Result{})

	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())
	_, err := s.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestDatasetStore_SweeperStopsOnClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewDatasetStore(time.Nanosecond, time.Millisecond)
	s.Put("a.csv", &ingest.Result{})

	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)

	s.Close()
	s.Close()
}
