package core

// store.go keeps uploaded datasets in memory for the lifetime of a session.
//
// Each upload gets a random id. Entries expire after a period without use;
// a background sweeper evicts expired entries on a fixed interval and stops
// when the store is closed. Lookups also check expiry, so an entry is never
// served past its TTL even between sweeps.

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/graphtool/internal/ingest"
)

// ErrDatasetNotFound is returned for unknown, dropped or expired ids.
var ErrDatasetNotFound = errors.New("dataset not found")

const (
	// DefaultSessionTTL is how long an unused dataset is kept.
	DefaultSessionTTL = time.Hour

	// DefaultSweepInterval is how often expired datasets are evicted.
	DefaultSweepInterval = 5 * time.Minute
)

// Upload is a stored ingest result with its origin.
type Upload struct {
	ID        string
	FileName  string
	Result    *ingest.Result
	CreatedAt time.Time

	lastUsed time.Time
}

// DatasetStore is a concurrency-safe, expiring map of uploads.
type DatasetStore struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	items map[string]*Upload

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewDatasetStore creates a store whose entries expire ttl after last use.
// When sweepEvery > 0 a sweeper goroutine runs until Close.
func NewDatasetStore(ttl, sweepEvery time.Duration) *DatasetStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	s := &DatasetStore{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]*Upload),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	if sweepEvery > 0 {
		go s.sweepLoop(sweepEvery)
	} else {
		close(s.done)
	}
	return s
}

// Put stores result under a new id and returns the stored upload.
func (s *DatasetStore) Put(fileName string, result *ingest.Result) *Upload {
	now := s.now()
	u := &Upload{
		ID:        uuid.NewString(),
		FileName:  fileName,
		Result:    result,
		CreatedAt: now,
		lastUsed:  now,
	}

	s.mu.Lock()
	s.items[u.ID] = u
	s.mu.Unlock()
	return u
}

// Get returns the upload for id and refreshes its expiry.
func (s *DatasetStore) Get(id string) (*Upload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.items[id]
	if !ok {
		return nil, ErrDatasetNotFound
	}
	now := s.now()
	if now.Sub(u.lastUsed) > s.ttl {
		delete(s.items, id)
		return nil, ErrDatasetNotFound
	}
	u.lastUsed = now
	return u, nil
}

// Delete drops id. Deleting an unknown id returns ErrDatasetNotFound.
func (s *DatasetStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrDatasetNotFound
	}
	delete(s.items, id)
	return nil
}

// Len returns the number of stored uploads, expired or not.
func (s *DatasetStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Sweep evicts every expired upload and returns how many were removed.
func (s *DatasetStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, u := range s.items {
		if now.Sub(u.lastUsed) > s.ttl {
			delete(s.items, id)
			removed++
		}
	}
	return removed
}

func (s *DatasetStore) sweepLoop(every time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			start := time.Now()
			if n := s.Sweep(); n > 0 {
				slog.Info("evicted expired datasets",
					"count", n,
					"remaining", s.Len(),
					"duration_ms", time.Since(start).Milliseconds(),
				)
			}
		}
	}
}

// Close stops the sweeper and waits for it to exit. Safe to call twice.
func (s *DatasetStore) Close() {
	s.closeOnce.Do(func() { close(s.stop) })
	<-s.done
}
