package application

import (
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"gitlabtree/internal/domain"
	"gitlabtree/internal/ports"
)

// Cache gates a SnapshotStore with a time-to-live. Every read failure is a
// miss.
type Cache struct {
	store ports.SnapshotStore
	ttl   time.Duration
	now   func() time.Time
	log   *logrus.Entry
}

// NewCache creates a cache over store
func NewCache(store ports.SnapshotStore, ttl time.Duration, log *logrus.Entry) *Cache {
	return &Cache{
		store: store,
		ttl:   ttl,
		now:   time.Now,
		log:   orDiscard(log),
	}
}

// WithClock replaces the time source
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

// Now returns the cache's notion of the current time
func (c *Cache) Now() time.Time {
	return c.now()
}

// Location describes where snapshots are kept
func (c *Cache) Location() string {
	return c.store.Location()
}

// Load returns the stored snapshot if it is present, decodable and fresh
func (c *Cache) Load() (*domain.Snapshot, bool) {
	data, err := c.store.Read()
	if err != nil {
		c.log.WithError(err).Debug("cache miss")
		return nil, false
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		c.log.WithError(err).Warn("discarding unreadable cache")
		return nil, false
	}

	if !domain.CacheValid(snapshot.CreatedAt, c.ttl, c.now()) {
		c.log.WithField("created_at", snapshot.CreatedAt).Debug("cache expired")
		return nil, false
	}
	return &snapshot, true
}

// Store encodes and persists a snapshot
func (c *Cache) Store(snapshot *domain.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}
	return c.store.Write(data)
}

// Clear removes any stored snapshot
func (c *Cache) Clear() error {
	return c.store.Clear()
}

// orDiscard falls back to a silent logger
func orDiscard(log *logrus.Entry) *logrus.Entry {
	if log != nil {
		return log
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}
