package memory

import (
	"sync"
	"time"

	"github.com/tbarantsev/email-insights/internal/core/domain"
)

// SnapshotCache memoizes the latest snapshot for a fixed TTL. A non-positive
// TTL disables caching entirely.
type SnapshotCache struct {
	mu       sync.RWMutex
	ttl      time.Duration
	snapshot domain.Snapshot
	storedAt time.Time
}

func New(ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{ttl: ttl}
}

// Get returns the cached snapshot while it is fresh.
func (c *SnapshotCache) Get() (domain.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.storedAt.IsZero() || time.Since(c.storedAt) >= c.ttl {
		return domain.Snapshot{}, false
	}
	return c.snapshot, true
}

// Put stores a snapshot and restarts the TTL window.
func (c *SnapshotCache) Put(s domain.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = s
	c.storedAt = time.Now()
}

// Invalidate drops the cached snapshot immediately.
func (c *SnapshotCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = domain.Snapshot{}
	c.storedAt = time.Time{}
}
