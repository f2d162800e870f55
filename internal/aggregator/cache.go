package aggregator

import (
	"sync"
	"time"

	"cosmocast/internal/models"
)

// snapshotCache is the one cache slot for the aggregate. The service has a
// single global view of world weather, so there is no per-query keying.
type snapshotCache struct {
	mu        sync.RWMutex
	value     *models.SpaceWeatherData
	fetchedAt time.Time
}

// Get returns the cached aggregate when it is still valid at the given time
func (c *snapshotCache) Get(now time.Time, ttl time.Duration) (*models.SpaceWeatherData, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.isValid(now, ttl) {
		return nil, false
	}
	return c.value, true
}

// Set overwrites the slot with a fresh aggregate
func (c *snapshotCache) Set(value *models.SpaceWeatherData, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = value
	c.fetchedAt = now
}

// isValid reports whether the slot holds a value younger than ttl.
// An entry exactly ttl old is stale. Callers must hold the lock.
func (c *snapshotCache) isValid(now time.Time, ttl time.Duration) bool {
	return c.value != nil && now.Sub(c.fetchedAt) < ttl
}
