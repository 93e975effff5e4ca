package profile

import (
	"sync"

	"NewsRadar/internal/domain"
)

// DefaultCacheSize is generous for the small, bounded number of distinct
// subjects a single run touches.
const DefaultCacheSize = 64

// Cache holds resolved profiles for the process lifetime, bounded by a FIFO
// eviction policy so a long-lived service cannot grow it without limit.
type Cache struct {
	mu      sync.Mutex
	max     int
	entries map[string]domain.SubjectProfile
	order   []string
}

// NewCache builds a cache bounded at max entries.
func NewCache(max int) *Cache {
	if max <= 0 {
		max = DefaultCacheSize
	}
	return &Cache{
		max:     max,
		entries: make(map[string]domain.SubjectProfile, max),
	}
}

// Get returns the cached profile for the subject, if present.
func (c *Cache) Get(subjectID string) (domain.SubjectProfile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.entries[subjectID]
	return p, ok
}

// Put stores the profile, evicting the oldest inserted entry when full.
func (c *Cache) Put(subjectID string, p domain.SubjectProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[subjectID]; ok {
		c.entries[subjectID] = p
		return
	}

	if len(c.order) >= c.max {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[subjectID] = p
	c.order = append(c.order, subjectID)
}

// Len reports the number of cached profiles.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
