package selection

import (
	"sync"

	"coursecart/models"
)

// SessionCache is the append-only store of session records seen during one
// selection episode. Iteration order is insertion order, and entries are
// never evicted within an episode. Put is safe to call from concurrent fetch
// completions; writes are whole-record upserts keyed by id.
type SessionCache struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]models.Session
}

// NewSessionCache returns an empty cache.
func NewSessionCache() *SessionCache {
	return &SessionCache{byID: make(map[string]models.Session)}
}

// NewSessionCacheFrom rebuilds a cache from sessions carried in a stored
// episode, preserving their order.
func NewSessionCacheFrom(sessions []models.Session) *SessionCache {
	c := NewSessionCache()
	for _, s := range sessions {
		c.Put(s)
	}
	return c
}

// Put upserts a session by id. Re-putting an id overwrites the record but
// keeps its first-seen position.
func (c *SessionCache) Put(s models.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.byID[s.ID]; !ok {
		c.order = append(c.order, s.ID)
	}
	c.byID[s.ID] = s
}

// Get returns the cached session for id, if present.
func (c *SessionCache) Get(id string) (models.Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.byID[id]
	return s, ok
}

// Has reports whether id has been resolved into the cache.
func (c *SessionCache) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.byID[id]
	return ok
}

// All returns every cached session in insertion order.
func (c *SessionCache) All() []models.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Session, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Missing returns the subset of ids that have no cache entry yet, in the
// order given.
func (c *SessionCache) Missing(ids []string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var missing []string
	for _, id := range ids {
		if _, ok := c.byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// Len returns the number of cached sessions.
func (c *SessionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}
