package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hirebridge/backend/internal/models"
	"go.uber.org/zap"
)

// DefaultTTL is how long an access verdict stays valid. A conversation's two
// parties never change after creation, so entries only go stale through
// application deletion; a deleted application may appear accessible from
// cache for up to one TTL window. That bounded staleness is accepted.
const DefaultTTL = 5 * time.Minute

// Entry is one cached access verdict. Denied verdicts are cached with the
// same TTL as granted ones so repeated unauthorized probes stay cheap.
type Entry struct {
	HasAccess   bool                      `json:"has_access"`
	Application models.ApplicationContext `json:"application"`

	insertedAt time.Time
}

// Key builds the cache key for an access check.
func Key(applicationID, requesterID uint, kind models.PartyKind) string {
	return fmt.Sprintf("%d:%d:%s", applicationID, requesterID, kind)
}

// ConversationAccessCache memoizes access-check verdicts. Implementations
// are pure optimizations: dropping every entry at any moment must not change
// any access decision, only its cost.
type ConversationAccessCache interface {
	Get(ctx context.Context, key string) (Entry, bool)
	Put(ctx context.Context, key string, entry Entry)
}

// AccessCache is the in-process implementation: an RWMutex-guarded map with
// a fixed TTL, lazy expiry on Get and a background sweep reclaiming space.
type AccessCache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration

	log  *zap.Logger
	stop chan struct{}
	once sync.Once
}

// NewAccessCache creates the cache and starts its sweeper. The sweep runs on
// a TTL-length interval. Call Close to stop it.
func NewAccessCache(ttl time.Duration, log *zap.Logger) *AccessCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	c := &AccessCache{
		entries: make(map[string]Entry),
		ttl:     ttl,
		log:     log,
		stop:    make(chan struct{}),
	}
	go c.sweepLoop()
	return c
}

func (c *AccessCache) Get(_ context.Context, key string) (Entry, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return Entry{}, false
	}
	// Expired entries are treated as absent even before the sweep runs.
	if time.Since(entry.insertedAt) > c.ttl {
		return Entry{}, false
	}
	return entry, true
}

func (c *AccessCache) Put(_ context.Context, key string, entry Entry) {
	entry.insertedAt = time.Now()
	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
}

// Sweep removes every entry older than the TTL and returns how many were
// dropped. The insertedAt check re-runs under the write lock so a concurrent
// Put refreshing a key is never thrown away.
func (c *AccessCache) Sweep() int {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if now.Sub(entry.insertedAt) > c.ttl {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len reports the current number of entries, expired or not.
func (c *AccessCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the background sweeper. Safe to call more than once.
func (c *AccessCache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *AccessCache) sweepLoop() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if removed := c.Sweep(); removed > 0 {
				c.log.Debug("access cache sweep", zap.Int("removed", removed))
			}
		case <-c.stop:
			return
		}
	}
}

var _ ConversationAccessCache = (*AccessCache)(nil)
