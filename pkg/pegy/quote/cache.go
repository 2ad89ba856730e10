package quote

import (
	"context"
	"sync"
	"time"

	"github.com/komsit37/pegy/pkg/pegy/types"
)

// DefaultTTL bounds provider request volume; repeated screens inside this
// window reuse cached fundamentals. Staleness up to the TTL is accepted.
const DefaultTTL = 15 * time.Minute

// CacheService decorates a Service with a TTL+LRU cache keyed by symbol.
type CacheService struct {
	next Service
	ttl  time.Duration
	size int
	now  func() time.Time

	mu    sync.Mutex
	items map[string]cacheEntry
	order []string // simple LRU order, oldest at index 0
}

type cacheEntry struct {
	at time.Time
	f  types.Fundamentals
}

func NewCacheService(next Service, ttl time.Duration, size int) *CacheService {
	return &CacheService{
		next:  next,
		ttl:   ttl,
		size:  size,
		now:   time.Now,
		items: make(map[string]cacheEntry),
	}
}

// WithClock replaces the cache clock so tests can expire entries without
// real wall-clock delay.
func (c *CacheService) WithClock(now func() time.Time) *CacheService {
	c.now = now
	return c
}

func (c *CacheService) Fundamentals(ctx context.Context, sym string) (types.Fundamentals, error) {
	now := c.now()
	c.mu.Lock()
	if ent, ok := c.items[sym]; ok {
		if now.Sub(ent.at) <= c.ttl {
			c.touchLocked(sym)
			f := ent.f
			c.mu.Unlock()
			return f, nil
		}
		// expired; drop and continue
		delete(c.items, sym)
		c.removeFromOrderLocked(sym)
	}
	c.mu.Unlock()

	f, err := c.next.Fundamentals(ctx, sym)
	if err != nil {
		// Failures are not cached; a re-run may succeed.
		return f, err
	}
	c.mu.Lock()
	c.items[sym] = cacheEntry{at: now, f: f}
	c.order = append(c.order, sym)
	for len(c.items) > c.size && len(c.order) > 0 {
		old := c.order[0]
		c.order = c.order[1:]
		delete(c.items, old)
	}
	c.mu.Unlock()
	return f, nil
}

func (c *CacheService) touchLocked(k string) {
	for i, v := range c.order {
		if v == k {
			c.order = append(append(c.order[:i], c.order[i+1:]...), k)
			return
		}
	}
	c.order = append(c.order, k)
}

func (c *CacheService) removeFromOrderLocked(k string) {
	for i, v := range c.order {
		if v == k {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
