package forecast

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/roadcast/roadcast/internal/weather"
)

// FetchFunc retrieves a fresh multi-day forecast payload.
type FetchFunc func(ctx context.Context) (weather.Payload, error)

// Cache holds the last successfully fetched forecast payload and refreshes it
// once it is older than the freshness window. A failed refresh silently serves
// the previous payload, however old; only a failure with nothing cached at all
// surfaces as weather.ErrForecastUnavailable. Access is serialized by a mutex,
// so a slow refresh blocks concurrent readers for at most the fetch timeout.
type Cache struct {
	mu sync.Mutex

	fetch FetchFunc
	ttl   time.Duration
	now   func() time.Time

	payload   weather.Payload
	fetchedAt time.Time
	primed    bool
}

func NewCache(fetch FetchFunc, ttl time.Duration) *Cache {
	return &Cache{
		fetch: fetch,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns the cached payload when it is still fresh, otherwise attempts a
// refresh first.
func (c *Cache) Get(ctx context.Context) (weather.Payload, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.primed && now.Sub(c.fetchedAt) <= c.ttl {
		return c.payload, nil
	}

	payload, err := c.fetch(ctx)
	if err != nil {
		if c.primed {
			slog.Warn("forecast refresh failed, serving stale payload",
				"err", err,
				"age", now.Sub(c.fetchedAt).Round(time.Second),
			)
			return c.payload, nil
		}
		return weather.Payload{}, fmt.Errorf("%w: %v", weather.ErrForecastUnavailable, err)
	}

	c.payload = payload
	c.fetchedAt = now
	c.primed = true
	return c.payload, nil
}
