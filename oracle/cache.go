package oracle

import (
	"context"
	"maps"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/nogvini/btcfolio"
	"github.com/nogvini/btcfolio/date"
)

// Cached memoizes the answers of an oracle for a limited time.
type Cached struct {
	base    btcfolio.PriceOracle
	entries *ttlcache.Cache[cacheKey, btcfolio.Quotes]
}

type cacheKey struct {
	currency string
	r        date.Range
}

// NewCached wraps base. Answers are kept for ttl from the moment they are
// fetched, reads do not extend it. Errors are not cached.
func NewCached(base btcfolio.PriceOracle, ttl time.Duration) *Cached {
	return &Cached{
		base: base,
		entries: ttlcache.New(
			ttlcache.WithTTL[cacheKey, btcfolio.Quotes](ttl),
			ttlcache.WithDisableTouchOnHit[cacheKey, btcfolio.Quotes](),
		),
	}
}

func (c *Cached) HistoricalQuotes(ctx context.Context, currency string, r date.Range) (btcfolio.Quotes, error) {
	key := cacheKey{currency, r}
	if item := c.entries.Get(key); item != nil {
		return maps.Clone(item.Value()), nil
	}

	q, err := c.base.HistoricalQuotes(ctx, currency, r)
	if err != nil {
		return nil, err
	}
	c.entries.Set(key, maps.Clone(q), ttlcache.DefaultTTL)
	return q, nil
}

// Purge drops expired entries.
func (c *Cached) Purge() { c.entries.DeleteExpired() }

// Len returns the number of cached answers, expired or not.
func (c *Cached) Len() int { return c.entries.Len() }
