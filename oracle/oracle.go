// Package oracle provides historical BTC price sources and decorators for
// btcfolio.PriceOracle: in memory quotes loaded from files, the EODHD API,
// a TTL cache and a rate limiter.
package oracle

import (
	"context"
	"fmt"
	"sync"

	"github.com/nogvini/btcfolio"
	"github.com/nogvini/btcfolio/date"
)

// Memory serves quotes held in memory. It is safe for concurrent use.
type Memory struct {
	mu     sync.RWMutex
	quotes map[string]btcfolio.Quotes // by currency
}

// NewMemory returns a Memory oracle holding points.
func NewMemory(points ...btcfolio.PricePoint) *Memory {
	m := &Memory{quotes: make(map[string]btcfolio.Quotes)}
	m.Add(points...)
	return m
}

// Add stores points, overwriting any existing price for the same day and currency.
func (m *Memory) Add(points ...btcfolio.PricePoint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range points {
		q, ok := m.quotes[p.Currency]
		if !ok {
			q = make(btcfolio.Quotes)
			m.quotes[p.Currency] = q
		}
		q[p.Date] = p.Price
	}
}

// HistoricalQuotes returns the known quotes in currency within r.
func (m *Memory) HistoricalQuotes(ctx context.Context, currency string, r date.Range) (btcfolio.Quotes, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make(btcfolio.Quotes)
	for on, price := range m.quotes[currency] {
		if r.Contains(on) {
			res[on] = price
		}
	}
	return res, nil
}

// Currencies returns how many quotes are known per currency.
func (m *Memory) Currencies() map[string]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make(map[string]int, len(m.quotes))
	for cur, q := range m.quotes {
		res[cur] = len(q)
	}
	return res
}

// Chain asks each oracle in turn and merges their answers. Earlier oracles
// win for days known by several. It fails if any oracle fails.
type Chain []btcfolio.PriceOracle

func (c Chain) HistoricalQuotes(ctx context.Context, currency string, r date.Range) (btcfolio.Quotes, error) {
	res := make(btcfolio.Quotes)
	for i, o := range c {
		q, err := o.HistoricalQuotes(ctx, currency, r)
		if err != nil {
			return nil, fmt.Errorf("oracle #%d: %w", i, err)
		}
		for on, price := range q {
			if _, exists := res[on]; !exists {
				res[on] = price
			}
		}
	}
	return res, nil
}
