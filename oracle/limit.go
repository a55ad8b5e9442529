package oracle

import (
	"context"

	"github.com/nogvini/btcfolio"
	"github.com/nogvini/btcfolio/date"
	"golang.org/x/time/rate"
)

// Limited throttles the calls made to an oracle.
type Limited struct {
	base    btcfolio.PriceOracle
	limiter *rate.Limiter
}

// NewLimited allows at most perSecond calls per second to base, with bursts
// of burst calls.
func NewLimited(base btcfolio.PriceOracle, perSecond float64, burst int) *Limited {
	return &Limited{base: base, limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// HistoricalQuotes waits for its turn, or for ctx to be done.
func (l *Limited) HistoricalQuotes(ctx context.Context, currency string, r date.Range) (btcfolio.Quotes, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return l.base.HistoricalQuotes(ctx, currency, r)
}
