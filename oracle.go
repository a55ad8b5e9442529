package btcfolio

import (
	"context"
	"fmt"
	"strings"

	"github.com/nogvini/btcfolio/date"
)

// Quotes maps a day to the closing BTC price on that day, in one currency.
type Quotes map[date.Date]float64

// PriceOracle supplies historical BTC prices.
//
// Implementations own caching, timeouts and retries. A best-effort answer
// with gaps is fine: missing days are resolved by the GapPolicy.
type PriceOracle interface {
	HistoricalQuotes(ctx context.Context, currency string, r date.Range) (Quotes, error)
}

// PricePoint is the BTC price on a day, in a currency.
type PricePoint struct {
	Date     date.Date `json:"date"`
	Price    float64   `json:"price"`
	Currency string    `json:"currency"`
}

// GapPolicy decides how an operation is priced when its day has no quote.
type GapPolicy int

const (
	// GapZero prices the operation at 0.
	GapZero GapPolicy = iota
	// GapNearest uses the closest earlier quote, then 0 if there is none.
	GapNearest
	// GapFail aborts the calculation with ErrQuoteGap.
	GapFail
)

func (p GapPolicy) String() string {
	switch p {
	case GapZero:
		return "zero"
	case GapNearest:
		return "nearest"
	case GapFail:
		return "fail"
	default:
		return "unknown"
	}
}

// ParseGapPolicy parses "zero", "nearest" or "fail".
func ParseGapPolicy(s string) (GapPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "zero", "":
		return GapZero, nil
	case "nearest":
		return GapNearest, nil
	case "fail":
		return GapFail, nil
	default:
		return GapZero, fmt.Errorf("unknown gap policy: %q", s)
	}
}

// SpotRates are live rates used to value the current holding.
type SpotRates struct {
	BTCToUSD float64 `json:"btcToUsd" toml:"btc_usd"`
	BRLToUSD float64 `json:"brlToUsd" toml:"brl_usd"` // USD value of 1 BRL
}

// BTCPrice returns the spot BTC price in currency, if it can be derived.
func (s SpotRates) BTCPrice(currency string) (float64, bool) {
	if s.BTCToUSD <= 0 {
		return 0, false
	}
	switch currency {
	case "USD":
		return s.BTCToUSD, true
	case "BRL":
		if s.BRLToUSD <= 0 {
			return 0, false
		}
		return s.BTCToUSD / s.BRLToUSD, true
	default:
		return 0, false
	}
}

// priceBook is a quote series with gap resolution.
type priceBook struct {
	currency string
	history  date.History[float64]
}

func newPriceBook(currency string, quotes Quotes) *priceBook {
	b := &priceBook{currency: currency}
	for on, price := range quotes {
		b.history.Append(on, price)
	}
	return b
}

// resolve returns the price on 'on' using policy. ok is false when the
// exact day was missing, whatever the policy substituted.
func (b *priceBook) resolve(on date.Date, policy GapPolicy) (price Money, ok bool, err error) {
	if v, found := b.history.Get(on); found {
		return M(v, b.currency), true, nil
	}
	switch policy {
	case GapNearest:
		v, _ := b.history.ValueAsOf(on)
		return M(v, b.currency), false, nil
	case GapFail:
		return Money{}, false, &QuoteGapError{Date: on, Currency: b.currency}
	default:
		return M(0, b.currency), false, nil
	}
}

// closing returns the closing price as of 'on', falling back to the nearest
// earlier quote. ok is false when no quote exists on or before 'on'.
func (b *priceBook) closing(on date.Date) (Money, bool) {
	v, ok := b.history.ValueAsOf(on)
	return M(v, b.currency), ok
}
