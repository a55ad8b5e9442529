package btcfolio

import (
	"github.com/nogvini/btcfolio/date"
	"github.com/sirupsen/logrus"
)

// Pricing resolves historical prices of operations in USD and in the
// display currency.
type Pricing struct {
	usd, display *priceBook
	policy       GapPolicy
}

// NewPricing builds a Pricing from oracle quotes. When the display currency
// is USD, the same quotes serve both.
func NewPricing(currency string, usd, display Quotes, policy GapPolicy) *Pricing {
	p := &Pricing{usd: newPriceBook("USD", usd), policy: policy}
	if currency == "USD" {
		p.display = p.usd
	} else {
		p.display = newPriceBook(currency, display)
	}
	return p
}

// Currency returns the display currency.
func (p *Pricing) Currency() string { return p.display.currency }

// Normalized is the result of turning entries into operations.
type Normalized struct {
	Operations []Operation
	Gaps       []*QuoteGapError // days priced by the gap policy
}

// Normalize prices each entry and turns it into an Operation: a Buy for an
// investment, a Sell for a profit, loss or withdrawal. Entries must be sorted
// (see Entries), the order is kept.
//
// A missing quote is resolved by the pricing policy and logged; with GapFail
// the first gap is returned as an error.
func Normalize(entries []Entry, p *Pricing, log logrus.FieldLogger) (*Normalized, error) {
	n := &Normalized{Operations: make([]Operation, 0, len(entries))}
	for _, e := range entries {
		usd, okUSD, err := p.usd.resolve(e.Date, p.policy)
		if err != nil {
			return nil, err
		}
		display, okDisplay, err := p.display.resolve(e.Date, p.policy)
		if err != nil {
			return nil, err
		}
		for _, gap := range []struct {
			ok  bool
			cur string
		}{{okUSD, "USD"}, {okDisplay || p.display == p.usd, p.display.currency}} {
			if gap.ok {
				continue
			}
			n.Gaps = append(n.Gaps, &QuoteGapError{Date: e.Date, Currency: gap.cur})
			if log != nil {
				log.WithFields(logrus.Fields{
					"record":   e.ID,
					"date":     e.Date.String(),
					"currency": gap.cur,
					"policy":   p.policy.String(),
				}).Warn("missing historical quote")
			}
		}

		price := Prices{USD: usd, Display: display}
		if e.Kind == KindInvestment {
			n.Operations = append(n.Operations, NewBuy(e.ID, e.Date, e.BTC, price))
		} else {
			n.Operations = append(n.Operations, NewSell(e.ID, e.Date, e.BTC, price, e.Kind))
		}
	}
	return n, nil
}

// Closing returns the display currency closing price of a day. It is a
// ClosingPrice.
func (p *Pricing) Closing(on date.Date) (Money, bool) { return p.display.closing(on) }
