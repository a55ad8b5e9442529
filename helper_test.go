package btcfolio

import (
	"context"
	"sync/atomic"

	"github.com/google/go-cmp/cmp"
	"github.com/nogvini/btcfolio/date"
)

// BRL is a helper for test to create real money from const
func BRL(v float64) Money { return M(v, "BRL") }

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

func day(s string) date.Date { return date.MustParse(s) }

func inv(id, on string, amount float64, unit string) Investment {
	return Investment{ID: id, Date: on, Amount: A(amount), Unit: unit}
}

func profit(id, on string, amount float64, isProfit bool) ProfitRecord {
	return ProfitRecord{ID: id, Date: on, Amount: A(amount), Unit: "BTC", IsProfit: isProfit}
}

func withdrawal(id, on string, amount float64) WithdrawalRecord {
	return WithdrawalRecord{ID: id, Date: on, Amount: A(amount), Unit: "BTC"}
}

// at returns the prices of one BTC in USD and BRL.
func at(usd, brl float64) Prices { return Prices{USD: USD(usd), Display: BRL(brl)} }

// cmpOpts compares results by value.
var cmpOpts = cmp.Options{
	cmp.Comparer(func(a, b Money) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b Quantity) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b date.Date) bool { return a == b }),
	cmp.AllowUnexported(Buy{}, Sell{}, trade{}),
}

// fakeOracle serves flat prices per currency, overridden by explicit quotes.
type fakeOracle struct {
	prices map[string]float64
	quotes map[string]Quotes
	err    error
	calls  atomic.Int32
}

func (o *fakeOracle) HistoricalQuotes(ctx context.Context, currency string, r date.Range) (Quotes, error) {
	o.calls.Add(1)
	if o.err != nil {
		return nil, o.err
	}
	res := Quotes{}
	if p, ok := o.prices[currency]; ok {
		for d := r.From; !d.After(r.To); d = d.Add(1) {
			res[d] = p
		}
	}
	for d, p := range o.quotes[currency] {
		if r.Contains(d) {
			res[d] = p
		}
	}
	return res, nil
}

// scenarioA is 0.1 BTC invested on 2024-01-01 and a 0.02 BTC profit on 2024-06-01.
func scenarioA() *Report {
	return &Report{
		ID:          "a",
		Name:        "Scenario A",
		Investments: []Investment{inv("i1", "2024-01-01", 0.1, "BTC")},
		Profits:     []ProfitRecord{profit("p1", "2024-06-01", 0.02, true)},
	}
}
