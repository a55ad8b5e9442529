package btcfolio

import (
	"github.com/nogvini/btcfolio/date"
)

// ClosingPrice returns the BTC closing price of a day, falling back to the
// closest earlier quote. ok is false when there is no quote at all on or
// before that day.
type ClosingPrice func(on date.Date) (price Money, ok bool)

// MonthlyBreakdown summarizes one calendar month of a report.
type MonthlyBreakdown struct {
	Month     date.Range `json:"-"`
	MonthYear string     `json:"monthYear"` // "2006-01"

	Investments    Money    `json:"investments"`
	Withdrawals    Money    `json:"withdrawals"`
	InvestmentsBtc Quantity `json:"investmentsBtc"`
	WithdrawalsBtc Quantity `json:"withdrawalsBtc"`

	RealizedPL   Money `json:"realizedPL"`
	UnrealizedPL Money `json:"unrealizedPL"`
	OverallPL    Money `json:"overallPL"`

	Start            Position `json:"start"`
	End              Position `json:"end"`
	StartMarketValue Money    `json:"startMarketValue"`
	EndMarketValue   Money    `json:"endMarketValue"`

	EndBtcBalance     Quantity `json:"endBtcBalance"`
	EndBalanceDisplay Money    `json:"endBalanceDisplay"`
	MonthlyRoi        Percent  `json:"monthlyRoi"`

	// Estimated is set when a closing price was missing and valued at 0.
	Estimated bool `json:"estimated,omitempty"`
}

// ReplayMonth replays the operations of a single month starting from the
// position held at the end of the previous month. ops must all fall within
// month and be sorted.
func ReplayMonth(month date.Range, start Position, ops []Operation, closing ClosingPrice, currency string) MonthlyBreakdown {
	zero := M(0, currency)
	b := MonthlyBreakdown{
		Month:       month,
		MonthYear:   month.From.Format("2006-01"),
		Investments: zero,
		Withdrawals: zero,
		Start:       start,
	}

	l := LedgerFrom(start, currency)
	for _, op := range ops {
		l.Apply(op)
		switch op := op.(type) {
		case Buy:
			b.Investments = b.Investments.Add(op.Total().Display)
			b.InvestmentsBtc = b.InvestmentsBtc.Add(op.Quantity())
		case Sell:
			if op.IsWithdrawal() {
				b.Withdrawals = b.Withdrawals.Add(op.Total().Display)
				b.WithdrawalsBtc = b.WithdrawalsBtc.Add(op.Quantity())
			}
		}
	}
	b.End = l.Position()
	b.Start.Cost = zero.Add(b.Start.Cost)
	b.RealizedPL = l.Realized()

	startPrice, okStart := closing(month.From)
	endPrice, okEnd := closing(month.To)
	if startPrice.Currency() == "" {
		startPrice = zero.Add(startPrice)
	}
	if endPrice.Currency() == "" {
		endPrice = zero.Add(endPrice)
	}
	b.Estimated = (!okStart && b.Start.Quantity.IsPositive()) || (!okEnd && b.End.Quantity.IsPositive())

	b.StartMarketValue = startPrice.Mul(b.Start.Quantity)
	b.EndMarketValue = endPrice.Mul(b.End.Quantity)

	b.UnrealizedPL = b.EndMarketValue.Sub(b.End.Cost).Sub(b.StartMarketValue.Sub(b.Start.Cost))
	b.OverallPL = b.RealizedPL.Add(b.UnrealizedPL)

	b.EndBtcBalance = b.End.Quantity
	b.EndBalanceDisplay = b.EndMarketValue

	base := b.StartMarketValue.Max(b.Start.Cost).Add(b.Investments)
	b.MonthlyRoi = b.OverallPL.Ratio(base)
	return b
}

// MonthlyBreakdowns folds all operations month by month, from the month of
// the first operation to the month of the last one. Months without any
// operation are included. The position at the end of a month is the start
// of the next one.
func MonthlyBreakdowns(ops []Operation, closing ClosingPrice, currency string) []MonthlyBreakdown {
	if len(ops) == 0 {
		return []MonthlyBreakdown{}
	}
	sorted := make([]Operation, len(ops))
	copy(sorted, ops)
	SortOperations(sorted)

	all := date.Between(sorted[0].Date(), sorted[len(sorted)-1].Date())
	var res []MonthlyBreakdown
	pos := Position{Cost: M(0, currency)}
	i := 0
	for month := range all.Months() {
		j := i
		for j < len(sorted) && !sorted[j].Date().After(month.To) {
			j++
		}
		b := ReplayMonth(month, pos, sorted[i:j], closing, currency)
		res = append(res, b)
		pos = b.End
		i = j
	}
	return res
}
