package btcfolio

import (
	"github.com/nogvini/btcfolio/date"
)

// ReportStatDetails are the BTC denominated statistics of a report, or of a
// set of reports.
type ReportStatDetails struct {
	TotalInvestments      Quantity  `json:"totalInvestments"`
	TotalProfits          Quantity  `json:"totalProfits"` // net of losses
	TotalWithdrawals      Quantity  `json:"totalWithdrawals"`
	FinalBalance          Quantity  `json:"finalBalance"` // investments + profits
	ROI                   Percent   `json:"roi"`
	FirstContributionDate date.Date `json:"firstContributionDate"`
	LastEntryDate         date.Date `json:"lastEntryDate"`
	DaysInvested          int       `json:"daysInvested"`
	AnnualizedROI         Percent   `json:"annualizedRoi"`
	DailyAvgProfitBtc     Quantity  `json:"dailyAvgProfitBtc"`
	DailyAvgRoiPercent    Percent   `json:"dailyAvgRoiPercent"`
}

// totals accumulates BTC amounts and the dates framing them.
type totals struct {
	investments, profits, withdrawals Quantity
	first, last                       date.Date
}

// add accounts for e. Withdrawals do not move the last entry date.
func (t *totals) add(e Entry) {
	switch e.Kind {
	case KindInvestment:
		t.investments = t.investments.Add(e.BTC)
		t.first = date.Min(t.first, e.Date)
		t.last = date.Max(t.last, e.Date)
	case KindProfit, KindLoss:
		t.profits = t.profits.Add(e.Signed())
		t.last = date.Max(t.last, e.Date)
	case KindWithdrawal:
		t.withdrawals = t.withdrawals.Add(e.BTC)
	}
}

// merge accounts for another set of totals.
func (t *totals) merge(o totals) {
	t.investments = t.investments.Add(o.investments)
	t.profits = t.profits.Add(o.profits)
	t.withdrawals = t.withdrawals.Add(o.withdrawals)
	t.first = date.Min(t.first, o.first)
	t.last = date.Max(t.last, o.last)
}

func (t totals) stats() ReportStatDetails {
	s := ReportStatDetails{
		TotalInvestments:      t.investments,
		TotalProfits:          t.profits,
		TotalWithdrawals:      t.withdrawals,
		FinalBalance:          t.investments.Add(t.profits),
		ROI:                   percentOf(t.profits, t.investments),
		FirstContributionDate: t.first,
		LastEntryDate:         t.last,
	}
	s.DaysInvested = DaysInvested(t.first, t.last)
	var r float64
	if !t.investments.IsZero() {
		r = t.profits.Div(t.investments).Float()
	}
	s.AnnualizedROI = AnnualizedROI(r, s.DaysInvested)
	s.DailyAvgProfitBtc = DailyAverage(t.profits, s.DaysInvested)
	s.DailyAvgRoiPercent = DailyAveragePercent(s.ROI, s.DaysInvested)
	return s
}

func totalsOf(entries []Entry) totals {
	var t totals
	for _, e := range entries {
		t.add(e)
	}
	return t
}

// NewReportStats computes the statistics of validated entries. No entries
// gives all zero statistics.
func NewReportStats(entries []Entry) ReportStatDetails {
	return totalsOf(entries).stats()
}
