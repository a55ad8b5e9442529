package renderer

import (
	"fmt"

	"github.com/nogvini/btcfolio"
)

// Report is the view of a calculated report.
type Report struct {
	*btcfolio.CalculatedReportData
	Title    string
	Warnings []string
	Monthly  []MonthlyRow
}

// MonthlyRow is a row of the monthly breakdown, either a month or a yearly subtotal.
type MonthlyRow struct {
	Label       string
	Investments string
	Withdrawals string
	Realized    string
	Unrealized  string
	Overall     string
	BtcBalance  string
	Balance     string
	ROI         string
}

// NewReport builds the view of d. With subtotals, a row summing each year
// follows its last month.
func NewReport(d *btcfolio.CalculatedReportData, subtotals bool) *Report {
	r := &Report{CalculatedReportData: d, Title: d.ReportName}
	if r.Title == "" {
		r.Title = d.ReportID
	}
	if r.Title == "" {
		r.Title = "Report"
	}
	if n := len(d.DroppedRecords); n > 0 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%d invalid record(s) were ignored.", n))
	}
	if d.QuoteGaps > 0 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%d price(s) were missing, figures are estimates.", d.QuoteGaps))
	}

	var year yearTotal
	for i, m := range d.Monthly {
		r.Monthly = append(r.Monthly, monthRow(m))
		year.add(m)
		last := i == len(d.Monthly)-1
		if subtotals && (last || d.Monthly[i+1].Month.From.Year() != m.Month.From.Year()) {
			r.Monthly = append(r.Monthly, year.row())
			year = yearTotal{}
		}
	}
	return r
}

func monthRow(m btcfolio.MonthlyBreakdown) MonthlyRow {
	est := ""
	if m.Estimated {
		est = " *"
	}
	return MonthlyRow{
		Label:       m.MonthYear + est,
		Investments: m.Investments.String(),
		Withdrawals: m.Withdrawals.String(),
		Realized:    m.RealizedPL.SignedString(),
		Unrealized:  m.UnrealizedPL.SignedString(),
		Overall:     m.OverallPL.SignedString(),
		BtcBalance:  m.EndBtcBalance.StringFixed(8),
		Balance:     m.EndBalanceDisplay.String(),
		ROI:         m.MonthlyRoi.SignedString(),
	}
}

// yearTotal sums the flows of the months of a year.
type yearTotal struct {
	year        int
	last        btcfolio.MonthlyBreakdown
	investments btcfolio.Money
	withdrawals btcfolio.Money
	realized    btcfolio.Money
	unrealized  btcfolio.Money
}

func (y *yearTotal) add(m btcfolio.MonthlyBreakdown) {
	y.year = m.Month.From.Year()
	y.investments = y.investments.Add(m.Investments)
	y.withdrawals = y.withdrawals.Add(m.Withdrawals)
	y.realized = y.realized.Add(m.RealizedPL)
	y.unrealized = y.unrealized.Add(m.UnrealizedPL)
	y.last = m
}

func (y *yearTotal) row() MonthlyRow {
	bold := func(s string) string { return "**" + s + "**" }
	return MonthlyRow{
		Label:       bold(fmt.Sprintf("%d", y.year)),
		Investments: bold(y.investments.String()),
		Withdrawals: bold(y.withdrawals.String()),
		Realized:    bold(y.realized.SignedString()),
		Unrealized:  bold(y.unrealized.SignedString()),
		Overall:     bold(y.realized.Add(y.unrealized).SignedString()),
		BtcBalance:  bold(y.last.EndBtcBalance.StringFixed(8)),
		Balance:     bold(y.last.EndBalanceDisplay.String()),
		ROI:         "",
	}
}
