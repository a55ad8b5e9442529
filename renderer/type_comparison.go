package renderer

import (
	"fmt"
	"strconv"

	"github.com/nogvini/btcfolio"
)

// Comparison is the view of a comparison of reports.
type Comparison struct {
	*btcfolio.ComparisonDataResult
	Mode   string
	Period string
	// Stats has one row per report and a last row for the aggregate.
	StatsHeader []string
	Stats       [][]string
	// Series has one row per month, with the balance and ROI of every report.
	SeriesHeader []string
	Series       [][]string
}

// NewComparison builds the view of c. A nil comparison gives an empty view.
func NewComparison(c *btcfolio.ComparisonDataResult) *Comparison {
	v := &Comparison{ComparisonDataResult: c, Mode: "no report selected"}
	if c == nil {
		return v
	}
	v.Mode = c.Mode.String()
	if !c.Range.IsZero() {
		v.Period = fmt.Sprintf("%s to %s", c.From, c.To)
	}

	v.StatsHeader = []string{"Report", "Invested (BTC)", "Profits (BTC)", "Balance (BTC)", "ROI", "Annualized", "Days", "Since"}
	for _, r := range c.Reports {
		v.Stats = append(v.Stats, statsRow(reportLabel(r), r.Stats))
	}
	v.Stats = append(v.Stats, bold(statsRow("Total", c.Aggregated)))

	v.SeriesHeader = []string{"Month"}
	for _, r := range c.Reports {
		label := reportLabel(r)
		v.SeriesHeader = append(v.SeriesHeader, label+" balance", label+" ROI")
	}
	v.SeriesHeader = append(v.SeriesHeader, "Total balance", "Total ROI")
	for k, month := range c.Timeline {
		row := []string{month}
		for _, r := range c.Reports {
			p := r.Series[k]
			row = append(row, p.Balance.StringFixed(8), p.ROI.SignedString())
		}
		p := c.Series[k]
		row = append(row, p.Balance.StringFixed(8), p.ROI.SignedString())
		v.Series = append(v.Series, row)
	}
	return v
}

func reportLabel(r btcfolio.ReportComparison) string {
	if r.ReportName != "" {
		return r.ReportName
	}
	return r.ReportID
}

func statsRow(label string, s btcfolio.ReportStatDetails) []string {
	since := "-"
	if !s.FirstContributionDate.IsZero() {
		since = s.FirstContributionDate.String()
	}
	return []string{
		label,
		s.TotalInvestments.StringFixed(8),
		s.TotalProfits.StringFixed(8),
		s.FinalBalance.StringFixed(8),
		s.ROI.SignedString(),
		s.AnnualizedROI.SignedString(),
		strconv.Itoa(s.DaysInvested),
		since,
	}
}

func bold(cells []string) []string {
	res := make([]string, len(cells))
	for i, c := range cells {
		res[i] = "**" + c + "**"
	}
	return res
}
