package btcfolio

import (
	"context"
	"fmt"
	"strings"

	"github.com/nogvini/btcfolio/date"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ComparisonMode selects how a comparison series is accumulated.
type ComparisonMode int

const (
	// Accumulated counts every record dated on or before the end of the month.
	Accumulated ComparisonMode = iota
	// Monthly counts only the records dated within the month.
	Monthly
)

func (m ComparisonMode) String() string {
	switch m {
	case Accumulated:
		return "accumulated"
	case Monthly:
		return "monthly"
	default:
		return "unknown"
	}
}

// ParseComparisonMode parses "accumulated" or "monthly".
func ParseComparisonMode(s string) (ComparisonMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "accumulated", "":
		return Accumulated, nil
	case "monthly":
		return Monthly, nil
	default:
		return Accumulated, fmt.Errorf("unknown comparison mode: %q", s)
	}
}

func (m ComparisonMode) MarshalJSON() ([]byte, error) { return []byte(`"` + m.String() + `"`), nil }

// ComparisonPoint is the state of a report, or of the aggregate, for a month.
type ComparisonPoint struct {
	MonthYear   string   `json:"monthYear"`
	Investments Quantity `json:"investments"`
	Profits     Quantity `json:"profits"`
	Withdrawals Quantity `json:"withdrawals"`
	Balance     Quantity `json:"balance"` // investments + profits
	ROI         Percent  `json:"roi"`
}

func newComparisonPoint(month string, t totals) ComparisonPoint {
	return ComparisonPoint{
		MonthYear:   month,
		Investments: t.investments,
		Profits:     t.profits,
		Withdrawals: t.withdrawals,
		Balance:     t.investments.Add(t.profits),
		ROI:         percentOf(t.profits, t.investments),
	}
}

// ReportComparison is one report of a comparison.
type ReportComparison struct {
	ReportID   string            `json:"reportId"`
	ReportName string            `json:"reportName"`
	Stats      ReportStatDetails `json:"stats"`
	Series     []ComparisonPoint `json:"series"`

	// Calculated is only set by Calculator.Compare.
	Calculated *CalculatedReportData `json:"calculated,omitempty"`
}

// ComparisonDataResult compares reports on a unified month timeline.
type ComparisonDataResult struct {
	Mode       ComparisonMode     `json:"mode"`
	Range      date.Range         `json:"-"`
	From       date.Date          `json:"from"`
	To         date.Date          `json:"to"`
	Timeline   []string           `json:"timeline"` // "2006-01", ascending
	Reports    []ReportComparison `json:"reports"`
	Aggregated ReportStatDetails  `json:"aggregated"`
	Series     []ComparisonPoint  `json:"series"` // aggregated series
}

// Compare builds the comparison of reports. It returns nil when reports is
// empty. Invalid records are skipped and logged.
func Compare(reports []*Report, mode ComparisonMode, log logrus.FieldLogger) *ComparisonDataResult {
	if len(reports) == 0 {
		return nil
	}
	res := &ComparisonDataResult{Mode: mode}

	all := make([][]Entry, len(reports))
	for i, r := range reports {
		all[i], _ = Entries(r, log)
	}

	var months []date.Range
	if res.Range = Span(reports...); !res.Range.IsZero() {
		res.From, res.To = res.Range.From, res.Range.To
		for m := range res.Range.Months() {
			months = append(months, m)
			res.Timeline = append(res.Timeline, m.Identifier())
		}
	}

	var aggregated totals
	aggregatedSeries := make([]totals, len(months))
	for i, r := range reports {
		entries := all[i]
		rc := ReportComparison{
			ReportID:   r.ID,
			ReportName: r.Name,
			Stats:      NewReportStats(entries),
			Series:     make([]ComparisonPoint, 0, len(months)),
		}
		for k, t := range seriesOf(entries, months, mode) {
			rc.Series = append(rc.Series, newComparisonPoint(res.Timeline[k], t))
			aggregatedSeries[k].merge(t)
		}
		aggregated.merge(totalsOf(entries))
		res.Reports = append(res.Reports, rc)
	}

	res.Aggregated = aggregated.stats()
	res.Series = make([]ComparisonPoint, 0, len(months))
	for k, t := range aggregatedSeries {
		res.Series = append(res.Series, newComparisonPoint(res.Timeline[k], t))
	}
	return res
}

// seriesOf returns the totals of entries for each month.
func seriesOf(entries []Entry, months []date.Range, mode ComparisonMode) []totals {
	res := make([]totals, len(months))
	for k, m := range months {
		for _, e := range entries {
			if e.Date.After(m.To) {
				break // entries are sorted
			}
			if mode == Monthly && e.Date.Before(m.From) {
				continue
			}
			res[k].add(e)
		}
	}
	return res
}

// Compare builds the comparison of reports and enriches every report with
// its calculated data. Reports are calculated concurrently.
func (c *Calculator) Compare(ctx context.Context, reports []*Report, mode ComparisonMode) (*ComparisonDataResult, error) {
	// records are logged once, by Calculate.
	res := Compare(reports, mode, silentLogger())
	if res == nil {
		return nil, nil
	}
	g, ctx := errgroup.WithContext(ctx)
	for i, r := range reports {
		g.Go(func() error {
			data, err := c.Calculate(ctx, r)
			if err != nil {
				return fmt.Errorf("report %q: %w", r.ID, err)
			}
			res.Reports[i].Calculated = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
