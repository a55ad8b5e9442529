package btcfolio

import (
	"context"
	"fmt"
	"io"

	"github.com/nogvini/btcfolio/date"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// CalculatedReportData is everything computed for one report.
type CalculatedReportData struct {
	ReportID   string `json:"reportId"`
	ReportName string `json:"reportName"`
	Currency   string `json:"currency"`

	Operations []Operation `json:"operations"`

	TotalInvestments Money `json:"totalInvestments"`
	TotalWithdrawals Money `json:"totalWithdrawals"`
	RealizedPL       Money `json:"realizedPL"`
	UnrealizedPL     Money `json:"unrealizedPL"`
	OverallPL        Money `json:"overallPL"`

	Holding      Position `json:"holding"`
	CurrentPrice Money    `json:"currentPrice"`
	CurrentValue Money    `json:"currentValue"`
	ROI          Percent  `json:"roi"`

	Monthly []MonthlyBreakdown `json:"monthly"`
	Stats   ReportStatDetails  `json:"stats"`

	// DroppedRecords are the records that could not be used.
	DroppedRecords []*DataError `json:"droppedRecords,omitempty"`
	// QuoteGaps counts prices substituted by the gap policy. Results with
	// gaps are estimates.
	QuoteGaps int `json:"quoteGaps"`
}

// Calculator computes report metrics in a display currency, pricing records
// with a PriceOracle.
//
// A Calculator holds no state between calls and can be used concurrently.
type Calculator struct {
	Oracle   PriceOracle
	Currency string
	Policy   GapPolicy
	// Spot, when set, values the current holding. Otherwise the latest
	// historical quote up to today is used.
	Spot *SpotRates
	Log  logrus.FieldLogger
}

// NewCalculator returns a Calculator using the GapZero policy and the
// standard logrus logger.
func NewCalculator(oracle PriceOracle, currency string) (*Calculator, error) {
	if err := ValidateCurrency(currency); err != nil {
		return nil, err
	}
	return &Calculator{
		Oracle:   oracle,
		Currency: currency,
		Policy:   GapZero,
		Log:      logrus.StandardLogger(),
	}, nil
}

func (c *Calculator) logger() logrus.FieldLogger {
	if c.Log == nil {
		return silentLogger()
	}
	return c.Log
}

// silentLogger discards everything.
func silentLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// quotes fetches USD and display currency quotes over r concurrently.
func (c *Calculator) quotes(ctx context.Context, r date.Range) (usd, display Quotes, err error) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q, err := c.Oracle.HistoricalQuotes(ctx, "USD", r)
		if err != nil {
			return fmt.Errorf("could not fetch USD quotes: %w", err)
		}
		usd = q
		return nil
	})
	if c.Currency != "USD" {
		g.Go(func() error {
			q, err := c.Oracle.HistoricalQuotes(ctx, c.Currency, r)
			if err != nil {
				return fmt.Errorf("could not fetch %s quotes: %w", c.Currency, err)
			}
			display = q
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return usd, display, nil
}

// Calculate computes the metrics of r. Invalid records are skipped and
// reported in DroppedRecords. Only oracle failures, and quote gaps under the
// GapFail policy, are returned as errors.
func (c *Calculator) Calculate(ctx context.Context, r *Report) (*CalculatedReportData, error) {
	log := c.logger().WithField("report", r.ID)
	zero := M(0, c.Currency)
	res := &CalculatedReportData{
		ReportID:         r.ID,
		ReportName:       r.Name,
		Currency:         c.Currency,
		Operations:       []Operation{},
		TotalInvestments: zero,
		TotalWithdrawals: zero,
		RealizedPL:       zero,
		UnrealizedPL:     zero,
		OverallPL:        zero,
		Holding:          Position{Cost: zero},
		CurrentPrice:     zero,
		CurrentValue:     zero,
		Monthly:          []MonthlyBreakdown{},
	}

	entries, dropped := Entries(r, log)
	res.DroppedRecords = dropped
	res.Stats = NewReportStats(entries)
	if len(entries) == 0 {
		return res, nil
	}

	// whole months, so that month boundaries have a closing price.
	s := span(entries)
	fetch := date.Range{From: s.From.StartOf(date.Monthly), To: s.To.EndOf(date.Monthly)}
	spot, hasSpot := c.spotPrice()
	if !hasSpot {
		fetch.To = date.Max(fetch.To, date.Today())
	}
	usd, display, err := c.quotes(ctx, fetch)
	if err != nil {
		return nil, err
	}
	pricing := NewPricing(c.Currency, usd, display, c.Policy)

	n, err := Normalize(entries, pricing, log)
	if err != nil {
		return nil, err
	}
	res.Operations = n.Operations
	res.QuoteGaps = len(n.Gaps)

	ledger := NewLedger(c.Currency)
	for _, op := range n.Operations {
		ledger.Apply(op)
		switch op := op.(type) {
		case Buy:
			res.TotalInvestments = res.TotalInvestments.Add(op.Total().Display)
		case Sell:
			if op.IsWithdrawal() {
				res.TotalWithdrawals = res.TotalWithdrawals.Add(op.Total().Display)
			}
		}
	}
	res.Holding = ledger.Position()
	res.RealizedPL = ledger.Realized()
	res.Monthly = MonthlyBreakdowns(n.Operations, pricing.Closing, c.Currency)

	res.CurrentPrice = spot
	if !hasSpot {
		_, v := pricing.display.history.Latest()
		res.CurrentPrice = M(v, c.Currency)
	}
	res.CurrentValue = res.CurrentPrice.Mul(res.Holding.Quantity)
	res.UnrealizedPL = res.CurrentValue.Sub(res.Holding.Cost)
	res.OverallPL = res.RealizedPL.Add(res.UnrealizedPL)
	res.ROI = res.OverallPL.Ratio(res.TotalInvestments)

	log.WithFields(logrus.Fields{
		"operations": len(res.Operations),
		"dropped":    len(res.DroppedRecords),
		"gaps":       res.QuoteGaps,
	}).Debug("report calculated")
	return res, nil
}

// spotPrice is the configured price of one BTC in the display currency.
func (c *Calculator) spotPrice() (Money, bool) {
	if c.Spot == nil {
		return Money{}, false
	}
	v, ok := c.Spot.BTCPrice(c.Currency)
	return M(v, c.Currency), ok
}
