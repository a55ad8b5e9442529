package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/google/subcommands"
	"github.com/nogvini/btcfolio"
	"github.com/nogvini/btcfolio/date"
	"github.com/nogvini/btcfolio/oracle"
	"github.com/sirupsen/logrus"
)

type fetchCmd struct {
	from, to string
	output   string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch historical BTC quotes into a JSONL file" }
func (*fetchCmd) Usage() string {
	return `btcf fetch [-from <date>] [-to <date>] [-o <file>]

  Fetches daily BTC closing prices in USD and in the display currency from
  the configured price sources, and writes them as JSONL price points,
  one {"date","price","currency"} object per line.

  By default the range covers the months spanned by all the reports.
  The output can then be used as the -quotes file, to work offline.

Usage Examples:
$ btcf fetch -o quotes.jsonl
$ btcf -currency USD fetch -from 2024-01-01 -to 2024-06-30
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "First day to fetch (defaults to the reports' first record)")
	f.StringVar(&c.to, "to", "", "Last day to fetch (defaults to the reports' last record)")
	f.StringVar(&c.output, "o", "", "Output file, stdout by default")
}

// period returns the range to fetch: the flags, completed with the span of
// the reports extended to whole months.
func (c *fetchCmd) period(reports []*btcfolio.Report) (date.Range, error) {
	span := btcfolio.Span(reports...)
	if !span.IsZero() {
		span = date.Between(span.From.StartOf(date.Monthly), span.To.EndOf(date.Monthly))
	}
	var err error
	if c.from != "" {
		if span.From, err = date.Parse(c.from); err != nil {
			return date.Range{}, err
		}
	}
	if c.to != "" {
		if span.To, err = date.Parse(c.to); err != nil {
			return date.Range{}, err
		}
	}
	if span.From.IsZero() || span.To.IsZero() {
		return date.Range{}, fmt.Errorf("no range to fetch: the reports have no dated record, use -from and -to")
	}
	return date.Between(span.From, span.To), nil
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	log, err := cfg.Logger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	// reports are optional when the range is given.
	reports, err := cfg.LoadReports()
	if err != nil && (c.from == "" || c.to == "") {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	r, err := c.period(reports)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	src, err := cfg.PriceOracle(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	currencies := []string{"USD"}
	if cur := strings.ToUpper(cfg.Currency); cur != "USD" {
		currencies = append(currencies, cur)
	}
	var points []btcfolio.PricePoint
	for _, cur := range currencies {
		quotes, err := src.HistoricalQuotes(ctx, cur, r)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: fetching %s quotes: %v\n", cur, err)
			return subcommands.ExitFailure
		}
		log.WithFields(logrus.Fields{"currency": cur, "quotes": len(quotes), "from": r.From, "to": r.To}).Info("fetched quotes")
		for _, day := range slices.SortedFunc(maps.Keys(quotes), date.Date.Compare) {
			points = append(points, btcfolio.PricePoint{Date: day, Price: quotes[day], Currency: cur})
		}
	}

	var w io.Writer = stdout
	if c.output != "" {
		out, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		defer out.Close()
		w = out
	}
	if err := oracle.EncodeJSONL(w, points); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
