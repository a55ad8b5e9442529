package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/nogvini/btcfolio"
	"github.com/nogvini/btcfolio/renderer"
)

type compareCmd struct {
	mode      string
	ids       string
	calculate bool
	json      bool
	query     string
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "compare several reports month by month" }
func (*compareCmd) Usage() string {
	return `btcf compare [-mode accumulated|monthly] [-id <id1,id2,...>] [-calculate] [-json] [-q <jsonpath>]

  Compares the selected reports (all of them by default) over the months
  spanned by their records. In accumulated mode every point sums the records
  up to the end of its month, in monthly mode only the records of the month.

  With -calculate, each report is also fully valued with historical quotes.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.mode, "mode", "accumulated", "Comparison mode: accumulated or monthly")
	f.StringVar(&c.ids, "id", "", "Comma separated report ids, all reports by default")
	f.BoolVar(&c.calculate, "calculate", false, "Also value each report with historical quotes")
	f.BoolVar(&c.json, "json", false, "Print the comparison as JSON")
	f.StringVar(&c.query, "q", "", "JSONPath query applied to the JSON output (implies -json)")
}

// selected returns the reports matching the ids flag, in the flag order.
func (c *compareCmd) selected(reports []*btcfolio.Report) ([]*btcfolio.Report, error) {
	if c.ids == "" {
		return reports, nil
	}
	var res []*btcfolio.Report
	for id := range strings.SplitSeq(c.ids, ",") {
		if id = strings.TrimSpace(id); id == "" {
			continue
		}
		r, err := btcfolio.FindReport(reports, id)
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}

func (c *compareCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	mode, err := btcfolio.ParseComparisonMode(c.mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, err := newSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	reports, err := c.selected(s.reports)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	var res *btcfolio.ComparisonDataResult
	if c.calculate {
		calc, err := s.cfg.Calculator(s.log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if res, err = calc.Compare(ctx, reports, mode); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	} else {
		res = btcfolio.Compare(reports, mode, s.log)
	}

	if c.json || c.query != "" {
		if err := printJSON(res, c.query); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderComparison(res))
	return subcommands.ExitSuccess
}
