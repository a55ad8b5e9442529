package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/nogvini/btcfolio/renderer"
)

type reportCmd struct {
	id        string
	json      bool
	query     string
	noMonthly bool
	subtotals bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the profit and loss report of a bitcoin portfolio" }
func (*reportCmd) Usage() string {
	return `btcf report [-id <report>] [-json] [-q <jsonpath>] [-no-monthly] [-subtotals]

  Computes realized and unrealized profit and loss, return on investment and
  contribution statistics of a report, valued in the display currency.

  The -id flag can be omitted when the reports file holds a single report.

Usage Examples:
$ btcf report -id main
$ btcf -currency USD report -json -q '$.overallPL.amount'
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Report id")
	f.BoolVar(&c.json, "json", false, "Print the calculated data as JSON")
	f.StringVar(&c.query, "q", "", "JSONPath query applied to the JSON output (implies -json)")
	f.BoolVar(&c.noMonthly, "no-monthly", false, "Omit the monthly breakdown")
	f.BoolVar(&c.subtotals, "subtotals", false, "Add yearly subtotals to the monthly breakdown")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := newSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	d, err := s.calculate(ctx, c.id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.json || c.query != "" {
		if err := printJSON(d, c.query); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderReport(d, renderer.ReportRenderOptions{
		SkipMonthly:   c.noMonthly,
		SkipSubtotals: !c.subtotals,
	}))
	return subcommands.ExitSuccess
}
