package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/nogvini/btcfolio/renderer"
)

type monthlyCmd struct {
	id        string
	json      bool
	query     string
	subtotals bool
}

func (*monthlyCmd) Name() string     { return "monthly" }
func (*monthlyCmd) Synopsis() string { return "display the month by month breakdown of a report" }
func (*monthlyCmd) Usage() string {
	return `btcf monthly [-id <report>] [-subtotals] [-json] [-q <jsonpath>]

  Displays, for every month from the first record to the last one, the
  investments, withdrawals, realized and unrealized profit and loss, the
  bitcoin balance and the monthly return on investment.

  Months valued with a missing closing price are flagged with a star.
`
}

func (c *monthlyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Report id")
	f.BoolVar(&c.subtotals, "subtotals", true, "Add yearly subtotals")
	f.BoolVar(&c.json, "json", false, "Print the breakdown as JSON")
	f.StringVar(&c.query, "q", "", "JSONPath query applied to the JSON output (implies -json)")
}

func (c *monthlyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
		if err := printJSON(d.Monthly, c.query); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderMonthly(d, c.subtotals))
	return subcommands.ExitSuccess
}
