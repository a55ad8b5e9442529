package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/nogvini/btcfolio"
	"github.com/nogvini/btcfolio/date"
)

type durationCmd struct {
	from, to string
}

func (*durationCmd) Name() string     { return "duration" }
func (*durationCmd) Synopsis() string { return "format a number of days, or the span between two dates" }
func (*durationCmd) Usage() string {
	return `btcf duration <days>
btcf duration -from <date> [-to <date>]

  Prints a duration as years, months and days, counting 365 days per year
  and 30 days per month.

Usage Examples:
$ btcf duration 400
1 year 1 month 5 days
$ btcf duration -from 2024-01-01 -to 2024-03-05
2 months 4 days
`
}

func (c *durationCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Start date")
	f.StringVar(&c.to, "to", "", "End date (defaults to today)")
}

func (c *durationCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from == "" {
		if f.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "Error: expected a number of days or -from")
			return subcommands.ExitUsageError
		}
		fmt.Fprintln(stdout, btcfolio.FormatDurationString(f.Arg(0)))
		return subcommands.ExitSuccess
	}

	from, err := date.Parse(c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	to := date.Today()
	if c.to != "" {
		if to, err = date.Parse(c.to); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	fmt.Fprintln(stdout, btcfolio.FormatDuration(to.Sub(from)))
	return subcommands.ExitSuccess
}
