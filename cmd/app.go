// Package cmd implements the btcf command line application to inspect
// bitcoin portfolio reports.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/subcommands"
	"github.com/nogvini/btcfolio"
	"github.com/sirupsen/logrus"
)

const (
	EnvConfig     = "BTCFOLIO_CONFIG"
	EnvCurrency   = "BTCFOLIO_CURRENCY"
	EnvReports    = "BTCFOLIO_REPORTS"
	EnvQuotes     = "BTCFOLIO_QUOTES"
	EnvGapPolicy  = "BTCFOLIO_GAP_POLICY"
	EnvLogLevel   = "BTCFOLIO_LOG_LEVEL"
	DefaultConfig = "btcfolio.toml"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{}, "reports")
	c.Register(&monthlyCmd{}, "reports")
	c.Register(&compareCmd{}, "reports")

	c.Register(&fetchCmd{}, "quotes")

	c.Register(&durationCmd{}, "tools")
	c.Register(&topicCmd{}, "tools")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile  = flag.String("config", "", "Path to the TOML configuration file (defaults to $"+EnvConfig+", then ./"+DefaultConfig+" if present)")
	currency    = flag.String("currency", "", "Display currency, BRL or USD")
	reportsFile = flag.String("reports", "", "Path to the reports file (a JSON report or array of reports)")
	quotesFile  = flag.String("quotes", "", "Path to a JSONL file of historical BTC quotes")
	gapPolicy   = flag.String("gap", "", "Policy for missing quotes: zero, nearest or fail")
	Verbose     = flag.Bool("v", false, "Enable debug logging")
)

// loadConfig resolves the configuration file and applies the global flags on top of it.
func loadConfig() (*Config, error) {
	path := *configFile
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		if _, err := os.Stat(DefaultConfig); err == nil {
			path = DefaultConfig
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	cfg, err := LoadFromFiles(path)
	if err != nil {
		return nil, err
	}
	ApplyFlagOverrides(cfg, Overrides{
		Currency:  *currency,
		GapPolicy: *gapPolicy,
		Reports:   *reportsFile,
		Quotes:    *quotesFile,
		Verbose:   *Verbose,
	})
	return cfg, nil
}

// session is what every report command needs: the configuration, a logger
// and the decoded reports.
type session struct {
	cfg     *Config
	log     *logrus.Logger
	reports []*btcfolio.Report
}

func newSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := cfg.Logger()
	if err != nil {
		return nil, err
	}
	reports, err := cfg.LoadReports()
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"file": cfg.Reports, "reports": len(reports)}).Debug("reports loaded")
	return &session{cfg: cfg, log: log, reports: reports}, nil
}

// calculate runs the calculator on the report with the given id.
func (s *session) calculate(ctx context.Context, id string) (*btcfolio.CalculatedReportData, error) {
	r, err := btcfolio.FindReport(s.reports, id)
	if err != nil {
		return nil, err
	}
	calc, err := s.cfg.Calculator(s.log)
	if err != nil {
		return nil, err
	}
	d, err := calc.Calculate(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("could not calculate report %q: %w", r.ID, err)
	}
	return d, nil
}
