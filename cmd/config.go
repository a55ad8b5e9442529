package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nogvini/btcfolio"
	"github.com/nogvini/btcfolio/oracle"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
)

// Config represents the btcf configuration.
type Config struct {
	Currency  string        `toml:"currency"`
	GapPolicy string        `toml:"gap_policy"`
	Reports   string        `toml:"reports"` // JSON file of reports
	Quotes    string        `toml:"quotes"`  // JSONL file of price points
	Spot      SpotConfig    `toml:"spot"`
	Oracle    OracleConfig  `toml:"oracle"`
	Logging   LoggingConfig `toml:"logging"`
}

// SpotConfig holds the live rates used to value the current holding.
type SpotConfig struct {
	BTCToUSD float64 `toml:"btc_usd"`
	BRLToUSD float64 `toml:"brl_usd"`
}

// OracleConfig configures the remote price source.
type OracleConfig struct {
	EODHDKey  string  `toml:"eodhd_key"`
	CacheDir  string  `toml:"cache_dir"`
	CacheTTL  string  `toml:"cache_ttl"`  // e.g. "10m", empty disables the memory cache
	RateLimit float64 `toml:"rate_limit"` // requests per second, 0 is unlimited
	Burst     int     `toml:"burst"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text or json
}

// NewDefaultConfig returns the configuration used when nothing is set.
func NewDefaultConfig() *Config {
	return &Config{
		Currency:  "BRL",
		GapPolicy: "zero",
		Reports:   "reports.json",
		Oracle: OracleConfig{
			CacheTTL:  "10m",
			RateLimit: 1,
			Burst:     2,
		},
		Logging: LoggingConfig{Level: "warn", Format: "text"},
	}
}

// LoadFromFiles loads configuration with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides applies BTCFOLIO_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	str := map[string]*string{
		"BTCFOLIO_CURRENCY":   &config.Currency,
		"BTCFOLIO_GAP_POLICY": &config.GapPolicy,
		"BTCFOLIO_REPORTS":    &config.Reports,
		"BTCFOLIO_QUOTES":     &config.Quotes,
		"BTCFOLIO_EODHD_KEY":  &config.Oracle.EODHDKey,
		"BTCFOLIO_CACHE_DIR":  &config.Oracle.CacheDir,
		"BTCFOLIO_CACHE_TTL":  &config.Oracle.CacheTTL,
		"BTCFOLIO_LOG_LEVEL":  &config.Logging.Level,
		"BTCFOLIO_LOG_FORMAT": &config.Logging.Format,
	}
	for key, field := range str {
		if v := os.Getenv(key); v != "" {
			*field = v
		}
	}
	num := map[string]*float64{
		"BTCFOLIO_SPOT_BTC_USD": &config.Spot.BTCToUSD,
		"BTCFOLIO_SPOT_BRL_USD": &config.Spot.BRLToUSD,
		"BTCFOLIO_RATE_LIMIT":   &config.Oracle.RateLimit,
	}
	for key, field := range num {
		if v := os.Getenv(key); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				*field = f
			}
		}
	}
	if v := os.Getenv("BTCFOLIO_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Oracle.Burst = n
		}
	}
}

// Overrides are the values given on the command line. Empty values are ignored.
type Overrides struct {
	Currency  string
	GapPolicy string
	Reports   string
	Quotes    string
	Verbose   bool
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, o Overrides) {
	if o.Currency != "" {
		config.Currency = o.Currency
	}
	if o.GapPolicy != "" {
		config.GapPolicy = o.GapPolicy
	}
	if o.Reports != "" {
		config.Reports = o.Reports
	}
	if o.Quotes != "" {
		config.Quotes = o.Quotes
	}
	if o.Verbose {
		config.Logging.Level = "debug"
	}
}

// Logger returns a logger writing to stderr as configured.
func (c *Config) Logger() (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)
	switch strings.ToLower(c.Logging.Format) {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("invalid log format %q, want text or json", c.Logging.Format)
	}
	return log, nil
}

// PriceOracle returns the configured price sources: the quotes file first,
// then EODHD. The EODHD source is rate limited, and the whole is cached in
// memory when a TTL is set.
func (c *Config) PriceOracle(log logrus.FieldLogger) (btcfolio.PriceOracle, error) {
	var chain oracle.Chain
	if c.Quotes != "" {
		m, err := oracle.LoadFile(c.Quotes)
		if err != nil {
			return nil, err
		}
		log.WithField("quotes", m.Currencies()).Debug("loaded quotes file")
		chain = append(chain, m)
	}
	if c.Oracle.EODHDKey != "" {
		var remote btcfolio.PriceOracle = oracle.NewEODHD(c.Oracle.EODHDKey, c.Oracle.CacheDir, log)
		if c.Oracle.RateLimit > 0 {
			remote = oracle.NewLimited(remote, c.Oracle.RateLimit, max(1, c.Oracle.Burst))
		}
		chain = append(chain, remote)
	}
	if len(chain) == 0 {
		return nil, fmt.Errorf("no price source configured: set a quotes file or an EODHD key")
	}

	var res btcfolio.PriceOracle = chain
	if len(chain) == 1 {
		res = chain[0]
	}
	if c.Oracle.CacheTTL != "" {
		ttl, err := time.ParseDuration(c.Oracle.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("invalid cache ttl: %w", err)
		}
		if ttl > 0 {
			res = oracle.NewCached(res, ttl)
		}
	}
	return res, nil
}

// Calculator returns a Calculator using the configured currency, policy,
// spot rates and price sources.
func (c *Config) Calculator(log logrus.FieldLogger) (*btcfolio.Calculator, error) {
	o, err := c.PriceOracle(log)
	if err != nil {
		return nil, err
	}
	calc, err := btcfolio.NewCalculator(o, strings.ToUpper(c.Currency))
	if err != nil {
		return nil, err
	}
	if calc.Policy, err = btcfolio.ParseGapPolicy(c.GapPolicy); err != nil {
		return nil, err
	}
	if c.Spot.BTCToUSD > 0 {
		calc.Spot = &btcfolio.SpotRates{BTCToUSD: c.Spot.BTCToUSD, BRLToUSD: c.Spot.BRLToUSD}
	}
	calc.Log = log
	return calc, nil
}

// LoadReports reads the configured reports file.
func (c *Config) LoadReports() ([]*btcfolio.Report, error) {
	f, err := os.Open(c.Reports)
	if err != nil {
		return nil, fmt.Errorf("could not open reports: %w", err)
	}
	defer f.Close()
	return btcfolio.DecodeReports(f)
}
