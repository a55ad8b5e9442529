package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nogvini/btcfolio"
	"github.com/nogvini/btcfolio/oracle"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.toml")
	local := filepath.Join(dir, "local.toml")
	if err := os.WriteFile(base, []byte(`
currency = "USD"
gap_policy = "nearest"

[spot]
btc_usd = 60000.0

[oracle]
cache_ttl = "1m"
`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(local, []byte(`
reports = "mine.json"

[logging]
format = "json"
`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFiles(base, "", local)
	if err != nil {
		t.Fatalf("LoadFromFiles() unexpected error: %v", err)
	}

	for _, tc := range []struct {
		name      string
		got, want any
	}{
		{"currency", cfg.Currency, "USD"},
		{"gap_policy", cfg.GapPolicy, "nearest"},
		{"reports", cfg.Reports, "mine.json"},
		{"spot", cfg.Spot.BTCToUSD, 60000.0},
		{"cache_ttl", cfg.Oracle.CacheTTL, "1m"},
		{"rate_limit default", cfg.Oracle.RateLimit, 1.0},
		{"format", cfg.Logging.Format, "json"},
		{"level default", cfg.Logging.Level, "warn"},
	} {
		if tc.got != tc.want {
			t.Errorf("%s = %v, want %v", tc.name, tc.got, tc.want)
		}
	}
}

func TestLoadFromFiles_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("currency = "), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFiles(bad); err == nil {
		t.Error("LoadFromFiles(invalid toml) expected an error")
	}
	if _, err := LoadFromFiles(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("LoadFromFiles(missing) expected an error")
	}
}

func TestEnvAndFlagOverrides(t *testing.T) {
	t.Setenv("BTCFOLIO_CURRENCY", "USD")
	t.Setenv("BTCFOLIO_QUOTES", "env.jsonl")
	t.Setenv("BTCFOLIO_SPOT_BRL_USD", "0.25")
	t.Setenv("BTCFOLIO_RATE_LIMIT", "not a number")
	t.Setenv("BTCFOLIO_BURST", "5")

	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := cfg.Currency, "USD"; got != want {
		t.Errorf("env currency = %q, want %q", got, want)
	}
	if got, want := cfg.Spot.BRLToUSD, 0.25; got != want {
		t.Errorf("env brl_usd = %v, want %v", got, want)
	}
	if got, want := cfg.Oracle.RateLimit, 1.0; got != want {
		t.Errorf("invalid env rate_limit = %v, want default %v", got, want)
	}
	if got, want := cfg.Oracle.Burst, 5; got != want {
		t.Errorf("env burst = %v, want %v", got, want)
	}

	ApplyFlagOverrides(cfg, Overrides{Currency: "BRL", Verbose: true})
	if got, want := cfg.Currency, "BRL"; got != want {
		t.Errorf("flag currency = %q, want %q", got, want)
	}
	if got, want := cfg.Quotes, "env.jsonl"; got != want {
		t.Errorf("quotes = %q, want %q, empty flags must not override", got, want)
	}
	if got, want := cfg.Logging.Level, "debug"; got != want {
		t.Errorf("-v level = %q, want %q", got, want)
	}
}

func TestConfig_Logger(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Logging.Level = "loud"
	if _, err := cfg.Logger(); err == nil {
		t.Error("Logger() with an invalid level expected an error")
	}
	cfg.Logging.Level, cfg.Logging.Format = "info", "xml"
	if _, err := cfg.Logger(); err == nil {
		t.Error("Logger() with an invalid format expected an error")
	}
	cfg.Logging.Format = "json"
	if _, err := cfg.Logger(); err != nil {
		t.Errorf("Logger() unexpected error: %v", err)
	}
}

func TestConfig_PriceOracle(t *testing.T) {
	log, _ := test.NewNullLogger()
	quotes := writeQuotes(t)

	cfg := NewDefaultConfig()
	if _, err := cfg.PriceOracle(log); err == nil {
		t.Error("PriceOracle() without source expected an error")
	}

	cfg.Quotes = quotes
	cfg.Oracle.CacheTTL = ""
	o, err := cfg.PriceOracle(log)
	if err != nil {
		t.Fatalf("PriceOracle() unexpected error: %v", err)
	}
	if _, ok := o.(*oracle.Memory); !ok {
		t.Errorf("PriceOracle() = %T, want a single *oracle.Memory", o)
	}

	cfg.Oracle.EODHDKey = "demo"
	cfg.Oracle.CacheTTL = "5m"
	if o, err = cfg.PriceOracle(log); err != nil {
		t.Fatalf("PriceOracle() unexpected error: %v", err)
	}
	if _, ok := o.(*oracle.Cached); !ok {
		t.Errorf("PriceOracle() = %T, want *oracle.Cached", o)
	}

	cfg.Oracle.CacheTTL = "soon"
	if _, err := cfg.PriceOracle(log); err == nil {
		t.Error("PriceOracle() with an invalid ttl expected an error")
	}
}

func TestConfig_Calculator(t *testing.T) {
	log, _ := test.NewNullLogger()
	cfg := NewDefaultConfig()
	cfg.Quotes = writeQuotes(t)
	cfg.GapPolicy = "fail"
	cfg.Spot = SpotConfig{BTCToUSD: 62_500, BRLToUSD: 0.25}

	calc, err := cfg.Calculator(log)
	if err != nil {
		t.Fatalf("Calculator() unexpected error: %v", err)
	}
	if got, want := calc.Policy, btcfolio.GapFail; got != want {
		t.Errorf("Policy = %v, want %v", got, want)
	}
	if calc.Spot == nil || calc.Spot.BTCToUSD != 62_500 {
		t.Errorf("Spot = %v, want the configured rates", calc.Spot)
	}

	cfg.Currency = "NOPE"
	if _, err := cfg.Calculator(log); err == nil {
		t.Error("Calculator() with an unsupported currency expected an error")
	}
}
