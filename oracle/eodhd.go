package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nogvini/btcfolio"
	"github.com/nogvini/btcfolio/date"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DefaultEODHDURL is the EODHD end of day API.
const DefaultEODHDURL = "https://eodhd.com/api/eod/"

// EODHD serves daily closing prices of BTC from the EODHD API, using its
// crypto tickers (BTC-USD.CC, BTC-BRL.CC).
type EODHD struct {
	APIKey  string
	BaseURL string       // DefaultEODHDURL when empty
	Client  *http.Client // http.DefaultClient when nil
	Log     logrus.FieldLogger
}

// NewEODHD returns an EODHD oracle whose responses are cached on disk in dir
// for the day.
func NewEODHD(apiKey, dir string, log logrus.FieldLogger) *EODHD {
	return &EODHD{APIKey: apiKey, Client: NewDailyCachingClient(dir, log), Log: log}
}

// Ticker returns the EODHD ticker of BTC in currency.
func Ticker(currency string) string { return "BTC-" + currency + ".CC" }

func (e *EODHD) HistoricalQuotes(ctx context.Context, currency string, r date.Range) (btcfolio.Quotes, error) {
	// https://eodhd.com/api/eod/BTC-USD.CC?fmt=json&api_token=demo&from=2024-01-01&to=2024-01-31
	// [
	//	{
	//		"date": "2024-01-01",
	//		"open": 42280.23,
	//		"high": 44175.43,
	//		"low": 42214.97,
	//		"close": 44167.33,
	//		"adjusted_close": 44167.33,
	//		"volume": 18426978443
	//	},
	// bounds are included in the response.
	base := e.BaseURL
	if base == "" {
		base = DefaultEODHDURL
	}
	q := url.Values{}
	q.Set("fmt", "json")
	q.Set("api_token", e.APIKey)
	q.Set("from", r.From.String())
	q.Set("to", r.To.String())
	addr := base + url.PathEscape(Ticker(currency)) + "?" + q.Encode()

	type Info struct {
		Date  date.Date       `json:"date"`
		Close decimal.Decimal `json:"close"`
	}
	content := make([]Info, 0)
	if err := e.jwget(ctx, addr, &content); err != nil {
		return nil, fmt.Errorf("eodhd %s: %w", Ticker(currency), err)
	}

	res := make(btcfolio.Quotes, len(content))
	for _, info := range content {
		if !r.Contains(info.Date) {
			continue
		}
		res[info.Date] = info.Close.InexactFloat64()
	}
	if e.Log != nil {
		e.Log.WithFields(logrus.Fields{
			"ticker": Ticker(currency),
			"from":   r.From.String(),
			"to":     r.To.String(),
			"quotes": len(res),
		}).Debug("fetched eodhd quotes")
	}
	return res, nil
}

// jwget performs an HTTP GET request to addr and unmarshals the JSON
// response body into data.
func (e *EODHD) jwget(ctx context.Context, addr string, data any) error {
	client := e.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(data)
}
