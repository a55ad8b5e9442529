package oracle

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/nogvini/btcfolio/date"
	"github.com/sirupsen/logrus/hooks/test"
)

func newEODHDServer(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Query().Get("api_token") != "secret" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/BTC-BRL.CC" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"date":"2023-12-31","open":1,"close":210000.5},
			{"date":"2024-01-01","open":1,"close":215000.25},
			{"date":"2024-01-02","open":1,"close":218000}
		]`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEODHD(t *testing.T) {
	var calls atomic.Int32
	srv := newEODHDServer(t, &calls)
	log, _ := test.NewNullLogger()
	e := &EODHD{APIKey: "secret", BaseURL: srv.URL + "/", Log: log}

	r := date.Between(day("2024-01-01"), day("2024-01-31"))
	got, err := e.HistoricalQuotes(context.Background(), "BRL", r)
	if err != nil {
		t.Fatalf("HistoricalQuotes() unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("HistoricalQuotes() = %v, want 2 quotes within the range", got)
	}
	if got[day("2024-01-01")] != 215000.25 {
		t.Errorf("quote of 2024-01-01 = %v, want 215000.25", got[day("2024-01-01")])
	}

	if _, err := e.HistoricalQuotes(context.Background(), "EUR", r); err == nil {
		t.Errorf("HistoricalQuotes(EUR) expected an error")
	}
	e.APIKey = "wrong"
	if _, err := e.HistoricalQuotes(context.Background(), "BRL", r); err == nil {
		t.Errorf("HistoricalQuotes() with a wrong key expected an error")
	}
}

func TestDailyCachingClient(t *testing.T) {
	var calls atomic.Int32
	srv := newEODHDServer(t, &calls)
	dir := t.TempDir()
	log, _ := test.NewNullLogger()

	e := &EODHD{APIKey: "secret", BaseURL: srv.URL + "/", Client: NewDailyCachingClient(dir, log)}
	r := date.Between(day("2024-01-01"), day("2024-01-31"))
	for range 3 {
		got, err := e.HistoricalQuotes(context.Background(), "BRL", r)
		if err != nil {
			t.Fatalf("HistoricalQuotes() unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("HistoricalQuotes() = %v, want 2 quotes", got)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server called %d times, want 1", got)
	}
	files, _ := os.ReadDir(dir)
	if len(files) != 1 {
		t.Errorf("cache holds %d files, want 1", len(files))
	}

	// failures are not cached.
	e.APIKey = "wrong"
	for range 2 {
		e.HistoricalQuotes(context.Background(), "BRL", r)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server called %d times, want 3", got)
	}
}

func TestTicker(t *testing.T) {
	if got, want := Ticker("USD"), "BTC-USD.CC"; got != want {
		t.Errorf("Ticker(USD) = %q, want %q", got, want)
	}
}
