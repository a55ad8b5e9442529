package btcfolio

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAmount_Decimal(t *testing.T) {
	tests := []struct {
		in      Amount
		want    string
		wantErr bool
	}{
		{"0.5", "0.5", false},
		{" 12 ", "12", false},
		{"0,25", "0.25", false},
		{"-3", "-3", false},
		{"", "", true},
		{"abc", "", true},
		{"1,000.5", "", true},
		{"1,5", "1.5", false},
		{"100,000", "", true},
		{"1,000,000", "", true},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			got, err := tt.in.Decimal()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Decimal(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decimal(%q) unexpected error: %v", tt.in, err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Decimal(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeReports(t *testing.T) {
	single := `{"id":"r1","name":"Main","investments":[{"id":"i1","date":"2024-01-01","amount":0.1,"unit":"BTC"}],
	"profits":[{"id":"p1","date":"2024-02-01","amount":"150000","unit":"SATS","isProfit":true}],"withdrawals":[]}`

	reports, err := DecodeReports(strings.NewReader(single))
	if err != nil {
		t.Fatalf("DecodeReports() unexpected error: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("DecodeReports() got %d reports, want 1", len(reports))
	}
	r := reports[0]
	if r.Investments[0].Amount != "0.1" {
		t.Errorf("numeric amount = %q, want %q", r.Investments[0].Amount, "0.1")
	}
	if r.Profits[0].Amount != "150000" {
		t.Errorf("string amount = %q, want %q", r.Profits[0].Amount, "150000")
	}

	array := `[{"id":"r1"},{"id":"r2","investments":[{"date":"2024-01-01","amount":"oops"}]}]`
	reports, err = DecodeReports(strings.NewReader(array))
	if err != nil {
		t.Fatalf("DecodeReports(array) unexpected error: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("DecodeReports(array) got %d reports, want 2", len(reports))
	}
	if !reports[0].IsEmpty() {
		t.Errorf("report r1 should be empty")
	}

	if _, err := DecodeReports(strings.NewReader("{")); err == nil {
		t.Errorf("DecodeReports(invalid) expected an error")
	}
}

func TestFindReport(t *testing.T) {
	reports := []*Report{{ID: "a"}, {ID: "b"}}
	if r, err := FindReport(reports, "b"); err != nil || r.ID != "b" {
		t.Errorf("FindReport(b) = %v, %v", r, err)
	}
	if _, err := FindReport(reports, ""); err == nil {
		t.Errorf("FindReport(\"\") with 2 reports expected an error")
	}
	if _, err := FindReport(reports, "c"); err == nil {
		t.Errorf("FindReport(c) expected an error")
	}
	if r, err := FindReport(reports[:1], ""); err != nil || r.ID != "a" {
		t.Errorf("FindReport(\"\") with 1 report = %v, %v", r, err)
	}
}
