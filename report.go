package btcfolio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Amount is a record amount as it was captured: a JSON number or a numeric
// string. It is only validated when the record is normalized, so a single
// malformed amount does not prevent a report from being decoded.
type Amount string

// A returns the canonical Amount of a number.
func A[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Amount {
	return Amount(newDecimal(value).String())
}

// Decimal parses the amount. A single decimal comma is accepted when there is
// no dot, unless it reads as a thousands separator ("100,000").
func (a Amount) Decimal() (decimal.Decimal, error) {
	s := strings.TrimSpace(string(a))
	if s == "" {
		return decimal.Zero, errors.New("empty amount")
	}
	if !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		if _, frac, _ := strings.Cut(s, ","); len(frac) != 3 {
			s = strings.Replace(s, ",", ".", 1)
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("non-numeric amount %q", string(a))
	}
	return d, nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*a = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
	default:
		*a = Amount(b)
	}
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if d, err := a.Decimal(); err == nil {
		return []byte(d.String()), nil
	}
	return json.Marshal(string(a))
}

// Investment is a contribution of bitcoin to a report.
type Investment struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Amount Amount `json:"amount"`
	Unit   string `json:"unit"`
}

// ProfitRecord is a realized gain or loss. The sign is carried by IsProfit,
// the amount itself is taken in absolute value.
type ProfitRecord struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Amount   Amount `json:"amount"`
	Unit     string `json:"unit"`
	IsProfit bool   `json:"isProfit"`
}

// WithdrawalRecord is a removal of funds from a report.
type WithdrawalRecord struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Amount Amount  `json:"amount"`
	Unit   string  `json:"unit"`
	Fee    *Amount `json:"fee,omitempty"`
	Type   string  `json:"type,omitempty"`
}

// Report is a named collection of investments, profits and withdrawals.
//
// Reports are owned by the caller, calculations never modify them.
type Report struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Investments []Investment       `json:"investments"`
	Profits     []ProfitRecord     `json:"profits"`
	Withdrawals []WithdrawalRecord `json:"withdrawals"`
	CreatedAt   time.Time          `json:"createdAt,omitzero"`
	UpdatedAt   time.Time          `json:"updatedAt,omitzero"`
}

// IsEmpty reports whether the report has no records at all.
func (r *Report) IsEmpty() bool {
	return len(r.Investments) == 0 && len(r.Profits) == 0 && len(r.Withdrawals) == 0
}

// DecodeReports reads either a single JSON report or a JSON array of reports.
func DecodeReports(r io.Reader) ([]*Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read reports: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if data[0] == '[' {
		var reports []*Report
		if err := json.Unmarshal(data, &reports); err != nil {
			return nil, fmt.Errorf("invalid reports array: %w", err)
		}
		return reports, nil
	}
	report := new(Report)
	if err := json.Unmarshal(data, report); err != nil {
		return nil, fmt.Errorf("invalid report: %w", err)
	}
	return []*Report{report}, nil
}

// FindReport returns the report with the given id, or the only report when id is empty.
func FindReport(reports []*Report, id string) (*Report, error) {
	if id == "" {
		if len(reports) != 1 {
			return nil, fmt.Errorf("%d reports available, an id is required", len(reports))
		}
		return reports[0], nil
	}
	for _, r := range reports {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("report %q not found", id)
}
