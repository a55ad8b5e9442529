package btcfolio

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a ratio expressed in percent (20 means 20%).
type Percent float64

// percentOf returns num/den*100, or 0 when den is zero.
func percentOf(num, den Quantity) Percent {
	if den.IsZero() {
		return 0
	}
	return Percent(num.value.Div(den.value).Mul(decimal.NewFromInt(100)).InexactFloat64())
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}
