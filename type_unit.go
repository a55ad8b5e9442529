package btcfolio

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Unit is the denomination a raw record amount was captured in.
type Unit int

const (
	BTC Unit = iota
	SATS
)

// SatsPerBTC is the number of satoshis in one bitcoin.
const SatsPerBTC = 100_000_000

var satsPerBTC = decimal.NewFromInt(SatsPerBTC)

func (u Unit) String() string {
	switch u {
	case BTC:
		return "BTC"
	case SATS:
		return "SATS"
	default:
		return "unknown"
	}
}

// ParseUnit parses a unit. The empty string is BTC, matching is case insensitive.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "BTC":
		return BTC, nil
	case "SATS", "SAT", "SATOSHI", "SATOSHIS":
		return SATS, nil
	default:
		return BTC, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
}

// ToBtc converts an amount expressed in unit to BTC.
func ToBtc(amount Quantity, unit Unit) Quantity {
	if unit == SATS {
		return Quantity{value: amount.value.Div(satsPerBTC)}
	}
	return amount
}

// ToSats converts a BTC quantity to satoshis.
func ToSats(btc Quantity) Quantity {
	return Quantity{value: btc.value.Mul(satsPerBTC)}
}
