package btcfolio

import (
	"errors"
	"fmt"

	"github.com/nogvini/btcfolio/date"
)

var (
	// ErrQuoteGap is returned when a historical quote is missing and the
	// gap policy is GapFail.
	ErrQuoteGap = errors.New("missing historical quote")
	// ErrUnknownUnit reports a record unit that is neither BTC nor SATS.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrUnsupportedCurrency reports an unknown display currency.
	ErrUnsupportedCurrency = errors.New("unsupported currency")
)

// DataError describes a raw record that could not be turned into an entry.
// Such records are skipped, never returned as errors by calculations.
type DataError struct {
	Kind  EntryKind // kind of record
	Index int       // position in its report list
	ID    string
	Err   error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("%s record #%d (%q): %v", e.Kind, e.Index, e.ID, e.Err)
}

func (e *DataError) Unwrap() error { return e.Err }

// QuoteGapError describes a day with no available quote in a currency.
type QuoteGapError struct {
	Date     date.Date
	Currency string
}

func (e *QuoteGapError) Error() string {
	return fmt.Sprintf("no %s quote for %s", e.Currency, e.Date)
}

func (e *QuoteGapError) Is(target error) bool { return target == ErrQuoteGap }

func (e *DataError) MarshalJSON() ([]byte, error) {
	var w jsonObject
	w.Append("kind", e.Kind.String())
	w.Append("index", e.Index)
	w.Optional("id", e.ID)
	if e.Err != nil {
		w.Append("error", e.Err.Error())
	}
	return w.MarshalJSON()
}
