package btcfolio

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/nogvini/btcfolio/date"
	"github.com/sirupsen/logrus"
)

// EntryKind is the kind of raw record an Entry comes from.
type EntryKind int

const (
	KindInvestment EntryKind = iota
	KindProfit
	KindLoss
	KindWithdrawal
)

func (k EntryKind) String() string {
	switch k {
	case KindInvestment:
		return "investment"
	case KindProfit:
		return "profit"
	case KindLoss:
		return "loss"
	case KindWithdrawal:
		return "withdrawal"
	default:
		return "unknown"
	}
}

// Entry is a validated raw record: a dated, signed-by-kind BTC amount.
type Entry struct {
	ID   string
	Date date.Date
	BTC  Quantity // always positive, the direction is given by Kind
	Kind EntryKind
}

// Signed returns the BTC amount with the sign of its effect on profits:
// negative for a loss, positive otherwise.
func (e Entry) Signed() Quantity {
	if e.Kind == KindLoss {
		return e.BTC.Neg()
	}
	return e.BTC
}

// Entries validates every record of a report and returns the valid ones
// sorted by date. Ties keep investments, then profits, then withdrawals, each
// in report order. Invalid records are logged and returned as DataErrors.
func Entries(r *Report, log logrus.FieldLogger) ([]Entry, []*DataError) {
	var entries []Entry
	var dropped []*DataError

	add := func(kind EntryKind, index int, id, day string, amount Amount, unit string, abs bool) {
		e, err := newEntry(r.ID, kind, index, id, day, amount, unit, abs)
		if err != nil {
			derr := &DataError{Kind: kind, Index: index, ID: id, Err: err}
			if log != nil {
				log.WithFields(logrus.Fields{
					"report": r.ID,
					"record": id,
					"kind":   kind.String(),
					"index":  index,
				}).WithError(err).Warn("dropping invalid record")
			}
			dropped = append(dropped, derr)
			return
		}
		entries = append(entries, e)
	}

	for i, v := range r.Investments {
		add(KindInvestment, i, v.ID, v.Date, v.Amount, v.Unit, false)
	}
	for i, v := range r.Profits {
		kind := KindProfit
		if !v.IsProfit {
			kind = KindLoss
		}
		add(kind, i, v.ID, v.Date, v.Amount, v.Unit, true)
	}
	for i, v := range r.Withdrawals {
		add(KindWithdrawal, i, v.ID, v.Date, v.Amount, v.Unit, false)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
	return entries, dropped
}

func newEntry(reportID string, kind EntryKind, index int, id, day string, amount Amount, unit string, abs bool) (Entry, error) {
	on, err := date.Parse(day)
	if err != nil {
		return Entry{}, err
	}
	value, err := amount.Decimal()
	if err != nil {
		return Entry{}, err
	}
	u, err := ParseUnit(unit)
	if err != nil {
		return Entry{}, err
	}
	q := Q(value)
	if abs {
		q = q.Abs()
	}
	if q.IsNegative() {
		return Entry{}, errors.New("negative amount")
	}
	if id == "" {
		// Stable across calls so that identical reports give identical results.
		name := fmt.Sprintf("%s/%s/%d/%s/%s/%s", reportID, kind, index, day, amount, unit)
		id = uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
	}
	return Entry{ID: id, Date: on, BTC: ToBtc(q, u), Kind: kind}, nil
}

// span returns the range from the first to the last entry.
func span(entries []Entry) date.Range {
	if len(entries) == 0 {
		return date.Range{}
	}
	// entries are sorted.
	return date.Between(entries[0].Date, entries[len(entries)-1].Date)
}

// Span returns the range from the earliest to the latest valid record of
// reports, or the zero range when there is none.
func Span(reports ...*Report) date.Range {
	var lo, hi date.Date
	for _, r := range reports {
		entries, _ := Entries(r, nil)
		if s := span(entries); !s.IsZero() {
			lo, hi = date.Min(lo, s.From), date.Max(hi, s.To)
		}
	}
	if lo.IsZero() {
		return date.Range{}
	}
	return date.Between(lo, hi)
}
