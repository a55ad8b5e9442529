package btcfolio

import (
	"sort"

	"github.com/nogvini/btcfolio/date"
)

// Prices holds the same amount in USD and in the display currency.
type Prices struct {
	USD     Money `json:"usd"`
	Display Money `json:"display"`
}

func (p Prices) mul(q Quantity) Prices {
	return Prices{USD: p.USD.Mul(q), Display: p.Display.Mul(q)}
}

// Operation is a canonical acquisition or disposal of bitcoin, derived from a
// raw record. It is either a Buy or a Sell.
type Operation interface {
	ID() string
	Date() date.Date
	Quantity() Quantity // in BTC, positive
	Price() Prices      // per BTC
	Total() Prices      // Quantity × Price
	operation()
}

// trade holds the fields shared by Buy and Sell.
type trade struct {
	id       string
	on       date.Date
	quantity Quantity
	price    Prices
	total    Prices
}

func (t trade) ID() string         { return t.id }
func (t trade) Date() date.Date    { return t.on }
func (t trade) Quantity() Quantity { return t.quantity }
func (t trade) Price() Prices      { return t.price }
func (t trade) Total() Prices      { return t.total }
func (t trade) operation()         {}

func (t trade) marshal(kind string, extra func(*jsonObject)) ([]byte, error) {
	var w jsonObject
	w.Append("kind", kind)
	w.Append("id", t.id)
	w.Append("date", t.on)
	w.Append("quantityBtc", t.quantity)
	w.Append("pricePerUnit", t.price)
	w.Append("totalAmount", t.total)
	if extra != nil {
		extra(&w)
	}
	return w.MarshalJSON()
}

// Buy acquires bitcoin: an investment.
type Buy struct{ trade }

// NewBuy creates a Buy whose total is quantity × price.
func NewBuy(id string, on date.Date, quantity Quantity, price Prices) Buy {
	return Buy{trade{id: id, on: on, quantity: quantity, price: price, total: price.mul(quantity)}}
}

func (b Buy) MarshalJSON() ([]byte, error) { return b.marshal("buy", nil) }

// Sell disposes of bitcoin. Source tells which kind of record it comes from.
type Sell struct {
	trade
	Source EntryKind // KindWithdrawal, KindProfit or KindLoss
}

// NewSell creates a Sell whose total is quantity × price.
func NewSell(id string, on date.Date, quantity Quantity, price Prices, source EntryKind) Sell {
	return Sell{trade: trade{id: id, on: on, quantity: quantity, price: price, total: price.mul(quantity)}, Source: source}
}

// IsProfitContext reports whether the sale comes from a profit or loss record
// rather than from a withdrawal.
func (s Sell) IsProfitContext() bool { return s.Source == KindProfit || s.Source == KindLoss }

// IsWithdrawal reports whether the sale comes from a withdrawal record.
func (s Sell) IsWithdrawal() bool { return s.Source == KindWithdrawal }

func (s Sell) MarshalJSON() ([]byte, error) {
	return s.marshal("sell", func(w *jsonObject) {
		w.Append("source", s.Source.String())
		w.Append("isProfitContext", s.IsProfitContext())
	})
}

// SortOperations sorts operations by date. The sort is stable.
func SortOperations(ops []Operation) {
	sort.SliceStable(ops, func(i, j int) bool {
		return ops[i].Date().Before(ops[j].Date())
	})
}
