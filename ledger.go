package btcfolio

// Position is the bitcoin held and its cost basis in the display currency.
type Position struct {
	Quantity Quantity `json:"quantityBtc"`
	Cost     Money    `json:"costBasis"`
}

// AverageCost returns the weighted average cost of one BTC, or zero when
// nothing is held.
func (p Position) AverageCost() Money {
	if p.Quantity.IsZero() {
		return M(0, p.Cost.Currency())
	}
	return p.Cost.Div(p.Quantity)
}

// Ledger replays operations using the weighted average cost method, in the
// display currency.
//
// Quantity and cost are clamped at zero: selling more than is held only
// charges the cost of what was actually held.
type Ledger struct {
	currency   string
	position   Position
	realized   Money
	costOfSold Money
	proceeds   Money
}

// NewLedger returns an empty ledger in currency.
func NewLedger(currency string) *Ledger {
	return LedgerFrom(Position{Cost: M(0, currency)}, currency)
}

// LedgerFrom returns a ledger starting from a known position, typically the
// end of a previous month.
func LedgerFrom(start Position, currency string) *Ledger {
	zero := M(0, currency)
	if start.Cost.Currency() == "" {
		start.Cost = zero.Add(start.Cost)
	}
	return &Ledger{
		currency:   currency,
		position:   start,
		realized:   zero,
		costOfSold: zero,
		proceeds:   zero,
	}
}

// Apply updates the ledger with op and returns the P&L it realized (zero for a Buy).
//
// Operations must be applied in chronological order.
func (l *Ledger) Apply(op Operation) Money {
	total := op.Total().Display
	if total.IsZero() && !op.Price().Display.IsZero() {
		total = op.Price().Display.Mul(op.Quantity())
	}
	q := op.Quantity()

	switch op.(type) {
	case Buy:
		l.position.Quantity = l.position.Quantity.Add(q)
		l.position.Cost = l.position.Cost.Add(total)
		return M(0, l.currency)

	case Sell:
		held := l.position.Quantity
		l.proceeds = l.proceeds.Add(total)
		if !held.IsPositive() {
			// nothing held, the whole proceeds are profit.
			l.realized = l.realized.Add(total)
			return total
		}
		sold := q.Min(held)
		var cost Money
		if sold.Equal(held) {
			cost = l.position.Cost
		} else {
			cost = l.position.Cost.Mul(sold.Div(held))
		}
		gain := total.Sub(cost)
		l.realized = l.realized.Add(gain)
		l.costOfSold = l.costOfSold.Add(cost)
		l.position.Cost = l.position.Cost.Sub(cost).clamp()
		l.position.Quantity = held.Sub(q).clamp()
		return gain
	}
	return M(0, l.currency)
}

// Position returns the current position.
func (l *Ledger) Position() Position { return l.position }

// Realized returns the P&L realized so far.
func (l *Ledger) Realized() Money { return l.realized }

// CostOfSold returns the cost basis removed by sales so far.
func (l *Ledger) CostOfSold() Money { return l.costOfSold }

// Proceeds returns the sum of all sale totals so far.
func (l *Ledger) Proceeds() Money { return l.proceeds }

// Replay applies a chronologically sorted copy of ops to a new ledger.
// ops itself is left untouched.
func Replay(ops []Operation, currency string) *Ledger {
	sorted := make([]Operation, len(ops))
	copy(sorted, ops)
	SortOperations(sorted)

	l := NewLedger(currency)
	for _, op := range sorted {
		l.Apply(op)
	}
	return l
}
