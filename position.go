package folio

import "github.com/shopspring/decimal"

// Position is a currently held investment.
//
// Positions are edited outside of this program and may carry any number of
// extra fields; those are kept untouched. The only field ever written is
// currentPrice.
type Position struct {
	fields object
}

// Ticker returns the position ticker as written in the portfolio.
func (p *Position) Ticker() string {
	t, _ := p.fields.text("ticker")
	return t
}

// Quantity returns the held quantity, 0 if missing.
func (p *Position) Quantity() float64 {
	q, _ := p.fields.number("quantity")
	return q
}

// EntryPrice returns the cost per unit.
func (p *Position) EntryPrice() (float64, bool) { return p.fields.number("entryPrice") }

// CurrentPrice returns the last price recorded for this position.
func (p *Position) CurrentPrice() (float64, bool) { return p.fields.number("currentPrice") }

// SetCurrentPrice records price as the position's current price.
func (p *Position) SetCurrentPrice(price float64) error {
	return p.fields.set("currentPrice", price)
}

// Price is the price the position is valued at: the current price, else
// the entry price, else 0.
func (p *Position) Price() float64 {
	if price, ok := p.CurrentPrice(); ok {
		return price
	}
	price, _ := p.EntryPrice()
	return price
}

// Value is quantity × Price.
func (p *Position) Value() decimal.Decimal {
	return decimal.NewFromFloat(p.Quantity()).Mul(decimal.NewFromFloat(p.Price()))
}

// Cost is quantity × entry price (0 if missing).
func (p *Position) Cost() decimal.Decimal {
	entry, _ := p.EntryPrice()
	return decimal.NewFromFloat(p.Quantity()).Mul(decimal.NewFromFloat(entry))
}

func (p Position) MarshalJSON() ([]byte, error) { return p.fields.MarshalJSON() }

func (p *Position) UnmarshalJSON(b []byte) error { return p.fields.UnmarshalJSON(b) }

// ClosedTrade is a fully exited position. It is only read.
type ClosedTrade struct {
	fields object
}

// RealizedPnL is (exitPrice - entryPrice) × quantity, missing fields count as 0.
func (t *ClosedTrade) RealizedPnL() decimal.Decimal {
	entry, _ := t.fields.number("entryPrice")
	exit, _ := t.fields.number("exitPrice")
	quantity, _ := t.fields.number("quantity")
	return decimal.NewFromFloat(exit).Sub(decimal.NewFromFloat(entry)).Mul(decimal.NewFromFloat(quantity))
}

func (t ClosedTrade) MarshalJSON() ([]byte, error) { return t.fields.MarshalJSON() }

func (t *ClosedTrade) UnmarshalJSON(b []byte) error { return t.fields.UnmarshalJSON(b) }

// TransactionDividend is the only transaction type that counts in snapshots.
const TransactionDividend = "dividend"

// Transaction is a historical cash movement. It is only read.
type Transaction struct {
	fields object
}

// Type returns the transaction type tag.
func (t *Transaction) Type() string {
	s, _ := t.fields.text("type")
	return s
}

// Amount returns the transaction amount, 0 if missing.
func (t *Transaction) Amount() float64 {
	a, _ := t.fields.number("amount")
	return a
}

func (t Transaction) MarshalJSON() ([]byte, error) { return t.fields.MarshalJSON() }

func (t *Transaction) UnmarshalJSON(b []byte) error { return t.fields.UnmarshalJSON(b) }
