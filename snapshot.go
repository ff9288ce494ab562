package folio

import (
	"encoding/json"
	"sort"

	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

// Snapshot is the valuation of the whole portfolio on a given day.
type Snapshot struct {
	Date           date.Date `json:"date"`
	CapitalEngaged float64   `json:"capitalEngaged"`
	PortfolioValue float64   `json:"portfolioValue"`
	UnrealizedPnL  float64   `json:"unrealizedPnL"`
	RealizedPnL    float64   `json:"realizedPnL"`
	TotalDividends float64   `json:"totalDividends"`
	PositionCount  int       `json:"positionCount"`
}

// roundCents rounds an aggregate to cents.
func roundCents(d decimal.Decimal) float64 { return d.Round(2).InexactFloat64() }

// Valuation computes the snapshot of s for day.
//
// Sums are exact; each aggregate is rounded to 2 decimals only once, here.
func (s *State) Valuation(day date.Date) Snapshot {
	var value, capital, realized, dividends decimal.Decimal
	for _, p := range s.Positions {
		value = value.Add(p.Value())
		capital = capital.Add(p.Cost())
	}
	for _, t := range s.ClosedTrades {
		realized = realized.Add(t.RealizedPnL())
	}
	for _, t := range s.Transactions {
		if t.Type() == TransactionDividend {
			dividends = dividends.Add(decimal.NewFromFloat(t.Amount()))
		}
	}
	return Snapshot{
		Date:           day,
		CapitalEngaged: roundCents(capital),
		PortfolioValue: roundCents(value),
		UnrealizedPnL:  roundCents(value.Sub(capital)),
		RealizedPnL:    roundCents(realized),
		TotalDividends: roundCents(dividends),
		PositionCount:  len(s.Positions),
	}
}

// Snapshots is the daily history of portfolio valuations.
//
// There is at most one snapshot per date, and once Put has been called the
// history is sorted by date. Snapshots other than the one being Put are kept
// as they were read.
type Snapshots struct {
	records []object
}

// dateOf returns the date of a snapshot record. Dates are read leniently,
// "2025-3-7" is 2025-03-07; a missing or invalid date is the zero Date.
func dateOf(o object) date.Date {
	text, _ := o.text("date")
	d, err := date.Parse(text)
	if err != nil {
		return date.Date{}
	}
	return d
}

// Len returns the number of snapshots.
func (s *Snapshots) Len() int { return len(s.records) }

// dates returns the snapshot dates in history order.
func (s *Snapshots) dates() []string {
	dates := make([]string, 0, len(s.records))
	for _, r := range s.records {
		dates = append(dates, dateOf(r).String())
	}
	return dates
}

// index returns the position of the snapshot for day, or -1.
func (s *Snapshots) index(day date.Date) int {
	for i, r := range s.records {
		if dateOf(r) == day {
			return i
		}
	}
	return -1
}

// Get returns the snapshot recorded for day.
func (s *Snapshots) Get(day date.Date) (Snapshot, bool) {
	i := s.index(day)
	if i < 0 {
		return Snapshot{}, false
	}
	return decodeSnapshot(s.records[i])
}

// Latest returns the snapshot with the greatest date.
func (s *Snapshots) Latest() (Snapshot, bool) {
	latest := -1
	for i, r := range s.records {
		if latest < 0 || !dateOf(r).Before(dateOf(s.records[latest])) {
			latest = i
		}
	}
	if latest < 0 {
		return Snapshot{}, false
	}
	return decodeSnapshot(s.records[latest])
}

func decodeSnapshot(o object) (Snapshot, bool) {
	b, err := o.MarshalJSON()
	if err != nil {
		return Snapshot{}, false
	}
	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return Snapshot{}, false
	}
	return snap, true
}

// Put records snap in the history.
//
// An existing snapshot at that date, however its date was written, is replaced
// in place, as a whole.
// Otherwise snap is appended and the history sorted by date.
func (s *Snapshots) Put(snap Snapshot) (replaced bool, err error) {
	b, err := marshal(snap)
	if err != nil {
		return false, err
	}
	var rec object
	if err := rec.UnmarshalJSON(b); err != nil {
		return false, err
	}

	if i := s.index(snap.Date); i >= 0 {
		s.records[i] = rec
		return true, nil
	}
	s.records = append(s.records, rec)
	sort.SliceStable(s.records, func(i, j int) bool { return dateOf(s.records[i]).Before(dateOf(s.records[j])) })
	return false, nil
}

func (s Snapshots) MarshalJSON() ([]byte, error) {
	if s.records == nil {
		return []byte("[]"), nil
	}
	return marshal(s.records)
}

func (s *Snapshots) UnmarshalJSON(b []byte) error {
	s.records = nil
	if isNull(b) {
		return nil
	}
	return json.Unmarshal(b, &s.records)
}
