package renderer

import (
	"fmt"
	"strconv"

	"github.com/etnz/folio"
)

// Summary is the view of a portfolio rendered by RenderSummary.
type Summary struct {
	Date      string // date of the latest snapshot, empty if there is none
	Metrics   []Metric
	Positions []PositionRow
}

// Metric is one line of the summary metrics table.
type Metric struct {
	Label string
	Value string
}

// PositionRow is one line of the positions table, already formatted.
type PositionRow struct {
	Ticker    string
	Quantity  string
	Entry     string
	Current   string
	Value     string
	DayChange string
}

// NewSummary builds the summary view of s, amounts formatted in currency.
//
// Metrics come from the latest snapshot, day changes from the price cache.
// Nothing is fetched or recomputed beyond position values.
func NewSummary(s *folio.State, currency string) *Summary {
	if currency == "" {
		currency = folio.DefaultCurrency
	}
	sum := &Summary{}
	if s.Snapshots != nil {
		if snap, ok := s.Snapshots.Latest(); ok {
			if !snap.Date.IsZero() {
				sum.Date = snap.Date.String()
			}
			sum.Metrics = []Metric{
				{"Portfolio value", folio.FormatMoney(snap.PortfolioValue, currency)},
				{"Capital engaged", folio.FormatMoney(snap.CapitalEngaged, currency)},
				{"Unrealized P&L", folio.FormatMoney(snap.UnrealizedPnL, currency)},
				{"Realized P&L", folio.FormatMoney(snap.RealizedPnL, currency)},
				{"Dividends", folio.FormatMoney(snap.TotalDividends, currency)},
				{"Positions", strconv.Itoa(snap.PositionCount)},
			}
		}
	}

	for _, p := range s.Positions {
		row := PositionRow{
			Ticker:    p.Ticker(),
			Quantity:  strconv.FormatFloat(p.Quantity(), 'f', -1, 64),
			Entry:     "-",
			Current:   "-",
			Value:     folio.FormatMoney(p.Value().InexactFloat64(), currency),
			DayChange: "-",
		}
		if v, ok := p.EntryPrice(); ok {
			row.Entry = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if v, ok := p.CurrentPrice(); ok {
			row.Current = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if s.PriceCache != nil {
			if q, ok := s.PriceCache.Get(row.Ticker); ok {
				row.DayChange = fmt.Sprintf("%+.2f%%", q.ChangePercent)
			}
		}
		sum.Positions = append(sum.Positions, row)
	}
	return sum
}

// RenderSummary renders the Summary struct to a markdown string.
func RenderSummary(s *Summary) string {
	partials := map[string]string{
		"summary_metrics":   "summary_metrics.md",
		"summary_positions": "summary_positions.md",
	}
	return renderTemplate("summary", "summary.md", partials, s)
}
