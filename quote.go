package folio

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// QuoteTimeLayout is the layout of Quote.LastUpdated in the price cache.
const QuoteTimeLayout = "2006-01-02T15:04:05.000000-07:00"

// NormalizeTicker returns the symbol the quote provider knows a ticker by.
//
// Portfolios spell some Hong Kong listings with a "b.HK" suffix; the provider
// lists them under ".HK". That suffix is the only alias handled.
func NormalizeTicker(ticker string) string {
	if base, ok := strings.CutSuffix(ticker, "b.HK"); ok {
		return base + ".HK"
	}
	return ticker
}

// Fetcher fetches the latest quote of a ticker.
//
// Fetch never fails with an error: problems are reported as a Failure result
// so that one bad ticker never stops a run.
type Fetcher interface {
	Fetch(ctx context.Context, ticker string) Result
}

// Result is the outcome of a Fetch. It is either a Quote or a Failure.
type Result interface {
	result()
}

// Quote is a successful Fetch, and the value stored in the price cache.
type Quote struct {
	Price         float64
	PreviousClose float64
	Change        float64 // Price - PreviousClose, 4 decimals
	ChangePercent float64 // Change relative to PreviousClose in %, 4 decimals
	Currency      string
	LastUpdated   time.Time
}

// Failure is an unsuccessful Fetch.
type Failure struct {
	Reason string
}

func (Quote) result()   {}
func (Failure) result() {}

func (f Failure) Error() string { return f.Reason }

// MarshalJSON writes the cache entry layout. "success" is always true: only
// successful quotes are ever cached.
func (q Quote) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("success", true).
		Append("price", q.Price).
		Append("previousClose", q.PreviousClose).
		Append("change", q.Change).
		Append("changePercent", q.ChangePercent).
		Append("currency", q.Currency).
		Append("lastUpdated", q.LastUpdated.Format(QuoteTimeLayout))
	return w.MarshalJSON()
}

func (q *Quote) UnmarshalJSON(b []byte) error {
	var entry struct {
		Price         float64 `json:"price"`
		PreviousClose float64 `json:"previousClose"`
		Change        float64 `json:"change"`
		ChangePercent float64 `json:"changePercent"`
		Currency      string  `json:"currency"`
		LastUpdated   string  `json:"lastUpdated"`
	}
	if err := json.Unmarshal(b, &entry); err != nil {
		return err
	}
	*q = Quote{
		Price:         entry.Price,
		PreviousClose: entry.PreviousClose,
		Change:        entry.Change,
		ChangePercent: entry.ChangePercent,
		Currency:      entry.Currency,
	}
	if entry.LastUpdated != "" {
		on, err := time.Parse(time.RFC3339Nano, entry.LastUpdated)
		if err != nil {
			return fmt.Errorf("invalid lastUpdated %q: %w", entry.LastUpdated, err)
		}
		q.LastUpdated = on
	}
	return nil
}

// PriceCache holds the last good quote of each normalized ticker.
//
// Entries are replaced as a whole and never expire.
type PriceCache struct {
	entries object
}

// Set stores q as the latest quote for ticker, after normalization.
func (c *PriceCache) Set(ticker string, q Quote) error {
	return c.entries.set(NormalizeTicker(ticker), q)
}

// Get returns the cached quote for ticker, after normalization.
func (c *PriceCache) Get(ticker string) (Quote, bool) {
	raw, ok := c.entries.get(NormalizeTicker(ticker))
	if !ok {
		return Quote{}, false
	}
	var q Quote
	if err := json.Unmarshal(raw, &q); err != nil {
		return Quote{}, false
	}
	return q, true
}

// Tickers returns the cached tickers in document order.
func (c *PriceCache) Tickers() []string { return append([]string(nil), c.entries.keys...) }

// Len returns the number of cached tickers.
func (c *PriceCache) Len() int { return c.entries.len() }

func (c PriceCache) MarshalJSON() ([]byte, error) { return c.entries.MarshalJSON() }

func (c *PriceCache) UnmarshalJSON(b []byte) error { return c.entries.UnmarshalJSON(b) }
