// Package yahoo fetches quotes from the Yahoo Finance chart API.
//
// The chart endpoint needs no API key. A daily chart over a few days is
// requested so that the previous trading day's close is part of the answer,
// even after a weekend or a holiday.
package yahoo

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/etnz/folio"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Default request parameters.
const (
	DefaultEndpoint  = "https://query1.finance.yahoo.com/v8/finance/chart"
	DefaultInterval  = "1d"
	DefaultRange     = "5d"
	DefaultUserAgent = "Mozilla/5.0"
	DefaultTimeout   = 15 * time.Second
)

// Client fetches quotes, it implements folio.Fetcher.
//
// Exported fields may be changed after New and before the first Fetch.
type Client struct {
	Endpoint  string
	Interval  string
	Range     string
	UserAgent string
	Timeout   time.Duration

	// Location is the zone quotes are time stamped in.
	Location *time.Location
	Now      func() time.Time

	HTTP   *http.Client
	Logger *zap.Logger
}

var _ folio.Fetcher = (*Client)(nil)

// New returns a Client with default parameters, logging to logger.
func New(logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		Endpoint:  DefaultEndpoint,
		Interval:  DefaultInterval,
		Range:     DefaultRange,
		UserAgent: DefaultUserAgent,
		Timeout:   DefaultTimeout,
		Location:  folio.DefaultLocation,
		Now:       time.Now,
		HTTP: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: &loggingTransport{base: http.DefaultTransport, logger: logger},
		},
		Logger: logger,
	}
}

func (c *Client) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// chartURL returns the chart address for symbol.
func (c *Client) chartURL(symbol string) string {
	params := url.Values{
		"interval": {c.Interval},
		"range":    {c.Range},
	}
	return strings.TrimSuffix(c.Endpoint, "/") + "/" + url.PathEscape(symbol) + "?" + params.Encode()
}

// Fetch returns the latest quote of ticker, or the reason it could not be
// obtained. The "b.HK" alias is resolved before the request.
func (c *Client) Fetch(ctx context.Context, ticker string) folio.Result {
	symbol := folio.NormalizeTicker(ticker)
	res := c.fetch(ctx, symbol)
	switch r := res.(type) {
	case folio.Quote:
		c.logger().Info("  OK "+symbol, zap.Float64("price", r.Price), zap.Float64("prevClose", r.PreviousClose))
	case folio.Failure:
		c.logger().Warn("  FAIL "+symbol, zap.String("reason", r.Reason))
	}
	return res
}

func (c *Client) fetch(ctx context.Context, symbol string) folio.Result {
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	var jobj any
	if err := jwget(ctx, client, c.chartURL(symbol), c.UserAgent, &jobj); err != nil {
		return folio.Failure{Reason: err.Error()}
	}
	return c.parseChart(jobj)
}

// parseChart turns a chart response into a Result.
//
//	{"chart": {"result": [{
//	    "meta": {"currency": "HKD", "regularMarketPrice": 81.5, "previousClose": 80.1, ...},
//	    "timestamp": [...],
//	    "indicators": {"quote": [{"close": [80.2, null, 80.1, 81.5], ...}]}
//	}], "error": null}}
func (c *Client) parseChart(jobj any) folio.Result {
	jval, _ := lookup("$.chart.result[0]", jobj)
	result, ok := jval.(map[string]any)
	if !ok || len(result) == 0 {
		return folio.Failure{Reason: "No data"}
	}

	price, ok := lookupNumber("$.meta.regularMarketPrice", result)
	if !ok {
		return folio.Failure{Reason: "No price"}
	}

	meta, _ := result["meta"].(map[string]any)
	closes, _ := lookup("$.indicators.quote[0].close", result)
	series, _ := closes.([]any)
	prev := previousClose(price, series, meta)

	change := decimal.NewFromFloat(price).Sub(decimal.NewFromFloat(prev))
	changePercent := decimal.Zero
	if prev != 0 {
		changePercent = change.Div(decimal.NewFromFloat(prev)).Mul(decimal.NewFromInt(100))
	}

	currency := folio.DefaultCurrency
	if cur, ok := meta["currency"].(string); ok {
		currency = cur
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	loc := c.Location
	if loc == nil {
		loc = folio.DefaultLocation
	}

	return folio.Quote{
		Price:         price,
		PreviousClose: prev,
		Change:        change.Round(4).InexactFloat64(),
		ChangePercent: changePercent.Round(4).InexactFloat64(),
		Currency:      currency,
		LastUpdated:   now().In(loc),
	}
}

// previousClose returns the last close before the latest point of the
// series. Without one, it falls back on the close reported in meta, and
// finally on price itself, which means no change.
func previousClose(price float64, closes []any, meta map[string]any) float64 {
	if len(closes) >= 2 {
		for i := len(closes) - 2; i >= 0; i-- {
			if v, ok := closes[i].(float64); ok {
				return v
			}
		}
	}
	for _, key := range []string{"previousClose", "chartPreviousClose"} {
		if v, ok := meta[key].(float64); ok && v != 0 {
			return v
		}
	}
	return price
}
