package folio

import (
	"context"
	"fmt"
	"time"

	"github.com/etnz/folio/date"
	"go.uber.org/zap"
)

// DefaultLocation is the civil time zone of the portfolio, Hong Kong time.
var DefaultLocation = time.FixedZone("UTC+08:00", 8*60*60)

// Reconciler applies the latest quotes to a portfolio and records the day's
// snapshot.
type Reconciler struct {
	Fetcher Fetcher

	// Location defines the civil day a run belongs to. Defaults to DefaultLocation.
	Location *time.Location
	// Now defaults to time.Now.
	Now func() time.Time
	// Currency is only used to format amounts in logs. Defaults to DefaultCurrency.
	Currency string
	Logger   *zap.Logger
}

// Outcome is the result of fetching one position.
type Outcome struct {
	Ticker string // as written in the position
	Result Result
}

// Report describes what a Reconcile did.
type Report struct {
	Date date.Date
	// Skipped is true when there was nothing to reconcile; the state is
	// untouched and must not be saved.
	Skipped  bool
	Outcomes []Outcome
	Snapshot Snapshot
	// Replaced is true when Snapshot replaced an existing snapshot for Date.
	Replaced bool
}

// Failures returns the outcomes that did not produce a quote.
func (r Report) Failures() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if _, ok := o.Result.(Failure); ok {
			failed = append(failed, o)
		}
	}
	return failed
}

func (r *Reconciler) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func (r *Reconciler) location() *time.Location {
	if r.Location == nil {
		return DefaultLocation
	}
	return r.Location
}

func (r *Reconciler) currency() string {
	if r.Currency == "" {
		return DefaultCurrency
	}
	return r.Currency
}

func (r *Reconciler) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

// Reconcile fetches a quote for every position of s, stores the successful
// ones in the price cache and the positions, and puts today's snapshot in the
// history.
//
// Positions whose fetch failed keep their previous current price, and their
// cache entry is left as is. Errors are only returned when s cannot hold the
// new values.
func (r *Reconciler) Reconcile(ctx context.Context, s *State) (Report, error) {
	log := r.logger()
	if len(s.Positions) == 0 {
		log.Info("No positions, nothing to do.")
		return Report{Skipped: true}, nil
	}
	if s.PriceCache == nil {
		s.PriceCache = new(PriceCache)
	}
	if s.Snapshots == nil {
		s.Snapshots = new(Snapshots)
	}

	today := date.In(r.now(), r.location())
	report := Report{Date: today}
	log.Info(fmt.Sprintf("=== Portfolio Update %s ===", today))
	log.Info(fmt.Sprintf("Positions: %d", len(s.Positions)))

	log.Info("Fetching prices...")
	for _, p := range s.Positions {
		ticker := p.Ticker()
		if ticker == "" {
			log.Warn("position without ticker, kept at its last price")
			continue
		}
		res := r.Fetcher.Fetch(ctx, ticker)
		report.Outcomes = append(report.Outcomes, Outcome{Ticker: ticker, Result: res})

		switch res := res.(type) {
		case Quote:
			if err := s.PriceCache.Set(ticker, res); err != nil {
				return report, err
			}
			if err := p.SetCurrentPrice(res.Price); err != nil {
				return report, err
			}
		case Failure:
			// keep the last known price and cache entry
		}
	}

	report.Snapshot = s.Valuation(today)
	replaced, err := s.Snapshots.Put(report.Snapshot)
	if err != nil {
		return report, fmt.Errorf("cannot record snapshot: %w", err)
	}
	report.Replaced = replaced
	if replaced {
		log.Info("Updated existing snapshot", zap.Stringer("date", today))
	} else {
		log.Info("New snapshot", zap.Stringer("date", today))
	}

	snap, cur := report.Snapshot, r.currency()
	log.Info(fmt.Sprintf("Value: %s | Capital: %s | P&L: %s",
		FormatMoney(snap.PortfolioValue, cur),
		FormatMoney(snap.CapitalEngaged, cur),
		FormatMoney(snap.UnrealizedPnL, cur)),
		zap.Int("failed", len(report.Failures())))
	return report, nil
}
