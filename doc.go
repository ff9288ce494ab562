// Package folio keeps a personal portfolio document up to date with market
// prices.
//
// The portfolio is a single JSON document holding the current positions, a
// cache of the latest quotes, one valuation snapshot per day, closed trades
// and transactions. A daily run:
//   - loads the document (LoadState),
//   - fetches a quote for every position through a Fetcher,
//   - stores successful quotes in the PriceCache and the positions,
//   - values the portfolio and puts the day's Snapshot in the history,
//   - saves the document back (State.Save).
//
// Reconciler drives the run. Fetch failures never stop it: the position keeps
// its last known price and the snapshot is computed with it.
//
// Only the members the run updates are re-encoded. Everything else in the
// document, including fields this package does not know about, is written
// back as it was read.
package folio
