package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/folio"
	"github.com/google/subcommands"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type updateCmd struct{}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "fetch prices and record today's snapshot (default)" }
func (*updateCmd) Usage() string {
	return `pfu [-data <file>] update

  Fetches the latest price of every position, updates the price cache and
  the positions, records today's snapshot and saves the portfolio.
  A price that cannot be fetched keeps its last known value.
`
}
func (c *updateCmd) SetFlags(f *flag.FlagSet) {}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	loc, err := cfg.Location()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	state := loadState(cfg)
	if state == nil {
		return subcommands.ExitFailure
	}

	log := newLogger().With(zap.String("run", uuid.NewString()))
	defer log.Sync()

	r := folio.Reconciler{
		Fetcher:  newFetcher(cfg, loc, log),
		Location: loc,
		Now:      now,
		Currency: cfg.Currency,
		Logger:   log,
	}
	report, err := r.Reconcile(ctx, state)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if report.Skipped {
		return subcommands.ExitSuccess
	}

	if err := state.Save(cfg.DataFile); err != nil {
		fmt.Fprintf(stderr, "Error saving %s: %v\n", cfg.DataFile, err)
		return subcommands.ExitFailure
	}
	log.Info("Saved "+cfg.DataFile, zap.Int("quotes", state.PriceCache.Len()), zap.Int("snapshots", state.Snapshots.Len()))
	return subcommands.ExitSuccess
}
