package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/folio"
	"github.com/google/subcommands"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"
)

type quoteCmd struct {
	json bool
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "fetch and print quotes, without touching the portfolio" }
func (*quoteCmd) Usage() string {
	return `pfu quote [-json] <ticker>...

  Fetches the latest quote of each ticker and prints it.
  Fails if any quote could not be fetched.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "print quotes as price cache entries")
}

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(stderr, "at least one ticker expected")
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

	// quotes are printed, logs only go to the debug level
	log := zap.NewNop()
	if *Verbose {
		log = newLogger()
	}
	fetcher := newFetcher(cfg, loc, log)

	status := subcommands.ExitSuccess
	cache := new(folio.PriceCache)
	for _, ticker := range f.Args() {
		switch res := fetcher.Fetch(ctx, ticker).(type) {
		case folio.Quote:
			if c.json {
				if err := cache.Set(ticker, res); err != nil {
					fmt.Fprintf(stderr, "Error: %v\n", err)
					return subcommands.ExitFailure
				}
				continue
			}
			fmt.Fprintf(stdout, "%-10s %12s %+.4f (%+.2f%%)\n", folio.NormalizeTicker(ticker), folio.FormatMoney(res.Price, res.Currency), res.Change, res.ChangePercent)
		case folio.Failure:
			fmt.Fprintf(stderr, "%-10s FAIL %s\n", folio.NormalizeTicker(ticker), res.Reason)
			status = subcommands.ExitFailure
		}
	}

	if c.json {
		b, err := cache.MarshalJSON()
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		stdout.Write(pretty.PrettyOptions(b, &pretty.Options{Width: -1, Indent: "  "}))
	}
	return status
}
