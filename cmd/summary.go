package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	plain bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the latest portfolio snapshot and positions" }
func (*summaryCmd) Usage() string {
	return `pfu summary [-plain]

  Displays the latest snapshot and the positions of the portfolio, as
  stored. Nothing is fetched nor written.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "print raw markdown instead of rendering it for the terminal")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	state := loadState(cfg)
	if state == nil {
		return subcommands.ExitFailure
	}

	md := renderer.RenderSummary(renderer.NewSummary(state, cfg.Currency))
	if c.plain {
		fmt.Fprint(stdout, md)
		return subcommands.ExitSuccess
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
