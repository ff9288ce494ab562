// Package cmd implements the pfu command line: keep a portfolio document up
// to date with market prices.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/folio"
	"github.com/etnz/folio/config"
	"github.com/etnz/folio/yahoo"
	"github.com/google/subcommands"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Commands lists all the subcommands, in help order.
var Commands = []subcommands.Command{
	&updateCmd{},
	&quoteCmd{},
	&summaryCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to a YAML configuration file")
var dataFile = flag.String("data", "", "Path to the portfolio document, overrides the configuration")

// Verbose enables debug logs, including every HTTP exchange.
var Verbose = flag.Bool("v", false, "Verbose output")

// Seams replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	now              = time.Now

	newFetcher = func(cfg *config.Config, loc *time.Location, log *zap.Logger) folio.Fetcher {
		c := yahoo.New(log)
		c.Endpoint = cfg.Quotes.Endpoint
		c.Interval = cfg.Quotes.Interval
		c.Range = cfg.Quotes.Range
		c.UserAgent = cfg.Quotes.UserAgent
		c.Timeout = cfg.Quotes.Timeout
		c.HTTP.Timeout = cfg.Quotes.Timeout
		c.Location = loc
		c.Now = now
		return c
	}
)

// loadConfig resolves the configuration: defaults, the -config file, .env and
// environment, then -data.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.LoadFromFile(*configFile); err != nil {
			return nil, err
		}
	}
	if err := config.LoadEnv(); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger returns a human readable logger on stdout.
func newLogger() *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encCfg.CallerKey = zapcore.OmitKey

	level := zapcore.InfoLevel
	if *Verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(stdout), level)
	return zap.New(core)
}

// loadState loads the configured portfolio document, reporting problems on
// stderr. A nil state means the command must fail.
func loadState(cfg *config.Config) *folio.State {
	s, err := folio.LoadState(cfg.DataFile)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "Error: %s not found\n", cfg.DataFile)
		return nil
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return nil
	}
	return s
}

// printMarkdown renders md for the terminal, or prints it as is if it
// cannot be rendered.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
