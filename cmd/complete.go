package cmd

import (
	"strings"

	"github.com/etnz/folio"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete answers shell completion requests and exits, if the process was
// started by the shell for that purpose. It must be called before any flag
// parsing.
//
// Install with: COMP_INSTALL=1 pfu
func Complete(name string) {
	globals := map[string]complete.Predictor{
		"config": predict.Files("*.yaml"),
		"data":   predict.Files("*.json"),
		"v":      predict.Nothing,
	}
	cmd := &complete.Command{
		Flags: globals,
		Sub: map[string]*complete.Command{
			"update": {},
			"quote": {
				Flags: map[string]complete.Predictor{"json": predict.Nothing},
				Args:  complete.PredictFunc(predictTickers),
			},
			"summary": {
				Flags: map[string]complete.Predictor{"plain": predict.Nothing},
			},
			"help":     {},
			"flags":    {},
			"commands": {},
		},
	}
	cmd.Complete(name)
}

// predictTickers suggests the tickers held in the portfolio.
func predictTickers(prefix string) []string {
	cfg, err := loadConfig()
	if err != nil {
		return nil
	}
	s, err := folio.LoadState(cfg.DataFile)
	if err != nil {
		return nil
	}
	var tickers []string
	for _, p := range s.Positions {
		if t := folio.NormalizeTicker(p.Ticker()); t != "" && strings.HasPrefix(t, prefix) {
			tickers = append(tickers, t)
		}
	}
	return tickers
}
