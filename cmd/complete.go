package cmd

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion tree of dripsim.
//
// Install it with COMP_INSTALL=1 dripsim.
func Completion() *complete.Command {
	providers := predict.Set(Providers)
	global := map[string]complete.Predictor{
		"log-level":     predict.Set{"debug", "info", "warn", "error", "off"},
		"log-pretty":    predict.Nothing,
		"eodhd-api-key": predict.Something,
	}
	return &complete.Command{
		Flags: global,
		Sub: map[string]*complete.Command{
			"simulate": {
				Flags: map[string]complete.Predictor{
					"investment": predict.Something,
					"start":      predict.Something,
					"end":        predict.Something,
					"fee":        predict.Something,
					"tax":        predict.Something,
					"provider":   providers,
					"data":       predict.Files("*.jsonl"),
					"json":       predict.Nothing,
				},
			},
			"fetch": {
				Flags: map[string]complete.Predictor{
					"provider": providers,
					"o":        predict.Files("*.jsonl"),
				},
			},
			"commission": {},
			"help":       {Args: predict.Set{"simulate", "fetch", "commission", "flags"}},
			"flags":      {},
		},
	}
}
