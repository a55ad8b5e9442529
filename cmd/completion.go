package cmd

import (
	"maps"

	"github.com/nogvini/btcfolio/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// global flags, available before the subcommand.
var globalFlags = map[string]complete.Predictor{
	"config":   predict.Files("*.toml"),
	"currency": predict.Set{"BRL", "USD"},
	"reports":  predict.Files("*.json"),
	"quotes":   predict.Files("*.jsonl"),
	"gap":      predict.Set{"zero", "nearest", "fail"},
	"v":        predict.Nothing,
}

// Completion returns the shell completion tree of btcf.
func Completion() *complete.Command {
	report := map[string]complete.Predictor{
		"id":   predict.Something,
		"json": predict.Nothing,
		"q":    predict.Something,
	}
	with := func(m, extra map[string]complete.Predictor) map[string]complete.Predictor {
		res := maps.Clone(m)
		maps.Copy(res, extra)
		return res
	}
	topics := docs.Names()

	return &complete.Command{
		Flags: globalFlags,
		Sub: map[string]*complete.Command{
			"report": {Flags: with(report, map[string]complete.Predictor{
				"no-monthly": predict.Nothing,
				"subtotals":  predict.Nothing,
			})},
			"monthly": {Flags: with(report, map[string]complete.Predictor{
				"subtotals": predict.Nothing,
			})},
			"compare": {Flags: with(report, map[string]complete.Predictor{
				"mode":      predict.Set{"accumulated", "monthly"},
				"calculate": predict.Nothing,
			})},
			"fetch": {Flags: map[string]complete.Predictor{
				"from": predict.Something,
				"to":   predict.Something,
				"o":    predict.Files("*.jsonl"),
			}},
			"duration": {Flags: map[string]complete.Predictor{
				"from": predict.Something,
				"to":   predict.Something,
			}},
			"topic": {
				Flags: map[string]complete.Predictor{"raw": predict.Nothing},
				Args:  predict.Set(append(topics, "*")),
			},
			"help": {},
		},
	}
}
