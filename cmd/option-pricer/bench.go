package main

import (
	"github.com/spf13/cobra"

	"github.com/contactkeval/option-pricer/internal/bench"
	"github.com/contactkeval/option-pricer/internal/config"
	"github.com/contactkeval/option-pricer/internal/instrument"
	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/report"
)

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time the Monte Carlo estimator across path counts",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	config.RegisterFlags(cmd.Flags())
	config.RegisterBenchFlags(cmd.Flags())
	return cmd
}

func runBench(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	src := cfg.Source()
	mc := cfg.MonteCarlo()
	logger.Infof("timing %v paths, %d repeats, seed=%d workers=%d", cfg.PathCounts, cfg.Repeats, src.Seed(), mc.Workers())

	out := cmd.OutOrStdout()
	bcfg := cfg.Bench()
	var writeErr error
	if !cfg.JSON {
		bcfg.Progress = func(r bench.Result) {
			if err := report.WriteTiming(out, r); err != nil && writeErr == nil {
				writeErr = err
			}
		}
	}

	results, err := bench.Run(cmd.Context(), bcfg, cfg.OptionParameters, mc, src, instrument.LogHook{})
	if err != nil {
		return err
	}
	if cfg.JSON {
		return report.WriteJSON(out, results)
	}
	return writeErr
}
