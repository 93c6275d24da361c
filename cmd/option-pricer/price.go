package main

import (
	"github.com/spf13/cobra"

	"github.com/contactkeval/option-pricer/internal/config"
	"github.com/contactkeval/option-pricer/internal/instrument"
	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/pricing"
	"github.com/contactkeval/option-pricer/internal/report"
)

func newPriceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Compare the Black-Scholes price with a Monte Carlo estimate",
		Args:  cobra.NoArgs,
		RunE:  runPrice,
	}
	config.RegisterFlags(cmd.Flags())
	config.RegisterPriceFlags(cmd.Flags())
	return cmd
}

func runPrice(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	req := cfg.Request()
	if err := req.Validate(); err != nil {
		return err
	}

	analytic, err := pricing.BlackScholesCall(req.OptionParameters)
	if err != nil {
		return err
	}

	src := cfg.Source()
	mc := cfg.MonteCarlo()
	logger.Infof("pricing n_paths=%d seed=%d workers=%d", req.NPaths, src.Seed(), mc.Workers())

	est, elapsed, err := instrument.Timed(cmd.Context(), mc, req, src, instrument.LogHook{})
	if err != nil {
		return err
	}
	logger.Debugf("monte carlo took %v", elapsed)

	q, err := report.NewQuote(analytic, est, cfg.Confidence)
	if err != nil {
		return err
	}
	q.NPaths = req.NPaths
	q.Seed = src.Seed()

	if cfg.JSON {
		return report.WriteJSON(cmd.OutOrStdout(), q)
	}
	return report.WriteQuote(cmd.OutOrStdout(), q)
}
