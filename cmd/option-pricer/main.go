package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/contactkeval/option-pricer/internal/config"
	"github.com/contactkeval/option-pricer/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.Errorf("%v", err)
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "option-pricer",
		Short:         "Black-Scholes and Monte Carlo European call pricer",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runPrice,
	}
	config.RegisterFlags(root.Flags())
	config.RegisterPriceFlags(root.Flags())

	root.AddCommand(newPriceCmd(), newBenchCmd())
	return root
}

// loadConfig resolves the command's settings and applies the verbosity.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(config.New(), cmd.Flags())
	if err != nil {
		return config.Config{}, err
	}
	logger.SetVerbosity(cfg.Verbosity)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
