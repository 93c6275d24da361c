// Package instrument times simulation runs without touching the pricer itself.
package instrument

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

// Estimator is anything that produces a Monte Carlo estimate, e.g. *pricing.MonteCarlo.
type Estimator interface {
	Estimate(ctx context.Context, req pricing.SimulationRequest, src pricing.Source) (pricing.PriceEstimate, error)
}

// Hook receives one observation per timed call.
type Hook interface {
	Observe(req pricing.SimulationRequest, elapsed time.Duration, err error)
}

// HookFunc adapts a function to Hook.
type HookFunc func(req pricing.SimulationRequest, elapsed time.Duration, err error)

func (f HookFunc) Observe(req pricing.SimulationRequest, elapsed time.Duration, err error) {
	f(req, elapsed, err)
}

// now is swapped in tests.
var now = time.Now

// Timed runs est and returns the estimate with its wall-clock duration.
// Every hook sees the call, including failed ones.
func Timed(ctx context.Context, est Estimator, req pricing.SimulationRequest, src pricing.Source, hooks ...Hook) (pricing.PriceEstimate, time.Duration, error) {
	start := now()
	res, err := est.Estimate(ctx, req, src)
	elapsed := now().Sub(start)

	for _, h := range hooks {
		h.Observe(req, elapsed, err)
	}
	return res, elapsed, err
}

// LogHook writes each observation at Debug verbosity.
type LogHook struct{}

func (LogHook) Observe(req pricing.SimulationRequest, elapsed time.Duration, err error) {
	if !logger.Enabled(logger.Debug) {
		return
	}
	fields := []zap.Field{
		zap.Int64("n_paths", req.NPaths),
		zap.Duration("elapsed", elapsed),
	}
	if err != nil {
		logger.L().Debug("simulation failed", append(fields, zap.Error(err))...)
		return
	}
	logger.L().Debug("simulation finished", fields...)
}
