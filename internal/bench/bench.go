// Package bench measures how the simulation scales with the number of paths.
package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/contactkeval/option-pricer/internal/instrument"
	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

// DefaultRepeats is how many timed runs are averaged per path count.
const DefaultRepeats = 5

// DefaultPathCounts returns 10^4 through 10^8.
func DefaultPathCounts() []int64 {
	return []int64{10_000, 100_000, 1_000_000, 10_000_000, 100_000_000}
}

// Config controls a timing run.
type Config struct {
	PathCounts []int64
	Repeats    int
	// Progress, when set, is called as soon as each path count finishes.
	Progress func(Result)
}

// Result is the averaged timing for one path count.
type Result struct {
	NPaths   int64                 `json:"n_paths"`
	Repeats  int                   `json:"repeats"`
	Average  time.Duration         `json:"average"`
	Estimate pricing.PriceEstimate `json:"estimate"` // from the last repeat
}

func (cfg Config) validate() error {
	if len(cfg.PathCounts) == 0 {
		return fmt.Errorf("%w: no path counts to time", pricing.ErrInvalidArgument)
	}
	if cfg.Repeats <= 0 {
		return fmt.Errorf("%w: repeats must be positive, got %d", pricing.ErrInvalidArgument, cfg.Repeats)
	}
	for _, n := range cfg.PathCounts {
		if n <= 0 {
			return fmt.Errorf("%w: path count must be positive, got %d", pricing.ErrInvalidArgument, n)
		}
	}
	return nil
}

// Run times est for every configured path count and returns the averages in order.
// It stops at the first failed estimate or when ctx is done.
func Run(ctx context.Context, cfg Config, params pricing.OptionParameters, est instrument.Estimator, src pricing.Source, hooks ...instrument.Hook) ([]Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(cfg.PathCounts))
	for _, n := range cfg.PathCounts {
		req := pricing.SimulationRequest{OptionParameters: params, NPaths: n}
		logger.Debugf("timing n=%d over %d repeats", n, cfg.Repeats)

		var total time.Duration
		var last pricing.PriceEstimate
		for i := 0; i < cfg.Repeats; i++ {
			res, elapsed, err := instrument.Timed(ctx, est, req, src, hooks...)
			if err != nil {
				return results, fmt.Errorf("n=%d repeat %d: %w", n, i+1, err)
			}
			total += elapsed
			last = res
		}

		r := Result{
			NPaths:   n,
			Repeats:  cfg.Repeats,
			Average:  total / time.Duration(cfg.Repeats),
			Estimate: last,
		}
		logger.Tracef("n=%d avg=%v price=%.6f se=%.6f", n, r.Average, last.Price, last.StandardError)
		if cfg.Progress != nil {
			cfg.Progress(r)
		}
		results = append(results, r)
	}
	return results, nil
}
