package pricing

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// DefaultChunkSize is the number of paths drawn from one random stream.
const DefaultChunkSize int64 = 1 << 16

// MonteCarlo estimates European call prices by sampling terminal prices under
// the risk-neutral log-normal model.
//
// Paths are cut into chunks of a fixed size and chunk i always draws from
// src.Stream(i). Per-chunk moments are merged in chunk order, so a seeded
// source gives the same estimate whatever the worker count. Changing the
// chunk size changes which variates each path sees.
type MonteCarlo struct {
	workers   int
	chunkSize int64
}

// Option configures a MonteCarlo.
type Option func(*MonteCarlo)

// WithWorkers sets the number of goroutines sampling paths. n <= 0 means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(mc *MonteCarlo) { mc.workers = n }
}

// WithChunkSize sets how many paths share one random stream. n <= 0 keeps the default.
func WithChunkSize(n int64) Option {
	return func(mc *MonteCarlo) {
		if n > 0 {
			mc.chunkSize = n
		}
	}
}

// NewMonteCarlo returns an estimator using GOMAXPROCS workers and DefaultChunkSize unless opts say otherwise.
func NewMonteCarlo(opts ...Option) *MonteCarlo {
	mc := &MonteCarlo{chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		opt(mc)
	}
	if mc.workers <= 0 {
		mc.workers = runtime.GOMAXPROCS(0)
	}
	return mc
}

// Workers returns the configured worker count.
func (mc *MonteCarlo) Workers() int { return mc.workers }

// EstimateCall prices req with a default MonteCarlo.
func EstimateCall(ctx context.Context, req SimulationRequest, src Source) (PriceEstimate, error) {
	return NewMonteCarlo().Estimate(ctx, req, src)
}

// Estimate returns the discounted mean payoff and its standard error.
//
// At maturity (T == 0) no sampling happens and the intrinsic value is returned
// with a zero standard error. A single path has no sample variance, so its
// standard error is reported as 0.
func (mc *MonteCarlo) Estimate(ctx context.Context, req SimulationRequest, src Source) (PriceEstimate, error) {
	if err := req.Validate(); err != nil {
		return PriceEstimate{}, err
	}
	if req.T == 0 {
		return PriceEstimate{Price: req.Intrinsic()}, nil
	}
	if src == nil {
		return PriceEstimate{}, fmt.Errorf("%w: random source is nil", ErrInvalidArgument)
	}
	if err := ctx.Err(); err != nil {
		return PriceEstimate{}, err
	}

	k := kernel{
		s0:       req.S0,
		strike:   req.K,
		drift:    (req.R - 0.5*req.Sigma*req.Sigma) * req.T,
		vol:      req.Sigma * math.Sqrt(req.T),
		discount: req.discount(),
	}

	chunkSize := mc.chunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	nChunks := uint64(req.NPaths / chunkSize)
	if req.NPaths%chunkSize != 0 {
		nChunks++
	}

	workers := mc.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if uint64(workers) > nChunks {
		workers = int(nChunks)
	}

	total, err := mc.sample(ctx, k, src, req.NPaths, chunkSize, nChunks, workers)
	if err != nil {
		return PriceEstimate{}, err
	}

	est := PriceEstimate{Price: total.mean}
	if total.n > 1 {
		variance := total.m2 / float64(total.n-1)
		est.StandardError = math.Sqrt(variance) / math.Sqrt(float64(total.n))
	}
	if !finite(est.Price) || !finite(est.StandardError) {
		return PriceEstimate{}, fmt.Errorf("%w: monte carlo estimate is %v ± %v",
			ErrNumericDegeneracy, est.Price, est.StandardError)
	}
	return est, nil
}

// chunkResult is the moments of one finished chunk.
type chunkResult struct {
	idx uint64
	m   moments
}

// sample runs nChunks chunks on workers goroutines and folds their moments in
// chunk order. At most 2*workers chunks are claimed but not yet folded, so
// memory does not grow with the path count.
func (mc *MonteCarlo) sample(ctx context.Context, k kernel, src Source, nPaths, chunkSize int64, nChunks uint64, workers int) (moments, error) {
	window := 2 * workers
	slots := make(chan struct{}, window)
	results := make(chan chunkResult, window)

	var next atomic.Uint64
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				select {
				case slots <- struct{}{}:
				case <-gctx.Done():
					return gctx.Err()
				}
				i := next.Add(1) - 1
				if i >= nChunks {
					<-slots
					return nil
				}
				size := chunkSize
				if rest := nPaths - int64(i)*chunkSize; rest < size {
					size = rest
				}
				r := chunkResult{idx: i, m: k.run(src.Stream(i), size)}
				select {
				case results <- r:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
		})
	}

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
		close(results)
	}()

	var total moments
	var folded uint64
	pending := make(map[uint64]moments, window)
	for r := range results {
		pending[r.idx] = r.m
		for {
			m, ok := pending[folded]
			if !ok {
				break
			}
			delete(pending, folded)
			total = total.merge(m)
			folded++
			<-slots
		}
	}
	if err := <-done; err != nil {
		return moments{}, err
	}
	return total, nil
}

// kernel holds the per-path constants of the terminal price map.
type kernel struct {
	s0, strike float64
	drift, vol float64
	discount   float64
}

// run samples n discounted payoffs in one fused pass.
func (k kernel) run(rng NormalSource, n int64) moments {
	var m moments
	for j := int64(0); j < n; j++ {
		st := k.s0 * math.Exp(k.drift+k.vol*rng.NormFloat64())
		m.add(k.discount * math.Max(st-k.strike, 0))
	}
	return m
}

// moments is a running count, mean and sum of squared deviations (Welford).
type moments struct {
	n    int64
	mean float64
	m2   float64
}

func (m *moments) add(x float64) {
	m.n++
	delta := x - m.mean
	m.mean += delta / float64(m.n)
	m.m2 += delta * (x - m.mean)
}

// merge combines two partials with the parallel variance identity (Chan et al.).
func (m moments) merge(o moments) moments {
	switch {
	case o.n == 0:
		return m
	case m.n == 0:
		return o
	}
	n := m.n + o.n
	delta := o.mean - m.mean
	fo := float64(o.n) / float64(n)
	return moments{
		n:    n,
		mean: m.mean + delta*fo,
		m2:   m.m2 + o.m2 + delta*delta*float64(m.n)*fo,
	}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
