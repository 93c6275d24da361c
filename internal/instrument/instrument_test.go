package instrument

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

type fakeEstimator struct {
	est pricing.PriceEstimate
	err error
}

func (f fakeEstimator) Estimate(context.Context, pricing.SimulationRequest, pricing.Source) (pricing.PriceEstimate, error) {
	return f.est, f.err
}

func stepClock(t *testing.T, step time.Duration) {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * step)
	}
	t.Cleanup(func() { now = time.Now })
}

func TestTimedReturnsTriple(t *testing.T) {
	stepClock(t, 25*time.Millisecond)

	want := pricing.PriceEstimate{Price: 10.45, StandardError: 0.015}
	req := pricing.SimulationRequest{NPaths: 1000}

	var seen []time.Duration
	hook := HookFunc(func(r pricing.SimulationRequest, d time.Duration, err error) {
		if r.NPaths != 1000 || err != nil {
			t.Fatalf("unexpected observation: %+v %v", r, err)
		}
		seen = append(seen, d)
	})

	got, elapsed, err := Timed(context.Background(), fakeEstimator{est: want}, req, nil, hook, hook)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("estimate mismatch: got %+v want %+v", got, want)
	}
	if elapsed != 25*time.Millisecond {
		t.Fatalf("elapsed mismatch: %v", elapsed)
	}
	if len(seen) != 2 {
		t.Fatalf("expected both hooks to fire, got %d", len(seen))
	}
}

func TestTimedPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	var observed error
	hook := HookFunc(func(_ pricing.SimulationRequest, _ time.Duration, err error) { observed = err })

	_, _, err := Timed(context.Background(), fakeEstimator{err: boom}, pricing.SimulationRequest{}, nil, hook)
	if !errors.Is(err, boom) || !errors.Is(observed, boom) {
		t.Fatalf("error not propagated: returned %v, observed %v", err, observed)
	}
}

func TestTimedWithMonteCarlo(t *testing.T) {
	req := pricing.SimulationRequest{
		OptionParameters: pricing.OptionParameters{S0: 100, K: 100, R: 0.05, Sigma: 0.2, T: 1},
		NPaths:           10_000,
	}
	est, elapsed, err := Timed(context.Background(), pricing.NewMonteCarlo(), req, pricing.NewSeededSource(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.Price <= 0 || elapsed < 0 {
		t.Fatalf("implausible result: %+v in %v", est, elapsed)
	}
}

func TestLogHook(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() {
		logger.SetVerbosity(int(logger.Info))
		logger.SetOutput(&bytes.Buffer{})
	})

	req := pricing.SimulationRequest{NPaths: 500}
	LogHook{}.Observe(req, time.Millisecond, nil)
	if buf.Len() != 0 {
		t.Fatalf("log hook wrote at info verbosity: %q", buf.String())
	}

	logger.SetVerbosity(int(logger.Debug))
	LogHook{}.Observe(req, time.Millisecond, nil)
	if out := buf.String(); !strings.Contains(out, "simulation finished") || !strings.Contains(out, "500") {
		t.Fatalf("log hook output missing: %q", out)
	}
}
