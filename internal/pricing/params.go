package pricing

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidArgument is returned when an input violates a parameter constraint.
	// Inputs are never clamped into range.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNumericDegeneracy is returned when a computation overflows to a non-finite value.
	ErrNumericDegeneracy = errors.New("numeric degeneracy")
)

// OptionParameters describes a European call.
//
// Fields:
//   - S0: spot price of the underlying asset
//   - K: strike price of the option
//   - R: risk-free interest rate (annual, continuously compounded)
//   - Sigma: volatility of the underlying asset (annual, as a decimal)
//   - T: time to maturity in years
type OptionParameters struct {
	S0    float64 `json:"s0" mapstructure:"s0"`
	K     float64 `json:"k" mapstructure:"k"`
	R     float64 `json:"r" mapstructure:"r"`
	Sigma float64 `json:"sigma" mapstructure:"sigma"`
	T     float64 `json:"t" mapstructure:"t"`
}

// Validate reports the first constraint the parameters break, wrapped in ErrInvalidArgument.
func (p OptionParameters) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"S0", p.S0}, {"K", p.K}, {"r", p.R}, {"sigma", p.Sigma}, {"T", p.T},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidArgument, f.name, f.v)
		}
	}

	switch {
	case p.S0 <= 0:
		return fmt.Errorf("%w: S0 must be positive, got %v", ErrInvalidArgument, p.S0)
	case p.K <= 0:
		return fmt.Errorf("%w: K must be positive, got %v", ErrInvalidArgument, p.K)
	case p.Sigma < 0:
		return fmt.Errorf("%w: sigma must be non-negative, got %v", ErrInvalidArgument, p.Sigma)
	case p.T < 0:
		return fmt.Errorf("%w: T must be non-negative, got %v", ErrInvalidArgument, p.T)
	}
	return nil
}

// Intrinsic is the immediate exercise value max(S0-K, 0).
func (p OptionParameters) Intrinsic() float64 {
	return math.Max(p.S0-p.K, 0)
}

// discount returns e^(-rT).
func (p OptionParameters) discount() float64 {
	return math.Exp(-p.R * p.T)
}

// SimulationRequest is an option plus the number of sampled terminal prices.
type SimulationRequest struct {
	OptionParameters
	NPaths int64 `json:"n_paths" mapstructure:"n_paths"`
}

// Validate checks the option parameters and the path count.
func (req SimulationRequest) Validate() error {
	if err := req.OptionParameters.Validate(); err != nil {
		return err
	}
	if req.NPaths <= 0 {
		return fmt.Errorf("%w: n_paths must be positive, got %d", ErrInvalidArgument, req.NPaths)
	}
	return nil
}
