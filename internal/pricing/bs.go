package pricing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// BlackScholesCall calculates the closed-form price of a European call.
//
// Returns:
//
//	The theoretical price. At maturity (T == 0) this is exactly the intrinsic value
//	max(S0-K, 0). With zero volatility the asset grows deterministically at r, so the
//	price is the discounted intrinsic value max(S0 - K*e^(-rT), 0).
//
// Invalid parameters are rejected with ErrInvalidArgument.
func BlackScholesCall(p OptionParameters) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	if p.T == 0 {
		return p.Intrinsic(), nil
	}
	if p.Sigma == 0 {
		return math.Max(p.S0-p.K*p.discount(), 0), nil
	}

	sqrtT := math.Sqrt(p.T)
	d1 := (math.Log(p.S0/p.K) + (p.R+0.5*p.Sigma*p.Sigma)*p.T) / (p.Sigma * sqrtT)
	d2 := d1 - p.Sigma*sqrtT

	price := p.S0*normCDF(d1) - p.K*p.discount()*normCDF(d2)
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("%w: black-scholes price is %v", ErrNumericDegeneracy, price)
	}
	// Φ rounding can push deep out-of-the-money prices a hair below zero.
	return math.Max(price, 0), nil
}

// normCDF is the standard normal cumulative distribution function.
func normCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}
