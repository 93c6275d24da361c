package pricing

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// PriceEstimate is a point estimate and its standard error.
// Analytic prices carry a zero standard error.
type PriceEstimate struct {
	Price         float64 `json:"price"`
	StandardError float64 `json:"standard_error"`
}

// ConfidenceInterval is [Price - z*se, Price + z*se].
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Interval derives the confidence interval for the given z multiplier (1.96 for ~95%).
func (e PriceEstimate) Interval(z float64) ConfidenceInterval {
	half := z * e.StandardError
	return ConfidenceInterval{Lower: e.Price - half, Upper: e.Price + half}
}

// Contains reports whether x lies inside the closed interval.
func (ci ConfidenceInterval) Contains(x float64) bool {
	return x >= ci.Lower && x <= ci.Upper
}

// Z95 is the conventional 95% multiplier used for the printed interval.
const Z95 = 1.96

// ZScore returns the two-sided standard normal multiplier for a confidence level.
// The 95% level uses the conventional Z95; other levels use the exact quantile,
// e.g. ZScore(0.99) ≈ 2.575829.
func ZScore(level float64) (float64, error) {
	if !(level > 0 && level < 1) {
		return 0, fmt.Errorf("%w: confidence level must be in (0,1), got %v", ErrInvalidArgument, level)
	}
	if level == 0.95 {
		return Z95, nil
	}
	return distuv.UnitNormal.Quantile(0.5 + level/2), nil
}
