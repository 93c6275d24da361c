package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/contactkeval/option-pricer/internal/bench"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

// Quote is the comparison of the analytic and simulated prices.
type Quote struct {
	Analytic   float64                    `json:"analytic"`
	Simulated  pricing.PriceEstimate      `json:"simulated"`
	Confidence float64                    `json:"confidence"`
	Interval   pricing.ConfidenceInterval `json:"interval"`
	NPaths     int64                      `json:"n_paths"`
	Seed       uint64                     `json:"seed"`
}

// NewQuote derives the confidence interval for est at the given level.
func NewQuote(analytic float64, est pricing.PriceEstimate, level float64) (Quote, error) {
	z, err := pricing.ZScore(level)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		Analytic:   analytic,
		Simulated:  est,
		Confidence: level,
		Interval:   est.Interval(z),
	}, nil
}

// exactBinaryExp makes NewFromFloatWithExponent keep every digit of the
// float's binary value, so rounding matches printf's %.6f.
const exactBinaryExp = -1074

func fixed6(x float64) string {
	return decimal.NewFromFloatWithExponent(x, exactBinaryExp).StringFixed(6)
}

// WriteQuote prints the two-line price comparison.
func WriteQuote(w io.Writer, q Quote) error {
	level := decimal.NewFromFloat(q.Confidence).Shift(2).String()
	_, err := fmt.Fprintf(w, "Black-Scholes price: %s\nMonte Carlo price:   %s (%s%% CI: [%s, %s])\n",
		fixed6(q.Analytic), fixed6(q.Simulated.Price), level, fixed6(q.Interval.Lower), fixed6(q.Interval.Upper))
	return err
}

// WriteTiming prints one line per timed path count.
func WriteTiming(w io.Writer, r bench.Result) error {
	ms := decimal.NewFromInt(r.Average.Nanoseconds()).Shift(-6).StringFixed(2)
	_, err := fmt.Fprintf(w, "n=%8s → %8s ms (avg over %d)\n", humanize.Comma(r.NPaths), ms, r.Repeats)
	return err
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}
