package pairs

import (
	"fmt"
	"math"

	"github.com/yourusername/pairs-trade-lab/pkg/series"
	"github.com/yourusername/pairs-trade-lab/pkg/stats"
)

// EstimateStaticBeta fits x = alpha + beta*y by OLS over the full sample
// and returns beta. The intercept is estimated but discarded: only the
// hedge ratio matters for spread construction.
func EstimateStaticBeta(x, y *series.Series) (float64, error) {
	if err := series.Aligned(x, y); err != nil {
		return math.NaN(), err
	}
	res, err := stats.FitOLS(x.Values, y.Values)
	if err != nil {
		return math.NaN(), fmt.Errorf("estimate static beta for %s/%s: %w", x.Name, y.Name, err)
	}
	return res.Slope, nil
}

// EstimateDynamicBeta computes a rolling hedge ratio
// beta[t] = Cov(x,y,window)[t] / Var(y,window)[t]. Points before the
// window fills are missing (warm-up, not an error), and a zero rolling
// variance yields a missing beta rather than a division error.
func EstimateDynamicBeta(x, y *series.Series, window int) (*series.Series, error) {
	if err := series.Aligned(x, y); err != nil {
		return nil, err
	}
	cov, err := series.RollingCov(x, y, window)
	if err != nil {
		return nil, err
	}
	variance, err := series.RollingVar(y, window)
	if err != nil {
		return nil, err
	}

	values := make([]float64, x.Len())
	for t := range values {
		c := cov.Values[t]
		v := variance.Values[t]
		if series.IsMissing(c) || series.IsMissing(v) || v == 0 {
			values[t] = series.Missing()
			continue
		}
		values[t] = c / v
	}
	return x.Derive("beta", values)
}
