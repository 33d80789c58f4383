package pairs

import (
	"github.com/yourusername/pairs-trade-lab/pkg/series"
	"github.com/yourusername/pairs-trade-lab/pkg/stats"
)

// BuildSpread computes spread[t] = x[t] - beta[t]*y[t], broadcasting a
// static beta across the whole index. A missing beta yields a missing
// spread point.
func BuildSpread(x, y *series.Series, beta Beta) (*series.Series, error) {
	if err := series.Aligned(x, y); err != nil {
		return nil, err
	}
	if beta.IsDynamic() {
		if err := series.Aligned(x, beta.Series()); err != nil {
			return nil, err
		}
	}

	values := make([]float64, x.Len())
	for t := range values {
		b := beta.At(t)
		if series.IsMissing(b) {
			values[t] = series.Missing()
			continue
		}
		values[t] = x.Values[t] - b*y.Values[t]
	}
	return x.Derive("spread", values)
}

// ZScore normalizes s by its rolling mean and sample standard deviation:
// z[t] = (s[t] - mean[t]) / std[t]. Warm-up points are missing, and a
// zero rolling std yields a missing (never infinite) z-score.
func ZScore(s *series.Series, window int) (*series.Series, error) {
	mean, err := series.RollingMean(s, window)
	if err != nil {
		return nil, err
	}
	std, err := series.RollingStd(s, window)
	if err != nil {
		return nil, err
	}

	values := make([]float64, s.Len())
	for t := range values {
		m := mean.Values[t]
		sd := std.Values[t]
		if series.IsMissing(s.Values[t]) || series.IsMissing(m) || series.IsMissing(sd) {
			values[t] = series.Missing()
			continue
		}
		values[t] = stats.ZScore(s.Values[t], m, sd)
	}
	return s.Derive("zscore", values)
}
