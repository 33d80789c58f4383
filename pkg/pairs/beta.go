// Package pairs implements the spread/signal pipeline for pairs trading
// research: hedge-ratio estimation (static OLS or dynamic rolling
// covariance/variance), spread construction, rolling z-score
// normalization, and a cointegration diagnostic on the spread.
package pairs

import (
	"github.com/yourusername/pairs-trade-lab/pkg/series"
)

// Beta is a hedge ratio: a single OLS coefficient in the static regime or
// a per-timestamp rolling estimate in the dynamic regime. A dynamic beta
// at time t is computed only from data up to and including t (no
// look-ahead); its warm-up points are missing.
type Beta struct {
	scalar  float64
	series  *series.Series
	dynamic bool
}

// StaticBeta wraps a single scalar hedge ratio.
func StaticBeta(v float64) Beta {
	return Beta{scalar: v}
}

// DynamicBeta wraps a time-varying hedge ratio series.
func DynamicBeta(s *series.Series) Beta {
	return Beta{series: s, dynamic: true}
}

// IsDynamic reports whether the hedge ratio varies over time.
func (b Beta) IsDynamic() bool {
	return b.dynamic
}

// Scalar returns the static hedge ratio. Only meaningful when !IsDynamic().
func (b Beta) Scalar() float64 {
	return b.scalar
}

// Series returns the dynamic hedge ratio series, nil in the static regime.
func (b Beta) Series() *series.Series {
	return b.series
}

// At returns the hedge ratio at position i, broadcasting the scalar in
// the static regime.
func (b Beta) At(i int) float64 {
	if b.dynamic {
		return b.series.Values[i]
	}
	return b.scalar
}
