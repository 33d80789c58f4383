package series

import (
	"fmt"
	"math"
)

// Rolling statistics over a fixed trailing window. The first window-1
// points have no full window of history and yield the missing value: this
// is a warm-up period, not a data error. A window containing any missing
// point also yields missing. Variance, standard deviation and covariance
// are sample statistics (n-1 denominator), matching the conventions of
// common dataframe libraries.

func checkWindow(window, min int) error {
	if window < min {
		return fmt.Errorf("%w: window %d, need at least %d", ErrInvalidWindow, window, min)
	}
	return nil
}

// RollingMean returns the trailing mean of s over the given window.
func RollingMean(s *Series, window int) (*Series, error) {
	if err := checkWindow(window, 1); err != nil {
		return nil, err
	}
	out := warmup(s.Len())
	for t := window - 1; t < s.Len(); t++ {
		mean, _, ok := windowMoments(s.Values[t-window+1 : t+1])
		if ok {
			out[t] = mean
		}
	}
	return s.Derive(s.Name+"_mean", out)
}

// RollingVar returns the trailing sample variance of s over the window.
func RollingVar(s *Series, window int) (*Series, error) {
	if err := checkWindow(window, 2); err != nil {
		return nil, err
	}
	out := warmup(s.Len())
	for t := window - 1; t < s.Len(); t++ {
		_, variance, ok := windowMoments(s.Values[t-window+1 : t+1])
		if ok {
			out[t] = variance
		}
	}
	return s.Derive(s.Name+"_var", out)
}

// RollingStd returns the trailing sample standard deviation of s.
func RollingStd(s *Series, window int) (*Series, error) {
	variance, err := RollingVar(s, window)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(variance.Values))
	for i, v := range variance.Values {
		if IsMissing(v) {
			out[i] = Missing()
			continue
		}
		out[i] = math.Sqrt(v)
	}
	return s.Derive(s.Name+"_std", out)
}

// RollingCov returns the trailing sample covariance of two aligned series.
func RollingCov(x, y *Series, window int) (*Series, error) {
	if err := Aligned(x, y); err != nil {
		return nil, err
	}
	if err := checkWindow(window, 2); err != nil {
		return nil, err
	}
	out := warmup(x.Len())
	for t := window - 1; t < x.Len(); t++ {
		cov, ok := windowCov(x.Values[t-window+1:t+1], y.Values[t-window+1:t+1])
		if ok {
			out[t] = cov
		}
	}
	return x.Derive(x.Name+"_cov_"+y.Name, out)
}

// warmup allocates an output slice initialized to missing; callers fill in
// the positions where a full window of history exists.
func warmup(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = Missing()
	}
	return out
}

// windowMoments computes mean and sample variance of one window.
// ok is false when the window contains a missing point.
func windowMoments(window []float64) (mean, variance float64, ok bool) {
	var sum float64
	for _, v := range window {
		if IsMissing(v) {
			return 0, 0, false
		}
		sum += v
	}
	n := float64(len(window))
	mean = sum / n
	var ss float64
	for _, v := range window {
		d := v - mean
		ss += d * d
	}
	return mean, ss / (n - 1), true
}

// windowCov computes the sample covariance of one window pair.
func windowCov(xs, ys []float64) (float64, bool) {
	var sumX, sumY float64
	for i := range xs {
		if IsMissing(xs[i]) || IsMissing(ys[i]) {
			return 0, false
		}
		sumX += xs[i]
		sumY += ys[i]
	}
	n := float64(len(xs))
	meanX := sumX / n
	meanY := sumY / n
	var ss float64
	for i := range xs {
		ss += (xs[i] - meanX) * (ys[i] - meanY)
	}
	return ss / (n - 1), true
}
