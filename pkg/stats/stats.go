// Package stats provides the numerical primitives behind pair analysis:
// descriptive moments, ordinary least squares, and an augmented
// Dickey-Fuller stationarity test.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean of data, 0 for an empty slice.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// Variance returns the sample variance of data, 0 when fewer than two points.
func Variance(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.Variance(data, nil)
}

// StdDev returns the sample standard deviation of data.
func StdDev(data []float64) float64 {
	return math.Sqrt(Variance(data))
}

// Covariance returns the sample covariance of two equal-length slices.
func Covariance(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}
	return stat.Covariance(x, y, nil)
}

// Correlation returns the Pearson correlation coefficient of x and y,
// 0 when undefined (mismatched lengths or zero variance).
func Correlation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0
	}
	return r
}

// ZScore normalizes value against a mean and standard deviation.
// A zero std yields NaN: the z-score is undefined, never infinite.
func ZScore(value, mean, std float64) float64 {
	if std == 0 {
		return math.NaN()
	}
	return (value - mean) / std
}
