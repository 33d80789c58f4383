package stats

import "errors"

var (
	// ErrEstimation is returned when a regression cannot be fit
	// (degenerate inputs, fewer than two observations)
	ErrEstimation = errors.New("estimation failed")

	// ErrInsufficientData is returned when a test has too few valid
	// observations to run
	ErrInsufficientData = errors.New("insufficient data")
)
