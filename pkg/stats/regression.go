package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// OLSResult holds the coefficients of a simple linear regression
// dependent = Intercept + Slope*independent.
type OLSResult struct {
	Intercept float64
	Slope     float64
}

// FitOLS fits dependent = intercept + slope*independent by ordinary least
// squares. Degenerate inputs (mismatched lengths, fewer than two
// observations, constant regressor) cannot be fit and return ErrEstimation.
func FitOLS(dependent, independent []float64) (OLSResult, error) {
	if len(dependent) != len(independent) {
		return OLSResult{}, fmt.Errorf("%w: dependent has %d observations, independent has %d",
			ErrEstimation, len(dependent), len(independent))
	}
	if len(dependent) < 2 {
		return OLSResult{}, fmt.Errorf("%w: need at least 2 observations, got %d", ErrEstimation, len(dependent))
	}
	for _, v := range independent {
		if math.IsNaN(v) {
			return OLSResult{}, fmt.Errorf("%w: independent contains missing values", ErrEstimation)
		}
	}
	for _, v := range dependent {
		if math.IsNaN(v) {
			return OLSResult{}, fmt.Errorf("%w: dependent contains missing values", ErrEstimation)
		}
	}
	if stat.Variance(independent, nil) == 0 {
		return OLSResult{}, fmt.Errorf("%w: independent variable is constant", ErrEstimation)
	}

	intercept, slope := stat.LinearRegression(independent, dependent, nil, false)
	if math.IsNaN(intercept) || math.IsNaN(slope) {
		return OLSResult{}, fmt.Errorf("%w: regression produced non-finite coefficients", ErrEstimation)
	}
	return OLSResult{Intercept: intercept, Slope: slope}, nil
}
