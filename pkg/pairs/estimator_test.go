package pairs

import (
	"errors"
	"math"
	"testing"

	"github.com/yourusername/pairs-trade-lab/pkg/series"
	"github.com/yourusername/pairs-trade-lab/pkg/stats"
)

func almostEqual(a, b, tolerance float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Abs(a-b) < tolerance
}

func TestEstimateStaticBeta(t *testing.T) {
	// x = 10 + 2*y exactly; the intercept is absorbed, beta is exact.
	y := series.FromValues("y", []float64{1, 2, 3, 4, 5, 6})
	x := series.FromValues("x", []float64{12, 14, 16, 18, 20, 22})

	beta, err := EstimateStaticBeta(x, y)
	if err != nil {
		t.Fatalf("EstimateStaticBeta() error = %v", err)
	}
	if !almostEqual(beta, 2.0, 1e-9) {
		t.Errorf("EstimateStaticBeta() = %v, want 2", beta)
	}
}

func TestEstimateStaticBetaDegenerate(t *testing.T) {
	x := series.FromValues("x", []float64{1, 2, 3})

	constant := series.FromValues("y", []float64{5, 5, 5})
	_, err := EstimateStaticBeta(x, constant)
	if !errors.Is(err, stats.ErrEstimation) {
		t.Errorf("EstimateStaticBeta() constant y error = %v, want ErrEstimation", err)
	}

	short := series.FromValues("y", []float64{1, 2})
	_, err = EstimateStaticBeta(x, short)
	if !errors.Is(err, series.ErrMisaligned) {
		t.Errorf("EstimateStaticBeta() misaligned error = %v, want ErrMisaligned", err)
	}
}

func TestEstimateDynamicBeta(t *testing.T) {
	// x = 2*y with a varying y: every full window recovers beta = 2.
	y := series.FromValues("y", []float64{1, 3, 2, 5, 4, 6})
	x := series.FromValues("x", []float64{2, 6, 4, 10, 8, 12})

	window := 3
	beta, err := EstimateDynamicBeta(x, y, window)
	if err != nil {
		t.Fatalf("EstimateDynamicBeta() error = %v", err)
	}

	for i := 0; i < window-1; i++ {
		if !series.IsMissing(beta.Values[i]) {
			t.Errorf("warm-up beta[%d] = %v, want missing", i, beta.Values[i])
		}
	}
	for i := window - 1; i < beta.Len(); i++ {
		if !almostEqual(beta.Values[i], 2.0, 1e-9) {
			t.Errorf("beta[%d] = %v, want 2", i, beta.Values[i])
		}
	}
}

func TestEstimateDynamicBetaZeroVariance(t *testing.T) {
	// A constant y window has zero variance; beta is undefined there,
	// not infinite and not an error.
	y := series.FromValues("y", []float64{5, 5, 5, 5, 6})
	x := series.FromValues("x", []float64{1, 2, 3, 4, 5})

	beta, err := EstimateDynamicBeta(x, y, 3)
	if err != nil {
		t.Fatalf("EstimateDynamicBeta() error = %v", err)
	}
	if !series.IsMissing(beta.Values[2]) {
		t.Errorf("beta over constant window = %v, want missing", beta.Values[2])
	}
	if !series.IsMissing(beta.Values[3]) {
		t.Errorf("beta over constant window = %v, want missing", beta.Values[3])
	}
	if series.IsMissing(beta.Values[4]) {
		t.Errorf("beta[4] = missing, want defined once y varies")
	}
}

func TestEstimateDynamicBetaInvalidWindow(t *testing.T) {
	x := series.FromValues("x", []float64{1, 2, 3})
	y := series.FromValues("y", []float64{2, 4, 6})
	if _, err := EstimateDynamicBeta(x, y, 1); !errors.Is(err, series.ErrInvalidWindow) {
		t.Errorf("EstimateDynamicBeta(window=1) error = %v, want ErrInvalidWindow", err)
	}
}
