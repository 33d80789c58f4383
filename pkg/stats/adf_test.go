package stats

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestADFTestStationary(t *testing.T) {
	// White noise is stationary by construction; the test should reject
	// the unit root decisively on a sample of this size.
	rng := rand.New(rand.NewSource(42))
	values := make([]float64, 200)
	for i := range values {
		values[i] = rng.NormFloat64()
	}

	res, err := ADFTest(values, -1)
	if err != nil {
		t.Fatalf("ADFTest() error = %v", err)
	}
	if res.PValue >= 0.01 {
		t.Errorf("ADFTest() on white noise p = %v, want < 0.01", res.PValue)
	}
	if res.Statistic >= 0 {
		t.Errorf("ADFTest() on white noise statistic = %v, want negative", res.Statistic)
	}
	if res.NObs <= 0 || res.NObs >= 200 {
		t.Errorf("ADFTest() NObs = %d, want in (0, 200)", res.NObs)
	}
}

func TestADFTestRandomWalkVsStationary(t *testing.T) {
	// A random walk carries a unit root; its p-value must exceed the
	// p-value of the stationary increments it was built from.
	rng := rand.New(rand.NewSource(7))
	noise := make([]float64, 300)
	walk := make([]float64, 300)
	sum := 0.0
	for i := range noise {
		noise[i] = rng.NormFloat64()
		sum += noise[i]
		walk[i] = sum
	}

	stationary, err := ADFTest(noise, -1)
	if err != nil {
		t.Fatalf("ADFTest(noise) error = %v", err)
	}
	unitRoot, err := ADFTest(walk, -1)
	if err != nil {
		t.Fatalf("ADFTest(walk) error = %v", err)
	}

	if unitRoot.PValue <= stationary.PValue {
		t.Errorf("random walk p = %v should exceed stationary p = %v",
			unitRoot.PValue, stationary.PValue)
	}
	for _, p := range []float64{stationary.PValue, unitRoot.PValue} {
		if p < 0 || p > 1 {
			t.Errorf("p-value %v outside [0, 1]", p)
		}
	}
}

func TestADFTestInsufficientData(t *testing.T) {
	values := []float64{1, 2, 1, 2, 1}
	_, err := ADFTest(values, -1)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("ADFTest() error = %v, want ErrInsufficientData", err)
	}
}

func TestADFTestMissingValues(t *testing.T) {
	values := make([]float64, 50)
	for i := range values {
		values[i] = float64(i % 5)
	}
	values[20] = math.NaN()

	_, err := ADFTest(values, -1)
	if !errors.Is(err, ErrEstimation) {
		t.Errorf("ADFTest() error = %v, want ErrEstimation", err)
	}
}

func TestMacKinnonPValueBounds(t *testing.T) {
	if got := mackinnonPValue(3.0); got != 1.0 {
		t.Errorf("mackinnonPValue(3.0) = %v, want 1", got)
	}
	if got := mackinnonPValue(-20.0); got != 0.0 {
		t.Errorf("mackinnonPValue(-20.0) = %v, want 0", got)
	}
	// More negative tau means stronger rejection.
	if mackinnonPValue(-4.0) >= mackinnonPValue(-2.0) {
		t.Errorf("mackinnonPValue not decreasing in |tau|: p(-4) = %v, p(-2) = %v",
			mackinnonPValue(-4.0), mackinnonPValue(-2.0))
	}
}
