package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ADFResult holds the outcome of an augmented Dickey-Fuller test.
type ADFResult struct {
	Statistic float64 // t statistic of the level coefficient
	PValue    float64 // MacKinnon approximate asymptotic p-value
	Lags      int     // number of lagged differences included
	NObs      int     // effective observations used in the regression
}

// minADFObservations is the smallest series the test accepts. Below this
// the auxiliary regression has too few degrees of freedom to say anything.
const minADFObservations = 10

// ADFTest runs an augmented Dickey-Fuller unit-root test with a constant
// term on values. maxLag bounds the lagged-difference terms considered;
// pass a negative maxLag to use the Schwert rule of thumb. The lag order
// is selected by AIC over a common sample, then the statistic is computed
// from a refit on the full available sample.
//
// A small p-value is evidence against a unit root, i.e. evidence that the
// series is stationary / mean-reverting.
func ADFTest(values []float64, maxLag int) (ADFResult, error) {
	n := len(values)
	if n < minADFObservations {
		return ADFResult{}, fmt.Errorf("%w: ADF test needs at least %d observations, got %d",
			ErrInsufficientData, minADFObservations, n)
	}
	for _, v := range values {
		if math.IsNaN(v) {
			return ADFResult{}, fmt.Errorf("%w: series contains missing values", ErrEstimation)
		}
	}

	if maxLag < 0 {
		// Schwert (1989) rule of thumb.
		maxLag = int(math.Ceil(12.0 * math.Pow(float64(n)/100.0, 0.25)))
	}
	if limit := n/2 - 3; maxLag > limit {
		maxLag = limit
	}
	if maxLag < 0 {
		maxLag = 0
	}

	diff := make([]float64, n-1)
	for i := 1; i < n; i++ {
		diff[i-1] = values[i] - values[i-1]
	}

	// Select the lag order by AIC over a sample held fixed at the largest
	// candidate offset so the candidates are comparable.
	bestLag := 0
	bestAIC := math.Inf(1)
	for lag := 0; lag <= maxLag; lag++ {
		fit, err := adfRegression(values, diff, lag, maxLag)
		if err != nil {
			continue
		}
		aic := float64(fit.nobs)*math.Log(fit.rss/float64(fit.nobs)) + 2*float64(fit.k)
		if aic < bestAIC {
			bestAIC = aic
			bestLag = lag
		}
	}

	fit, err := adfRegression(values, diff, bestLag, bestLag)
	if err != nil {
		return ADFResult{}, err
	}
	if fit.se == 0 || math.IsNaN(fit.se) {
		return ADFResult{}, fmt.Errorf("%w: ADF regression has a degenerate residual", ErrEstimation)
	}

	tau := fit.gamma / fit.se
	return ADFResult{
		Statistic: tau,
		PValue:    mackinnonPValue(tau),
		Lags:      bestLag,
		NObs:      fit.nobs,
	}, nil
}

// adfFit carries the pieces of one auxiliary regression
// diff[t] = alpha + gamma*values[t] + sum_i delta_i*diff[t-i] + e.
type adfFit struct {
	gamma float64 // level coefficient
	se    float64 // standard error of gamma
	rss   float64
	nobs  int
	k     int // number of regressors
}

// adfRegression fits the ADF auxiliary regression with the given lag
// order, using observations from position offset onward (offset >= lag).
func adfRegression(values, diff []float64, lag, offset int) (adfFit, error) {
	rows := len(diff) - offset
	cols := lag + 2
	if rows < cols+2 {
		return adfFit{}, fmt.Errorf("%w: %d observations for %d regressors", ErrInsufficientData, rows, cols)
	}

	x := mat.NewDense(rows, cols, nil)
	y := mat.NewVecDense(rows, nil)
	for r := 0; r < rows; r++ {
		t := offset + r
		x.Set(r, 0, 1)
		x.Set(r, 1, values[t])
		for i := 1; i <= lag; i++ {
			x.Set(r, 1+i, diff[t-i])
		}
		y.SetVec(r, diff[t])
	}

	var qr mat.QR
	qr.Factorize(x)
	coef := mat.NewVecDense(cols, nil)
	if err := qr.SolveVecTo(coef, false, y); err != nil {
		return adfFit{}, fmt.Errorf("%w: singular ADF design matrix", ErrEstimation)
	}

	var fitted mat.VecDense
	fitted.MulVec(x, coef)
	rss := 0.0
	for r := 0; r < rows; r++ {
		e := y.AtVec(r) - fitted.AtVec(r)
		rss += e * e
	}
	sigma2 := rss / float64(rows-cols)

	var xtx, inv mat.Dense
	xtx.Mul(x.T(), x)
	if err := inv.Inverse(&xtx); err != nil {
		return adfFit{}, fmt.Errorf("%w: singular ADF design matrix", ErrEstimation)
	}

	return adfFit{
		gamma: coef.AtVec(1),
		se:    math.Sqrt(sigma2 * inv.At(1, 1)),
		rss:   rss,
		nobs:  rows,
		k:     cols,
	}, nil
}

// MacKinnon (1994) approximate asymptotic p-values for the ADF t
// statistic, constant-only regression, one variable.
var (
	mackinnonTauStar = -1.61
	mackinnonTauMin  = -18.83
	mackinnonTauMax  = 2.74
	mackinnonSmallP  = []float64{2.1659, 1.4412, 0.038269}
	mackinnonLargeP  = []float64{1.7339, 0.93202, -0.12745, -0.010368}
)

func mackinnonPValue(tau float64) float64 {
	switch {
	case tau > mackinnonTauMax:
		return 1.0
	case tau < mackinnonTauMin:
		return 0.0
	}
	coeffs := mackinnonLargeP
	if tau <= mackinnonTauStar {
		coeffs = mackinnonSmallP
	}
	z := 0.0
	pow := 1.0
	for _, c := range coeffs {
		z += c * pow
		pow *= tau
	}
	return distuv.UnitNormal.CDF(z)
}
