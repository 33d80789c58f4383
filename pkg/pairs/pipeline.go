package pairs

import (
	"fmt"

	"github.com/yourusername/pairs-trade-lab/pkg/series"
)

// DefaultWindow is the rolling window shared by dynamic beta estimation
// and z-score normalization when the caller does not choose one.
const DefaultWindow = 60

// Result bundles one pipeline run: the hedge ratio, the spread, its
// rolling z-score, and the cointegration diagnostic. Immutable once
// produced.
type Result struct {
	Beta      Beta
	Spread    *series.Series
	ZScore    *series.Series
	ADFPValue float64
}

// AnalyzeStatic runs the full static pipeline for the pair
// (assetX, assetY): whole-sample OLS beta, spread, rolling z-score, and
// the ADF diagnostic on the spread. Pure function of its inputs.
func AnalyzeStatic(frame *series.Frame, assetX, assetY string, window int) (*Result, error) {
	x, y, window, err := pipelineInputs(frame, assetX, assetY, window)
	if err != nil {
		return nil, err
	}

	beta, err := EstimateStaticBeta(x, y)
	if err != nil {
		return nil, err
	}
	return assemble(x, y, StaticBeta(beta), window)
}

// AnalyzeDynamic runs the full dynamic pipeline for the pair
// (assetX, assetY): rolling-window beta, spread, rolling z-score, and
// the ADF diagnostic on the spread (warm-up points are dropped inside
// the diagnostic). Pure function of its inputs.
func AnalyzeDynamic(frame *series.Frame, assetX, assetY string, window int) (*Result, error) {
	x, y, window, err := pipelineInputs(frame, assetX, assetY, window)
	if err != nil {
		return nil, err
	}

	beta, err := EstimateDynamicBeta(x, y, window)
	if err != nil {
		return nil, err
	}
	return assemble(x, y, DynamicBeta(beta), window)
}

// pipelineInputs pulls the pair columns out of the frame and resolves
// the rolling window (0 means DefaultWindow).
func pipelineInputs(frame *series.Frame, assetX, assetY string, window int) (x, y *series.Series, w int, err error) {
	if window == 0 {
		window = DefaultWindow
	}
	if window < 2 {
		return nil, nil, 0, fmt.Errorf("%w: window %d, need at least 2", series.ErrInvalidWindow, window)
	}
	x, err = frame.Series(assetX)
	if err != nil {
		return nil, nil, 0, err
	}
	y, err = frame.Series(assetY)
	if err != nil {
		return nil, nil, 0, err
	}
	return x, y, window, nil
}

// assemble builds the spread, z-score and diagnostic shared by both
// pipelines.
func assemble(x, y *series.Series, beta Beta, window int) (*Result, error) {
	spread, err := BuildSpread(x, y, beta)
	if err != nil {
		return nil, err
	}
	zscore, err := ZScore(spread, window)
	if err != nil {
		return nil, err
	}
	pValue, err := CointegrationPValue(spread)
	if err != nil {
		return nil, err
	}

	return &Result{
		Beta:      beta,
		Spread:    spread,
		ZScore:    zscore,
		ADFPValue: pValue,
	}, nil
}
