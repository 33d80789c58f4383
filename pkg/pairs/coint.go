package pairs

import (
	"fmt"
	"math"

	"github.com/yourusername/pairs-trade-lab/pkg/series"
	"github.com/yourusername/pairs-trade-lab/pkg/stats"
)

// CointegrationPValue runs the stationarity diagnostic on a spread
// series and returns its p-value. Missing points (dynamic-beta warm-up,
// zero-variance windows) are dropped before testing; if too few valid
// points remain the primitive's ErrInsufficientData is propagated, not
// recovered locally.
//
// A small p-value is evidence that the spread mean-reverts, i.e. that
// the pair is cointegrated.
func CointegrationPValue(spread *series.Series) (float64, error) {
	clean := spread.DropMissing()
	res, err := stats.ADFTest(clean.Values, -1)
	if err != nil {
		return math.NaN(), fmt.Errorf("cointegration check on %s: %w", spread.Name, err)
	}
	return res.PValue, nil
}
