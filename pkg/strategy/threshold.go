// Package strategy converts a continuous z-score signal into a discrete,
// path-dependent position series: long spread, short spread, or flat,
// with hysteresis between entry and exit thresholds and a stop-loss
// override.
package strategy

import (
	"errors"
	"fmt"
	"math"

	"github.com/yourusername/pairs-trade-lab/pkg/series"
)

// ErrInvalidThresholds is returned when the threshold ordering invariant
// exit < entry < stop-loss is violated
var ErrInvalidThresholds = errors.New("invalid threshold configuration")

// Position is the discrete state of the pair trade.
type Position int

const (
	// ShortSpread sells x against beta units of y
	ShortSpread Position = -1
	// Flat holds no position
	Flat Position = 0
	// LongSpread buys x against beta units of y
	LongSpread Position = 1
)

// String returns the position name.
func (p Position) String() string {
	switch p {
	case ShortSpread:
		return "short_spread"
	case LongSpread:
		return "long_spread"
	default:
		return "flat"
	}
}

// ThresholdParams configures the entry/exit/stop-loss bands of the state
// machine, all expressed in z-score units.
type ThresholdParams struct {
	// EntryThreshold opens a trade when |z| exceeds it:
	// z > EntryThreshold enters short spread, z < -EntryThreshold long.
	EntryThreshold float64

	// ExitThreshold closes a trade when |z| falls back below it
	// (mean reversion).
	ExitThreshold float64

	// StopLoss closes a trade when |z| exceeds it (the spread has
	// diverged too far to keep holding).
	StopLoss float64
}

// DefaultThresholdParams returns the standard bands.
func DefaultThresholdParams() ThresholdParams {
	return ThresholdParams{
		EntryThreshold: 2.0,
		ExitThreshold:  0.5,
		StopLoss:       4.0,
	}
}

// Validate enforces 0 < exit < entry < stop-loss. Any other ordering is
// economically nonsensical (exits that can never fire, stops inside the
// entry band) and is rejected before any series is processed.
func (p ThresholdParams) Validate() error {
	if p.ExitThreshold <= 0 || p.ExitThreshold >= p.EntryThreshold || p.EntryThreshold >= p.StopLoss {
		return fmt.Errorf("%w: require 0 < exit(%g) < entry(%g) < stop-loss(%g)",
			ErrInvalidThresholds, p.ExitThreshold, p.EntryThreshold, p.StopLoss)
	}
	return nil
}

// ThresholdStrategy is the position state machine. It is stateless
// between calls: all path dependence lives in the fold over one z-score
// series.
type ThresholdStrategy struct {
	params ThresholdParams
}

// NewThresholdStrategy validates the parameters and builds the strategy.
func NewThresholdStrategy(params ThresholdParams) (*ThresholdStrategy, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &ThresholdStrategy{params: params}, nil
}

// Params returns the configured thresholds.
func (s *ThresholdStrategy) Params() ThresholdParams {
	return s.params
}

// Positions folds the z-score series into a position series with the
// same index, values in {-1, 0, +1}.
//
// The position at the first index is fixed at flat. At every later step
// the previous position carries forward unless a rule fires:
//   - flat: enter short on z > entry, long on z < -entry;
//   - in a trade: exit on |z| < exit (mean reversion), checked before
//     the stop-loss exit on |z| > stop.
//
// A missing z is "no signal": the previous position carries forward and
// no rule is evaluated. The guard is explicit rather than relying on NaN
// comparisons happening to evaluate false.
//
// betas and spreads are accepted for forward compatibility (future rule
// sets may gate on spread magnitude or beta stability); the current rule
// set reads z-scores only. Either may be nil; when non-nil they must
// share the z-score index.
func (s *ThresholdStrategy) Positions(zscores, betas, spreads *series.Series) (*series.Series, error) {
	if zscores == nil {
		return nil, fmt.Errorf("%w: nil z-score series", series.ErrMisaligned)
	}
	if betas != nil {
		if err := series.Aligned(zscores, betas); err != nil {
			return nil, err
		}
	}
	if spreads != nil {
		if err := series.Aligned(zscores, spreads); err != nil {
			return nil, err
		}
	}

	values := make([]float64, zscores.Len())
	prev := Flat
	for t := 1; t < zscores.Len(); t++ {
		pos := prev // carry forward by default
		z := zscores.Values[t]

		switch {
		case series.IsMissing(z):
			// No signal: keep the carried position, evaluate nothing.
		case prev == Flat:
			if z > s.params.EntryThreshold {
				pos = ShortSpread
			} else if z < -s.params.EntryThreshold {
				pos = LongSpread
			}
		default:
			if math.Abs(z) < s.params.ExitThreshold {
				pos = Flat // mean-reversion exit wins over the stop
			} else if math.Abs(z) > s.params.StopLoss {
				pos = Flat // stop-loss exit
			}
		}

		values[t] = float64(pos)
		prev = pos
	}
	return zscores.Derive("position", values)
}
