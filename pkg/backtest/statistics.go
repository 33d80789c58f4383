package backtest

import (
	"github.com/shopspring/decimal"

	"github.com/yourusername/pairs-trade-lab/pkg/series"
	"github.com/yourusername/pairs-trade-lab/pkg/strategy"
)

// RunStats summarizes the mark-to-market outcome of one position series
// held against its spread.
type RunStats struct {
	TotalPnL     decimal.Decimal `json:"total_pnl"`
	FinalEquity  decimal.Decimal `json:"final_equity"`
	MaxDrawdown  decimal.Decimal `json:"max_drawdown"`
	Trades       int             `json:"trades"`
	WinTrades    int             `json:"win_trades"`
	LossTrades   int             `json:"loss_trades"`
	WinRate      float64         `json:"win_rate"`
	BarsInMarket int             `json:"bars_in_market"`
	Bars         int             `json:"bars"`
}

// ComputeStats marks the position series to market over the spread:
//
//	pnl[t] = position[t-1] * (spread[t] - spread[t-1])
//
// The position taken at t starts earning from t+1, so no bar's signal
// pays itself. Steps where either spread point is missing contribute
// nothing. Accumulation uses decimal arithmetic so the equity curve and
// per-trade sums are exact over long runs.
func ComputeStats(positions, spread *series.Series, initialCapital float64) (*RunStats, error) {
	if err := series.Aligned(positions, spread); err != nil {
		return nil, err
	}

	capital := decimal.NewFromFloat(initialCapital)
	stats := &RunStats{Bars: positions.Len()}

	var (
		equity   = capital
		peak     = capital
		total    decimal.Decimal
		tradePnL decimal.Decimal
		inTrade  bool
		prevPos  = strategy.Flat
	)
	closeTrade := func() {
		stats.Trades++
		switch tradePnL.Sign() {
		case 1:
			stats.WinTrades++
		case -1:
			stats.LossTrades++
		}
		tradePnL = decimal.Zero
		inTrade = false
	}

	for t := 0; t < positions.Len(); t++ {
		pos := strategy.Position(positions.Values[t])

		if t > 0 && prevPos != strategy.Flat {
			s0, s1 := spread.Values[t-1], spread.Values[t]
			if !series.IsMissing(s0) && !series.IsMissing(s1) {
				step := decimal.NewFromFloat(s1).
					Sub(decimal.NewFromFloat(s0)).
					Mul(decimal.NewFromInt(int64(prevPos)))
				total = total.Add(step)
				tradePnL = tradePnL.Add(step)
				equity = capital.Add(total)
				if equity.GreaterThan(peak) {
					peak = equity
				}
				if dd := peak.Sub(equity); dd.GreaterThan(stats.MaxDrawdown) {
					stats.MaxDrawdown = dd
				}
			}
		}

		if pos != strategy.Flat {
			stats.BarsInMarket++
		}
		switch {
		case !inTrade && pos != strategy.Flat:
			inTrade = true
		case inTrade && pos == strategy.Flat:
			closeTrade()
		case inTrade && pos != prevPos:
			// Direct reversal closes one trade and opens the next.
			closeTrade()
			inTrade = true
		}
		prevPos = pos
	}
	if inTrade {
		closeTrade()
	}

	stats.TotalPnL = total
	stats.FinalEquity = capital.Add(total)
	if stats.Trades > 0 {
		stats.WinRate = float64(stats.WinTrades) / float64(stats.Trades)
	}
	return stats, nil
}
