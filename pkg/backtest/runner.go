package backtest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/pairs-trade-lab/pkg/pairs"
	"github.com/yourusername/pairs-trade-lab/pkg/series"
	"github.com/yourusername/pairs-trade-lab/pkg/strategy"
)

// RunResult is the complete output of one analysis run.
type RunResult struct {
	Name      string
	Mode      string
	Window    int
	SymbolX   string
	SymbolY   string
	Analysis  *pairs.Result
	Positions *series.Series
	Stats     *RunStats
	StartTime time.Time
	Duration  time.Duration
}

// Runner wires the pipeline together: read prices, estimate the hedge
// ratio, build the spread signal, fold it into positions, and mark the
// result to market.
type Runner struct {
	config *Config
	logger *zap.Logger
}

// NewRunner creates a runner for a validated configuration.
func NewRunner(config *Config, logger *zap.Logger) *Runner {
	return &Runner{config: config, logger: logger}
}

// Run executes the full analysis once.
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	start := time.Now()
	cfg := r.config

	reader, err := NewPriceReader(cfg, r.logger)
	if err != nil {
		return nil, err
	}
	if closer, ok := reader.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	frame, err := reader.ReadFrame(ctx)
	if err != nil {
		return nil, fmt.Errorf("data load failed: %w", err)
	}

	symbolX := cfg.Analysis.Data.SymbolX
	symbolY := cfg.Analysis.Data.SymbolY
	window := cfg.Window()
	r.logger.Info("starting analysis",
		zap.String("name", cfg.Analysis.Name),
		zap.String("mode", cfg.Analysis.Mode),
		zap.String("pair", symbolX+"/"+symbolY),
		zap.Int("window", window),
		zap.Int("bars", frame.Len()))

	var analysis *pairs.Result
	switch cfg.Analysis.Mode {
	case "dynamic":
		analysis, err = pairs.AnalyzeDynamic(frame, symbolX, symbolY, window)
	default:
		analysis, err = pairs.AnalyzeStatic(frame, symbolX, symbolY, window)
	}
	if err != nil {
		return nil, fmt.Errorf("pair analysis failed: %w", err)
	}

	if analysis.Beta.IsDynamic() {
		r.logger.Info("estimated hedge ratio",
			zap.String("kind", "dynamic"),
			zap.Int("valid_points", analysis.Beta.Series().CountValid()))
	} else {
		r.logger.Info("estimated hedge ratio",
			zap.String("kind", "static"),
			zap.Float64("beta", analysis.Beta.Scalar()))
	}
	r.logger.Info("cointegration diagnostic",
		zap.Float64("adf_p_value", analysis.ADFPValue))

	strat, err := strategy.NewThresholdStrategy(cfg.ThresholdParams())
	if err != nil {
		return nil, err
	}

	var betaSeries *series.Series
	if analysis.Beta.IsDynamic() {
		betaSeries = analysis.Beta.Series()
	}
	positions, err := strat.Positions(analysis.ZScore, betaSeries, analysis.Spread)
	if err != nil {
		return nil, fmt.Errorf("position generation failed: %w", err)
	}

	stats, err := ComputeStats(positions, analysis.Spread, cfg.Strategy.InitialCapital)
	if err != nil {
		return nil, fmt.Errorf("statistics failed: %w", err)
	}

	duration := time.Since(start)
	r.logger.Info("analysis complete",
		zap.Int("trades", stats.Trades),
		zap.String("total_pnl", stats.TotalPnL.String()),
		zap.Float64("win_rate", stats.WinRate),
		zap.Duration("duration", duration))

	return &RunResult{
		Name:      cfg.Analysis.Name,
		Mode:      cfg.Analysis.Mode,
		Window:    window,
		SymbolX:   symbolX,
		SymbolY:   symbolY,
		Analysis:  analysis,
		Positions: positions,
		Stats:     stats,
		StartTime: start,
		Duration:  duration,
	}, nil
}
