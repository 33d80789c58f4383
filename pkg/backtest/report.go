package backtest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/pairs-trade-lab/pkg/series"
)

// ReportGenerator writes run results to the configured result directory
// in markdown, JSON and CSV formats.
type ReportGenerator struct {
	config *Config
	result *RunResult
	logger *zap.Logger
}

// NewReportGenerator creates a report generator.
func NewReportGenerator(config *Config, result *RunResult, logger *zap.Logger) *ReportGenerator {
	return &ReportGenerator{config: config, result: result, logger: logger}
}

// GenerateMarkdown writes the human-readable run report.
func (g *ReportGenerator) GenerateMarkdown() error {
	outputDir := g.config.Output.ResultDir
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := g.result.StartTime.Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("pair_report_%s.md", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	g.writeMarkdownReport(file)
	g.logger.Info("markdown report saved", zap.String("path", filename))
	return nil
}

func (g *ReportGenerator) writeMarkdownReport(file *os.File) {
	r := g.result
	stats := r.Stats

	fmt.Fprintf(file, "# Pair Analysis Report\n\n")
	fmt.Fprintf(file, "**Run**: %s\n", r.Name)
	fmt.Fprintf(file, "**Pair**: %s / %s\n", r.SymbolX, r.SymbolY)
	fmt.Fprintf(file, "**Mode**: %s (window %d)\n", r.Mode, r.Window)
	fmt.Fprintf(file, "**Bars**: %d\n\n", stats.Bars)
	fmt.Fprintf(file, "---\n\n")

	fmt.Fprintf(file, "## Signal Diagnostics\n\n")
	fmt.Fprintf(file, "| Metric | Value |\n")
	fmt.Fprintf(file, "|--------|-------|\n")
	if r.Analysis.Beta.IsDynamic() {
		fmt.Fprintf(file, "| **Hedge ratio** | dynamic, %d valid points |\n",
			r.Analysis.Beta.Series().CountValid())
	} else {
		fmt.Fprintf(file, "| **Hedge ratio** | %.6f (static) |\n", r.Analysis.Beta.Scalar())
	}
	fmt.Fprintf(file, "| **ADF p-value** | %.4f %s |\n", r.Analysis.ADFPValue, evaluateADF(r.Analysis.ADFPValue))
	fmt.Fprintf(file, "| **Valid z-scores** | %d / %d |\n\n", r.Analysis.ZScore.CountValid(), stats.Bars)

	fmt.Fprintf(file, "## Performance Summary\n\n")
	fmt.Fprintf(file, "| Metric | Value |\n")
	fmt.Fprintf(file, "|--------|-------|\n")
	fmt.Fprintf(file, "| **Total PnL** | %s |\n", stats.TotalPnL.StringFixed(4))
	fmt.Fprintf(file, "| **Final equity** | %s |\n", stats.FinalEquity.StringFixed(4))
	fmt.Fprintf(file, "| **Max drawdown** | %s |\n", stats.MaxDrawdown.StringFixed(4))
	fmt.Fprintf(file, "| **Trades** | %d |\n", stats.Trades)
	fmt.Fprintf(file, "| **Win trades** | %d |\n", stats.WinTrades)
	fmt.Fprintf(file, "| **Loss trades** | %d |\n", stats.LossTrades)
	fmt.Fprintf(file, "| **Win rate** | %.2f%% |\n", stats.WinRate*100)
	fmt.Fprintf(file, "| **Bars in market** | %d (%.1f%%) |\n\n",
		stats.BarsInMarket, barsInMarketPct(stats))

	fmt.Fprintf(file, "## Configuration\n\n")
	params := g.config.ThresholdParams()
	fmt.Fprintf(file, "- **Entry threshold**: %.2f\n", params.EntryThreshold)
	fmt.Fprintf(file, "- **Exit threshold**: %.2f\n", params.ExitThreshold)
	fmt.Fprintf(file, "- **Stop-loss**: %.2f\n", params.StopLoss)
	fmt.Fprintf(file, "- **Data source**: %s\n\n", g.config.Analysis.Data.SourceType)

	fmt.Fprintf(file, "---\n\n")
	fmt.Fprintf(file, "**Generated**: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(file, "**Run time**: %v\n", r.Duration)
}

// GenerateJSON writes the machine-readable run summary.
func (g *ReportGenerator) GenerateJSON() error {
	outputDir := g.config.Output.ResultDir
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := g.result.StartTime.Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("pair_result_%s.json", timestamp))

	data, err := json.MarshalIndent(g.result.Summary(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	g.logger.Info("JSON result saved", zap.String("path", filename))
	return nil
}

// SavePositions writes the per-bar position, spread and z-score history
// to CSV when the output settings ask for it.
func (g *ReportGenerator) SavePositions() error {
	if !g.config.Output.SavePositions {
		return nil
	}

	outputDir := g.config.Output.ResultDir
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := g.result.StartTime.Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("positions_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create positions file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{"timestamp", "spread", "zscore", "position"})

	r := g.result
	for i := 0; i < r.Positions.Len(); i++ {
		writer.Write([]string{
			strconv.FormatInt(r.Positions.Index[i], 10),
			formatPoint(r.Analysis.Spread.Values[i]),
			formatPoint(r.Analysis.ZScore.Values[i]),
			strconv.Itoa(int(r.Positions.Values[i])),
		})
	}

	g.logger.Info("positions saved", zap.String("path", filename))
	return nil
}

// Summary is the flat form of the result used for JSON reports and
// publication.
type Summary struct {
	Name       string    `json:"name"`
	Mode       string    `json:"mode"`
	Window     int       `json:"window"`
	SymbolX    string    `json:"symbol_x"`
	SymbolY    string    `json:"symbol_y"`
	StaticBeta *float64  `json:"static_beta,omitempty"`
	ADFPValue  float64   `json:"adf_p_value"`
	Stats      *RunStats `json:"stats"`
	StartTime  time.Time `json:"start_time"`
	DurationMs int64     `json:"duration_ms"`
}

// Summary flattens the run result.
func (r *RunResult) Summary() *Summary {
	s := &Summary{
		Name:       r.Name,
		Mode:       r.Mode,
		Window:     r.Window,
		SymbolX:    r.SymbolX,
		SymbolY:    r.SymbolY,
		ADFPValue:  r.Analysis.ADFPValue,
		Stats:      r.Stats,
		StartTime:  r.StartTime,
		DurationMs: r.Duration.Milliseconds(),
	}
	if !r.Analysis.Beta.IsDynamic() {
		beta := r.Analysis.Beta.Scalar()
		s.StaticBeta = &beta
	}
	return s
}

// formatPoint renders a series point for CSV, keeping missing values as
// empty cells rather than "NaN" text.
func formatPoint(v float64) string {
	if series.IsMissing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func barsInMarketPct(stats *RunStats) float64 {
	if stats.Bars == 0 {
		return 0
	}
	return float64(stats.BarsInMarket) / float64(stats.Bars) * 100
}

func evaluateADF(p float64) string {
	switch {
	case p < 0.01:
		return "(strong evidence of mean reversion)"
	case p < 0.05:
		return "(evidence of mean reversion)"
	case p < 0.10:
		return "(weak evidence)"
	default:
		return "(no evidence of mean reversion)"
	}
}
