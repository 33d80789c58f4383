// Package backtest runs the offline pair analysis end to end: load an
// aligned price frame, run the spread/signal pipeline, fold the z-score
// into positions, and mark the position series to market over the spread.
package backtest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/pairs-trade-lab/pkg/pairs"
	"github.com/yourusername/pairs-trade-lab/pkg/strategy"
)

// Config is the YAML configuration of one analysis run.
type Config struct {
	Analysis AnalysisSettings `yaml:"analysis"`
	Strategy StrategySettings `yaml:"strategy"`
	Output   OutputSettings   `yaml:"output"`
	Publish  PublishSettings  `yaml:"publish"`
}

// AnalysisSettings selects the pair, the hedge-ratio regime and the
// rolling window.
type AnalysisSettings struct {
	Name   string       `yaml:"name"`
	Mode   string       `yaml:"mode"`   // static | dynamic
	Window int          `yaml:"window"` // shared by dynamic beta and z-score; 0 = default
	Data   DataSettings `yaml:"data"`
}

// DataSettings selects the price source.
type DataSettings struct {
	SourceType string             `yaml:"source_type"` // csv | clickhouse
	DataPath   string             `yaml:"data_path"`   // csv file path
	SymbolX    string             `yaml:"symbol_x"`
	SymbolY    string             `yaml:"symbol_y"`
	ClickHouse ClickHouseSettings `yaml:"clickhouse"`
}

// ClickHouseSettings configures the database price source.
type ClickHouseSettings struct {
	Addr     string `yaml:"addr"`
	Database string `yaml:"database"`
	Table    string `yaml:"table"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// StrategySettings configures the position state machine and the
// simulated account.
type StrategySettings struct {
	EntryThreshold float64 `yaml:"entry_threshold"`
	ExitThreshold  float64 `yaml:"exit_threshold"`
	StopLoss       float64 `yaml:"stop_loss"`
	InitialCapital float64 `yaml:"initial_capital"`
}

// OutputSettings configures report generation.
type OutputSettings struct {
	ResultDir      string `yaml:"result_dir"`
	SavePositions  bool   `yaml:"save_positions"`
	GenerateReport bool   `yaml:"generate_report"`
}

// PublishSettings configures optional NATS publication of the run
// summary. Empty Addr disables publishing.
type PublishSettings struct {
	Addr    string `yaml:"nats_addr"`
	Subject string `yaml:"subject"`
}

// LoadConfig loads and validates a configuration from a YAML file.
// Configuration errors surface here, before any series is processed.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

// Validate checks the configuration before any computation starts.
func (c *Config) Validate() error {
	switch c.Analysis.Mode {
	case "static", "dynamic":
	default:
		return fmt.Errorf("invalid mode: %q (must be static or dynamic)", c.Analysis.Mode)
	}

	if c.Analysis.Window < 0 || c.Analysis.Window == 1 {
		return fmt.Errorf("invalid window: %d (must be 0 for default, or >= 2)", c.Analysis.Window)
	}

	d := c.Analysis.Data
	if d.SymbolX == "" || d.SymbolY == "" {
		return fmt.Errorf("symbol_x and symbol_y are required")
	}
	if d.SymbolX == d.SymbolY {
		return fmt.Errorf("symbol_x and symbol_y must differ")
	}
	switch d.SourceType {
	case "csv":
		if d.DataPath == "" {
			return fmt.Errorf("data_path is required for csv source")
		}
	case "clickhouse":
		if d.ClickHouse.Addr == "" {
			return fmt.Errorf("clickhouse.addr is required for clickhouse source")
		}
		if d.ClickHouse.Table == "" {
			return fmt.Errorf("clickhouse.table is required for clickhouse source")
		}
	default:
		return fmt.Errorf("invalid source_type: %q (must be csv or clickhouse)", d.SourceType)
	}

	if err := c.ThresholdParams().Validate(); err != nil {
		return err
	}
	if c.Strategy.InitialCapital < 0 {
		return fmt.Errorf("initial_capital must not be negative")
	}
	return nil
}

// ThresholdParams maps the strategy settings to state-machine
// parameters; all-zero thresholds mean the documented defaults.
func (c *Config) ThresholdParams() strategy.ThresholdParams {
	s := c.Strategy
	if s.EntryThreshold == 0 && s.ExitThreshold == 0 && s.StopLoss == 0 {
		return strategy.DefaultThresholdParams()
	}
	return strategy.ThresholdParams{
		EntryThreshold: s.EntryThreshold,
		ExitThreshold:  s.ExitThreshold,
		StopLoss:       s.StopLoss,
	}
}

// Window returns the configured rolling window, defaulted when unset.
func (c *Config) Window() int {
	if c.Analysis.Window == 0 {
		return pairs.DefaultWindow
	}
	return c.Analysis.Window
}
