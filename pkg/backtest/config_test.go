package backtest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yourusername/pairs-trade-lab/pkg/strategy"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

const validConfig = `
analysis:
  name: "test_pair"
  mode: "static"
  window: 30
  data:
    source_type: "csv"
    data_path: "./data/pair.csv"
    symbol_x: "BTC"
    symbol_y: "ETH"
strategy:
  entry_threshold: 2.0
  exit_threshold: 0.5
  stop_loss: 4.0
  initial_capital: 10000
output:
  result_dir: "./results"
  generate_report: true
`

func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.Analysis.Name != "test_pair" {
		t.Errorf("Name = %q, want test_pair", config.Analysis.Name)
	}
	if config.Window() != 30 {
		t.Errorf("Window() = %d, want 30", config.Window())
	}
	params := config.ThresholdParams()
	if params.EntryThreshold != 2.0 || params.ExitThreshold != 0.5 || params.StopLoss != 4.0 {
		t.Errorf("ThresholdParams() = %+v", params)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/config.yaml"); err == nil {
		t.Error("LoadConfig() on missing file = nil error")
	}
}

func TestThresholdParamsDefaulted(t *testing.T) {
	config := &Config{}
	params := config.ThresholdParams()
	if params != strategy.DefaultThresholdParams() {
		t.Errorf("ThresholdParams() on zero config = %+v, want defaults", params)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Analysis: AnalysisSettings{
				Mode:   "static",
				Window: 0,
				Data: DataSettings{
					SourceType: "csv",
					DataPath:   "./data.csv",
					SymbolX:    "A",
					SymbolY:    "B",
				},
			},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "Bad mode",
			mutate: func(c *Config) { c.Analysis.Mode = "adaptive" },
		},
		{
			name:   "Window of one",
			mutate: func(c *Config) { c.Analysis.Window = 1 },
		},
		{
			name:   "Negative window",
			mutate: func(c *Config) { c.Analysis.Window = -5 },
		},
		{
			name:   "Missing symbols",
			mutate: func(c *Config) { c.Analysis.Data.SymbolY = "" },
		},
		{
			name:   "Identical symbols",
			mutate: func(c *Config) { c.Analysis.Data.SymbolY = "A" },
		},
		{
			name:   "CSV without path",
			mutate: func(c *Config) { c.Analysis.Data.DataPath = "" },
		},
		{
			name: "ClickHouse without addr",
			mutate: func(c *Config) {
				c.Analysis.Data.SourceType = "clickhouse"
			},
		},
		{
			name:   "Unknown source",
			mutate: func(c *Config) { c.Analysis.Data.SourceType = "parquet" },
		},
		{
			name:   "Negative capital",
			mutate: func(c *Config) { c.Strategy.InitialCapital = -1 },
		},
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("Validate() on valid base config = %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := base()
			tt.mutate(config)
			if err := config.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestValidateThresholdOrdering(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, `
analysis:
  name: "bad_thresholds"
  mode: "static"
  data:
    source_type: "csv"
    data_path: "./data.csv"
    symbol_x: "A"
    symbol_y: "B"
strategy:
  entry_threshold: 0.5
  exit_threshold: 2.0
  stop_loss: 4.0
`))
	if config != nil {
		t.Error("LoadConfig() returned a config with misordered thresholds")
	}
	if !errors.Is(err, strategy.ErrInvalidThresholds) {
		t.Errorf("LoadConfig() error = %v, want ErrInvalidThresholds", err)
	}
}
