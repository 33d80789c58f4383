package backtest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/yourusername/pairs-trade-lab/pkg/series"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write CSV: %v", err)
	}
	return path
}

func TestCSVPriceReader(t *testing.T) {
	path := writeCSV(t, `timestamp,BTC,ETH
1700000000,100.5,50.25
1700000060,101.0,50.50
1700000120,99.5,49.75
`)

	reader := NewCSVPriceReader(path, "BTC", "ETH", zap.NewNop())
	frame, err := reader.ReadFrame(context.Background())
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}

	if frame.Len() != 3 {
		t.Fatalf("frame len = %d, want 3", frame.Len())
	}
	btc, err := frame.Series("BTC")
	if err != nil {
		t.Fatalf("Series(BTC) error = %v", err)
	}
	if btc.At(1) != 101.0 {
		t.Errorf("BTC[1] = %v, want 101.0", btc.At(1))
	}
	if frame.Index()[2] != 1700000120 {
		t.Errorf("index[2] = %d, want 1700000120", frame.Index()[2])
	}
}

func TestCSVPriceReaderColumnOrder(t *testing.T) {
	// Symbol columns are matched by header name, not position.
	path := writeCSV(t, `timestamp,ETH,BTC
1,50,100
2,51,101
`)

	reader := NewCSVPriceReader(path, "BTC", "ETH", zap.NewNop())
	frame, err := reader.ReadFrame(context.Background())
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	btc, _ := frame.Series("BTC")
	if btc.At(0) != 100 {
		t.Errorf("BTC[0] = %v, want 100", btc.At(0))
	}
}

func TestCSVPriceReaderSkipsBadRows(t *testing.T) {
	path := writeCSV(t, `timestamp,BTC,ETH
1,100,50
oops,101,51
3,bad,52
4,103,53
`)

	reader := NewCSVPriceReader(path, "BTC", "ETH", zap.NewNop())
	frame, err := reader.ReadFrame(context.Background())
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	if frame.Len() != 2 {
		t.Errorf("frame len = %d, want 2 (bad rows skipped)", frame.Len())
	}
}

func TestCSVPriceReaderMissingColumn(t *testing.T) {
	path := writeCSV(t, `timestamp,BTC,ETH
1,100,50
`)

	reader := NewCSVPriceReader(path, "BTC", "SOL", zap.NewNop())
	_, err := reader.ReadFrame(context.Background())
	if !errors.Is(err, series.ErrColumnNotFound) {
		t.Errorf("ReadFrame() error = %v, want ErrColumnNotFound", err)
	}
}

func TestCSVPriceReaderEmptyFile(t *testing.T) {
	path := writeCSV(t, "timestamp,BTC,ETH\n")

	reader := NewCSVPriceReader(path, "BTC", "ETH", zap.NewNop())
	if _, err := reader.ReadFrame(context.Background()); err == nil {
		t.Error("ReadFrame() on header-only file = nil error")
	}
}

func TestNewPriceReaderSelection(t *testing.T) {
	cfg := &Config{}
	cfg.Analysis.Data = DataSettings{
		SourceType: "csv",
		DataPath:   "./x.csv",
		SymbolX:    "A",
		SymbolY:    "B",
	}
	reader, err := NewPriceReader(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("NewPriceReader() error = %v", err)
	}
	if _, ok := reader.(*CSVPriceReader); !ok {
		t.Errorf("NewPriceReader() = %T, want *CSVPriceReader", reader)
	}

	cfg.Analysis.Data.SourceType = "ftp"
	if _, err := NewPriceReader(cfg, zap.NewNop()); err == nil {
		t.Error("NewPriceReader() with unknown source = nil error")
	}
}
