package backtest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/yourusername/pairs-trade-lab/pkg/series"
)

// PriceReader loads the aligned price history of one pair into a frame
// with one column per symbol.
type PriceReader interface {
	ReadFrame(ctx context.Context) (*series.Frame, error)
}

// NewPriceReader builds the reader selected by the data settings.
func NewPriceReader(cfg *Config, logger *zap.Logger) (PriceReader, error) {
	d := cfg.Analysis.Data
	switch d.SourceType {
	case "csv":
		return NewCSVPriceReader(d.DataPath, d.SymbolX, d.SymbolY, logger), nil
	case "clickhouse":
		return NewClickHousePriceReader(d.ClickHouse, d.SymbolX, d.SymbolY, logger)
	default:
		return nil, fmt.Errorf("unsupported source_type: %q", d.SourceType)
	}
}

// CSVPriceReader loads prices from a single CSV file with the layout
//
//	timestamp,SYMX,SYMY
//	1700000000,101.2,50.4
//
// where the symbol columns are matched by header name, in any order.
type CSVPriceReader struct {
	path    string
	symbolX string
	symbolY string
	logger  *zap.Logger
}

// NewCSVPriceReader creates a CSV price reader.
func NewCSVPriceReader(path, symbolX, symbolY string, logger *zap.Logger) *CSVPriceReader {
	return &CSVPriceReader{
		path:    path,
		symbolX: symbolX,
		symbolY: symbolY,
		logger:  logger,
	}
}

// ReadFrame loads the file into a two-column frame. Rows with an
// unparseable timestamp or price are skipped with a warning rather than
// failing the run.
func (r *CSVPriceReader) ReadFrame(ctx context.Context) (*series.Frame, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colX, colY := -1, -1
	for i, name := range header {
		switch name {
		case r.symbolX:
			colX = i
		case r.symbolY:
			colY = i
		}
	}
	if colX < 0 || colY < 0 {
		return nil, fmt.Errorf("%w: CSV header %v missing %s or %s",
			series.ErrColumnNotFound, header, r.symbolX, r.symbolY)
	}

	var (
		index   []int64
		xPrices []float64
		yPrices []float64
		skipped int
	)
	for line := 2; ; line++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		ts, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			r.logger.Warn("skipping row with bad timestamp",
				zap.Int("line", line), zap.String("value", record[0]))
			skipped++
			continue
		}
		px, errX := strconv.ParseFloat(record[colX], 64)
		py, errY := strconv.ParseFloat(record[colY], 64)
		if errX != nil || errY != nil {
			r.logger.Warn("skipping row with bad price", zap.Int("line", line))
			skipped++
			continue
		}

		index = append(index, ts)
		xPrices = append(xPrices, px)
		yPrices = append(yPrices, py)
	}

	if len(index) == 0 {
		return nil, fmt.Errorf("no usable rows in %s", r.path)
	}
	r.logger.Info("loaded price data",
		zap.String("path", r.path),
		zap.Int("rows", len(index)),
		zap.Int("skipped", skipped))

	return series.NewFrame(index, map[string][]float64{
		r.symbolX: xPrices,
		r.symbolY: yPrices,
	})
}
