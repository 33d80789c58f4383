package backtest

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"

	"github.com/yourusername/pairs-trade-lab/pkg/series"
)

// ClickHousePriceReader loads prices from a ClickHouse table with at
// least (symbol String, ts Int64, price Float64). Each symbol is read
// separately and the two histories are inner-joined on timestamp, so
// only bars observed for both assets enter the frame.
type ClickHousePriceReader struct {
	conn    driver.Conn
	table   string
	symbolX string
	symbolY string
	logger  *zap.Logger
}

// NewClickHousePriceReader opens a connection and builds the reader.
func NewClickHousePriceReader(settings ClickHouseSettings, symbolX, symbolY string, logger *zap.Logger) (*ClickHousePriceReader, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{settings.Addr},
		Auth: clickhouse.Auth{
			Database: settings.Database,
			Username: settings.Username,
			Password: settings.Password,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to clickhouse: %w", err)
	}
	return &ClickHousePriceReader{
		conn:    conn,
		table:   settings.Table,
		symbolX: symbolX,
		symbolY: symbolY,
		logger:  logger,
	}, nil
}

// ReadFrame loads both symbols and joins them on timestamp.
func (r *ClickHousePriceReader) ReadFrame(ctx context.Context) (*series.Frame, error) {
	xIndex, xPrices, err := r.loadSymbol(ctx, r.symbolX)
	if err != nil {
		return nil, err
	}
	yIndex, yPrices, err := r.loadSymbol(ctx, r.symbolY)
	if err != nil {
		return nil, err
	}

	yByTs := make(map[int64]float64, len(yIndex))
	for i, ts := range yIndex {
		yByTs[ts] = yPrices[i]
	}

	var (
		index []int64
		xs    []float64
		ys    []float64
	)
	for i, ts := range xIndex {
		py, ok := yByTs[ts]
		if !ok {
			continue
		}
		index = append(index, ts)
		xs = append(xs, xPrices[i])
		ys = append(ys, py)
	}
	if len(index) == 0 {
		return nil, fmt.Errorf("no overlapping bars for %s and %s", r.symbolX, r.symbolY)
	}
	r.logger.Info("loaded price data from clickhouse",
		zap.String("table", r.table),
		zap.Int("rows", len(index)),
		zap.Int("dropped_x", len(xIndex)-len(index)),
		zap.Int("dropped_y", len(yIndex)-len(index)))

	return series.NewFrame(index, map[string][]float64{
		r.symbolX: xs,
		r.symbolY: ys,
	})
}

func (r *ClickHousePriceReader) loadSymbol(ctx context.Context, symbol string) ([]int64, []float64, error) {
	q := fmt.Sprintf("SELECT ts, price FROM %s WHERE symbol = ? ORDER BY ts", r.table)
	rows, err := r.conn.Query(ctx, q, symbol)
	if err != nil {
		return nil, nil, fmt.Errorf("query failed for %s: %w", symbol, err)
	}
	defer rows.Close()

	var (
		index  []int64
		prices []float64
	)
	for rows.Next() {
		var (
			ts    int64
			price float64
		)
		if err := rows.Scan(&ts, &price); err != nil {
			return nil, nil, fmt.Errorf("scan failed for %s: %w", symbol, err)
		}
		index = append(index, ts)
		prices = append(prices, price)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("row iteration failed for %s: %w", symbol, err)
	}
	return index, prices, nil
}

// Close releases the database connection.
func (r *ClickHousePriceReader) Close() error {
	return r.conn.Close()
}
