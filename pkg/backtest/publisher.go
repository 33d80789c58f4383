package backtest

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// ResultPublisher pushes run summaries onto NATS so downstream consumers
// (dashboards, pair screeners) can pick them up without polling the
// result directory.
type ResultPublisher struct {
	conn    *nats.Conn
	subject string
	logger  *zap.Logger
}

// NewResultPublisher connects to NATS. The subject defaults to
// "pairs.result.<run name>" when the settings leave it empty.
func NewResultPublisher(settings PublishSettings, runName string, logger *zap.Logger) (*ResultPublisher, error) {
	conn, err := nats.Connect(settings.Addr,
		nats.Name("pairlab-publisher"),
		nats.MaxReconnects(3),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	subject := settings.Subject
	if subject == "" {
		subject = "pairs.result." + runName
	}
	return &ResultPublisher{conn: conn, subject: subject, logger: logger}, nil
}

// Publish sends the JSON summary of one run.
func (p *ResultPublisher) Publish(result *RunResult) error {
	data, err := json.Marshal(result.Summary())
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.subject, err)
	}
	if err := p.conn.Flush(); err != nil {
		return fmt.Errorf("failed to flush NATS connection: %w", err)
	}

	p.logger.Info("result published",
		zap.String("subject", p.subject),
		zap.Int("bytes", len(data)))
	return nil
}

// Close drains and closes the connection.
func (p *ResultPublisher) Close() {
	p.conn.Close()
}
