package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// NATSConfig holds NATS connection settings.
type NATSConfig struct {
	URL               string
	SubjectPrefix     string
	ConnectTimeout    time.Duration
	ReconnectDelay    time.Duration
	ReconnectAttempts int
}

// NATSPublisher publishes events as JSON on core NATS subjects of the form
// <prefix>.alerts.<label>.
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
	logger *zap.Logger
}

// ConnectNATS dials the NATS server.
func ConnectNATS(cfg NATSConfig, logger *zap.Logger) (*NATSPublisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	logger.Info("connecting to NATS", zap.String("url", cfg.URL))

	opts := []nats.Option{
		nats.Name("wallet-forensics"),
		nats.Timeout(cfg.ConnectTimeout),
		nats.ReconnectWait(cfg.ReconnectDelay),
		nats.MaxReconnects(cfg.ReconnectAttempts),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(*nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	return NewNATSPublisher(conn, cfg.SubjectPrefix, logger), nil
}

// NewNATSPublisher wraps an established connection.
func NewNATSPublisher(conn *nats.Conn, prefix string, logger *zap.Logger) *NATSPublisher {
	if prefix == "" {
		prefix = "forensics"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NATSPublisher{conn: conn, prefix: prefix, logger: logger}
}

// Subject returns the subject an event is published on.
func Subject(prefix string, e Event) string {
	label := strings.ToLower(string(e.Label))
	if label == "" {
		label = "unknown"
	}
	return fmt.Sprintf("%s.alerts.%s", prefix, label)
}

// Name implements Publisher.
func (p *NATSPublisher) Name() string { return "nats" }

// Publish implements Publisher.
func (p *NATSPublisher) Publish(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}

	subject := Subject(p.prefix, e)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}

	p.logger.Debug("alert published",
		zap.String("subject", subject),
		zap.String("wallet", e.Wallet),
		zap.Int("score", e.Score))
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Drain()
}
