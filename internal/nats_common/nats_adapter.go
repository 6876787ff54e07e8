package nats_common

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ZanzyTHEbar/atm-go/interfaces"
	"github.com/ZanzyTHEbar/atm-go/internal"
	"github.com/nats-io/nats.go"
)

const connectTimeout = 5 * time.Second

// Conn is the part of *nats.Conn the adapter needs
type Conn interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, cb nats.MsgHandler) (*nats.Subscription, error)
	Drain() error
	IsConnected() bool
}

// NATSAdapter publishes session events to NATS and can watch them again
type NATSAdapter struct {
	config NATSConfig
	conn   Conn
	logger *internal.Logger
}

var _ interfaces.EventPublisher = (*NATSAdapter)(nil)

// Connect dials the configured server
func Connect(config NATSConfig, logger *internal.Logger) (*NATSAdapter, error) {
	if logger == nil {
		logger = internal.GetLogger()
	}
	if !config.Enabled() {
		return nil, fmt.Errorf("nats: no server URL configured")
	}

	logger.Debug(internal.ComponentNATS, "Connecting to NATS: URL=%s, User=%s", config.ServerURL, config.Username)

	opts := []nats.Option{
		nats.Name(config.ClientID),
		nats.Timeout(connectTimeout),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			logger.Error(internal.ComponentNATS, "NATS error: %v", err)
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn(internal.ComponentNATS, "Disconnected from NATS server: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info(internal.ComponentNATS, "Reconnected to NATS server %s", nc.ConnectedUrl())
		}),
	}
	opts = append(opts, ApplyNATSAuthOptions(config.Username, config.Password, config.Token)...)

	nc, err := nats.Connect(config.ServerURL, opts...)
	if err != nil {
		logger.Error(internal.ComponentNATS, "Connection failed: %v", err)
		return nil, fmt.Errorf("NATS connection failed: %w", err)
	}

	logger.Info(internal.ComponentNATS, "Successfully connected to NATS server")
	return NewNATSAdapter(config, nc, logger), nil
}

// NewNATSAdapter wraps an existing connection
func NewNATSAdapter(config NATSConfig, conn Conn, logger *internal.Logger) *NATSAdapter {
	if logger == nil {
		logger = internal.GetLogger()
	}
	return &NATSAdapter{config: config, conn: conn, logger: logger}
}

// NewEventPublisher returns a NATS backed publisher when a server is configured
// and a no-op publisher otherwise.
func NewEventPublisher(config NATSConfig, logger *internal.Logger) (interfaces.EventPublisher, error) {
	if !config.Enabled() {
		return interfaces.NopPublisher{}, nil
	}
	return Connect(config, logger)
}

// Publish sends event as JSON on its type's subject
func (a *NATSAdapter) Publish(ctx context.Context, event *interfaces.Event) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("publish operation cancelled: %w", err)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := a.config.Subject(string(event.Type))
	a.logger.Debug(internal.ComponentNATS, "Publishing event to subject: %s (size: %d bytes)", subject, len(data))

	if err := a.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}
	return nil
}

// Watch delivers every event published under the prefix that matches pattern
// until ctx is done. An empty pattern matches everything.
func (a *NATSAdapter) Watch(ctx context.Context, pattern string, handler func(*interfaces.Event)) error {
	if pattern == "" {
		pattern = a.config.Wildcard()
	}

	sub, err := a.conn.Subscribe(a.config.Wildcard(), func(msg *nats.Msg) {
		if !MatchSubject(pattern, msg.Subject) {
			return
		}
		event, err := DecodeEvent(msg.Data)
		if err != nil {
			a.logger.Warn(internal.ComponentNATS, "Dropping malformed event on %s: %v", msg.Subject, err)
			return
		}
		handler(event)
	})
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", a.config.Wildcard(), err)
	}
	a.logger.Debug(internal.ComponentNATS, "Watching %s", pattern)

	<-ctx.Done()
	if err := sub.Unsubscribe(); err != nil {
		a.logger.Warn(internal.ComponentNATS, "Unsubscribe failed: %v", err)
	}
	return nil
}

// DecodeEvent parses an event published by Publish
func DecodeEvent(data []byte) (*interfaces.Event, error) {
	var event interfaces.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	if event.Type == "" {
		return nil, fmt.Errorf("event without type")
	}
	return &event, nil
}

// IsConnected reports the connection state
func (a *NATSAdapter) IsConnected() bool {
	return a.conn != nil && a.conn.IsConnected()
}

// Close drains the connection so buffered events are flushed
func (a *NATSAdapter) Close() error {
	if a.conn == nil {
		return nil
	}
	return a.conn.Drain()
}
