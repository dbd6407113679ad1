package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"taskboard/pkg/logger"
)

// Client wraps a NATS connection with a JetStream context.
type Client struct {
	conn   *nats.Conn
	js     jetstream.JetStream
	stream jetstream.Stream
}

type ClientConfig struct {
	URL string // nats://localhost:4222
}

func NewClient(cfg ClientConfig) (*Client, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.Name("taskboard-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	client := &Client{conn: nc, js: js}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.setupStream(ctx); err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to setup stream: %w", err)
	}

	logger.Info("NATS client initialized", "url", cfg.URL, "stream", StreamName)
	return client, nil
}

// setupStream keeps a day of domain events for late consumers and audits.
func (c *Client) setupStream(ctx context.Context) error {
	stream, err := c.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{SubjectAll},
		Storage:     jetstream.FileStorage,
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      24 * time.Hour,
		Replicas:    1,
		Description: "Task and project domain events",
	})
	if err != nil {
		return fmt.Errorf("failed to create/update events stream: %w", err)
	}
	c.stream = stream
	logger.Info("JetStream stream ready", "name", StreamName)
	return nil
}

func (c *Client) Conn() *nats.Conn {
	return c.conn
}

func (c *Client) JetStream() jetstream.JetStream {
	return c.js
}

func (c *Client) Close() error {
	if c.conn != nil {
		c.conn.Close()
		logger.Info("NATS connection closed")
	}
	return nil
}

func (c *Client) Ping() error {
	return c.conn.FlushTimeout(5 * time.Second)
}

func (c *Client) IsConnected() bool {
	return c.conn != nil && c.conn.IsConnected()
}
