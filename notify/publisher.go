// Package notify receives NGSI-v2 notifications over HTTP and relays them
// onto NATS JetStream subjects, one subject per entity type.
package notify

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
)

// Publisher delivers relayed notifications. Implementations must be safe
// for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
	Close()
}

// NATSPublisher publishes onto JetStream so notifications survive consumer
// restarts.
type NATSPublisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewNATSPublisher connects to the NATS server and binds JetStream.
func NewNATSPublisher(url string, opts ...nats.Option) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("bind jetstream: %w", err)
	}
	return &NATSPublisher{conn: conn, js: js}, nil
}

// Publish sends one message and waits for the stream acknowledgement.
func (p *NATSPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	if _, err := p.js.Publish(subject, data, nats.Context(ctx)); err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}
	return nil
}

// Close drains the connection.
func (p *NATSPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
