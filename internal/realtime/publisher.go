package realtime

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// NATSPublisher publishes builder mutations onto the per-builder
// subjects the bridge process relays to editor sessions.
type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(natsURL string) (*NATSPublisher, error) {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &NATSPublisher{conn: nc}, nil
}

// Emit wraps the payload in the shared envelope and publishes it on the
// builder's subject.
func (p *NATSPublisher) Emit(event string, builderID string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	envelope := Envelope{
		Type:    event,
		Builder: builderID,
		Payload: raw,
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	return p.conn.Publish(fmt.Sprintf("%s.%s", SubjectPrefix, builderID), data)
}

// Close drains the NATS connection.
func (p *NATSPublisher) Close() {
	if p.conn != nil {
		p.conn.Drain()
	}
}
