package realtime

import (
	"fmt"
	"log"
	"strings"

	"github.com/nats-io/nats.go"
)

// SubjectPrefix is the NATS namespace builder mutations travel on. One
// subject per builder: sera.builder.<builderID>.
const SubjectPrefix = "sera.builder"

// NATSBridge subscribes to builder mutation subjects and pushes the
// already-enveloped messages into the Hub.
type NATSBridge struct {
	conn *nats.Conn
	hub  *Hub
}

func NewNATSBridge(natsURL string, hub *Hub) (*NATSBridge, error) {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &NATSBridge{conn: nc, hub: hub}, nil
}

// Subscribe listens for mutation messages on sera.builder.*
func (b *NATSBridge) Subscribe() error {
	subject := SubjectPrefix + ".*"
	_, err := b.conn.Subscribe(subject, func(msg *nats.Msg) {
		builderID, err := parseBuilderIDFromSubject(msg.Subject)
		if err != nil {
			log.Printf("nats: bad subject %q: %v", msg.Subject, err)
			return
		}

		// The publisher already wrapped the payload in the envelope;
		// relay it untouched.
		b.hub.broadcast <- broadcastMsg{builderID: builderID, payload: msg.Data}
	})
	if err != nil {
		return fmt.Errorf("nats subscribe %q: %w", subject, err)
	}

	log.Printf("NATS bridge subscribed to: %s", subject)
	return nil
}

// Close drains the NATS connection.
func (b *NATSBridge) Close() {
	if err := b.conn.Drain(); err != nil {
		log.Printf("nats drain: %v", err)
	}
}

// parseBuilderIDFromSubject extracts the builder id from
// "sera.builder.<builderID>"
func parseBuilderIDFromSubject(subject string) (string, error) {
	parts := strings.Split(subject, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("expected 3 parts, got %d", len(parts))
	}
	if parts[2] == "" {
		return "", fmt.Errorf("empty builder id")
	}
	return parts[2], nil
}
