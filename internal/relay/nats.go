package relay

import (
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

// NatsSink publishes each event on a per-flight subject: <topic>.<flight number>.
type NatsSink struct {
	nc *nats.Conn
}

// NewNatsSink connects to NATS. The connection keeps retrying in the background
// so a bus outage at startup does not block the service.
func NewNatsSink(url string) (*NatsSink, error) {
	if url == "" {
		return nil, fmt.Errorf("nats sink requires nats_url")
	}
	nc, err := nats.Connect(url,
		nats.Name("flight-booking-status-relay"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NatsSink{nc: nc}, nil
}

// Publish sends value on the flight's subject with the flight number as a "key" header.
func (n *NatsSink) Publish(topic, key string, value []byte) error {
	msg := &nats.Msg{
		Subject: subjectFor(topic, key),
		Data:    value,
		Header:  nats.Header{"key": []string{key}},
	}
	if err := n.nc.PublishMsg(msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", msg.Subject, err)
	}
	return nil
}

// Close flushes pending messages and closes the connection.
func (n *NatsSink) Close() error {
	if n.nc == nil {
		return nil
	}
	if err := n.nc.Drain(); err != nil {
		n.nc.Close()
		return err
	}
	return nil
}

// subjectFor appends the flight number as the last subject token.
// Characters NATS treats as separators or wildcards are replaced by '_'.
func subjectFor(topic, flightNumber string) string {
	token := strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t', '\r', '\n':
			return '_'
		}
		return r
	}, flightNumber)
	if token == "" {
		token = "_"
	}
	return topic + "." + token
}
