package relay

import (
	"fmt"

	"flight_booking/internal/config"
)

// Sink is an external message bus that receives serialized status events.
// topic is the configured base topic; key is the flight number.
type Sink interface {
	Publish(topic, key string, value []byte) error
	Close() error
}

// NewSink builds the sink selected by cfg.Sink. It returns (nil, nil) when relaying is disabled.
func NewSink(cfg config.RelayConfig) (Sink, error) {
	switch cfg.Sink {
	case config.RelayNone:
		return nil, nil
	case config.RelayNATS:
		s, err := NewNatsSink(cfg.NatsURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.RelayKafka:
		s, err := NewKafkaSink(DefaultKafkaConfig(cfg.KafkaBrokers))
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown relay sink %q", cfg.Sink)
	}
}
