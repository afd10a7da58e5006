package relay

import (
	"context"
	"encoding/json"

	"flight_booking/internal/logger"
	"flight_booking/internal/notify"
)

// Subscriber is the broker side the relay consumes from.
type Subscriber interface {
	SubscribeAll() *notify.Subscription
}

// Relay forwards every broker event to a Sink. It is an ordinary subscriber,
// so a slow or failing sink only loses its own queued events.
type Relay struct {
	broker Subscriber
	sink   Sink
	topic  string
	log    *logger.Logger
}

func New(broker Subscriber, sink Sink, topic string, log *logger.Logger) *Relay {
	if log == nil {
		log = logger.Nop()
	}
	return &Relay{broker: broker, sink: sink, topic: topic, log: log}
}

// Run forwards events until ctx is done or the broker closes the subscription.
func (r *Relay) Run(ctx context.Context) {
	sub := r.broker.SubscribeAll()
	defer sub.Cancel()

	r.log.Infow("relay_started", "topic", r.topic)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.C():
			if !ok {
				return
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				r.log.Errorw("relay_encode_failed", "flight_number", ev.FlightNumber, "err", err)
				continue
			}
			if err := r.sink.Publish(r.topic, ev.FlightNumber, payload); err != nil {
				r.log.Warnw("relay_publish_failed", "flight_number", ev.FlightNumber, "status", ev.Status, "err", err)
			}
		}
	}
}
