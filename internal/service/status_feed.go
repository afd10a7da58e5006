package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"flight_booking/internal/logger"
	"flight_booking/internal/metrics"
	"flight_booking/internal/models"
	"flight_booking/internal/repository"
)

const defaultFeedBuffer = 256

// ErrFeedRunning is returned by Start when the pipeline is already running.
var ErrFeedRunning = errors.New("status feed already running")

// Publisher is the broker side of the pipeline.
type Publisher interface {
	Publish(ev models.FlightStatusEvent) int
}

// stateReporter is implemented by change feeds that expose subscription liveness.
type stateReporter interface {
	OnState(fn func(subscribed bool))
}

// StatusFeedService runs the notification pipeline: one listener goroutine
// writes raw changes into a bounded channel; one pipeline goroutine parses,
// filters, enriches and publishes them in arrival order.
type StatusFeedService struct {
	feed     repository.ChangeFeed
	enricher Enricher
	broker   Publisher
	buffer   int
	log      *logger.Logger
	metrics  *metrics.Metrics

	subscribed atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewStatusFeedService(feed repository.ChangeFeed, enricher Enricher, broker Publisher, buffer int, log *logger.Logger, m *metrics.Metrics) *StatusFeedService {
	if buffer <= 0 {
		buffer = defaultFeedBuffer
	}
	if log == nil {
		log = logger.Nop()
	}
	if m == nil {
		m = metrics.NewNop()
	}
	s := &StatusFeedService{
		feed:     feed,
		enricher: enricher,
		broker:   broker,
		buffer:   buffer,
		log:      log,
		metrics:  m,
	}
	if r, ok := feed.(stateReporter); ok {
		r.OnState(s.setSubscribed)
	}
	return s
}

// Start launches the listener and pipeline goroutines. They run until ctx is
// cancelled or Stop is called.
func (s *StatusFeedService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return ErrFeedRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	changes := make(chan repository.RawChange, s.buffer)

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		defer close(changes)
		if err := s.feed.Listen(ctx, changes); err != nil && !errors.Is(err, context.Canceled) {
			s.log.Errorw("status_feed_listener_stopped", "err", err)
		}
	}()
	go func() {
		defer s.wg.Done()
		s.consume(ctx, changes)
	}()

	s.log.Infow("status_feed_started", "buffer", s.buffer)
	return nil
}

// Stop cancels the pipeline and waits for both goroutines to exit. Safe to call more than once.
func (s *StatusFeedService) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	s.wg.Wait()
	s.setSubscribed(false)
	s.log.Infow("status_feed_stopped")
}

// Subscribed reports whether the change feed subscription is currently established.
func (s *StatusFeedService) Subscribed() bool {
	return s.subscribed.Load()
}

func (s *StatusFeedService) setSubscribed(up bool) {
	s.subscribed.Store(up)
	if up {
		s.metrics.FeedSubscribed.Set(1)
	} else {
		s.metrics.FeedSubscribed.Set(0)
	}
}

func (s *StatusFeedService) consume(ctx context.Context, changes <-chan repository.RawChange) {
	for {
		select {
		case <-ctx.Done():
			return
		case rc, ok := <-changes:
			if !ok {
				return
			}
			s.handle(ctx, rc)
		}
	}
}

func (s *StatusFeedService) handle(ctx context.Context, rc repository.RawChange) {
	s.metrics.ChangesReceived.Inc()

	change, err := models.ParseFlightChange(rc.Old, rc.New)
	if err != nil {
		s.metrics.ChangesDropped.WithLabelValues(metrics.ReasonMalformed).Inc()
		s.log.Debugw("feed_change_dropped", "reason", metrics.ReasonMalformed, "err", err)
		return
	}

	if !ShouldPublish(change) {
		s.metrics.ChangesDropped.WithLabelValues(metrics.ReasonFiltered).Inc()
		return
	}

	start := time.Now()
	ev, err := s.enricher.Enrich(ctx, change)
	s.metrics.EnrichDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.ChangesDropped.WithLabelValues(metrics.ReasonEnrichError).Inc()
		s.log.Warnw("feed_change_dropped", "reason", metrics.ReasonEnrichError, "status", change.CurrentStatus(), "err", err)
		return
	}

	s.metrics.EventsPublished.Inc()
	delivered := s.broker.Publish(ev)
	s.log.Debugw("flight_status_published",
		"flight_number", ev.FlightNumber,
		"status", ev.Status,
		"deliveries", delivered,
	)
}
