package service

import (
	"context"
	"time"

	"flight_booking/internal/config"
	"flight_booking/internal/logger"
	"flight_booking/internal/metrics"
	"flight_booking/internal/models"
	"flight_booking/internal/notify"
	"flight_booking/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// FlightStatus exposes the point read and the status command, both keyed by flight number.
type FlightStatus interface {
	GetCurrentStatus(ctx context.Context, flightNumber string) (*models.FlightStatusEvent, error)
	UpdateStatus(ctx context.Context, flightNumber string, status models.FlightStatus, additionalInfo string) error
}

// Broker is the subscriber side of the notification hub.
type Broker interface {
	SubscribeAll() *notify.Subscription
	SubscribeFiltered(flightNumber string) *notify.Subscription
	Count() int
}

// Feed controls the change-feed pipeline lifecycle.
type Feed interface {
	Start(ctx context.Context) error
	Stop()
	Subscribed() bool
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	FlightStatus
	Broker
	Feed Feed
}

// Options carries the configuration the services need.
type Options struct {
	SigningKey string
	TokenTTL   time.Duration
	Enrichment string // config.EnrichmentDeep or config.EnrichmentShallow
	FeedBuffer int
	Log        *logger.Logger
	Metrics    *metrics.Metrics
}

// NewService wires the repository layer and the hub into concrete services.
func NewService(repos *repository.Repository, hub *notify.Hub, opts Options) *Service {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	var enricher Enricher = NewDeepEnricher(repos.Flights)
	if opts.Enrichment == config.EnrichmentShallow {
		enricher = NewShallowEnricher()
	}

	return &Service{
		Authorization: NewAuthService(repos.Auth, opts.SigningKey, opts.TokenTTL),
		FlightStatus:  NewFlightStatusService(repos.Flights, log.Named("flight_status")),
		Broker:        hub,
		Feed:          NewStatusFeedService(repos.Changes, enricher, hub, opts.FeedBuffer, log.Named("status_feed"), opts.Metrics),
	}
}
