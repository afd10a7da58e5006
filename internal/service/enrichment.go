package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flight_booking/internal/models"
	"flight_booking/internal/repository"
)

// ErrIncompleteChange is returned when a change lacks the fields needed to identify the flight.
var ErrIncompleteChange = errors.New("change lacks flight identity")

// Enricher turns a publish-worthy change into a complete event.
// On error the change must be dropped, never published partially.
type Enricher interface {
	Enrich(ctx context.Context, ch models.FlightChange) (models.FlightStatusEvent, error)
}

// ShallowEnricher builds events purely from the change payload.
type ShallowEnricher struct {
	now func() time.Time
}

func NewShallowEnricher() *ShallowEnricher {
	return &ShallowEnricher{now: time.Now}
}

func (e *ShallowEnricher) Enrich(_ context.Context, ch models.FlightChange) (models.FlightStatusEvent, error) {
	row := ch.Current
	if row.FlightNumber == nil || *row.FlightNumber == "" {
		return models.FlightStatusEvent{}, ErrIncompleteChange
	}

	status := ch.CurrentStatus()
	ev := models.FlightStatusEvent{
		FlightID:      deref(row.ID),
		FlightNumber:  *row.FlightNumber,
		Airline:       deref(row.Airline),
		OriginID:      deref(row.OriginID),
		DestinationID: deref(row.DestinationID),
		DepartureTime: utcPtr(row.DepartureTime),
		ArrivalTime:   utcPtr(row.ArrivalTime),
		Duration:      deref(row.Duration),
		Status:        status,
		UpdatedAt:     e.now().UTC(),
		Message:       StatusMessage(status, *row.FlightNumber),
	}
	return ev, nil
}

// DeepEnricher re-reads the full flight row by id before building the event.
type DeepEnricher struct {
	flights repository.FlightRepo
	now     func() time.Time
}

func NewDeepEnricher(flights repository.FlightRepo) *DeepEnricher {
	return &DeepEnricher{flights: flights, now: time.Now}
}

func (e *DeepEnricher) Enrich(ctx context.Context, ch models.FlightChange) (models.FlightStatusEvent, error) {
	if ch.Current.ID == nil || *ch.Current.ID == "" {
		return models.FlightStatusEvent{}, ErrIncompleteChange
	}
	id := *ch.Current.ID

	f, err := e.flights.GetByID(ctx, id)
	if err != nil {
		return models.FlightStatusEvent{}, fmt.Errorf("read flight %s: %w", id, err)
	}
	if f == nil {
		return models.FlightStatusEvent{}, fmt.Errorf("read flight %s: %w", id, ErrFlightNotFound)
	}

	// the transition being announced is the one in the change, even if the row moved on
	status := ch.CurrentStatus()
	updatedAt := e.now()
	switch {
	case ch.Current.StatusUpdatedAt != nil:
		updatedAt = *ch.Current.StatusUpdatedAt
	case f.StatusUpdatedAt != nil:
		updatedAt = *f.StatusUpdatedAt
	}
	return eventFromFlight(*f, status, updatedAt), nil
}

// eventFromFlight builds an event from a full flight row.
func eventFromFlight(f models.Flight, status models.FlightStatus, updatedAt time.Time) models.FlightStatusEvent {
	dep := f.DepartureTime.UTC()
	arr := f.ArrivalTime.UTC()
	return models.FlightStatusEvent{
		FlightID:      f.ID,
		FlightNumber:  f.FlightNumber,
		Airline:       f.Airline,
		OriginID:      f.OriginID,
		DestinationID: f.DestinationID,
		DepartureTime: &dep,
		ArrivalTime:   &arr,
		Duration:      f.Duration,
		Status:        status,
		UpdatedAt:     updatedAt.UTC(),
		Message:       StatusMessage(status, f.FlightNumber),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
