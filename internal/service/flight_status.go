package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"flight_booking/internal/logger"
	"flight_booking/internal/models"
	"flight_booking/internal/repository"
)

// ErrFlightNotFound is returned when no flight matches the requested flight number.
var ErrFlightNotFound = errors.New("flight not found")

// FlightStatusService serves point reads and status writes keyed by flight number.
// Writes never publish; subscribers learn about them through the change feed.
type FlightStatusService struct {
	flights repository.FlightRepo
	log     *logger.Logger
	now     func() time.Time
}

func NewFlightStatusService(flights repository.FlightRepo, log *logger.Logger) *FlightStatusService {
	if log == nil {
		log = logger.Nop()
	}
	return &FlightStatusService{flights: flights, log: log, now: time.Now}
}

// GetCurrentStatus returns a snapshot of the stored row for flightNumber.
func (s *FlightStatusService) GetCurrentStatus(ctx context.Context, flightNumber string) (*models.FlightStatusEvent, error) {
	flightNumber = strings.TrimSpace(flightNumber)
	if flightNumber == "" {
		return nil, ErrFlightNotFound
	}

	f, err := s.flights.GetByFlightNumber(ctx, flightNumber)
	if err != nil {
		return nil, fmt.Errorf("get flight %s: %w", flightNumber, err)
	}
	if f == nil {
		return nil, ErrFlightNotFound
	}

	updatedAt := s.now()
	if f.StatusUpdatedAt != nil {
		updatedAt = *f.StatusUpdatedAt
	}
	ev := eventFromFlight(*f, f.Status, updatedAt)
	return &ev, nil
}

// UpdateStatus looks the flight up by number and writes the new status with a fresh timestamp.
// An unknown flight fails with ErrFlightNotFound before any write is issued.
func (s *FlightStatusService) UpdateStatus(ctx context.Context, flightNumber string, status models.FlightStatus, additionalInfo string) error {
	if !status.Valid() {
		return models.ErrInvalidStatus
	}
	flightNumber = strings.TrimSpace(flightNumber)
	if flightNumber == "" {
		return ErrFlightNotFound
	}

	f, err := s.flights.GetByFlightNumber(ctx, flightNumber)
	if err != nil {
		return fmt.Errorf("lookup flight %s: %w", flightNumber, err)
	}
	if f == nil {
		return ErrFlightNotFound
	}

	at := s.now().UTC()
	updated, err := s.flights.UpdateStatus(ctx, f.ID, status, at)
	if err != nil {
		return fmt.Errorf("write flight %s status: %w", flightNumber, err)
	}
	if !updated {
		// row vanished between lookup and write
		return ErrFlightNotFound
	}

	s.log.Infow("flight_status_updated",
		"flight_number", flightNumber,
		"flight_id", f.ID,
		"from", f.Status,
		"to", status,
		"additional_info", additionalInfo,
	)
	return nil
}
