package models

import (
	"errors"
	"strings"
)

// FlightStatus is the operational state of a flight as stored in the flights table.
type FlightStatus string

const (
	StatusScheduled FlightStatus = "SCHEDULED"
	StatusBoarding  FlightStatus = "BOARDING"
	StatusDeparted  FlightStatus = "DEPARTED"
	StatusInAir     FlightStatus = "IN_AIR"
	StatusLanded    FlightStatus = "LANDED"
	StatusDelayed   FlightStatus = "DELAYED"
	StatusCancelled FlightStatus = "CANCELLED"
)

// ErrInvalidStatus is returned when a status string is outside the known set.
var ErrInvalidStatus = errors.New("invalid flight status")

// AllStatuses lists every known status in lifecycle order.
var AllStatuses = []FlightStatus{
	StatusScheduled,
	StatusBoarding,
	StatusDeparted,
	StatusInAir,
	StatusLanded,
	StatusDelayed,
	StatusCancelled,
}

// Valid reports whether s is one of the known statuses.
func (s FlightStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s FlightStatus) String() string { return string(s) }

// ParseFlightStatus trims and uppercases raw before validating it.
func ParseFlightStatus(raw string) (FlightStatus, error) {
	s := FlightStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
