package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrMalformedChange marks a change payload that cannot describe a flight row.
var ErrMalformedChange = errors.New("malformed flight change payload")

// FlightRow is a flights row as carried by a change notification.
// Every field is optional: a nil pointer means the column was absent from the payload.
type FlightRow struct {
	ID              *string    `json:"id"`
	FlightNumber    *string    `json:"flight_number"`
	Airline         *string    `json:"airline"`
	OriginID        *string    `json:"origin_id"`
	DestinationID   *string    `json:"destination_id"`
	DepartureTime   *time.Time `json:"departure_time"`
	ArrivalTime     *time.Time `json:"arrival_time"`
	Duration        *string    `json:"duration"`
	Status          *string    `json:"status"`
	StatusUpdatedAt *time.Time `json:"status_updated_at"`
}

// FlightChange is a typed before/after pair for one UPDATE on the flights table.
type FlightChange struct {
	Previous *FlightRow // nil when the store delivered no prior snapshot
	Current  FlightRow
}

// CurrentStatus returns the new status, or "" when absent.
func (c FlightChange) CurrentStatus() FlightStatus {
	if c.Current.Status == nil {
		return ""
	}
	return FlightStatus(*c.Current.Status)
}

// PreviousStatus returns the prior status and whether one was present.
func (c FlightChange) PreviousStatus() (FlightStatus, bool) {
	if c.Previous == nil || c.Previous.Status == nil {
		return "", false
	}
	return FlightStatus(*c.Previous.Status), true
}

// ParseFlightChange decodes the raw old/new row snapshots of a change notification.
// A missing or null old row yields a nil Previous; a missing new row is malformed.
func ParseFlightChange(oldRow, newRow json.RawMessage) (FlightChange, error) {
	if isAbsent(newRow) {
		return FlightChange{}, ErrMalformedChange
	}

	var ch FlightChange
	if err := json.Unmarshal(newRow, &ch.Current); err != nil {
		return FlightChange{}, fmt.Errorf("%w: new row: %v", ErrMalformedChange, err)
	}

	if !isAbsent(oldRow) {
		var prev FlightRow
		if err := json.Unmarshal(oldRow, &prev); err != nil {
			return FlightChange{}, fmt.Errorf("%w: old row: %v", ErrMalformedChange, err)
		}
		ch.Previous = &prev
	}
	return ch, nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("{}"))
}
