package models

import "time"

// FlightStatusEvent is a self-contained status update delivered to subscribers.
// It is built once per publish-worthy transition and never mutated afterwards.
type FlightStatusEvent struct {
	FlightID      string       `json:"flightId"`
	FlightNumber  string       `json:"flightNumber"`
	Airline       string       `json:"airline,omitempty"`
	OriginID      string       `json:"originId,omitempty"`
	DestinationID string       `json:"destinationId,omitempty"`
	DepartureTime *time.Time   `json:"departureTime,omitempty"`
	ArrivalTime   *time.Time   `json:"arrivalTime,omitempty"`
	Duration      string       `json:"duration,omitempty"`
	Status        FlightStatus `json:"status"`
	UpdatedAt     time.Time    `json:"updatedAt"`
	Message       string       `json:"message"`
}
