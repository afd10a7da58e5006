package models

import "time"

// Flight is a full row of the flights table.
type Flight struct {
	ID              string       `json:"id"`
	FlightNumber    string       `json:"flightNumber"`
	Airline         string       `json:"airline"`
	OriginID        string       `json:"originId"`
	DestinationID   string       `json:"destinationId"`
	DepartureTime   time.Time    `json:"departureTime"`
	ArrivalTime     time.Time    `json:"arrivalTime"`
	Duration        string       `json:"duration"` // e.g. "8h 15m"
	Status          FlightStatus `json:"status"`
	StatusUpdatedAt *time.Time   `json:"statusUpdatedAt,omitempty"`
}

// FlightFilter narrows List queries. Zero fields are ignored.
type FlightFilter struct {
	OriginID      string
	DestinationID string
	Status        FlightStatus
	DepartureFrom time.Time // inclusive
	DepartureTo   time.Time // inclusive
}
