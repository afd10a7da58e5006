package service

import (
	"fmt"

	"flight_booking/internal/models"
)

// StatusMessage renders the passenger-facing text for a status.
// Unknown statuses fall back to a generic update message.
func StatusMessage(status models.FlightStatus, flightNumber string) string {
	switch status {
	case models.StatusBoarding:
		return fmt.Sprintf("Flight %s is now boarding. Please proceed to the gate.", flightNumber)
	case models.StatusDeparted:
		return fmt.Sprintf("Flight %s has departed.", flightNumber)
	case models.StatusInAir:
		return fmt.Sprintf("Flight %s is now in the air.", flightNumber)
	case models.StatusLanded:
		return fmt.Sprintf("Flight %s has landed at its destination.", flightNumber)
	case models.StatusDelayed:
		return fmt.Sprintf("Flight %s has been delayed. Please check with the airline for more information.", flightNumber)
	case models.StatusCancelled:
		return fmt.Sprintf("Flight %s has been cancelled. Please contact the airline for rebooking options.", flightNumber)
	default:
		return fmt.Sprintf("Flight %s status has been updated to %s.", flightNumber, status)
	}
}
