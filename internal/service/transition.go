package service

import "flight_booking/internal/models"

// ShouldPublish reports whether a change is a publish-worthy transition:
// the new status is present and not SCHEDULED, and differs from the previous
// status when one is known. A change without a prior snapshot passes.
func ShouldPublish(ch models.FlightChange) bool {
	current := ch.CurrentStatus()
	if current == "" || current == models.StatusScheduled {
		return false
	}
	previous, ok := ch.PreviousStatus()
	return !ok || previous != current
}
