package flight_booking

// StatusUpdateRequest is the body of POST /flight-status/{flightNumber}/status.
type StatusUpdateRequest struct {
	// One of SCHEDULED, BOARDING, DEPARTED, IN_AIR, LANDED, DELAYED, CANCELLED
	Status string `json:"status" binding:"required" example:"BOARDING"`
	// Free-form note recorded with the command
	AdditionalInfo *string `json:"additionalInfo,omitempty" example:"Gate changed to B7"`
}

// StatusUpdateResult reports the outcome of a status command.
type StatusUpdateResult struct {
	Success bool   `json:"success"`
	Message string `json:"message" example:"Flight status updated to BOARDING"`
}

// ErrorResponse is the generic error body.
type ErrorResponse struct {
	Error string `json:"error" example:"flight not found"`
}

// HealthResponse reports process liveness and the change feed subscription state.
type HealthResponse struct {
	Status         string `json:"status" example:"ok"`
	FeedSubscribed bool   `json:"feed_subscribed"`
	Subscribers    int    `json:"subscribers"`
}

// Credentials is the body of both auth endpoints.
type Credentials struct {
	Username string `json:"username" binding:"required" example:"ops"`
	Password string `json:"password" binding:"required" example:"s3cr3t"`
}

// SignUpResponse carries the id of the new operator.
type SignUpResponse struct {
	ID int `json:"id" example:"1"`
}

// TokenResponse carries a bearer token for the status command.
type TokenResponse struct {
	Token string `json:"token"`
}
