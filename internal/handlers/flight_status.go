package handlers

import (
	"errors"
	"fmt"
	"net/http"

	fb "flight_booking"
	"flight_booking/internal/models"
	"flight_booking/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errFlightNotFound   = "flight not found"
	errGetFlightStatus  = "failed to load flight status"
	errUpdateStatusFail = "Failed to update flight status"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, fb.ErrorResponse{Error: userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  flight_booking.HealthResponse
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	resp := fb.HealthResponse{Status: statusOK}
	if h.services.Feed != nil {
		resp.FeedSubscribed = h.services.Feed.Subscribed()
	}
	if h.services.Broker != nil {
		resp.Subscribers = h.services.Broker.Count()
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Current flight status
// @Description  Point read of the stored row. Independent of the update stream.
// @Tags         flight-status
// @Produce      json
// @Param        flightNumber  path      string  true  "Flight number"  example(BA123)
// @Success      200  {object}  models.FlightStatusEvent
// @Failure      404  {object}  flight_booking.ErrorResponse
// @Failure      500  {object}  flight_booking.ErrorResponse
// @Router       /flight-status/{flightNumber} [get]
func (h *Handler) getFlightStatus(c *gin.Context) {
	flightNumber := c.Param("flightNumber")

	ev, err := h.services.GetCurrentStatus(c.Request.Context(), flightNumber)
	if err != nil {
		if errors.Is(err, service.ErrFlightNotFound) {
			c.JSON(http.StatusNotFound, fb.ErrorResponse{Error: errFlightNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errGetFlightStatus, "flight_status_get_failed", err, "flight_number", flightNumber)
		return
	}
	c.JSON(http.StatusOK, ev)
}

// @Summary      Update flight status
// @Description  Writes the status. Subscribers are notified through the change feed, not by this call.
// @Tags         flight-status
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        flightNumber  path      string                             true  "Flight number"
// @Param        body          body      flight_booking.StatusUpdateRequest  true  "new status"
// @Success      200  {object}  flight_booking.StatusUpdateResult
// @Failure      400  {object}  flight_booking.StatusUpdateResult
// @Failure      401  {object}  flight_booking.ErrorResponse
// @Failure      404  {object}  flight_booking.StatusUpdateResult
// @Failure      500  {object}  flight_booking.StatusUpdateResult
// @Router       /flight-status/{flightNumber}/status [post]
func (h *Handler) updateFlightStatus(c *gin.Context) {
	flightNumber := c.Param("flightNumber")

	var req fb.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, fb.StatusUpdateResult{Success: false, Message: "invalid body: " + err.Error()})
		return
	}

	status, err := models.ParseFlightStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, fb.StatusUpdateResult{Success: false, Message: fmt.Sprintf("invalid status %q", req.Status)})
		return
	}

	var info string
	if req.AdditionalInfo != nil {
		info = *req.AdditionalInfo
	}

	if err := h.services.UpdateStatus(c.Request.Context(), flightNumber, status, info); err != nil {
		if errors.Is(err, service.ErrFlightNotFound) {
			c.JSON(http.StatusNotFound, fb.StatusUpdateResult{Success: false, Message: fmt.Sprintf("Flight %s not found", flightNumber)})
			return
		}
		if h.log != nil {
			userID, _ := c.Get(userIDKey)
			h.log.Errorw("flight_status_update_failed", "err", err, "flight_number", flightNumber, "status", status, "user_id", userID)
		}
		c.JSON(http.StatusInternalServerError, fb.StatusUpdateResult{Success: false, Message: errUpdateStatusFail})
		return
	}

	c.JSON(http.StatusOK, fb.StatusUpdateResult{Success: true, Message: fmt.Sprintf("Flight status updated to %s", status)})
}
