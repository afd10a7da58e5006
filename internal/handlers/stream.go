package handlers

import (
	"io"
	"net/http"
	"time"

	"flight_booking/internal/notify"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
)

const (
	// streamEventType tags every delivered status event.
	streamEventType = "message"
	sseKeepAlive    = ": keep-alive\n\n"
)

// @Summary      Stream all flight status updates
// @Description  Server-Sent Events. Each event carries id=<flight number>, event=message and the status event as JSON data.
// @Tags         flight-status
// @Produce      text/event-stream
// @Success      200  {object}  models.FlightStatusEvent
// @Router       /flight-status/updates [get]
func (h *Handler) streamAllUpdates(c *gin.Context) {
	h.serveSSE(c, h.services.SubscribeAll())
}

// @Summary      Stream status updates for one flight
// @Tags         flight-status
// @Produce      text/event-stream
// @Param        flightNumber  path  string  true  "Flight number"
// @Success      200  {object}  models.FlightStatusEvent
// @Router       /flight-status/updates/{flightNumber} [get]
func (h *Handler) streamFlightUpdates(c *gin.Context) {
	h.serveSSE(c, h.services.SubscribeFiltered(c.Param("flightNumber")))
}

// serveSSE writes subscription events until the client goes away or the broker closes the subscription.
func (h *Handler) serveSSE(c *gin.Context, sub *notify.Subscription) {
	defer sub.Cancel()

	w := c.Writer
	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	if h.log != nil {
		h.log.Debugw("sse_subscribed", "subscription", sub.ID(), "flight_number", sub.Filter().FlightNumber)
	}

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.C():
			if !ok {
				return
			}
			if err := sse.Encode(w, sse.Event{Id: ev.FlightNumber, Event: streamEventType, Data: ev}); err != nil {
				if h.log != nil {
					h.log.Infow("sse_write_failed", "subscription", sub.ID(), "err", err)
				}
				return
			}
			w.Flush()
		case <-heartbeat.C:
			if _, err := io.WriteString(w, sseKeepAlive); err != nil {
				return
			}
			w.Flush()
		}
	}
}
