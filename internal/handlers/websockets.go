package handlers

import (
	"net/http"
	"time"

	"flight_booking/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12 // 4 KB
)

// wsEnvelope mirrors the SSE frame: id is the flight number, data the event.
type wsEnvelope struct {
	ID   string      `json:"id,omitempty"`
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Upgrader for HTTP -> WebSocket.
var upgrader = websocket.Upgrader{
	// TODO: restrict to the booking frontend origins once they are configurable
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      WebSocket stream of all flight status updates
// @Tags         flight-status
// @Success      101
// @Router       /flight-status/ws [get]
func (h *Handler) wsAllUpdates(c *gin.Context) {
	h.serveWS(c, h.services.SubscribeAll)
}

// @Summary      WebSocket stream of one flight's status updates
// @Tags         flight-status
// @Param        flightNumber  path  string  true  "Flight number"
// @Success      101
// @Router       /flight-status/ws/{flightNumber} [get]
func (h *Handler) wsFlightUpdates(c *gin.Context) {
	flightNumber := c.Param("flightNumber")
	h.serveWS(c, func() *notify.Subscription {
		return h.services.SubscribeFiltered(flightNumber)
	})
}

func (h *Handler) serveWS(c *gin.Context, subscribe func() *notify.Subscription) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// subscribe only once the upgrade succeeded
	sub := subscribe()
	defer sub.Cancel()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.startReader(conn, done)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case ev, ok := <-sub.C():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// broker shut down
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
				return
			}
			if err := conn.WriteJSON(wsEnvelope{ID: ev.FlightNumber, Type: streamEventType, Data: ev}); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "subscription", sub.ID(), "err", err)
				}
				return
			}
		}
	}
}

// startReader drains client frames so pongs are processed; done closes on disconnect.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}
