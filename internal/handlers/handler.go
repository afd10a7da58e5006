package handlers

import (
	"net/http"
	"time"

	"flight_booking/internal/logger"
	"flight_booking/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const defaultHeartbeat = 15 * time.Second

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services  *service.Service
	log       *logger.Logger
	heartbeat time.Duration
	metrics   http.Handler
}

// Option customizes a Handler.
type Option func(*Handler)

// WithHeartbeat sets the keep-alive interval of stream responses.
func WithHeartbeat(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.heartbeat = d
		}
	}
}

// WithMetricsHandler exposes m on GET /metrics.
func WithMetricsHandler(m http.Handler) Option {
	return func(h *Handler) { h.metrics = m }
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{services: services, log: log, heartbeat: defaultHeartbeat}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics))
	}

	// Auth endpoints
	h.registerAuthRoutes(router)

	h.registerFlightStatusRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerFlightStatusRoutes(r *gin.Engine) {
	fs := r.Group("/flight-status")
	{
		// Server-Sent Events
		fs.GET("/updates", h.streamAllUpdates)
		fs.GET("/updates/:flightNumber", h.streamFlightUpdates)

		// WebSocket variant of the same streams
		fs.GET("/ws", h.wsAllUpdates)
		fs.GET("/ws/:flightNumber", h.wsFlightUpdates)

		fs.GET("/:flightNumber", h.getFlightStatus)
		// Body example: {"status":"BOARDING","additionalInfo":"Gate B7"}
		fs.POST("/:flightNumber/status", h.userIdMiddleware, h.updateFlightStatus)
	}
}
