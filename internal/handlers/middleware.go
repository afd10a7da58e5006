package handlers

import (
	"net/http"
	"strings"

	fb "flight_booking"

	"github.com/gin-gonic/gin"
)

const (
	authorizationHeader = "Authorization"
	bearerScheme        = "Bearer"
	userIDKey           = "userId"
)

// userIdMiddleware rejects the request before any handler runs unless it
// carries a valid bearer token; the caller id is stored under userIDKey.
func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader(authorizationHeader)
	if header == "" {
		h.abortUnauthorized(c, "missing Authorization header", nil)
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerScheme || strings.TrimSpace(parts[1]) == "" {
		h.abortUnauthorized(c, "invalid Authorization header format", nil)
		return
	}

	userId, err := h.services.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		h.abortUnauthorized(c, "invalid or expired token", err)
		return
	}

	c.Set(userIDKey, userId)
	c.Next()
}

func (h *Handler) abortUnauthorized(c *gin.Context, msg string, err error) {
	if h.log != nil {
		h.log.Infow("auth_rejected", "path", c.FullPath(), "reason", msg, "err", err)
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, fb.ErrorResponse{Error: msg})
}
