package handlers

import (
	"errors"
	"net/http"

	fb "flight_booking"
	"flight_booking/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errInvalidCredentials = "invalid credentials"
	errSignUpFailed       = "failed to register user"
	errSignInFailed       = "failed to issue token"
)

// bindCredentials writes a 400 and returns false when the body does not bind.
func (h *Handler) bindCredentials(c *gin.Context) (fb.Credentials, bool) {
	var input fb.Credentials
	if err := c.ShouldBindJSON(&input); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, fb.ErrorResponse{Error: err.Error()})
		return input, false
	}
	return input, true
}

// @Summary      Register an operator
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      flight_booking.Credentials  true  "credentials"
// @Success      200   {object}  flight_booking.SignUpResponse
// @Failure      400   {object}  flight_booking.ErrorResponse
// @Failure      409   {object}  flight_booking.ErrorResponse
// @Failure      500   {object}  flight_booking.ErrorResponse
// @Router       /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	input, ok := h.bindCredentials(c)
	if !ok {
		return
	}

	id, err := h.services.SignUp(c.Request.Context(), input.Username, input.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, fb.SignUpResponse{ID: id})
	case errors.Is(err, service.ErrInvalidUsername), errors.Is(err, service.ErrInvalidPassword):
		c.JSON(http.StatusBadRequest, fb.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusConflict, fb.ErrorResponse{Error: service.ErrUsernameTaken.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errSignUpFailed, "auth_sign_up_failed", err, "username", input.Username)
	}
}

// @Summary      Issue an access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      flight_booking.Credentials  true  "credentials"
// @Success      200   {object}  flight_booking.TokenResponse
// @Failure      400   {object}  flight_booking.ErrorResponse
// @Failure      401   {object}  flight_booking.ErrorResponse
// @Failure      500   {object}  flight_booking.ErrorResponse
// @Router       /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	input, ok := h.bindCredentials(c)
	if !ok {
		return
	}

	token, err := h.services.GenerateToken(c.Request.Context(), input.Username, input.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, fb.TokenResponse{Token: token})
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrInvalidPassword):
		if h.log != nil {
			h.log.Infow("auth_sign_in_rejected", "username", input.Username, "err", err)
		}
		c.JSON(http.StatusUnauthorized, fb.ErrorResponse{Error: errInvalidCredentials})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errSignInFailed, "auth_sign_in_failed", err, "username", input.Username)
	}
}
