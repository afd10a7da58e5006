package handlers

import (
	"context"
	"net/http"

	"flight_booking/internal/models"
	"flight_booking/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockFlightStatus struct {
	current    *models.FlightStatusEvent
	currentErr error
	updateErr  error

	lastGetFlight    string
	updateCalls      int
	lastUpdateFlight string
	lastUpdateStatus models.FlightStatus
	lastUpdateInfo   string
}

func (m *mockFlightStatus) GetCurrentStatus(ctx context.Context, flightNumber string) (*models.FlightStatusEvent, error) {
	m.lastGetFlight = flightNumber
	return m.current, m.currentErr
}

func (m *mockFlightStatus) UpdateStatus(ctx context.Context, flightNumber string, status models.FlightStatus, additionalInfo string) error {
	m.updateCalls++
	m.lastUpdateFlight = flightNumber
	m.lastUpdateStatus = status
	m.lastUpdateInfo = additionalInfo
	return m.updateErr
}

type stubFeed struct {
	subscribed bool
}

func (f *stubFeed) Start(context.Context) error { return nil }
func (f *stubFeed) Stop()                       {}
func (f *stubFeed) Subscribed() bool            { return f.subscribed }

var _ service.Feed = (*stubFeed)(nil)

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service, opts ...Option) *gin.Engine {
	h := NewHandler(s, nil, opts...)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
