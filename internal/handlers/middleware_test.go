package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	fb "flight_booking"
	"flight_booking/internal/service"

	"github.com/gin-gonic/gin"
)

// whoamiRouter exposes the caller id stored by the middleware.
func whoamiRouter(auth service.Authorization) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(&service.Service{Authorization: auth}, nil)
	r := gin.New()
	r.GET("/whoami", h.userIdMiddleware, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetInt(userIDKey)})
	})
	return r
}

func TestUserIDMiddleware_Rejections(t *testing.T) {
	cases := []struct {
		name      string
		header    string
		parseErr  error
		wantMsg   string
		wantParse bool
	}{
		{name: "missing header", wantMsg: "missing Authorization header"},
		{name: "basic scheme", header: "Basic b3BzOnB3", wantMsg: "invalid Authorization header format"},
		{name: "lowercase bearer", header: "bearer tok", wantMsg: "invalid Authorization header format"},
		{name: "scheme only", header: "Bearer", wantMsg: "invalid Authorization header format"},
		{name: "blank token", header: "Bearer    ", wantMsg: "invalid Authorization header format"},
		{name: "rejected token", header: "Bearer stale", parseErr: service.ErrInvalidToken, wantMsg: "invalid or expired token", wantParse: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{parseErr: tc.parseErr}
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set(authorizationHeader, tc.header)
			}
			whoamiRouter(auth).ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status=%d, want 401 (body=%s)", w.Code, w.Body.String())
			}
			var out fb.ErrorResponse
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out.Error != tc.wantMsg {
				t.Fatalf("error=%q, want %q", out.Error, tc.wantMsg)
			}
			if parsed := auth.lastParseToken != ""; parsed != tc.wantParse {
				t.Fatalf("ParseToken called=%v, want %v", parsed, tc.wantParse)
			}
		})
	}
}

func TestUserIDMiddleware_StoresCallerID(t *testing.T) {
	auth := &mockAuth{parseID: 123}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(authorizationHeader, "Bearer  good-token ")
	whoamiRouter(auth).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		UserID int `json:"userId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.UserID != 123 {
		t.Fatalf("userId=%d, want 123", resp.UserID)
	}
	if auth.lastParseToken != "good-token" {
		t.Fatalf("ParseToken got %q, want %q", auth.lastParseToken, "good-token")
	}
}
