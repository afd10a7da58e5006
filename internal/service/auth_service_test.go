package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"
	"testing"
	"time"

	"flight_booking/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const testSigningKey = "test-signing-key"

// stubUserRepo is an in-memory repository.Authorization keyed by username.
type stubUserRepo struct {
	users     map[string]*models.User
	createErr error
	lookupErr error
	nextID    int

	created []string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*models.User{}, nextID: 1}
}

func (r *stubUserRepo) Create(_ context.Context, username, hash string) (int, error) {
	r.created = append(r.created, username)
	if r.createErr != nil {
		return 0, r.createErr
	}
	if _, ok := r.users[username]; ok {
		return 0, fmt.Errorf("insert user %q: %w", username, ErrUsernameTaken)
	}
	id := r.nextID
	r.nextID++
	r.users[username] = &models.User{ID: id, Username: username, PasswordHash: hash}
	return id, nil
}

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	return r.users[username], nil
}

func signWith(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims, userID int) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(method, &Claims{RegisteredClaims: claims, UserID: userID}).SignedString(key)
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}
	return tok
}

func TestAuthService_SignUpThenSignIn(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testSigningKey, time.Hour)
	ctx := context.Background()

	id, err := svc.SignUp(ctx, "  ops ", "s3cr3t")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	stored := repo.users["ops"]
	if stored == nil {
		t.Fatalf("expected trimmed username to be stored, got %v", repo.created)
	}
	if stored.PasswordHash == "s3cr3t" || verifyPassword(stored.PasswordHash, "s3cr3t") != nil {
		t.Fatalf("stored value is not a bcrypt hash of the password")
	}

	token, err := svc.GenerateToken(ctx, "ops", "s3cr3t")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	uid, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if uid != id {
		t.Fatalf("token user id=%d, want %d", uid, id)
	}
}

func TestAuthService_SignUpErrors(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		password  string
		createErr error
		seed      bool
		wantErr   error
		wantWrite bool
	}{
		{name: "empty username", username: "  ", password: "pw", wantErr: ErrInvalidUsername},
		{name: "empty password", username: "ops", password: "   ", wantErr: ErrInvalidPassword},
		{name: "taken", username: "ops", password: "pw", seed: true, wantErr: ErrUsernameTaken, wantWrite: true},
		{name: "store error", username: "ops", password: "pw", createErr: errors.New("db down"), wantWrite: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubUserRepo()
			if tt.seed {
				repo.users["ops"] = &models.User{ID: 9, Username: "ops"}
			}
			repo.createErr = tt.createErr
			svc := NewAuthService(repo, testSigningKey, time.Hour)

			_, err := svc.SignUp(context.Background(), tt.username, tt.password)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if wrote := len(repo.created) > 0; wrote != tt.wantWrite {
				t.Fatalf("Create called=%v, want %v", wrote, tt.wantWrite)
			}
		})
	}
}

func TestAuthService_GenerateTokenErrors(t *testing.T) {
	hash, err := hashPassword("correct")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}

	tests := []struct {
		name      string
		username  string
		password  string
		lookupErr error
		wantErr   error
	}{
		{name: "unknown user", username: "ghost", password: "correct", wantErr: ErrUserNotFound},
		{name: "wrong password", username: "ops", password: "wrong", wantErr: ErrInvalidPassword},
		{name: "store error", username: "ops", password: "correct", lookupErr: errors.New("query failed")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubUserRepo()
			repo.users["ops"] = &models.User{ID: 1, Username: "ops", PasswordHash: hash}
			repo.lookupErr = tt.lookupErr
			svc := NewAuthService(repo, testSigningKey, time.Hour)

			token, err := svc.GenerateToken(context.Background(), tt.username, tt.password)
			if err == nil || token != "" {
				t.Fatalf("expected error and no token, got %q, %v", token, err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.lookupErr != nil && !errors.Is(err, tt.lookupErr) {
				t.Fatalf("expected store error to pass through, got %v", err)
			}
		})
	}
}

func TestAuthService_IssuedTokenClaims(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testSigningKey, 2*time.Minute)

	parse := func(tok string) *Claims {
		claims := &Claims{}
		if _, err := jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(testSigningKey), nil
		}); err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		return claims
	}

	a, err := svc.issueToken(8)
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}
	b, err := svc.issueToken(8)
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}
	ca, cb := parse(a), parse(b)

	if ca.Issuer != tokenIssuer || ca.Subject != "8" || ca.UserID != 8 {
		t.Fatalf("unexpected claims: %+v", ca)
	}
	if ttl := ca.ExpiresAt.Sub(ca.IssuedAt.Time); ttl != 2*time.Minute {
		t.Fatalf("expected 2m ttl, got %v", ttl)
	}
	if ca.ID == "" || ca.ID == cb.ID {
		t.Fatalf("expected distinct token ids, got %q and %q", ca.ID, cb.ID)
	}
}

func TestAuthService_ParseTokenRejects(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testSigningKey, time.Hour)
	now := time.Now()
	valid := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   "5",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey failed: %v", err)
	}

	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Hour))
	expired.IssuedAt = jwt.NewNumericDate(now.Add(-2 * time.Hour))

	foreign := valid
	foreign.Issuer = "someone-else"

	noExpiry := valid
	noExpiry.ExpiresAt = nil

	mismatched := valid
	mismatched.Subject = "6"

	other := NewAuthService(newStubUserRepo(), "other-key", time.Hour)
	otherTok, err := other.issueToken(5)
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"malformed", "not-a-jwt"},
		{"other signing key", otherTok},
		{"expired", signWith(t, jwt.SigningMethodHS256, []byte(testSigningKey), expired, 5)},
		{"foreign issuer", signWith(t, jwt.SigningMethodHS256, []byte(testSigningKey), foreign, 5)},
		{"missing expiry", signWith(t, jwt.SigningMethodHS256, []byte(testSigningKey), noExpiry, 5)},
		{"subject mismatch", signWith(t, jwt.SigningMethodHS256, []byte(testSigningKey), mismatched, 5)},
		{"rsa signed", signWith(t, jwt.SigningMethodRS256, rsaKey, valid, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uid, err := svc.ParseToken(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got uid=%d err=%v", uid, err)
			}
		})
	}

	if uid, err := svc.ParseToken(signWith(t, jwt.SigningMethodHS256, []byte(testSigningKey), valid, 5)); err != nil || uid != 5 {
		t.Fatalf("valid token: uid=%d err=%v", uid, err)
	}
}

func TestNewAuthService_DefaultTTL(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testSigningKey, 0)
	if svc.tokenTTL != defaultTokenTTL {
		t.Fatalf("tokenTTL=%v, want %v", svc.tokenTTL, defaultTokenTTL)
	}
}
