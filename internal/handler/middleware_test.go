package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"care-doc-assistant/internal/domain"
)

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	authService := &mockAuthService{}
	logger := NewMockHandlerLogger()

	middleware := NewAuthMiddleware(authService, logger).Middleware
	h := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("expected handler not to be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Authorization header required") {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}

func TestAuthMiddleware_InvalidFormat(t *testing.T) {
	authService := &mockAuthService{}
	logger := NewMockHandlerLogger()

	middleware := NewAuthMiddleware(authService, logger).Middleware
	h := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("expected handler not to be called")
	}))

	for _, header := range []string{"Token abc", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rr := httptest.NewRecorder()

		h.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%q: expected status %d, got %d", header, http.StatusUnauthorized, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "Invalid authorization header format") {
			t.Fatalf("%q: unexpected response body: %s", header, rr.Body.String())
		}
	}
}

func TestAuthMiddleware_EmptyToken(t *testing.T) {
	authService := &mockAuthService{}
	logger := NewMockHandlerLogger()

	middleware := NewAuthMiddleware(authService, logger).Middleware
	h := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("expected handler not to be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer   ")
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Token required") {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	authService := &mockAuthService{err: errors.New("invalid token")}
	logger := NewMockHandlerLogger()

	middleware := NewAuthMiddleware(authService, logger).Middleware
	h := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("expected handler not to be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad")
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Invalid token") {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
	if authService.lastToken != "bad" {
		t.Fatalf("expected token bad to be validated, got %q", authService.lastToken)
	}
}

func TestAuthMiddleware_ErrorBodyCarriesTypeAndRequestID(t *testing.T) {
	authService := &mockAuthService{err: errors.New("invalid token")}
	logger := NewMockHandlerLogger()

	h := RequestIDMiddleware(NewAuthMiddleware(authService, logger).Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("expected handler not to be called")
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad")
	req.Header.Set("X-Request-ID", "req-auth-1")
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
	var body errorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Error != "Invalid token" || body.Type != "unauthorized" || body.RequestID != "req-auth-1" {
		t.Fatalf("unexpected error body: %+v", body)
	}
}

func TestAuthMiddleware_Success(t *testing.T) {
	authService := &mockAuthService{user: &domain.SupabaseUser{ID: "user-1", Email: "test@example.com"}}
	logger := NewMockHandlerLogger()

	called := false
	middleware := NewAuthMiddleware(authService, logger).Middleware
	h := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		user, ok := GetUserFromContext(r)
		if !ok || user.ID != "user-1" {
			t.Fatalf("expected user in context")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer good")
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !called {
		t.Fatalf("expected next handler to be called")
	}
	if authService.lastToken != "good" {
		t.Fatalf("expected token good, got %q", authService.lastToken)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = domain.RequestIDFromContext(r.Context())
	}))

	// Incoming id is kept.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if seen != "abc-123" {
		t.Fatalf("expected request id abc-123 in context, got %q", seen)
	}
	if rr.Header().Get("X-Request-ID") != "abc-123" {
		t.Fatalf("expected request id header to be echoed, got %q", rr.Header().Get("X-Request-ID"))
	}

	// Missing id is generated.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if len(seen) != 36 {
		t.Fatalf("expected generated uuid, got %q", seen)
	}
	if rr.Header().Get("X-Request-ID") != seen {
		t.Fatalf("expected header %q to match context id %q", rr.Header().Get("X-Request-ID"), seen)
	}
}

func TestLoggingMiddleware_RecordsStatus(t *testing.T) {
	logger := NewMockHandlerLogger()
	h := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status %d, got %d", http.StatusTeapot, rr.Code)
	}
	if logger.infos != 1 {
		t.Fatalf("expected one request log line, got %d", logger.infos)
	}
}
