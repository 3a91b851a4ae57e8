package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"care-doc-assistant/internal/domain"
	apperrors "care-doc-assistant/pkg/errors"
)

type contextKey string

const (
	userContextKey contextKey = "user"
)

// GetUserFromContext extracts the authenticated user from request context
func GetUserFromContext(r *http.Request) (*domain.SupabaseUser, bool) {
	user, ok := r.Context().Value(userContextKey).(*domain.SupabaseUser)
	return user, ok
}

type errorResponse struct {
	Error     string `json:"error"`
	Type      string `json:"type,omitempty"`
	Details   string `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// writeAppError maps err onto the AppError taxonomy and writes it.
func writeAppError(w http.ResponseWriter, r *http.Request, logger domain.Logger, err error) {
	appErr := toAppError(err)
	if appErr.StatusCode >= http.StatusInternalServerError {
		logger.Error("Request failed", err, "path", r.URL.Path, "request_id", domain.RequestIDFromContext(r.Context()))
	}
	writeJSON(w, appErr.StatusCode, errorResponse{
		Error:     appErr.Message,
		Type:      string(appErr.Type),
		Details:   appErr.Details,
		RequestID: domain.RequestIDFromContext(r.Context()),
	})
}

func toAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, domain.ErrRecognizerUnavailable):
		return apperrors.NewUnavailableError("Medication recognizer unavailable", err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewUnavailableError("Analysis timed out", err)
	case errors.Is(err, domain.ErrInvalidToken):
		return apperrors.NewUnauthorizedError("Invalid token")
	default:
		return apperrors.NewInternalError("Internal server error", err)
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func writeMarkdown(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(body))
}
