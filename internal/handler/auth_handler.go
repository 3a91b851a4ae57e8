package handler

import (
	"net/http"

	"care-doc-assistant/internal/domain"
	apperrors "care-doc-assistant/pkg/errors"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	logger domain.Logger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(logger domain.Logger) *AuthHandler {
	return &AuthHandler{logger: logger}
}

// ValidateToken echoes the user resolved by AuthMiddleware so clients can
// check a session before uploading documents.
func (h *AuthHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeAppError(w, r, h.logger, apperrors.NewUnauthorizedError("User not found in context"))
		return
	}
	writeJSON(w, http.StatusOK, user)
}
