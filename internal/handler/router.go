package handler

import (
	"net/http"

	"care-doc-assistant/internal/domain"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// NewRouter creates a new HTTP router with all routes configured.
// authMiddleware may be nil, which leaves /api/v1 open.
func NewRouter(
	analysisHandler *AnalysisHandler,
	rulesHandler *RulesHandler,
	authHandler *AuthHandler,
	authMiddleware func(http.Handler) http.Handler,
	allowedOrigins []string,
	logger domain.Logger,
) http.Handler {
	router := mux.NewRouter()
	router.Use(RequestIDMiddleware, LoggingMiddleware(logger))

	// Health check endpoint (no auth required)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Service: "care-doc-assistant"})
	}).Methods(http.MethodGet)

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()
	if authMiddleware != nil {
		api.Use(authMiddleware)
		api.HandleFunc("/auth/validate", authHandler.ValidateToken).Methods(http.MethodGet)
	}

	api.HandleFunc("/documents/extract", analysisHandler.ExtractDocument).Methods(http.MethodPost)
	api.HandleFunc("/documents/analyze", analysisHandler.AnalyzeDocument).Methods(http.MethodPost)
	api.HandleFunc("/notes/analyze", analysisHandler.AnalyzeNote).Methods(http.MethodPost)
	api.HandleFunc("/rules", rulesHandler.GetRules).Methods(http.MethodGet)

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			requestIDHeader,
		},
		ExposedHeaders: []string{
			requestIDHeader,
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
