package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"care-doc-assistant/internal/config"
	"care-doc-assistant/internal/handler"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	ctx := context.Background()

	// Wiring
	container, err := config.NewContainer(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	analysisHandler := handler.NewAnalysisHandler(
		container.AnalysisService,
		container.Config.GetMaxFileSize(),
		container.Logger,
	)
	rulesHandler := handler.NewRulesHandler(container.Rules)

	var authMiddleware func(http.Handler) http.Handler
	if container.AuthService != nil {
		authMiddleware = handler.NewAuthMiddleware(container.AuthService, container.Logger).Middleware
	}

	// Router
	router := handler.NewRouter(
		analysisHandler,
		rulesHandler,
		handler.NewAuthHandler(container.Logger),
		authMiddleware,
		container.Config.GetAllowedOrigins(),
		container.Logger,
	)

	server := &http.Server{
		Addr:              ":" + container.Config.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server
	go func() {
		container.Logger.Info("Server listening",
			"address", server.Addr,
			"remote_analysis", container.RemoteAnalyzer.Available(),
			"auth", container.AuthService != nil,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			container.Logger.Error("Server failed to start", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	container.Logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("Graceful shutdown failed", err)
		_ = server.Close()
	}
	if err := container.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("Failed to flush traces", err)
	}

	container.Logger.Info("Server exited")
}
