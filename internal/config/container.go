package config

import (
	"context"
	"fmt"
	"time"

	"care-doc-assistant/internal/classifier"
	"care-doc-assistant/internal/domain"
	"care-doc-assistant/internal/extractor"
	"care-doc-assistant/internal/infra/supabase"
	"care-doc-assistant/internal/infra/telemetry"
	"care-doc-assistant/internal/recognizer"
	"care-doc-assistant/internal/remote"
	"care-doc-assistant/internal/service"
	"care-doc-assistant/pkg/logger"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Container holds all application dependencies
type Container struct {
	Config          domain.Config
	Logger          domain.Logger
	Rules           *classifier.RuleSet
	Classifier      domain.Classifier
	Extractor       domain.TextExtractor
	RemoteAnalyzer  domain.RemoteAnalyzer
	AnalysisService domain.AnalysisService
	SupabaseClient  domain.SupabaseClient
	AuthService     domain.AuthService       // nil when Supabase is not configured
	TracerProvider  *sdktrace.TracerProvider // nil when tracing is disabled
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context) (*Container, error) {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())
	return NewContainerWithConfig(ctx, config, appLogger)
}

// NewContainerWithConfig wires every component from an explicit config.
func NewContainerWithConfig(ctx context.Context, config domain.Config, appLogger domain.Logger) (*Container, error) {
	rules, err := classifier.LoadRules(config.GetRulesFile())
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	appLogger.Info("Rule table loaded",
		"protocols", len(rules.Protocols),
		"warnings", len(rules.Warnings),
		"critical_terms", len(rules.CriticalTerms),
	)

	// A lexicon that fails to load leaves the recognizer unavailable rather
	// than stopping the server; classification then reports 503.
	medRecognizer := recognizer.NewLexiconRecognizer(config.GetMedicationLexiconFile(), appLogger)
	ruleClassifier := classifier.New(rules, medRecognizer, appLogger)

	textExtractor := extractor.New(extractor.Config{
		Tesseract:     config.GetTesseractBin(),
		TesseractLang: config.GetTesseractLang(),
		TessdataDir:   config.GetTessdataDir(),
		DPI:           config.GetOCRDPI(),
		PageWorkers:   config.GetOCRPageWorkers(),
	}, appLogger)

	remoteAnalyzer, err := remote.NewGeminiAnalyzer(ctx, remote.Config{
		APIKey:   config.GetGeminiAPIKey(),
		Model:    config.GetGeminiModel(),
		Backend:  config.GetGenAIBackend(),
		Project:  config.GetGCPProjectID(),
		Location: config.GetGCPLocation(),
		Timeout:  time.Duration(config.GetRemoteAnalysisTimeout()) * time.Second,
	}, appLogger)
	if err != nil {
		return nil, fmt.Errorf("remote analyzer: %w", err)
	}

	tracerProvider, err := telemetry.NewTracerProvider(ctx, config.GetTracesExporter(), appLogger)
	if err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}

	analysisService := service.NewAnalysisService(ruleClassifier, textExtractor, remoteAnalyzer, appLogger)
	if tracerProvider != nil {
		otel.SetTracerProvider(tracerProvider)
		analysisService.WithTracer(tracerProvider.Tracer(service.TracerName))
	}

	c := &Container{
		Config:          config,
		Logger:          appLogger,
		Rules:           rules,
		Classifier:      ruleClassifier,
		Extractor:       textExtractor,
		RemoteAnalyzer:  remoteAnalyzer,
		AnalysisService: analysisService,
		TracerProvider:  tracerProvider,
	}

	supabaseClient := supabase.NewSupabaseClient(config, appLogger)
	c.SupabaseClient = supabaseClient
	if supabaseClient.IsConfigured() {
		if err := supabaseClient.Initialize(); err != nil {
			_ = c.Shutdown(ctx)
			return nil, fmt.Errorf("supabase: %w", err)
		}
		c.AuthService = service.NewAuthService(supabaseClient, appLogger)
	} else {
		appLogger.Warn("Supabase not configured; API is open to unauthenticated requests")
	}

	return c, nil
}

// Shutdown flushes pending spans.
func (c *Container) Shutdown(ctx context.Context) error {
	if c.TracerProvider == nil {
		return nil
	}
	return c.TracerProvider.Shutdown(ctx)
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}

// GetAnalysisService returns the analysis service instance
func (c *Container) GetAnalysisService() domain.AnalysisService {
	return c.AnalysisService
}

// GetAuthService returns the auth service, or nil when auth is disabled
func (c *Container) GetAuthService() domain.AuthService {
	return c.AuthService
}
