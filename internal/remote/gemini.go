// Package remote summarizes clinical notes with a hosted Gemini model.
package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"care-doc-assistant/internal/domain"

	"google.golang.org/genai"
)

// Messages returned by Summarize in place of a summary.
const (
	NotConfiguredMessage = "Remote analysis API key not configured"
	ErrorPrefix          = "Remote analysis error: "
)

const (
	BackendGemini = "gemini"
	BackendVertex = "vertex"

	defaultModel     = "gemini-2.0-flash"
	defaultTimeout   = 45 * time.Second
	temperature      = 0.2
	maxOutputTokens  = 500
	systemPromptText = "You are a clinical documentation assistant. Analyze the following nursing note. Identify:\n" +
		"1. Key care protocols needed (bullet points)\n" +
		"2. Medications mentioned (comma separated)\n" +
		"3. Critical warnings (if any)\n" +
		"4. Potential documentation gaps.\n" +
		"Format using markdown. Be concise."
)

// Config selects the model and backend.
type Config struct {
	APIKey   string
	Model    string
	Backend  string // "gemini" (API key) or "vertex" (project + location, ADC)
	Project  string
	Location string
	Timeout  time.Duration
}

func (c Config) credentialed() bool {
	if c.Backend == BackendVertex {
		return c.Project != "" && c.Location != ""
	}
	return c.APIKey != ""
}

// generator is satisfied by *genai.Models.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiAnalyzer implements domain.RemoteAnalyzer.
type GeminiAnalyzer struct {
	cfg    Config
	gen    generator
	logger domain.Logger
}

// NewGeminiAnalyzer builds an analyzer. Missing credentials are not an error;
// the analyzer reports itself unavailable instead.
func NewGeminiAnalyzer(ctx context.Context, cfg Config, logger domain.Logger) (*GeminiAnalyzer, error) {
	cfg = withDefaults(cfg)
	if !cfg.credentialed() {
		logger.Info("Remote analysis disabled: no credentials configured", "backend", cfg.Backend)
		return &GeminiAnalyzer{cfg: cfg, logger: logger}, nil
	}

	cc := &genai.ClientConfig{Backend: genai.BackendGeminiAPI, APIKey: cfg.APIKey}
	if cfg.Backend == BackendVertex {
		cc = &genai.ClientConfig{
			Backend:  genai.BackendVertexAI,
			Project:  cfg.Project,
			Location: cfg.Location,
		}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	logger.Info("Remote analysis enabled", "backend", cfg.Backend, "model", cfg.Model)
	return newWithGenerator(cfg, client.Models, logger), nil
}

func newWithGenerator(cfg Config, gen generator, logger domain.Logger) *GeminiAnalyzer {
	return &GeminiAnalyzer{cfg: withDefaults(cfg), gen: gen, logger: logger}
}

func withDefaults(cfg Config) Config {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendGemini
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return cfg
}

// Available reports whether a credential is configured.
func (a *GeminiAnalyzer) Available() bool {
	return a.gen != nil && a.cfg.credentialed()
}

// Summarize asks the model for a markdown review of text. Failures come back
// as descriptive strings, never as errors.
func (a *GeminiAnalyzer) Summarize(ctx context.Context, text string) string {
	if !a.Available() {
		return NotConfiguredMessage
	}
	if utf8.RuneCountInString(text) < domain.MinTextLength {
		return domain.InsufficientTextMessage
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	start := time.Now()
	result, err := a.gen.GenerateContent(ctx, a.cfg.Model,
		[]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPromptText, genai.RoleUser),
			Temperature:       genai.Ptr[float32](temperature),
			MaxOutputTokens:   maxOutputTokens,
		},
	)
	if err != nil {
		a.logger.Error("Remote analysis failed", err, "model", a.cfg.Model,
			"timeout", errors.Is(err, context.DeadlineExceeded))
		return ErrorPrefix + err.Error()
	}

	summary := strings.TrimSpace(result.Text())
	if summary == "" {
		a.logger.Warn("Remote analysis returned empty response", "model", a.cfg.Model)
		return ErrorPrefix + "empty response"
	}

	a.logger.Info("Remote analysis completed",
		"model", a.cfg.Model,
		"characters", len(summary),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return summary
}
