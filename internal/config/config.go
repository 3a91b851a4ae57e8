package config

import (
	"os"
	"strconv"
	"strings"

	"care-doc-assistant/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort     string
	LogLevel       string
	TracesExporter string
	MaxFileSize    int64
	AllowedOrigins []string

	RulesFile             string
	MedicationLexiconFile string

	TesseractBin   string
	TesseractLang  string
	TessdataDir    string
	OCRDPI         int
	OCRPageWorkers int

	GeminiAPIKey          string
	GeminiModel           string
	GenAIBackend          string
	GCPProjectID          string
	GCPLocation           string
	RemoteAnalysisTimeout int // seconds

	SupabaseURL string
	SupabaseKey string
}

var defaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:4173",
	"http://localhost:3000",
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:     getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		TracesExporter: strings.ToLower(getEnvOrDefault("TRACES_EXPORTER", "log")),
		MaxFileSize:    getEnvInt64OrDefault("MAX_FILE_SIZE", 20*1024*1024), // 20MB default
		AllowedOrigins: getEnvListOrDefault("ALLOWED_ORIGINS", defaultAllowedOrigins),

		RulesFile:             getEnvOrDefault("RULES_FILE", ""),
		MedicationLexiconFile: getEnvOrDefault("MEDICATION_LEXICON_FILE", ""),

		TesseractBin:   getEnvOrDefault("TESSERACT_BIN", "tesseract"),
		TesseractLang:  getEnvOrDefault("TESSERACT_LANG", "eng"),
		TessdataDir:    getEnvOrDefault("TESSDATA_PREFIX", ""),
		OCRDPI:         getEnvIntOrDefault("OCR_DPI", 200),
		OCRPageWorkers: getEnvIntOrDefault("OCR_PAGE_WORKERS", 4),

		GeminiAPIKey:          getEnvOrDefault("GEMINI_API_KEY", ""),
		GeminiModel:           getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		GenAIBackend:          strings.ToLower(getEnvOrDefault("GENAI_BACKEND", "gemini")),
		GCPProjectID:          getEnvOrDefault("GCP_PROJECT_ID", ""),
		GCPLocation:           getEnvOrDefault("GCP_LOCATION", "us-central1"),
		RemoteAnalysisTimeout: getEnvIntOrDefault("REMOTE_ANALYSIS_TIMEOUT", 45),

		SupabaseURL: getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey: getEnvOrDefault("SUPABASE_ANON_KEY", ""),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetTracesExporter returns "log", "stdout" or "none"
func (c *AppConfig) GetTracesExporter() string {
	return c.TracesExporter
}

// GetMaxFileSize returns the maximum allowed upload size in bytes
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetAllowedOrigins returns the CORS origins
func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

// GetRulesFile returns the rule table path; empty means built-in rules
func (c *AppConfig) GetRulesFile() string {
	return c.RulesFile
}

// GetMedicationLexiconFile returns the lexicon path; empty means built-in lexicon
func (c *AppConfig) GetMedicationLexiconFile() string {
	return c.MedicationLexiconFile
}

func (c *AppConfig) GetTesseractBin() string {
	return c.TesseractBin
}

func (c *AppConfig) GetTesseractLang() string {
	return c.TesseractLang
}

func (c *AppConfig) GetTessdataDir() string {
	return c.TessdataDir
}

func (c *AppConfig) GetOCRDPI() int {
	return c.OCRDPI
}

func (c *AppConfig) GetOCRPageWorkers() int {
	return c.OCRPageWorkers
}

// GetGeminiAPIKey returns the Gemini API key
func (c *AppConfig) GetGeminiAPIKey() string {
	return c.GeminiAPIKey
}

// GetGeminiModel returns the model used for remote analysis
func (c *AppConfig) GetGeminiModel() string {
	return c.GeminiModel
}

// GetGenAIBackend returns "gemini" or "vertex"
func (c *AppConfig) GetGenAIBackend() string {
	return c.GenAIBackend
}

// GetGCPProjectID returns the Google Cloud project ID
func (c *AppConfig) GetGCPProjectID() string {
	return c.GCPProjectID
}

// GetGCPLocation returns the Google Cloud location
func (c *AppConfig) GetGCPLocation() string {
	return c.GCPLocation
}

// GetRemoteAnalysisTimeout returns the remote analysis timeout in seconds
func (c *AppConfig) GetRemoteAnalysisTimeout() int {
	return c.RemoteAnalysisTimeout
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
