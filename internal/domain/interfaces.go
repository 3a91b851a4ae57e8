package domain

import "context"

// EntityRecognizer finds semantic entities in free text.
type EntityRecognizer interface {
	Recognize(ctx context.Context, text string) ([]Entity, error)
}

// Classifier turns free text into findings. Text that is too short yields
// *InsufficientInput; a recognizer failure is returned as an error.
type Classifier interface {
	Classify(ctx context.Context, text string) (Analysis, error)
}

// TextExtractor converts a document into plain text. Failures are reported
// in the returned string rather than as an error.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, mediaType string) string
}

// RemoteAnalyzer produces a free-text summary using a hosted language model.
// Every failure is reported as a descriptive string.
type RemoteAnalyzer interface {
	Summarize(ctx context.Context, text string) string
	Available() bool
}

// AnalysisService is the use-case layer shared by every analysis entry point.
type AnalysisService interface {
	AnalyzeText(ctx context.Context, text string, useRemote bool) (Analysis, error)
	ExtractDocument(ctx context.Context, data []byte, mediaType string) Extraction
	AnalyzeDocument(ctx context.Context, data []byte, mediaType string, useRemote bool) (Extraction, Analysis, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetTracesExporter() string
	GetMaxFileSize() int64
	GetAllowedOrigins() []string

	GetRulesFile() string
	GetMedicationLexiconFile() string

	GetTesseractBin() string
	GetTesseractLang() string
	GetTessdataDir() string
	GetOCRDPI() int
	GetOCRPageWorkers() int

	GetGeminiAPIKey() string
	GetGeminiModel() string
	GetGenAIBackend() string
	GetGCPProjectID() string
	GetGCPLocation() string
	GetRemoteAnalysisTimeout() int

	GetSupabaseURL() string
	GetSupabaseKey() string
}
