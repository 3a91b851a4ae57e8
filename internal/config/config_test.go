package config

import (
	"reflect"
	"testing"
)

const defaultMaxFileSize int64 = 20 * 1024 * 1024

var configKeys = []string{
	"PORT", "SERVER_PORT", "LOG_LEVEL", "TRACES_EXPORTER", "MAX_FILE_SIZE", "ALLOWED_ORIGINS",
	"RULES_FILE", "MEDICATION_LEXICON_FILE",
	"TESSERACT_BIN", "TESSERACT_LANG", "TESSDATA_PREFIX", "OCR_DPI", "OCR_PAGE_WORKERS",
	"GEMINI_API_KEY", "GEMINI_MODEL", "GENAI_BACKEND", "GCP_PROJECT_ID", "GCP_LOCATION",
	"REMOTE_ANALYSIS_TIMEOUT", "SUPABASE_URL", "SUPABASE_ANON_KEY",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := NewConfig()

	if cfg.GetServerPort() != "8080" {
		t.Fatalf("expected default server port 8080, got %s", cfg.GetServerPort())
	}
	if cfg.GetMaxFileSize() != defaultMaxFileSize {
		t.Fatalf("expected default max file size %d, got %d", defaultMaxFileSize, cfg.GetMaxFileSize())
	}
	if cfg.GetLogLevel() != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.GetLogLevel())
	}
	if cfg.GetTracesExporter() != "log" {
		t.Fatalf("expected default traces exporter log, got %s", cfg.GetTracesExporter())
	}
	if !reflect.DeepEqual(cfg.GetAllowedOrigins(), defaultAllowedOrigins) {
		t.Fatalf("expected default origins, got %v", cfg.GetAllowedOrigins())
	}
	if cfg.GetRulesFile() != "" || cfg.GetMedicationLexiconFile() != "" {
		t.Fatalf("expected built-in rules and lexicon by default")
	}
	if cfg.GetTesseractBin() != "tesseract" || cfg.GetTesseractLang() != "eng" || cfg.GetTessdataDir() != "" {
		t.Fatalf("unexpected tesseract defaults: %s %s %s", cfg.GetTesseractBin(), cfg.GetTesseractLang(), cfg.GetTessdataDir())
	}
	if cfg.GetOCRDPI() != 200 {
		t.Fatalf("expected default OCR DPI 200, got %d", cfg.GetOCRDPI())
	}
	if cfg.GetOCRPageWorkers() != 4 {
		t.Fatalf("expected default OCR page workers 4, got %d", cfg.GetOCRPageWorkers())
	}
	if cfg.GetGeminiAPIKey() != "" {
		t.Fatalf("expected no Gemini API key, got %s", cfg.GetGeminiAPIKey())
	}
	if cfg.GetGeminiModel() != "gemini-2.0-flash" {
		t.Fatalf("expected default model gemini-2.0-flash, got %s", cfg.GetGeminiModel())
	}
	if cfg.GetGenAIBackend() != "gemini" {
		t.Fatalf("expected default backend gemini, got %s", cfg.GetGenAIBackend())
	}
	if cfg.GetGCPLocation() != "us-central1" {
		t.Fatalf("expected default location us-central1, got %s", cfg.GetGCPLocation())
	}
	if cfg.GetRemoteAnalysisTimeout() != 45 {
		t.Fatalf("expected default remote timeout 45, got %d", cfg.GetRemoteAnalysisTimeout())
	}
	if cfg.GetSupabaseURL() != "" {
		t.Fatalf("expected default supabase url empty, got %s", cfg.GetSupabaseURL())
	}
	if cfg.GetSupabaseKey() != "" {
		t.Fatalf("expected default supabase key empty, got %s", cfg.GetSupabaseKey())
	}
}

func TestNewConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("MAX_FILE_SIZE", "12345")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TRACES_EXPORTER", "STDOUT")
	t.Setenv("ALLOWED_ORIGINS", "https://ward.example.org, https://nurse.example.org ,")
	t.Setenv("RULES_FILE", "/etc/care/rules.yaml")
	t.Setenv("MEDICATION_LEXICON_FILE", "/etc/care/meds.yaml")
	t.Setenv("TESSERACT_BIN", "/usr/local/bin/tesseract")
	t.Setenv("TESSERACT_LANG", "eng+spa")
	t.Setenv("TESSDATA_PREFIX", "/opt/tessdata")
	t.Setenv("OCR_DPI", "300")
	t.Setenv("OCR_PAGE_WORKERS", "8")
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-flash")
	t.Setenv("GENAI_BACKEND", "VERTEX")
	t.Setenv("GCP_PROJECT_ID", "care-project")
	t.Setenv("GCP_LOCATION", "europe-west4")
	t.Setenv("REMOTE_ANALYSIS_TIMEOUT", "10")
	t.Setenv("SUPABASE_URL", "http://localhost:54321")
	t.Setenv("SUPABASE_ANON_KEY", "test-key")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9090" {
		t.Fatalf("expected server port 9090, got %s", cfg.GetServerPort())
	}
	if cfg.GetMaxFileSize() != 12345 {
		t.Fatalf("expected max file size 12345, got %d", cfg.GetMaxFileSize())
	}
	if cfg.GetLogLevel() != "debug" {
		t.Fatalf("expected log level debug, got %s", cfg.GetLogLevel())
	}
	if cfg.GetTracesExporter() != "stdout" {
		t.Fatalf("expected traces exporter stdout, got %s", cfg.GetTracesExporter())
	}
	wantOrigins := []string{"https://ward.example.org", "https://nurse.example.org"}
	if !reflect.DeepEqual(cfg.GetAllowedOrigins(), wantOrigins) {
		t.Fatalf("expected origins %v, got %v", wantOrigins, cfg.GetAllowedOrigins())
	}
	if cfg.GetRulesFile() != "/etc/care/rules.yaml" {
		t.Fatalf("expected rules file override, got %s", cfg.GetRulesFile())
	}
	if cfg.GetMedicationLexiconFile() != "/etc/care/meds.yaml" {
		t.Fatalf("expected lexicon override, got %s", cfg.GetMedicationLexiconFile())
	}
	if cfg.GetTesseractBin() != "/usr/local/bin/tesseract" || cfg.GetTesseractLang() != "eng+spa" || cfg.GetTessdataDir() != "/opt/tessdata" {
		t.Fatalf("unexpected tesseract overrides: %s %s %s", cfg.GetTesseractBin(), cfg.GetTesseractLang(), cfg.GetTessdataDir())
	}
	if cfg.GetOCRDPI() != 300 || cfg.GetOCRPageWorkers() != 8 {
		t.Fatalf("unexpected OCR overrides: dpi=%d workers=%d", cfg.GetOCRDPI(), cfg.GetOCRPageWorkers())
	}
	if cfg.GetGeminiAPIKey() != "gem-key" || cfg.GetGeminiModel() != "gemini-2.5-flash" {
		t.Fatalf("unexpected Gemini overrides: %s %s", cfg.GetGeminiAPIKey(), cfg.GetGeminiModel())
	}
	if cfg.GetGenAIBackend() != "vertex" {
		t.Fatalf("expected backend to be lower-cased to vertex, got %s", cfg.GetGenAIBackend())
	}
	if cfg.GetGCPProjectID() != "care-project" || cfg.GetGCPLocation() != "europe-west4" {
		t.Fatalf("unexpected GCP overrides: %s %s", cfg.GetGCPProjectID(), cfg.GetGCPLocation())
	}
	if cfg.GetRemoteAnalysisTimeout() != 10 {
		t.Fatalf("expected remote timeout 10, got %d", cfg.GetRemoteAnalysisTimeout())
	}
	if cfg.GetSupabaseURL() != "http://localhost:54321" {
		t.Fatalf("expected supabase url http://localhost:54321, got %s", cfg.GetSupabaseURL())
	}
	if cfg.GetSupabaseKey() != "test-key" {
		t.Fatalf("expected supabase key test-key, got %s", cfg.GetSupabaseKey())
	}
}

func TestNewConfig_Fallbacks(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9091")
	t.Setenv("MAX_FILE_SIZE", "not-a-number")
	t.Setenv("OCR_DPI", "-5")
	t.Setenv("OCR_PAGE_WORKERS", "0")
	t.Setenv("REMOTE_ANALYSIS_TIMEOUT", "soon")
	t.Setenv("ALLOWED_ORIGINS", " , ")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9091" {
		t.Fatalf("expected server port 9091, got %s", cfg.GetServerPort())
	}
	if cfg.GetMaxFileSize() != defaultMaxFileSize {
		t.Fatalf("expected default max file size %d, got %d", defaultMaxFileSize, cfg.GetMaxFileSize())
	}
	if cfg.GetOCRDPI() != 200 {
		t.Fatalf("expected default OCR DPI for invalid value, got %d", cfg.GetOCRDPI())
	}
	if cfg.GetOCRPageWorkers() != 4 {
		t.Fatalf("expected default workers for invalid value, got %d", cfg.GetOCRPageWorkers())
	}
	if cfg.GetRemoteAnalysisTimeout() != 45 {
		t.Fatalf("expected default timeout for invalid value, got %d", cfg.GetRemoteAnalysisTimeout())
	}
	if !reflect.DeepEqual(cfg.GetAllowedOrigins(), defaultAllowedOrigins) {
		t.Fatalf("expected default origins for blank list, got %v", cfg.GetAllowedOrigins())
	}
}
