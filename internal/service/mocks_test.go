package service

import (
	"context"
	"strings"
	"sync"

	"care-doc-assistant/internal/domain"
)

// MockLogger records log lines for assertions.
type MockLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		messages: []string{},
	}
}

func (m *MockLogger) add(line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, line)
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.add("INFO: " + msg)
}

func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	m.add("ERROR: " + msg + " - " + err.Error())
}

func (m *MockLogger) Debug(msg string, args ...interface{}) {
	m.add("DEBUG: " + msg)
}

func (m *MockLogger) Warn(msg string, args ...interface{}) {
	m.add("WARN: " + msg)
}

func (m *MockLogger) contains(prefix string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, line := range m.messages {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// MockClassifier returns a fixed result and records its input.
type MockClassifier struct {
	result   domain.Analysis
	err      error
	calls    int
	lastText string
	lastID   string
}

func (m *MockClassifier) Classify(ctx context.Context, text string) (domain.Analysis, error) {
	m.calls++
	m.lastText = text
	m.lastID = domain.RequestIDFromContext(ctx)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// MockExtractor returns fixed text.
type MockExtractor struct {
	text          string
	calls         int
	lastMediaType string
}

func (m *MockExtractor) Extract(ctx context.Context, data []byte, mediaType string) string {
	m.calls++
	m.lastMediaType = mediaType
	return m.text
}

// MockRemoteAnalyzer returns a fixed summary.
type MockRemoteAnalyzer struct {
	available bool
	summary   string
	calls     int
}

func (m *MockRemoteAnalyzer) Summarize(ctx context.Context, text string) string {
	m.calls++
	return m.summary
}

func (m *MockRemoteAnalyzer) Available() bool {
	return m.available
}
