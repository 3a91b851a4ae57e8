package handler

import (
	"context"
	"sync"

	"care-doc-assistant/internal/domain"
)

// MockHandlerLogger counts log calls by level.
type MockHandlerLogger struct {
	mu     sync.Mutex
	errors int
	infos  int
}

func NewMockHandlerLogger() *MockHandlerLogger {
	return &MockHandlerLogger{}
}

func (l *MockHandlerLogger) Info(msg string, fields ...interface{}) {
	l.mu.Lock()
	l.infos++
	l.mu.Unlock()
}

func (l *MockHandlerLogger) Error(msg string, err error, fields ...interface{}) {
	l.mu.Lock()
	l.errors++
	l.mu.Unlock()
}

func (l *MockHandlerLogger) Debug(msg string, fields ...interface{}) {}
func (l *MockHandlerLogger) Warn(msg string, fields ...interface{})  {}

type mockAuthService struct {
	user      *domain.SupabaseUser
	err       error
	lastToken string
}

func (m *mockAuthService) ValidateToken(token string) (*domain.SupabaseUser, error) {
	m.lastToken = token
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

// mockAnalysisService records its inputs and returns canned results.
type mockAnalysisService struct {
	analysis   domain.Analysis
	extraction domain.Extraction
	err        error

	lastText      string
	lastData      []byte
	lastMediaType string
	lastUseRemote bool
	lastRequestID string
}

func (m *mockAnalysisService) AnalyzeText(ctx context.Context, text string, useRemote bool) (domain.Analysis, error) {
	m.lastText = text
	m.lastUseRemote = useRemote
	m.lastRequestID = domain.RequestIDFromContext(ctx)
	if m.err != nil {
		return nil, m.err
	}
	return m.analysis, nil
}

func (m *mockAnalysisService) ExtractDocument(ctx context.Context, data []byte, mediaType string) domain.Extraction {
	m.lastData = data
	m.lastMediaType = mediaType
	m.lastRequestID = domain.RequestIDFromContext(ctx)
	ext := m.extraction
	ext.MediaType = mediaType
	return ext
}

func (m *mockAnalysisService) AnalyzeDocument(ctx context.Context, data []byte, mediaType string, useRemote bool) (domain.Extraction, domain.Analysis, error) {
	ext := m.ExtractDocument(ctx, data, mediaType)
	m.lastUseRemote = useRemote
	if m.err != nil {
		return ext, nil, m.err
	}
	return ext, m.analysis, nil
}
