package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"care-doc-assistant/internal/domain"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName names the tracer used for analysis spans.
const TracerName = "care-doc-assistant/internal/service"

type analysisService struct {
	classifier domain.Classifier
	extractor  domain.TextExtractor
	remote     domain.RemoteAnalyzer
	tracer     trace.Tracer
	logger     domain.Logger
}

// NewAnalysisService wires the classifier, extractor and optional remote
// analyzer into one use-case layer. remote may be nil.
func NewAnalysisService(
	classifier domain.Classifier,
	extractor domain.TextExtractor,
	remote domain.RemoteAnalyzer,
	logger domain.Logger,
) *analysisService {
	return &analysisService{
		classifier: classifier,
		extractor:  extractor,
		remote:     remote,
		tracer:     otel.Tracer(TracerName),
		logger:     logger,
	}
}

// WithTracer replaces the tracer taken from the global provider.
func (s *analysisService) WithTracer(tracer trace.Tracer) *analysisService {
	s.tracer = tracer
	return s
}

// AnalyzeText runs the remote analyzer when requested and available, and the
// rule classifier otherwise.
func (s *analysisService) AnalyzeText(ctx context.Context, text string, useRemote bool) (domain.Analysis, error) {
	ctx, requestID := ensureRequestID(ctx)
	ctx, span := s.tracer.Start(ctx, "AnalyzeText")
	defer span.End()

	remote := s.remoteEnabled(useRemote)
	span.SetAttributes(
		attribute.String("request.id", requestID),
		attribute.Int("text.characters", utf8.RuneCountInString(text)),
		attribute.Bool("analysis.remote", remote),
	)

	if remote {
		s.logger.Debug("Running remote analysis", "request_id", requestID)
		result := &domain.Summary{Text: s.remote.Summarize(ctx, text)}
		span.SetAttributes(attribute.String("analysis.kind", string(result.Kind())))
		return result, nil
	}
	if useRemote {
		s.logger.Warn("Remote analysis requested but not configured; using rules", "request_id", requestID)
	}

	result, err := s.classifier.Classify(ctx, text)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("Classification failed", err, "request_id", requestID)
		return nil, err
	}

	span.SetAttributes(attribute.String("analysis.kind", string(result.Kind())))
	s.logger.Info("Text analyzed", "request_id", requestID, "kind", result.Kind())
	return result, nil
}

// ExtractDocument extracts text from an uploaded document. Extraction failures
// are reported through Extraction.Failed.
func (s *analysisService) ExtractDocument(ctx context.Context, data []byte, mediaType string) domain.Extraction {
	ctx, requestID := ensureRequestID(ctx)
	ctx, span := s.tracer.Start(ctx, "ExtractDocument")
	defer span.End()

	span.SetAttributes(
		attribute.String("request.id", requestID),
		attribute.String("document.media_type", mediaType),
		attribute.Int("document.bytes", len(data)),
	)

	text := s.extractor.Extract(ctx, data, mediaType)
	ext := domain.Extraction{
		Text:       text,
		MediaType:  mediaType,
		Characters: utf8.RuneCountInString(text),
		Failed:     strings.HasPrefix(text, domain.ExtractionErrorPrefix),
	}

	span.SetAttributes(
		attribute.Int("text.characters", ext.Characters),
		attribute.Bool("extraction.failed", ext.Failed),
	)
	if ext.Failed {
		span.SetStatus(codes.Error, text)
		s.logger.Warn("Document extraction failed", "request_id", requestID, "media_type", mediaType, "reason", text)
	} else {
		s.logger.Info("Document extracted", "request_id", requestID, "media_type", mediaType, "characters", ext.Characters)
	}
	return ext
}

// AnalyzeDocument extracts and then analyzes a document. The text of a failed
// extraction is analyzed like any other text.
func (s *analysisService) AnalyzeDocument(ctx context.Context, data []byte, mediaType string, useRemote bool) (domain.Extraction, domain.Analysis, error) {
	ctx, _ = ensureRequestID(ctx)
	ctx, span := s.tracer.Start(ctx, "AnalyzeDocument")
	defer span.End()

	ext := s.ExtractDocument(ctx, data, mediaType)
	result, err := s.AnalyzeText(ctx, ext.Text, useRemote)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return ext, nil, err
	}
	return ext, result, nil
}

func (s *analysisService) remoteEnabled(useRemote bool) bool {
	return useRemote && s.remote != nil && s.remote.Available()
}

func ensureRequestID(ctx context.Context) (context.Context, string) {
	if id := domain.RequestIDFromContext(ctx); id != "" {
		return ctx, id
	}
	id := uuid.NewString()
	return domain.WithRequestID(ctx, id), id
}
