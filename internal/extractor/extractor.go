// Package extractor turns uploaded PDFs and images into plain text.
package extractor

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"care-doc-assistant/internal/domain"
)

// Config controls OCR behaviour.
type Config struct {
	Tesseract     string // binary name or absolute path; default "tesseract"
	TesseractLang string // default "eng"
	TessdataDir   string
	DPI           int // page rasterization DPI, default 200
	PageWorkers   int // concurrent PDF pages, default 4
}

// Extractor implements domain.TextExtractor.
type Extractor struct {
	cfg     Config
	runner  Runner
	openPDF func(data []byte) (pageDocument, error)
	logger  domain.Logger
}

// New creates an extractor that shells out to tesseract.
func New(cfg Config, logger domain.Logger) *Extractor {
	return NewWithRunner(cfg, execRunner{logger: logger}, logger)
}

// NewWithRunner creates an extractor using the given command runner.
func NewWithRunner(cfg Config, runner Runner, logger domain.Logger) *Extractor {
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 200
	}
	if cfg.PageWorkers <= 0 {
		cfg.PageWorkers = 4
	}
	return &Extractor{
		cfg:     cfg,
		runner:  runner,
		openPDF: openFitz,
		logger:  logger,
	}
}

// Extract returns the cleaned text of the document. On failure the returned
// string starts with domain.ExtractionErrorPrefix.
func (e *Extractor) Extract(ctx context.Context, data []byte, mediaType string) string {
	start := time.Now()
	e.logger.Debug("Starting text extraction", "media_type", mediaType, "bytes", len(data))

	text, err := e.extract(ctx, data, mediaType)
	if err != nil {
		e.logger.Error("Text extraction failed", err, "media_type", mediaType)
		return domain.ExtractionErrorPrefix + err.Error()
	}

	cleaned := Clean(text)
	e.logger.Info("Text extracted",
		"media_type", mediaType,
		"characters", len(cleaned),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return cleaned
}

func (e *Extractor) extract(ctx context.Context, data []byte, mediaType string) (string, error) {
	if len(data) == 0 {
		return "", domain.ErrEmptyDocument
	}
	switch {
	case mediaType == domain.MediaTypePDF:
		return e.extractPDF(ctx, data)
	case domain.IsImageMediaType(mediaType):
		return e.ocrImage(ctx, data)
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedMediaType, mediaType)
	}
}

// ocrImage pipes an encoded image through tesseract:
// tesseract stdin stdout -l <lang> [--tessdata-dir <dir>]
func (e *Extractor) ocrImage(ctx context.Context, img []byte) (string, error) {
	args := []string{"stdin", "stdout", "-l", e.cfg.TesseractLang}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	out, errb, err := e.runner.Run(ctx, bytes.NewReader(img), e.cfg.Tesseract, args...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if msg := firstLine(errb); msg != "" {
			return "", fmt.Errorf("tesseract: %w: %s", err, msg)
		}
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return string(out), nil
}

func firstLine(b []byte) string {
	b = bytes.TrimSpace(b)
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		b = b[:i]
	}
	return string(bytes.TrimSpace(b))
}
