// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"care-doc-assistant/internal/domain"
	"care-doc-assistant/internal/extractor"
	"care-doc-assistant/internal/report"
	apperrors "care-doc-assistant/pkg/errors"
)

// multipartOverhead leaves room for form boundaries and small fields on top
// of the file size limit.
const multipartOverhead = 1 << 20

const maxNoteBytes = 1 << 20

// AnalysisHandler serves extraction and analysis requests.
type AnalysisHandler struct {
	analysisService domain.AnalysisService
	maxFileSize     int64
	logger          domain.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService domain.AnalysisService, maxFileSize int64, logger domain.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		maxFileSize:     maxFileSize,
		logger:          logger,
	}
}

type analysisResponse struct {
	RequestID  string             `json:"request_id"`
	Extraction *domain.Extraction `json:"extraction,omitempty"`
	Result     domain.Analysis    `json:"result"`
	Sections   []report.Section   `json:"sections"`
	Markdown   string             `json:"markdown"`
}

type noteRequest struct {
	Text      string `json:"text"`
	UseRemote bool   `json:"use_remote"`
}

// ExtractDocument handles POST /documents/extract
func (h *AnalysisHandler) ExtractDocument(w http.ResponseWriter, r *http.Request) {
	data, mediaType, err := h.readUpload(w, r)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	ext := h.analysisService.ExtractDocument(r.Context(), data, mediaType)
	writeJSON(w, http.StatusOK, ext)
}

// AnalyzeDocument handles POST /documents/analyze
func (h *AnalysisHandler) AnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	markdown, err := wantsMarkdown(r)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	data, mediaType, err := h.readUpload(w, r)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	useRemote, err := parseBoolField(r.FormValue("use_remote"))
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	ext, result, err := h.analysisService.AnalyzeDocument(r.Context(), data, mediaType, useRemote)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	h.respond(w, r, &ext, result, markdown)
}

// AnalyzeNote handles POST /notes/analyze
func (h *AnalysisHandler) AnalyzeNote(w http.ResponseWriter, r *http.Request) {
	markdown, err := wantsMarkdown(r)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	var req noteRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxNoteBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeAppError(w, r, h.logger, apperrors.NewTooLargeError(maxNoteBytes))
			return
		}
		writeAppError(w, r, h.logger, apperrors.NewValidationError("Invalid JSON body", err.Error()))
		return
	}

	result, err := h.analysisService.AnalyzeText(r.Context(), req.Text, req.UseRemote)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	h.respond(w, r, nil, result, markdown)
}

func (h *AnalysisHandler) respond(w http.ResponseWriter, r *http.Request, ext *domain.Extraction, result domain.Analysis, markdown bool) {
	rep := report.Build(result)
	md := rep.Markdown()
	if markdown {
		writeMarkdown(w, http.StatusOK, md)
		return
	}
	writeJSON(w, http.StatusOK, analysisResponse{
		RequestID:  domain.RequestIDFromContext(r.Context()),
		Extraction: ext,
		Result:     result,
		Sections:   rep.Sections,
		Markdown:   md,
	})
}

// readUpload reads the single "file" part and resolves its media type.
func (h *AnalysisHandler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartOverhead)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, "", apperrors.NewTooLargeError(h.maxFileSize)
		}
		return nil, "", apperrors.NewValidationError("Invalid multipart form", err.Error())
	}

	if files := r.MultipartForm.File["file"]; len(files) > 1 {
		return nil, "", apperrors.NewValidationError("Only one file may be uploaded per request", "got "+strconv.Itoa(len(files)))
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", apperrors.NewValidationError("File is required")
	}
	defer file.Close()

	if header.Size > h.maxFileSize {
		return nil, "", apperrors.NewTooLargeError(h.maxFileSize)
	}
	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		return nil, "", apperrors.NewValidationError("Failed to read uploaded file", err.Error())
	}
	if int64(len(data)) > h.maxFileSize {
		return nil, "", apperrors.NewTooLargeError(h.maxFileSize)
	}
	if len(data) == 0 {
		return nil, "", apperrors.NewValidationError("Uploaded file is empty")
	}

	mediaType := extractor.DetectMediaType(header.Filename, data)
	if !domain.IsSupportedMediaType(mediaType) {
		return nil, "", apperrors.NewUnsupportedMediaError(mediaType)
	}

	h.logger.Debug("Upload received",
		"filename", header.Filename,
		"media_type", mediaType,
		"bytes", len(data),
		"request_id", domain.RequestIDFromContext(r.Context()),
	)
	return data, mediaType, nil
}

func wantsMarkdown(r *http.Request) (bool, error) {
	switch strings.ToLower(r.URL.Query().Get("format")) {
	case "", "json":
		return false, nil
	case "markdown", "md":
		return true, nil
	default:
		return false, apperrors.NewValidationError("Unsupported format", "use json or markdown")
	}
}

func parseBoolField(v string) (bool, error) {
	if strings.TrimSpace(v) == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, apperrors.NewValidationError("Invalid use_remote value", v)
	}
	return b, nil
}
