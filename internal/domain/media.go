package domain

import "strings"

// Media types accepted for upload.
const (
	MediaTypePDF  = "application/pdf"
	MediaTypePNG  = "image/png"
	MediaTypeJPEG = "image/jpeg"
)

// ExtractionErrorPrefix starts the text returned in place of extracted
// content when extraction fails.
const ExtractionErrorPrefix = "OCR Error: "

// IsSupportedMediaType reports whether mediaType can be extracted.
func IsSupportedMediaType(mediaType string) bool {
	switch mediaType {
	case MediaTypePDF, MediaTypePNG, MediaTypeJPEG:
		return true
	default:
		return false
	}
}

// IsImageMediaType reports whether mediaType is one of the accepted image formats.
func IsImageMediaType(mediaType string) bool {
	return strings.HasPrefix(mediaType, "image/") && IsSupportedMediaType(mediaType)
}

// Extraction describes the outcome of extracting text from an uploaded document.
type Extraction struct {
	Text       string `json:"text"`
	MediaType  string `json:"media_type"`
	Characters int    `json:"characters"`
	Failed     bool   `json:"failed"`
}
