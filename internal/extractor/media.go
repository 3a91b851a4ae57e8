package extractor

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"care-doc-assistant/internal/domain"
)

var extMediaTypes = map[string]string{
	".pdf":  domain.MediaTypePDF,
	".png":  domain.MediaTypePNG,
	".jpg":  domain.MediaTypeJPEG,
	".jpeg": domain.MediaTypeJPEG,
}

// DetectMediaType resolves the media type of an upload. Content sniffing wins
// when it recognises a supported format; otherwise the file extension decides.
// The sniffed type is returned for anything else so callers can report it.
func DetectMediaType(filename string, data []byte) string {
	sniffed := http.DetectContentType(data)
	if base, _, err := mime.ParseMediaType(sniffed); err == nil {
		sniffed = base
	}
	if domain.IsSupportedMediaType(sniffed) {
		return sniffed
	}
	if mt, ok := extMediaTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return mt
	}
	return sniffed
}
