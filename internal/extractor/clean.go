package extractor

import (
	"regexp"
	"strings"
)

var (
	reBlankLines = regexp.MustCompile(`(\n\s*)+\n+`)
	reNonASCII   = regexp.MustCompile(`[^\x00-\x7F]+`)
)

// Clean collapses blank-line runs to a single paragraph break, replaces each
// run of non-ASCII characters with one space and trims the result.
func Clean(text string) string {
	text = reBlankLines.ReplaceAllString(text, "\n\n")
	text = reNonASCII.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
