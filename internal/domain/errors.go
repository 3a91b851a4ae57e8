package domain

import "errors"

// Domain errors
var (
	ErrRecognizerUnavailable = errors.New("entity recognizer unavailable")
	ErrUnsupportedMediaType  = errors.New("unsupported media type")
	ErrEmptyDocument         = errors.New("document is empty")
	ErrInvalidToken          = errors.New("invalid token")
	ErrInvalidRules          = errors.New("invalid rule table")
)
