// Package classifier implements rule-based classification of clinical notes.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"care-doc-assistant/internal/domain"
)

// RuleClassifier scans text for medications, care-protocol triggers,
// clinical warnings and critical terms.
type RuleClassifier struct {
	rules      *RuleSet
	recognizer domain.EntityRecognizer
	logger     domain.Logger
}

// New creates a classifier over the given rule table.
func New(rules *RuleSet, recognizer domain.EntityRecognizer, logger domain.Logger) *RuleClassifier {
	return &RuleClassifier{
		rules:      rules,
		recognizer: recognizer,
		logger:     logger,
	}
}

// Rules returns the active rule table.
func (c *RuleClassifier) Rules() *RuleSet {
	return c.rules
}

// Classify runs every detection pass over text. Text shorter than
// domain.MinTextLength characters yields *domain.InsufficientInput.
func (c *RuleClassifier) Classify(ctx context.Context, text string) (domain.Analysis, error) {
	chars := utf8.RuneCountInString(text)
	if chars < domain.MinTextLength {
		c.logger.Debug("Text below analysis threshold", "characters", chars)
		return domain.NewInsufficientInput(), nil
	}

	meds, err := c.medications(ctx, text)
	if err != nil {
		return nil, err
	}

	findings := domain.NewFindings()
	findings.Medications = meds
	findings.Protocols = c.rules.matchProtocols(text)
	findings.Warnings = c.rules.matchWarnings(text)
	findings.CriticalTerms = c.rules.matchCriticalTerms(text)

	c.logger.Debug("Classified text",
		"characters", chars,
		"medications", len(findings.Medications),
		"protocols", len(findings.Protocols),
		"warnings", len(findings.Warnings),
		"critical_terms", len(findings.CriticalTerms),
	)
	return findings, nil
}

// medications returns the distinct chemical entity spans in first-seen order.
func (c *RuleClassifier) medications(ctx context.Context, text string) ([]string, error) {
	if c.recognizer == nil {
		return nil, domain.ErrRecognizerUnavailable
	}
	entities, err := c.recognizer.Recognize(ctx, text)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		if errors.Is(err, domain.ErrRecognizerUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrRecognizerUnavailable, err)
	}

	meds := []string{}
	seen := make(map[string]struct{}, len(entities))
	for _, ent := range entities {
		if ent.Label != domain.EntityLabelChemical {
			continue
		}
		if _, ok := seen[ent.Text]; ok {
			continue
		}
		seen[ent.Text] = struct{}{}
		meds = append(meds, ent.Text)
	}
	return meds, nil
}
