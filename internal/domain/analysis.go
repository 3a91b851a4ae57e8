package domain

import "encoding/json"

// InsufficientTextMessage is reported when text is too short to analyze.
const InsufficientTextMessage = "Insufficient text for analysis"

// MinTextLength is the number of characters below which text is not analyzed.
const MinTextLength = 20

// AnalysisKind discriminates the variants of Analysis on the wire.
type AnalysisKind string

const (
	AnalysisKindFindings AnalysisKind = "findings"
	AnalysisKindError    AnalysisKind = "error"
	AnalysisKindSummary  AnalysisKind = "summary"
)

// Analysis is the result of one analysis request. It is exactly one of
// *Findings, *InsufficientInput or *Summary.
type Analysis interface {
	Kind() AnalysisKind
	isAnalysis()
}

// Findings is the structured output of rule-based classification.
// All four fields are non-nil once returned by the classifier.
type Findings struct {
	Medications   []string `json:"medications"`
	Protocols     []string `json:"protocols"`
	Warnings      []string `json:"warnings"`
	CriticalTerms []string `json:"critical_terms"`
}

// NewFindings returns a Findings value with empty (non-nil) fields.
func NewFindings() *Findings {
	return &Findings{
		Medications:   []string{},
		Protocols:     []string{},
		Warnings:      []string{},
		CriticalTerms: []string{},
	}
}

func (*Findings) Kind() AnalysisKind { return AnalysisKindFindings }
func (*Findings) isAnalysis()        {}

// MarshalJSON adds the "kind" discriminator.
func (f *Findings) MarshalJSON() ([]byte, error) {
	type findings Findings
	return json.Marshal(struct {
		Kind AnalysisKind `json:"kind"`
		*findings
	}{Kind: f.Kind(), findings: (*findings)(f)})
}

// InsufficientInput is returned instead of findings when the text is too short.
type InsufficientInput struct {
	Message string
}

// NewInsufficientInput returns the standard insufficient-text result.
func NewInsufficientInput() *InsufficientInput {
	return &InsufficientInput{Message: InsufficientTextMessage}
}

func (*InsufficientInput) Kind() AnalysisKind { return AnalysisKindError }
func (*InsufficientInput) isAnalysis()        {}

func (e *InsufficientInput) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  AnalysisKind `json:"kind"`
		Error string       `json:"error"`
	}{Kind: e.Kind(), Error: e.Message})
}

// Summary is the opaque, markdown-flavoured text produced by the remote analyzer.
type Summary struct {
	Text string
}

func (*Summary) Kind() AnalysisKind { return AnalysisKindSummary }
func (*Summary) isAnalysis()        {}

func (s *Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    AnalysisKind `json:"kind"`
		Summary string       `json:"summary"`
	}{Kind: s.Kind(), Summary: s.Text})
}
