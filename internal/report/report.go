// Package report renders analysis results into display sections and markdown.
package report

import (
	"strings"

	"care-doc-assistant/internal/domain"
)

// Style tells a client how to present a section.
type Style string

const (
	StyleSuccess Style = "success"
	StyleInfo    Style = "info"
	StyleError   Style = "error"
	StyleWarning Style = "warning"
)

// Layout selects how section items are rendered.
type Layout string

const (
	LayoutList   Layout = "list"
	LayoutInline Layout = "inline"
	LayoutProse  Layout = "prose"
)

// Section titles.
const (
	TitleProtocols     = "Recommended Care Protocols"
	TitleMedications   = "Detected Medications"
	TitleWarnings      = "Clinical Warnings"
	TitleCriticalTerms = "Critical Terms Detected"
	TitleError         = "Analysis Error"
	TitleSummary       = "Remote Analysis"
)

// Section is one block of a rendered report. Message is set when Items is
// empty, or holds the prose for LayoutProse.
type Section struct {
	Title   string   `json:"title"`
	Style   Style    `json:"style"`
	Layout  Layout   `json:"layout"`
	Items   []string `json:"items"`
	Message string   `json:"message,omitempty"`
}

// Report is the presentation form of a domain.Analysis.
type Report struct {
	Kind     domain.AnalysisKind `json:"kind"`
	Sections []Section           `json:"sections"`
}

// Build converts an analysis into report sections.
func Build(analysis domain.Analysis) Report {
	switch a := analysis.(type) {
	case *domain.Findings:
		return Report{Kind: a.Kind(), Sections: []Section{
			listSection(TitleProtocols, StyleSuccess, LayoutList, a.Protocols, "No specific care protocols identified"),
			listSection(TitleMedications, StyleInfo, LayoutInline, a.Medications, "No medications detected"),
			listSection(TitleWarnings, StyleError, LayoutList, a.Warnings, "No clinical warnings"),
			listSection(TitleCriticalTerms, StyleWarning, LayoutInline, a.CriticalTerms, "No critical terms detected"),
		}}
	case *domain.InsufficientInput:
		return Report{Kind: a.Kind(), Sections: []Section{
			{Title: TitleError, Style: StyleError, Layout: LayoutProse, Items: []string{}, Message: a.Message},
		}}
	case *domain.Summary:
		return Report{Kind: a.Kind(), Sections: []Section{
			{Title: TitleSummary, Style: StyleInfo, Layout: LayoutProse, Items: []string{}, Message: a.Text},
		}}
	default:
		return Report{Sections: []Section{}}
	}
}

func listSection(title string, style Style, layout Layout, items []string, empty string) Section {
	s := Section{Title: title, Style: style, Layout: layout, Items: []string{}}
	for _, it := range items {
		if it != "" {
			s.Items = append(s.Items, it)
		}
	}
	if len(s.Items) == 0 {
		s.Message = empty
	}
	return s
}

// Markdown renders the report as a markdown document.
func (r Report) Markdown() string {
	if r.Kind == domain.AnalysisKindSummary && len(r.Sections) == 1 {
		return strings.TrimSpace(r.Sections[0].Message) + "\n"
	}

	var b strings.Builder
	for i, s := range r.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("### " + s.Title + "\n\n")
		switch {
		case len(s.Items) == 0:
			b.WriteString("_" + s.Message + "_\n")
		case s.Layout == LayoutInline:
			b.WriteString(strings.Join(s.Items, ", ") + "\n")
		default:
			for _, it := range s.Items {
				b.WriteString("- " + it + "\n")
			}
		}
	}
	return b.String()
}
