// Package recognizer tags medication names in clinical text.
package recognizer

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"care-doc-assistant/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed medications.yaml
var defaultLexiconYAML []byte

type lexiconFile struct {
	Medications []string `yaml:"medications"`
}

// LexiconRecognizer tags whole-word, case-insensitive occurrences of known
// medication names as domain.EntityLabelChemical.
type LexiconRecognizer struct {
	re      *regexp.Regexp
	terms   int
	loadErr error
	logger  domain.Logger
}

// NewLexiconRecognizer loads the lexicon at path, or the built-in lexicon when
// path is empty. A lexicon that cannot be loaded does not fail construction;
// every Recognize call reports domain.ErrRecognizerUnavailable instead.
func NewLexiconRecognizer(path string, logger domain.Logger) *LexiconRecognizer {
	r := &LexiconRecognizer{logger: logger}

	data := defaultLexiconYAML
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			r.loadErr = fmt.Errorf("read lexicon: %w", err)
			logger.Error("Failed to load medication lexicon", r.loadErr, "path", path)
			return r
		}
		data = b
	}

	terms, err := parseLexicon(data)
	if err != nil {
		r.loadErr = err
		logger.Error("Failed to load medication lexicon", err, "path", path)
		return r
	}
	r.re = compileLexicon(terms)
	r.terms = len(terms)
	logger.Info("Medication lexicon loaded", "terms", r.terms)
	return r
}

// Err returns the lexicon load error, if any.
func (r *LexiconRecognizer) Err() error {
	return r.loadErr
}

// Terms returns the number of distinct lexicon entries.
func (r *LexiconRecognizer) Terms() int {
	return r.terms
}

// Recognize returns every lexicon match in text, in text order. The entity
// text is the span exactly as written.
func (r *LexiconRecognizer) Recognize(ctx context.Context, text string) ([]domain.Entity, error) {
	if r.loadErr != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRecognizerUnavailable, r.loadErr)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	locs := r.re.FindAllStringIndex(text, -1)
	entities := make([]domain.Entity, 0, len(locs))
	for _, loc := range locs {
		entities = append(entities, domain.Entity{
			Text:  text[loc[0]:loc[1]],
			Label: domain.EntityLabelChemical,
			Start: loc[0],
			End:   loc[1],
		})
	}
	return entities, nil
}

func parseLexicon(data []byte) ([]string, error) {
	var lf lexiconFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("decode lexicon: %w", err)
	}

	seen := make(map[string]bool, len(lf.Medications))
	terms := make([]string, 0, len(lf.Medications))
	for _, m := range lf.Medications {
		m = strings.ToLower(strings.Join(strings.Fields(m), " "))
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		terms = append(terms, m)
	}
	if len(terms) == 0 {
		return nil, errors.New("lexicon has no medications")
	}
	return terms, nil
}

// compileLexicon builds one alternation with longer names first so that
// "insulin glargine" wins over "insulin".
func compileLexicon(terms []string) *regexp.Regexp {
	sorted := append([]string(nil), terms...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})

	alts := make([]string, 0, len(sorted))
	for _, t := range sorted {
		// Internal whitespace may be any run of spaces or line breaks.
		words := strings.Split(t, " ")
		for i, w := range words {
			words[i] = regexp.QuoteMeta(w)
		}
		alts = append(alts, strings.Join(words, `\s+`))
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`)
}
