package classifier

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"care-doc-assistant/internal/domain"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// Unicode-aware word edges; RE2's \b treats letters like "é" as non-word.
const (
	wordStart = `(?:^|[^\p{L}\p{N}_])`
	wordEnd   = `(?:$|[^\p{L}\p{N}_])`
)

// ProtocolRule triggers "<Name> Protocol" when any trigger phrase occurs
// in the text, ignoring case.
type ProtocolRule struct {
	Name     string   `yaml:"name" json:"name"`
	Triggers []string `yaml:"triggers" json:"triggers"`

	re *regexp.Regexp
}

// Label is the text reported when the rule triggers.
func (r ProtocolRule) Label() string {
	return r.Name + " Protocol"
}

// WarningRule emits Message when Pattern matches and Unless (if set) does not.
// Both patterns are matched case-insensitively.
type WarningRule struct {
	ID      string `yaml:"id" json:"id"`
	Message string `yaml:"message" json:"message"`
	Pattern string `yaml:"pattern" json:"pattern"`
	Unless  string `yaml:"unless,omitempty" json:"unless,omitempty"`

	re       *regexp.Regexp
	unlessRe *regexp.Regexp
}

// RuleSet is the ordered rule table used by the classifier. Output order of
// every findings field follows the order of the corresponding list here.
type RuleSet struct {
	Protocols     []ProtocolRule `yaml:"protocols" json:"protocols"`
	Warnings      []WarningRule  `yaml:"warnings" json:"warnings"`
	CriticalTerms []string       `yaml:"critical_terms" json:"critical_terms"`

	criticalRes []*regexp.Regexp
}

// DefaultRules returns the built-in rule table.
func DefaultRules() (*RuleSet, error) {
	return ParseRules(defaultRulesYAML)
}

// LoadRules reads a rule table from a YAML file. An empty path returns the
// built-in table.
func LoadRules(path string) (*RuleSet, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultRules()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	return ParseRules(data)
}

// ParseRules decodes, validates and compiles a YAML rule table.
func ParseRules(data []byte) (*RuleSet, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %v", domain.ErrInvalidRules, err)
	}
	if err := validateRules(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRules, err)
	}

	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("%w: decode rules: %v", domain.ErrInvalidRules, err)
	}
	if err := rs.compile(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRules, err)
	}
	return &rs, nil
}

func (rs *RuleSet) compile() error {
	seen := make(map[string]bool, len(rs.Protocols))
	for i := range rs.Protocols {
		p := &rs.Protocols[i]
		if seen[p.Name] {
			return fmt.Errorf("duplicate protocol %q", p.Name)
		}
		seen[p.Name] = true

		alts := make([]string, 0, len(p.Triggers))
		for _, t := range p.Triggers {
			alts = append(alts, regexp.QuoteMeta(t))
		}
		re, err := regexp.Compile(`(?i)(?:` + strings.Join(alts, "|") + `)`)
		if err != nil {
			return fmt.Errorf("protocol %q: %w", p.Name, err)
		}
		p.re = re
	}

	for i := range rs.Warnings {
		w := &rs.Warnings[i]
		re, err := regexp.Compile(`(?i)` + w.Pattern)
		if err != nil {
			return fmt.Errorf("warning %q pattern: %w", w.ID, err)
		}
		w.re = re
		if w.Unless != "" {
			unless, err := regexp.Compile(`(?i)` + w.Unless)
			if err != nil {
				return fmt.Errorf("warning %q unless: %w", w.ID, err)
			}
			w.unlessRe = unless
		}
	}

	rs.criticalRes = make([]*regexp.Regexp, 0, len(rs.CriticalTerms))
	for _, term := range rs.CriticalTerms {
		rs.criticalRes = append(rs.criticalRes, regexp.MustCompile(`(?i)`+wordStart+regexp.QuoteMeta(term)+wordEnd))
	}
	return nil
}

func (rs *RuleSet) matchProtocols(text string) []string {
	out := []string{}
	for _, p := range rs.Protocols {
		if p.re.MatchString(text) {
			out = append(out, p.Label())
		}
	}
	return out
}

func (rs *RuleSet) matchWarnings(text string) []string {
	out := []string{}
	for _, w := range rs.Warnings {
		if !w.re.MatchString(text) {
			continue
		}
		if w.unlessRe != nil && w.unlessRe.MatchString(text) {
			continue
		}
		out = append(out, w.Message)
	}
	return out
}

func (rs *RuleSet) matchCriticalTerms(text string) []string {
	out := []string{}
	for i, re := range rs.criticalRes {
		if re.MatchString(text) {
			out = append(out, strings.ToUpper(rs.CriticalTerms[i]))
		}
	}
	return out
}

// rulesSchema is the JSON Schema every rule table must satisfy.
func rulesSchema() map[string]any {
	nonEmpty := map[string]any{"type": "string", "minLength": 1}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"protocols", "warnings", "critical_terms"},
		"properties": map[string]any{
			"protocols": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []string{"name", "triggers"},
					"properties": map[string]any{
						"name":     nonEmpty,
						"triggers": map[string]any{"type": "array", "minItems": 1, "items": nonEmpty},
					},
				},
			},
			"warnings": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []string{"id", "message", "pattern"},
					"properties": map[string]any{
						"id":      nonEmpty,
						"message": nonEmpty,
						"pattern": nonEmpty,
						"unless":  map[string]any{"type": "string"},
					},
				},
			},
			"critical_terms": map[string]any{
				"type":        "array",
				"uniqueItems": true,
				"items":       map[string]any{"type": "string", "pattern": `^[A-Za-z][A-Za-z ]*$`},
			},
		},
	}
}

func validateRules(doc any) error {
	schemaJSON, err := json.Marshal(rulesSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("rules.json", bytes.NewReader(schemaJSON)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("rules.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	// Round-trip through JSON so the validator sees JSON-native types.
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal rules: %w", err)
	}
	var v any
	if err := json.Unmarshal(docJSON, &v); err != nil {
		return fmt.Errorf("unmarshal rules: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("rules do not match schema: %w", err)
	}
	return nil
}
