package handler

import (
	"net/http"

	"care-doc-assistant/internal/classifier"
)

// RulesHandler exposes the active rule table.
type RulesHandler struct {
	rules *classifier.RuleSet
}

func NewRulesHandler(rules *classifier.RuleSet) *RulesHandler {
	return &RulesHandler{rules: rules}
}

// GetRules handles GET /rules
func (h *RulesHandler) GetRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.rules)
}
