package models

import "strings"

// Risk levels as supplied by the external scoring pipeline. The service
// never derives a level from the score; both arrive pre-computed and are
// trusted independently.
const (
	RiskLevelLow    = "low"
	RiskLevelMedium = "medium"
	RiskLevelHigh   = "high"
)

// RiskFilterAll selects every level when listing students.
const RiskFilterAll = "all"

// Student represents a monitored learner together with the externally
// computed risk fields.
type Student struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name"`
	Grade                  string   `json:"grade"`
	RiskLevel              string   `json:"risk_level"`
	RiskScore              float64  `json:"risk_score"`
	RiskFactors            []string `json:"risk_factors"`
	Attendance             float64  `json:"attendance"`
	AssignmentCompletion   float64  `json:"assignment_completion"`
	LastActivity           string   `json:"last_activity"`
	InterventionSuggestion string   `json:"intervention_suggestion"`
	RecommendedActivity    string   `json:"recommended_activity"`
}

// NormalizeRiskLevel lower-cases the supplied level so that upstream casing
// quirks do not turn into new categories.
func NormalizeRiskLevel(level string) string {
	return strings.ToLower(strings.TrimSpace(level))
}

// ValidRiskFilter reports whether the value is usable as a list filter.
func ValidRiskFilter(filter string) bool {
	switch filter {
	case RiskFilterAll, RiskLevelLow, RiskLevelMedium, RiskLevelHigh:
		return true
	}
	return false
}
