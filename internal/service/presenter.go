package service

import (
	"fmt"
	"strings"

	"github.com/learnpulse/riskwatch-api/internal/dto"
	"github.com/learnpulse/riskwatch-api/internal/models"
)

// displayPlaceholder stands in for absent free-text fields on the dashboard.
const displayPlaceholder = "—"

// defaultSuggestion is the final fallback when neither an override nor a
// recommended activity is present.
const defaultSuggestion = "Reminder (Free)"

// RiskBadge maps a risk level to its display badge. Unexpected casing is
// normalised rather than treated as a new level.
func RiskBadge(level string) dto.RiskBadge {
	tier := models.NormalizeRiskLevel(level)
	return dto.RiskBadge{Label: strings.ToUpper(tier), Tier: tier}
}

// DisplayReasons joins the risk factors for display.
func DisplayReasons(s models.Student) string {
	joined := strings.Join(s.RiskFactors, ", ")
	if joined == "" {
		return displayPlaceholder
	}
	return joined
}

// DisplaySuggestion resolves the suggested intervention through the
// three-tier fallback: teacher override, then recommended activity, then the
// literal default.
func DisplaySuggestion(s models.Student) string {
	if s.InterventionSuggestion != "" {
		return s.InterventionSuggestion
	}
	if s.RecommendedActivity != "" {
		return s.RecommendedActivity
	}
	return defaultSuggestion
}

// DisplayNextActivity returns the recency text verbatim.
func DisplayNextActivity(s models.Student) string {
	if s.LastActivity == "" {
		return displayPlaceholder
	}
	return s.LastActivity
}

// StrategyOption renders one chooser entry as "{name} ({costLevel})".
func StrategyOption(st models.InterventionStrategy) dto.StrategyOption {
	return dto.StrategyOption{
		Name:      st.Name,
		CostLevel: st.CostLevel,
		Label:     fmt.Sprintf("%s (%s)", st.Name, st.CostLevel),
	}
}

// StudentCard assembles the full presented row for one student.
func StudentCard(s models.Student) dto.StudentCard {
	return dto.StudentCard{
		ID:                   s.ID,
		Name:                 s.Name,
		Grade:                s.Grade,
		Badge:                RiskBadge(s.RiskLevel),
		RiskScore:            s.RiskScore,
		Attendance:           s.Attendance,
		AssignmentCompletion: s.AssignmentCompletion,
		Reasons:              DisplayReasons(s),
		NextActivity:         DisplayNextActivity(s),
		Suggestion:           DisplaySuggestion(s),
	}
}
