package dto

// RiskBadge is the display form of a risk level.
type RiskBadge struct {
	Label string `json:"label"`
	Tier  string `json:"tier"`
}

// StudentCard is a student row as rendered on the dashboard: raw record plus
// the presented strings the UI shows verbatim.
type StudentCard struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Grade                string    `json:"grade"`
	Badge                RiskBadge `json:"badge"`
	RiskScore            float64   `json:"risk_score"`
	Attendance           float64   `json:"attendance"`
	AssignmentCompletion float64   `json:"assignment_completion"`
	Reasons              string    `json:"reasons"`
	NextActivity         string    `json:"next_activity"`
	Suggestion           string    `json:"suggestion"`
}

// OverviewSummary mirrors the stat cards at the top of the dashboard.
type OverviewSummary struct {
	TotalStudents int `json:"total_students"`
	HighRisk      int `json:"high_risk"`
	MediumRisk    int `json:"medium_risk"`
	OnTrack       int `json:"on_track"`
}

// StrategyOption is one chooser entry in the override dialog.
type StrategyOption struct {
	Name      string `json:"name"`
	CostLevel string `json:"cost_level"`
	Label     string `json:"label"`
}

// OverrideSessionResponse describes the open override workflow.
type OverrideSessionResponse struct {
	State       string           `json:"state"`
	StudentID   string           `json:"student_id,omitempty"`
	StudentName string           `json:"student_name,omitempty"`
	Options     []StrategyOption `json:"options,omitempty"`
}

// CommitOverrideRequest confirms a chosen strategy with an optional note.
type CommitOverrideRequest struct {
	Strategy string `json:"strategy" validate:"required"`
	Note     string `json:"note"`
}
