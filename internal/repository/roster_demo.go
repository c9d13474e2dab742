package repository

import (
	"context"
	"database/sql"
	"sync"

	"github.com/learnpulse/riskwatch-api/internal/models"
)

// DemoRosterRepository serves a fixed in-process roster. It is the fallback
// store when no database is configured and keeps the whole dashboard usable
// without any external service.
type DemoRosterRepository struct {
	mu       sync.RWMutex
	students []models.Student
}

// NewDemoRosterRepository seeds the demo roster.
func NewDemoRosterRepository() *DemoRosterRepository {
	return &DemoRosterRepository{students: demoStudents()}
}

// ListStudents returns the fixture in insertion order.
func (r *DemoRosterRepository) ListStudents(ctx context.Context) ([]models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Student, len(r.students))
	copy(out, r.students)
	return out, nil
}

// FindStudent looks a fixture student up by ID.
func (r *DemoRosterRepository) FindStudent(ctx context.Context, id string) (*models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.students {
		if s.ID == id {
			found := s
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

// ListActiveStrategies returns the fixed fallback strategy set.
func (r *DemoRosterRepository) ListActiveStrategies(ctx context.Context) ([]models.InterventionStrategy, error) {
	return []models.InterventionStrategy{
		{Name: "Reminder (Free)", CostLevel: "free", IsActive: true},
		{Name: "SMS (Low)", CostLevel: "low", IsActive: true},
		{Name: "Email to Parent", CostLevel: "low", IsActive: true},
		{Name: "Mentor Call", CostLevel: "medium", IsActive: true},
		{Name: "Personalized Content", CostLevel: "medium", IsActive: true},
	}, nil
}

// UpdateIntervention replaces the suggestion in place. Re-applying the same
// value is a no-op.
func (r *DemoRosterRepository) UpdateIntervention(ctx context.Context, id, suggestion string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.students {
		if r.students[i].ID == id {
			r.students[i].InterventionSuggestion = suggestion
			return nil
		}
	}
	return sql.ErrNoRows
}

// ComposeOverrideValue builds the suggestion text persisted by an override.
// Unlike the hosted table, the demo store keeps the teacher's note appended
// after an em dash.
func (r *DemoRosterRepository) ComposeOverrideValue(strategy, note string) string {
	if note != "" {
		return strategy + " — " + note
	}
	return strategy
}

// Name identifies the store variant for logging.
func (r *DemoRosterRepository) Name() string {
	return "demo"
}

func demoStudents() []models.Student {
	return []models.Student{
		{
			ID:                     "1",
			Name:                   "Aisha Kumar",
			Grade:                  "10th",
			RiskLevel:              models.RiskLevelHigh,
			RiskScore:              85,
			RiskFactors:            []string{"Low attendance (65%)", "Missed 5 consecutive assignments", "No login in 3 days"},
			Attendance:             65,
			AssignmentCompletion:   45,
			LastActivity:           "2 days ago",
			InterventionSuggestion: "Immediate mentor call + SMS reminder",
			RecommendedActivity:    "Review basic algebra concepts",
		},
		{
			ID:                     "2",
			Name:                   "Rahul Patel",
			Grade:                  "9th",
			RiskLevel:              models.RiskLevelMedium,
			RiskScore:              55,
			RiskFactors:            []string{"Assignment completion declining", "Inconsistent login pattern"},
			Attendance:             78,
			AssignmentCompletion:   70,
			LastActivity:           "5 hours ago",
			InterventionSuggestion: "Send SMS reminder about upcoming deadline",
			RecommendedActivity:    "Practice exercises on geometry",
		},
		{
			ID:                     "3",
			Name:                   "Priya Sharma",
			Grade:                  "10th",
			RiskLevel:              models.RiskLevelLow,
			RiskScore:              20,
			RiskFactors:            []string{},
			Attendance:             95,
			AssignmentCompletion:   92,
			LastActivity:           "30 minutes ago",
			InterventionSuggestion: "Continue current engagement",
			RecommendedActivity:    "Advanced trigonometry challenges",
		},
		{
			ID:                     "4",
			Name:                   "Vikram Singh",
			Grade:                  "9th",
			RiskLevel:              models.RiskLevelHigh,
			RiskScore:              78,
			RiskFactors:            []string{"Multiple late submissions", "Declining test scores", "Low engagement"},
			Attendance:             70,
			AssignmentCompletion:   50,
			LastActivity:           "1 day ago",
			InterventionSuggestion: "Schedule parent meeting + mentor support",
			RecommendedActivity:    "Foundational math review",
		},
		{
			ID:                     "5",
			Name:                   "Neha Reddy",
			Grade:                  "10th",
			RiskLevel:              models.RiskLevelMedium,
			RiskScore:              45,
			RiskFactors:            []string{"Recent drop in participation"},
			Attendance:             85,
			AssignmentCompletion:   75,
			LastActivity:           "3 hours ago",
			InterventionSuggestion: "Weekly check-in via SMS",
			RecommendedActivity:    "Statistics practice problems",
		},
		{
			ID:                     "6",
			Name:                   "Arjun Mehta",
			Grade:                  "8th",
			RiskLevel:              models.RiskLevelLow,
			RiskScore:              15,
			RiskFactors:            []string{},
			Attendance:             98,
			AssignmentCompletion:   95,
			LastActivity:           "1 hour ago",
			InterventionSuggestion: "",
			RecommendedActivity:    "Linear equations practice set",
		},
	}
}
