package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/learnpulse/riskwatch-api/internal/dto"
	"github.com/learnpulse/riskwatch-api/internal/models"
	appErrors "github.com/learnpulse/riskwatch-api/pkg/errors"
)

// Override workflow states. Exactly one override session exists at a time;
// opening a new one replaces the previous selection.
const (
	OverrideStateIdle       = "idle"
	OverrideStateSelecting  = "selecting"
	OverrideStateChoosing   = "choosing_strategy"
	OverrideStateCommitting = "committing"
)

type overrideRoster interface {
	ListStudents(ctx context.Context) []models.Student
	FindStudent(ctx context.Context, id string) (*models.Student, error)
	ListActiveStrategies(ctx context.Context) []models.InterventionStrategy
	UpdateIntervention(ctx context.Context, id, suggestion string) error
	ComposeOverrideValue(strategy, note string) string
}

type summaryInvalidator interface {
	InvalidateSummary(ctx context.Context)
}

// OverrideService drives the teacher-initiated replacement of a student's
// suggested intervention: select a student, choose from the active
// strategies, commit through the roster store, then refresh the roster.
type OverrideService struct {
	roster   overrideRoster
	overview summaryInvalidator
	metrics  *MetricsService
	logger   *zap.Logger

	mu      sync.Mutex
	state   string
	student *models.Student
	options []dto.StrategyOption
}

// NewOverrideService constructs an OverrideService in the idle state.
func NewOverrideService(roster overrideRoster, overview summaryInvalidator, metrics *MetricsService, logger *zap.Logger) *OverrideService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OverrideService{roster: roster, overview: overview, metrics: metrics, logger: logger, state: OverrideStateIdle}
}

// Open targets a student and pre-populates the strategy chooser. A failed
// strategy fetch still opens the session with an empty chooser; commit is
// blocked until options are available, but dismissing is always possible.
func (s *OverrideService) Open(ctx context.Context, studentID string) (*dto.OverrideSessionResponse, error) {
	student, err := s.roster.FindStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.state = OverrideStateSelecting
	s.student = student
	s.options = nil
	s.mu.Unlock()

	strategies := s.roster.ListActiveStrategies(ctx)
	options := make([]dto.StrategyOption, 0, len(strategies))
	for _, st := range strategies {
		options = append(options, StrategyOption(st))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// The session may have been dismissed while strategies were loading; a
	// late result must not force the workflow back open.
	if s.state != OverrideStateSelecting || s.student == nil || s.student.ID != studentID {
		return s.sessionLocked(), nil
	}
	s.state = OverrideStateChoosing
	s.options = options
	return s.sessionLocked(), nil
}

// Commit persists the chosen strategy and, on success, returns the refreshed
// roster. The refresh read is issued only after the write has completed. On
// failure the session stays open with the selection intact so the teacher
// can retry or cancel.
func (s *OverrideService) Commit(ctx context.Context, req dto.CommitOverrideRequest) ([]dto.StudentCard, error) {
	s.mu.Lock()
	if s.state != OverrideStateChoosing || s.student == nil {
		s.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrConflict, "no override in progress")
	}
	if len(s.options) == 0 {
		s.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrConflict, "strategies are not loaded yet")
	}
	if !s.hasOptionLocked(req.Strategy) {
		s.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrValidation, "strategy is not one of the offered options")
	}
	studentID := s.student.ID
	s.state = OverrideStateCommitting
	s.mu.Unlock()

	value := s.roster.ComposeOverrideValue(req.Strategy, req.Note)
	err := s.roster.UpdateIntervention(ctx, studentID, value)

	s.mu.Lock()
	if err != nil {
		// Selection retained for retry.
		s.state = OverrideStateChoosing
		s.mu.Unlock()
		if s.metrics != nil {
			s.metrics.RecordOverrideCommit(false)
		}
		s.logger.Warn("override commit failed",
			zap.String("student_id", studentID), zap.String("strategy", req.Strategy), zap.Error(err))
		return nil, err
	}
	s.state = OverrideStateIdle
	s.student = nil
	s.options = nil
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RecordOverrideCommit(true)
	}
	if s.overview != nil {
		s.overview.InvalidateSummary(ctx)
	}
	s.logger.Info("intervention overridden",
		zap.String("student_id", studentID), zap.String("strategy", req.Strategy))

	students := s.roster.ListStudents(ctx)
	cards := make([]dto.StudentCard, 0, len(students))
	for _, student := range students {
		cards = append(cards, StudentCard(student))
	}
	return cards, nil
}

// Cancel dismisses the workflow without persisting anything. Cancelling when
// nothing is open is a no-op.
func (s *OverrideService) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = OverrideStateIdle
	s.student = nil
	s.options = nil
}

// Session reports the current workflow state.
func (s *OverrideService) Session() *dto.OverrideSessionResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionLocked()
}

func (s *OverrideService) sessionLocked() *dto.OverrideSessionResponse {
	resp := &dto.OverrideSessionResponse{State: s.state}
	if s.student != nil {
		resp.StudentID = s.student.ID
		resp.StudentName = s.student.Name
	}
	if len(s.options) > 0 {
		resp.Options = make([]dto.StrategyOption, len(s.options))
		copy(resp.Options, s.options)
	}
	return resp
}

func (s *OverrideService) hasOptionLocked(name string) bool {
	for _, opt := range s.options {
		if opt.Name == name {
			return true
		}
	}
	return false
}
