package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/learnpulse/riskwatch-api/internal/models"
	appErrors "github.com/learnpulse/riskwatch-api/pkg/errors"
)

// RosterStore is the uniform contract over whichever backing store is
// configured. Callers never notice whether rows come from the hosted table
// or the in-process demo fixture.
type RosterStore interface {
	ListStudents(ctx context.Context) ([]models.Student, error)
	FindStudent(ctx context.Context, id string) (*models.Student, error)
	ListActiveStrategies(ctx context.Context) ([]models.InterventionStrategy, error)
	UpdateIntervention(ctx context.Context, id, suggestion string) error
	ComposeOverrideValue(strategy, note string) string
	Name() string
}

// RosterService fronts the roster store with the dashboard's read/update
// contract: student reads never fail loudly, strategies are cached for the
// life of the process, and writes surface their failures for retry.
type RosterService struct {
	store  RosterStore
	logger *zap.Logger

	mu         sync.Mutex
	strategies []models.InterventionStrategy
}

// NewRosterService constructs a RosterService.
func NewRosterService(store RosterStore, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{store: store, logger: logger}
}

// ListStudents returns the roster. A failed fetch is logged and reported as
// an empty roster; callers always receive a usable slice.
func (s *RosterService) ListStudents(ctx context.Context) []models.Student {
	students, err := s.store.ListStudents(ctx)
	if err != nil {
		s.logger.Warn("student fetch failed, serving empty roster",
			zap.String("store", s.store.Name()), zap.Error(err))
		return []models.Student{}
	}
	if students == nil {
		students = []models.Student{}
	}
	return students
}

// FindStudent loads one student by ID.
func (s *RosterService) FindStudent(ctx context.Context, id string) (*models.Student, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}
	student, err := s.store.FindStudent(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// ListActiveStrategies returns the selectable strategies. The first
// successful non-empty fetch is cached for the rest of the process lifetime;
// a failed or empty fetch leaves the cache untouched so the next call
// retries.
func (s *RosterService) ListActiveStrategies(ctx context.Context) []models.InterventionStrategy {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.strategies) > 0 {
		out := make([]models.InterventionStrategy, len(s.strategies))
		copy(out, s.strategies)
		return out
	}

	strategies, err := s.store.ListActiveStrategies(ctx)
	if err != nil {
		s.logger.Warn("strategy fetch failed",
			zap.String("store", s.store.Name()), zap.Error(err))
		return []models.InterventionStrategy{}
	}

	active := make([]models.InterventionStrategy, 0, len(strategies))
	for _, st := range strategies {
		if st.IsActive {
			active = append(active, st)
		}
	}
	if len(active) > 0 {
		s.strategies = active
	}

	out := make([]models.InterventionStrategy, len(active))
	copy(out, active)
	return out
}

// UpdateIntervention persists a new suggestion for the given student. The
// write touches only the suggestion field; re-applying the same value is a
// no-op. Callers are expected to re-fetch the roster afterwards rather than
// patch local state.
func (s *RosterService) UpdateIntervention(ctx context.Context, id, suggestion string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}
	if err := s.store.UpdateIntervention(ctx, id, suggestion); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrWriteFailed.Code, appErrors.ErrWriteFailed.Status, "failed to save intervention override")
	}
	return nil
}

// ComposeOverrideValue delegates to the store variant; the demo fixture and
// the hosted table disagree on whether the note is kept, and that difference
// is deliberately preserved.
func (s *RosterService) ComposeOverrideValue(strategy, note string) string {
	return s.store.ComposeOverrideValue(strategy, note)
}

// StoreName reports the active backing store variant.
func (s *RosterService) StoreName() string {
	return s.store.Name()
}
