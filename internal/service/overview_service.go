package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/learnpulse/riskwatch-api/internal/dto"
	"github.com/learnpulse/riskwatch-api/internal/models"
	appErrors "github.com/learnpulse/riskwatch-api/pkg/errors"
)

const summaryCacheKey = "overview:summary"

type rosterReader interface {
	ListStudents(ctx context.Context) []models.Student
	FindStudent(ctx context.Context, id string) (*models.Student, error)
}

// OverviewService builds the dashboard views: the filtered student list and
// the stat-card summary.
type OverviewService struct {
	roster   rosterReader
	cache    *CacheService
	logger   *zap.Logger
	cacheTTL time.Duration
}

// NewOverviewService constructs an OverviewService.
func NewOverviewService(roster rosterReader, cache *CacheService, logger *zap.Logger, cacheTTL time.Duration) *OverviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &OverviewService{roster: roster, cache: cache, logger: logger, cacheTTL: cacheTTL}
}

// VisibleStudents narrows the roster to what the dashboard shows: an exact
// risk-level match (or "all") combined with a case-insensitive substring
// match on the name. The output keeps the input's relative order; an empty
// roster and an empty match are both simply "no results".
func VisibleStudents(all []models.Student, searchTerm, riskFilter string) []models.Student {
	term := strings.ToLower(strings.TrimSpace(searchTerm))
	visible := make([]models.Student, 0, len(all))
	for _, s := range all {
		if riskFilter != models.RiskFilterAll && s.RiskLevel != riskFilter {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(s.Name), term) {
			continue
		}
		visible = append(visible, s)
	}
	return visible
}

// Summarize counts students per risk tier for the stat cards.
func Summarize(students []models.Student) dto.OverviewSummary {
	summary := dto.OverviewSummary{TotalStudents: len(students)}
	for _, s := range students {
		switch s.RiskLevel {
		case models.RiskLevelHigh:
			summary.HighRisk++
		case models.RiskLevelMedium:
			summary.MediumRisk++
		case models.RiskLevelLow:
			summary.OnTrack++
		}
	}
	return summary
}

// List returns the presented cards for the visible subset of the roster.
func (s *OverviewService) List(ctx context.Context, searchTerm, riskFilter string) ([]dto.StudentCard, error) {
	if riskFilter == "" {
		riskFilter = models.RiskFilterAll
	}
	riskFilter = models.NormalizeRiskLevel(riskFilter)
	if !models.ValidRiskFilter(riskFilter) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "risk filter must be one of all, low, medium, high")
	}

	students := s.roster.ListStudents(ctx)
	visible := VisibleStudents(students, searchTerm, riskFilter)

	cards := make([]dto.StudentCard, 0, len(visible))
	for _, student := range visible {
		cards = append(cards, StudentCard(student))
	}
	return cards, nil
}

// Detail returns the presented card for a single student.
func (s *OverviewService) Detail(ctx context.Context, id string) (*dto.StudentCard, error) {
	student, err := s.roster.FindStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	card := StudentCard(*student)
	return &card, nil
}

// Summary returns the stat-card counts, served from cache when fresh. The
// second return value reports a cache hit.
func (s *OverviewService) Summary(ctx context.Context) (*dto.OverviewSummary, bool, error) {
	if s.cache != nil {
		var cached dto.OverviewSummary
		hit, err := s.cache.Get(ctx, summaryCacheKey, &cached)
		if err == nil && hit {
			return &cached, true, nil
		}
	}

	summary := Summarize(s.roster.ListStudents(ctx))

	if s.cache != nil {
		if err := s.cache.Set(ctx, summaryCacheKey, summary, s.cacheTTL); err != nil {
			s.logger.Warn("summary cache write failed", zap.Error(err))
		}
	}
	return &summary, false, nil
}

// InvalidateSummary drops the cached stat cards, typically after an override
// commit changed the roster.
func (s *OverviewService) InvalidateSummary(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, summaryCacheKey); err != nil {
		s.logger.Warn("summary cache invalidate failed", zap.Error(err))
	}
}
