package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnpulse/riskwatch-api/internal/models"
	appErrors "github.com/learnpulse/riskwatch-api/pkg/errors"
)

func sampleRoster() []models.Student {
	return []models.Student{
		{ID: "1", Name: "Aarav", RiskLevel: models.RiskLevelLow, RiskScore: 20},
		{ID: "2", Name: "Ishaan", RiskLevel: models.RiskLevelMedium, RiskScore: 55},
	}
}

func TestVisibleStudentsRiskFilter(t *testing.T) {
	visible := VisibleStudents(sampleRoster(), "", models.RiskLevelMedium)
	require.Len(t, visible, 1)
	assert.Equal(t, "Ishaan", visible[0].Name)
}

func TestVisibleStudentsSearch(t *testing.T) {
	visible := VisibleStudents(sampleRoster(), "ar", models.RiskFilterAll)
	require.Len(t, visible, 1)
	assert.Equal(t, "Aarav", visible[0].Name)

	visible = VisibleStudents(sampleRoster(), "AARAV", models.RiskFilterAll)
	require.Len(t, visible, 1)
	assert.Equal(t, "Aarav", visible[0].Name)
}

func TestVisibleStudentsCombined(t *testing.T) {
	visible := VisibleStudents(sampleRoster(), "aa", models.RiskLevelMedium)
	assert.Empty(t, visible, "both predicates must hold")
}

func TestVisibleStudentsPreservesOrder(t *testing.T) {
	roster := []models.Student{
		{ID: "1", Name: "Aarav", RiskLevel: models.RiskLevelHigh},
		{ID: "2", Name: "Meera", RiskLevel: models.RiskLevelHigh},
		{ID: "3", Name: "Aadhya", RiskLevel: models.RiskLevelHigh},
	}
	visible := VisibleStudents(roster, "aa", models.RiskLevelHigh)
	require.Len(t, visible, 2)
	assert.Equal(t, "Aarav", visible[0].Name)
	assert.Equal(t, "Aadhya", visible[1].Name)
}

func TestVisibleStudentsEmptyInputs(t *testing.T) {
	assert.Empty(t, VisibleStudents(nil, "", models.RiskFilterAll))
	assert.Len(t, VisibleStudents(sampleRoster(), "", models.RiskFilterAll), 2)
	assert.Empty(t, VisibleStudents(sampleRoster(), "zzz", models.RiskFilterAll))
}

func TestSummarize(t *testing.T) {
	roster := append(sampleRoster(), models.Student{ID: "3", Name: "Diya", RiskLevel: models.RiskLevelHigh})
	summary := Summarize(roster)
	assert.Equal(t, 3, summary.TotalStudents)
	assert.Equal(t, 1, summary.HighRisk)
	assert.Equal(t, 1, summary.MediumRisk)
	assert.Equal(t, 1, summary.OnTrack)

	empty := Summarize(nil)
	assert.Equal(t, 0, empty.TotalStudents)
}

func TestOverviewList(t *testing.T) {
	roster := NewRosterService(&fakeRosterStore{students: sampleRoster()}, nil)
	svc := NewOverviewService(roster, nil, nil, 0)

	cards, err := svc.List(context.Background(), "", "medium")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Ishaan", cards[0].Name)
	assert.Equal(t, "MEDIUM", cards[0].Badge.Label)
}

func TestOverviewListDefaultsToAll(t *testing.T) {
	roster := NewRosterService(&fakeRosterStore{students: sampleRoster()}, nil)
	svc := NewOverviewService(roster, nil, nil, 0)

	cards, err := svc.List(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, cards, 2)
}

func TestOverviewListRejectsUnknownFilter(t *testing.T) {
	roster := NewRosterService(&fakeRosterStore{students: sampleRoster()}, nil)
	svc := NewOverviewService(roster, nil, nil, 0)

	_, err := svc.List(context.Background(), "", "critical")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestOverviewDetail(t *testing.T) {
	roster := NewRosterService(&fakeRosterStore{students: sampleRoster()}, nil)
	svc := NewOverviewService(roster, nil, nil, 0)

	card, err := svc.Detail(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Aarav", card.Name)

	_, err = svc.Detail(context.Background(), "99")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

type fakeCacheRepo struct {
	entries map[string][]byte
	deletes []string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{entries: make(map[string][]byte)}
}

func (f *fakeCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := f.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = raw
	return nil
}

func (f *fakeCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	f.deletes = append(f.deletes, pattern)
	for key := range f.entries {
		delete(f.entries, key)
	}
	return nil
}

func TestOverviewSummaryUsesCache(t *testing.T) {
	store := &fakeRosterStore{students: sampleRoster()}
	roster := NewRosterService(store, nil)
	cacheRepo := newFakeCacheRepo()
	cacheSvc := NewCacheService(cacheRepo, nil, time.Minute, nil, true)
	svc := NewOverviewService(roster, cacheSvc, nil, time.Minute)

	summary, hit, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, summary.TotalStudents)
	assert.Equal(t, 1, store.listCalls)

	summary, hit, err = svc.Summary(context.Background())
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 2, summary.TotalStudents)
	assert.Equal(t, 1, store.listCalls, "second read is served from cache")

	svc.InvalidateSummary(context.Background())
	_, hit, err = svc.Summary(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, store.listCalls)
}

func TestOverviewSummaryWithoutCache(t *testing.T) {
	roster := NewRosterService(&fakeRosterStore{students: sampleRoster()}, nil)
	svc := NewOverviewService(roster, nil, nil, 0)

	summary, hit, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, summary.TotalStudents)
}
