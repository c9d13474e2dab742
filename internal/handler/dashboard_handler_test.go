package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnpulse/riskwatch-api/internal/dto"
	appErrors "github.com/learnpulse/riskwatch-api/pkg/errors"
)

type fakeSummaryService struct {
	summary  *dto.OverviewSummary
	cacheHit bool
	err      error
}

func (f *fakeSummaryService) Summary(ctx context.Context) (*dto.OverviewSummary, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	return f.summary, f.cacheHit, nil
}

type summaryEnvelope struct {
	Data  *dto.OverviewSummary   `json:"data"`
	Error *appErrors.Error       `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func TestDashboardHandlerSummary(t *testing.T) {
	fake := &fakeSummaryService{
		summary:  &dto.OverviewSummary{TotalStudents: 6, HighRisk: 2, MediumRisk: 2, OnTrack: 2},
		cacheHit: true,
	}
	h := NewDashboardHandler(fake)

	r := gin.New()
	r.GET("/dashboard/summary", h.Summary)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var body summaryEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Data)
	assert.Equal(t, 6, body.Data.TotalStudents)
	assert.Equal(t, true, body.Meta["cache_hit"])
}

func TestDashboardHandlerSummaryError(t *testing.T) {
	fake := &fakeSummaryService{err: appErrors.ErrInternal}
	h := NewDashboardHandler(fake)

	r := gin.New()
	r.GET("/dashboard/summary", h.Summary)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
