package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnpulse/riskwatch-api/internal/dto"
	appErrors "github.com/learnpulse/riskwatch-api/pkg/errors"
)

type fakeOverrideService struct {
	session   *dto.OverrideSessionResponse
	cards     []dto.StudentCard
	openErr   error
	commitErr error
	gotOpen   string
	gotCommit dto.CommitOverrideRequest
	cancelled bool
}

func (f *fakeOverrideService) Open(ctx context.Context, studentID string) (*dto.OverrideSessionResponse, error) {
	f.gotOpen = studentID
	if f.openErr != nil {
		return nil, f.openErr
	}
	return f.session, nil
}

func (f *fakeOverrideService) Commit(ctx context.Context, req dto.CommitOverrideRequest) ([]dto.StudentCard, error) {
	f.gotCommit = req
	if f.commitErr != nil {
		return nil, f.commitErr
	}
	return f.cards, nil
}

func (f *fakeOverrideService) Cancel() { f.cancelled = true }

func (f *fakeOverrideService) Session() *dto.OverrideSessionResponse { return f.session }

type overrideEnvelope struct {
	Data  json.RawMessage  `json:"data"`
	Error *appErrors.Error `json:"error"`
}

func overrideRouter(fake *fakeOverrideService) *gin.Engine {
	h := NewOverrideHandler(fake)
	r := gin.New()
	r.POST("/students/:id/override", h.Open)
	r.POST("/override/commit", h.Commit)
	r.DELETE("/override", h.Cancel)
	r.GET("/override", h.Session)
	return r
}

func TestOverrideHandlerOpen(t *testing.T) {
	fake := &fakeOverrideService{session: &dto.OverrideSessionResponse{
		State:     "choosing_strategy",
		StudentID: "2",
		Options:   []dto.StrategyOption{{Name: "SMS (Low)", CostLevel: "low", Label: "SMS (Low) (low)"}},
	}}
	r := overrideRouter(fake)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/students/2/override", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", fake.gotOpen)

	var body struct {
		Data dto.OverrideSessionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "choosing_strategy", body.Data.State)
	require.Len(t, body.Data.Options, 1)
}

func TestOverrideHandlerOpenNotFound(t *testing.T) {
	fake := &fakeOverrideService{openErr: appErrors.ErrNotFound}
	r := overrideRouter(fake)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/students/99/override", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOverrideHandlerCommit(t *testing.T) {
	fake := &fakeOverrideService{cards: []dto.StudentCard{{ID: "2", Suggestion: "SMS (Low) — called home"}}}
	r := overrideRouter(fake)

	payload := `{"strategy":"SMS (Low)","note":"called home"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/override/commit", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "SMS (Low)", fake.gotCommit.Strategy)
	assert.Equal(t, "called home", fake.gotCommit.Note)

	var body struct {
		Data []dto.StudentCard `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "SMS (Low) — called home", body.Data[0].Suggestion)
}

func TestOverrideHandlerCommitMissingStrategy(t *testing.T) {
	fake := &fakeOverrideService{}
	r := overrideRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/override/commit", strings.NewReader(`{"note":"called home"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, fake.gotCommit.Strategy, "service is not reached without a strategy")

	var body overrideEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, appErrors.ErrValidation.Code, body.Error.Code)
}

func TestOverrideHandlerCommitConflict(t *testing.T) {
	fake := &fakeOverrideService{commitErr: appErrors.Clone(appErrors.ErrConflict, "no override in progress")}
	r := overrideRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/override/commit", strings.NewReader(`{"strategy":"SMS (Low)"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestOverrideHandlerCancel(t *testing.T) {
	fake := &fakeOverrideService{}
	r := overrideRouter(fake)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/override", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, fake.cancelled)
}

func TestOverrideHandlerSession(t *testing.T) {
	fake := &fakeOverrideService{session: &dto.OverrideSessionResponse{State: "idle"}}
	r := overrideRouter(fake)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/override", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data dto.OverrideSessionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "idle", body.Data.State)
}
