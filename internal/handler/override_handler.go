package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnpulse/riskwatch-api/internal/dto"
	appErrors "github.com/learnpulse/riskwatch-api/pkg/errors"
	"github.com/learnpulse/riskwatch-api/pkg/response"
)

type overrideService interface {
	Open(ctx context.Context, studentID string) (*dto.OverrideSessionResponse, error)
	Commit(ctx context.Context, req dto.CommitOverrideRequest) ([]dto.StudentCard, error)
	Cancel()
	Session() *dto.OverrideSessionResponse
}

// OverrideHandler exposes the intervention override workflow.
type OverrideHandler struct {
	overrides overrideService
}

// NewOverrideHandler constructs OverrideHandler.
func NewOverrideHandler(overrides overrideService) *OverrideHandler {
	return &OverrideHandler{overrides: overrides}
}

// Open godoc
// @Summary Start an override for a student
// @Tags Overrides
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/override [post]
func (h *OverrideHandler) Open(c *gin.Context) {
	session, err := h.overrides.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session)
}

// Commit godoc
// @Summary Commit the chosen strategy
// @Tags Overrides
// @Accept json
// @Produce json
// @Param payload body dto.CommitOverrideRequest true "Chosen strategy and optional note"
// @Success 200 {object} response.Envelope
// @Router /override/commit [post]
func (h *OverrideHandler) Commit(c *gin.Context) {
	var req dto.CommitOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if req.Strategy == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "strategy is required"))
		return
	}
	students, err := h.overrides.Commit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Cancel godoc
// @Summary Dismiss the override workflow
// @Tags Overrides
// @Produce json
// @Success 204
// @Router /override [delete]
func (h *OverrideHandler) Cancel(c *gin.Context) {
	h.overrides.Cancel()
	response.NoContent(c)
}

// Session godoc
// @Summary Inspect the override workflow state
// @Tags Overrides
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /override [get]
func (h *OverrideHandler) Session(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.overrides.Session())
}
