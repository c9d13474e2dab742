package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/learnpulse/riskwatch-api/internal/dto"
	"github.com/learnpulse/riskwatch-api/pkg/response"
)

type overviewService interface {
	List(ctx context.Context, searchTerm, riskFilter string) ([]dto.StudentCard, error)
	Detail(ctx context.Context, id string) (*dto.StudentCard, error)
}

// StudentHandler exposes the student list and detail endpoints.
type StudentHandler struct {
	overview overviewService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(overview overviewService) *StudentHandler {
	return &StudentHandler{overview: overview}
}

// List godoc
// @Summary List visible students
// @Tags Students
// @Produce json
// @Param search query string false "Case-insensitive name substring"
// @Param risk query string false "Risk filter: all, low, medium or high"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))
	risk := c.DefaultQuery("risk", "all")

	cards, err := h.overview.List(c.Request.Context(), search, risk)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cards)
}

// Get godoc
// @Summary Get one student card
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	card, err := h.overview.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, card)
}
