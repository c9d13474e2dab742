package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnpulse/riskwatch-api/internal/dto"
	"github.com/learnpulse/riskwatch-api/pkg/response"
)

type summaryService interface {
	Summary(ctx context.Context) (*dto.OverviewSummary, bool, error)
}

// DashboardHandler exposes the stat-card summary.
type DashboardHandler struct {
	summaries summaryService
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(summaries summaryService) *DashboardHandler {
	return &DashboardHandler{summaries: summaries}
}

// Summary godoc
// @Summary Roster risk summary
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, cacheHit, err := h.summaries.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, map[string]interface{}{"cache_hit": cacheHit})
}
