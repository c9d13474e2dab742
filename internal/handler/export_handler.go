package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/learnpulse/riskwatch-api/pkg/errors"
	"github.com/learnpulse/riskwatch-api/pkg/response"
)

type exportService interface {
	RosterCSV(ctx context.Context) ([]byte, error)
	RosterPDF(ctx context.Context) ([]byte, error)
}

// ExportHandler serves downloadable roster documents.
type ExportHandler struct {
	exports exportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports exportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Roster godoc
// @Summary Download the roster
// @Tags Exports
// @Produce octet-stream
// @Param format query string false "csv (default) or pdf"
// @Success 200
// @Router /exports/roster [get]
func (h *ExportHandler) Roster(c *gin.Context) {
	switch c.DefaultQuery("format", "csv") {
	case "csv":
		data, err := h.exports.RosterCSV(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="roster.csv"`)
		c.Data(http.StatusOK, "text/csv", data)
	case "pdf":
		data, err := h.exports.RosterPDF(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="roster.pdf"`)
		c.Data(http.StatusOK, "application/pdf", data)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
	}
}
