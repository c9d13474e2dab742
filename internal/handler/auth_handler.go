package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/learnpulse/riskwatch-api/internal/models"
	"github.com/learnpulse/riskwatch-api/internal/service"
	appErrors "github.com/learnpulse/riskwatch-api/pkg/errors"
	"github.com/learnpulse/riskwatch-api/pkg/response"
)

// AuthHandler exposes the passwordless sign-in endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RequestLink godoc
// @Summary Send a magic sign-in link
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.RequestLinkRequest true "Email address"
// @Success 202 {object} response.Envelope
// @Router /auth/link [post]
func (h *AuthHandler) RequestLink(c *gin.Context) {
	var req models.RequestLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.auth.RequestLink(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, gin.H{"status": "link sent"})
}

// Verify godoc
// @Summary Exchange a magic-link token for a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.VerifyLinkRequest true "Token from the emailed link"
// @Success 200 {object} response.Envelope
// @Router /auth/verify [post]
func (h *AuthHandler) Verify(c *gin.Context) {
	var req models.VerifyLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// The emailed link lands as a GET-style query too.
		req.Token = c.Query("token")
	}
	if req.Token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	session, err := h.auth.Verify(c.Request.Context(), req.Token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session)
}

// Demo godoc
// @Summary Sign in to the demo roster
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/demo [post]
func (h *AuthHandler) Demo(c *gin.Context) {
	session, err := h.auth.DemoSession()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session)
}

// Logout godoc
// @Summary Sign out
// @Tags Auth
// @Produce json
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		h.auth.Logout(parts[1])
	}
	response.NoContent(c)
}
