package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/learnpulse/riskwatch-api/internal/models"
	"github.com/learnpulse/riskwatch-api/internal/service"
	appErrors "github.com/learnpulse/riskwatch-api/pkg/errors"
	"github.com/learnpulse/riskwatch-api/pkg/response"
)

// ContextUserKey is the gin context key storing session claims.
const ContextUserKey = "currentSession"

// Session gates dashboard routes on a valid session token. Unauthenticated
// requests are turned away so the client can redirect to its entry view;
// this is a navigation guard, not row-level access control.
func Session(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// SessionClaims returns the claims stored by the Session middleware.
func SessionClaims(c *gin.Context) *models.SessionClaims {
	if v, exists := c.Get(ContextUserKey); exists {
		if claims, ok := v.(*models.SessionClaims); ok {
			return claims
		}
	}
	return nil
}
