package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/velinpetkov/task-tracker-api/internal/constants"
	apierrors "github.com/velinpetkov/task-tracker-api/internal/errors"
	"github.com/velinpetkov/task-tracker-api/internal/services"
)

// RequireAuth verifies the bearer token and stores the resolved user ID in
// the request context. Verification failure short-circuits with 401 before
// any handler runs.
func RequireAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractBearerToken(c.GetHeader("Authorization"))
		if tokenStr == "" {
			apierrors.Unauthorized(c, "Missing or malformed Authorization header")
			c.Abort()
			return
		}

		userID, err := tokens.Verify(tokenStr)
		if err != nil {
			if errors.Is(err, services.ErrExpiredToken) {
				apierrors.Unauthorized(c, "Token expired")
			} else {
				apierrors.Unauthorized(c, "Invalid token")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
