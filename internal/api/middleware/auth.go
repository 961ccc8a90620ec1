package middleware

import (
	"net/http"
	"strings"

	"shelfcloud/internal/api/constants"
	"shelfcloud/internal/api/dto/common"
	"shelfcloud/internal/service"

	"github.com/gin-gonic/gin"
)

// RequireAuth authenticates the request via a bearer session token and
// stores the resolved user on the context.
func RequireAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "Authentication required", nil))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "Invalid authorization header format", nil))
			c.Abort()
			return
		}

		user, err := authService.VerifySession(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "Invalid or expired session", nil))
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Next()
	}
}
