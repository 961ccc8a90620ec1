package middleware

import (
	"net/http"
	"strings"

	"shelfcloud/internal/api/constants"
	"shelfcloud/internal/api/dto/common"
	"shelfcloud/internal/service"

	"github.com/gin-gonic/gin"
)

// RequireAPIKey authenticates the request via a project API key presented
// as a bearer secret and stores the key record on the context.
func RequireAPIKey(apiKeyService *service.APIKeyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "API key required", nil))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "Invalid authorization header format", nil))
			c.Abort()
			return
		}

		key, err := apiKeyService.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "Invalid or revoked API key", nil))
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyAPIKey, key)
		c.Next()
	}
}
