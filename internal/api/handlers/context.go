package handlers

import (
	"net/http"

	"shelfcloud/internal/api/constants"
	"shelfcloud/internal/api/dto/common"
	"shelfcloud/internal/api/mapper"
	"shelfcloud/internal/api/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUser returns the authenticated user placed on the context by the
// auth middleware. The second return is false when the middleware did not
// run; callers abort with 401 in that case.
func currentUser(c *gin.Context) (*mapper.User, bool) {
	val, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := val.(*mapper.User)
	return user, ok
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	user, ok := currentUser(c)
	if !ok {
		return uuid.Nil, false
	}
	return user.ID, true
}

func handleUnauthenticated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "Unauthorized", nil))
}

// handleBindError reports request binding failures with per-field details.
func handleBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeValidation, "Invalid request body", validation.FormatValidationError(err)))
}

// pathUUID parses a UUID path parameter, replying 400 on malformed input.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeBadRequest, "Invalid "+name, nil))
		return uuid.Nil, false
	}
	return id, true
}
