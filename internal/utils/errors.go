package utils

import (
	"errors"
	"net/http"
	"strings"

	"shelfcloud/internal/api/dto/common"
	"shelfcloud/internal/logging"
	"shelfcloud/internal/service"

	"github.com/gin-gonic/gin"
)

// conflictReason extracts the machine-readable reason from a wrapped
// conflict error, e.g. "conflict: bucket_in_use" -> "bucket_in_use".
func conflictReason(err error) string {
	msg := err.Error()
	if idx := strings.LastIndex(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return ""
}

// HandleServiceError maps service-layer sentinel errors onto the HTTP error
// envelope. Anything unrecognized is logged and reported as a 500 without
// exposing details.
func HandleServiceError(c *gin.Context, err error, fallbackMessage string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeValidation, "Invalid request", nil))
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "Unauthorized", nil))
	case errors.Is(err, service.ErrInvalidOrExpiredToken):
		c.JSON(http.StatusConflict, common.NewErrorResponse(common.ErrCodeInvalidToken, "Invitation is no longer valid", nil))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, common.NewErrorResponse(common.ErrCodeForbidden, "Forbidden", nil))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, common.NewErrorResponse(common.ErrCodeNotFound, "Resource not found", nil))
	case errors.Is(err, service.ErrConflict):
		details := gin.H{}
		if reason := conflictReason(err); reason != "" {
			details["reason"] = reason
		}
		c.JSON(http.StatusConflict, common.NewErrorResponse(common.ErrCodeConflict, "Conflict", details))
	case errors.Is(err, service.ErrUpstream):
		c.JSON(http.StatusBadGateway, common.NewErrorResponse(common.ErrCodeUpstream, "Upstream storage provider error", nil))
	default:
		logger := logging.GetGlobalLogger()
		logger.LogHTTPError(
			c.Request.Method,
			c.Request.URL.Path,
			GetRealIP(c),
			http.StatusInternalServerError,
			fallbackMessage,
			err,
		)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(common.ErrCodeInternalServer, fallbackMessage, nil))
	}
}
