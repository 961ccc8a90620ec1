package utils

import (
	"net/http"

	"shelfcloud/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// Success-path helpers. Every handler replies through one of these so the
// envelope shape stays uniform; error replies go through HandleServiceError.

// HandleSuccess replies 200 with data wrapped in the standard envelope.
func HandleSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(data))
}

// HandleCreated replies 201 with the created resource.
func HandleCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, common.NewSuccessResponse(data))
}

// HandleMessage replies 200 with a message and no data payload.
func HandleMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, common.NewMessageResponse(message))
}

// HandleNoContent replies 204.
func HandleNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
