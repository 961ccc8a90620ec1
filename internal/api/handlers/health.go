package handlers

import (
	"database/sql"
	"net/http"

	"shelfcloud/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	db *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, common.NewErrorResponse(common.ErrCodeInternalServer, "Database connection error", nil))
		return
	}
	c.JSON(http.StatusOK, common.NewMessageResponse("Health check OK"))
}
