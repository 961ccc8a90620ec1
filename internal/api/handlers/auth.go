package handlers

import (
	"shelfcloud/internal/api/dto/v1/auth"
	"shelfcloud/internal/api/mapper"
	"shelfcloud/internal/service"
	"shelfcloud/internal/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	session, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to register")
		return
	}
	utils.HandleCreated(c, session)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	session, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to log in")
		return
	}
	utils.HandleSuccess(c, session)
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	utils.HandleSuccess(c, mapper.ToUserResponse(user))
}

// Logout is stateless on the server side; tokens expire on their own. The
// endpoint exists so clients have a single place to end a session from.
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.HandleMessage(c, "Logged out")
}
