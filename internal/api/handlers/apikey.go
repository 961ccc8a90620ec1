package handlers

import (
	"shelfcloud/internal/api/constants"
	"shelfcloud/internal/api/dto/v1/apikey"
	"shelfcloud/internal/api/mapper"
	"shelfcloud/internal/service"
	"shelfcloud/internal/utils"

	"github.com/gin-gonic/gin"
)

type APIKeyHandler struct {
	apiKeyService *service.APIKeyService
}

func NewAPIKeyHandler(apiKeyService *service.APIKeyService) *APIKeyHandler {
	return &APIKeyHandler{
		apiKeyService: apiKeyService,
	}
}

func (h *APIKeyHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req apikey.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	resp, err := h.apiKeyService.Create(c.Request.Context(), userID, projectID, &req)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to create API key")
		return
	}
	utils.HandleCreated(c, resp)
}

func (h *APIKeyHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.apiKeyService.List(c.Request.Context(), userID, projectID)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to list API keys")
		return
	}
	utils.HandleSuccess(c, resp)
}

func (h *APIKeyHandler) Revoke(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	keyID, ok := pathUUID(c, "keyId")
	if !ok {
		return
	}

	if err := h.apiKeyService.Revoke(c.Request.Context(), userID, projectID, keyID); err != nil {
		utils.HandleServiceError(c, err, "Failed to revoke API key")
		return
	}
	utils.HandleNoContent(c)
}

func (h *APIKeyHandler) Regenerate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	keyID, ok := pathUUID(c, "keyId")
	if !ok {
		return
	}

	resp, err := h.apiKeyService.Regenerate(c.Request.Context(), userID, projectID, keyID)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to regenerate API key")
		return
	}
	utils.HandleSuccess(c, resp)
}

// Self reports the key record attached by the API key middleware, letting
// data-plane callers introspect their own credential.
func (h *APIKeyHandler) Self(c *gin.Context) {
	val, exists := c.Get(constants.ContextKeyAPIKey)
	if !exists {
		handleUnauthenticated(c)
		return
	}
	key, ok := val.(*mapper.APIKey)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	utils.HandleSuccess(c, mapper.ToAPIKeyListResponse(key))
}
