package handlers

import (
	"shelfcloud/internal/api/dto/v1/bucket"
	"shelfcloud/internal/service"
	"shelfcloud/internal/utils"

	"github.com/gin-gonic/gin"
)

type BucketHandler struct {
	bucketService     *service.BucketService
	credentialService *service.CredentialService
}

func NewBucketHandler(bucketService *service.BucketService, credentialService *service.CredentialService) *BucketHandler {
	return &BucketHandler{
		bucketService:     bucketService,
		credentialService: credentialService,
	}
}

func (h *BucketHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}

	var req bucket.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	resp, err := h.bucketService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to register bucket")
		return
	}
	utils.HandleCreated(c, resp)
}

func (h *BucketHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}

	resp, err := h.bucketService.List(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to list buckets")
		return
	}
	utils.HandleSuccess(c, resp)
}

func (h *BucketHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	bucketID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.bucketService.Get(c.Request.Context(), userID, bucketID)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to get bucket")
		return
	}
	utils.HandleSuccess(c, resp)
}

func (h *BucketHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	bucketID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req bucket.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	resp, err := h.bucketService.Update(c.Request.Context(), userID, bucketID, &req)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to update bucket")
		return
	}
	utils.HandleSuccess(c, resp)
}

func (h *BucketHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	bucketID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.bucketService.Delete(c.Request.Context(), userID, bucketID); err != nil {
		utils.HandleServiceError(c, err, "Failed to delete bucket")
		return
	}
	utils.HandleNoContent(c)
}

func (h *BucketHandler) Validate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	bucketID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.credentialService.Validate(c.Request.Context(), userID, bucketID)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to validate bucket")
		return
	}
	utils.HandleSuccess(c, resp)
}

func (h *BucketHandler) RotateCredentials(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	bucketID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req bucket.RotateCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	resp, err := h.credentialService.RotateCredentials(c.Request.Context(), userID, bucketID, &req)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to rotate credentials")
		return
	}
	utils.HandleSuccess(c, resp)
}

func (h *BucketHandler) Grant(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	bucketID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req bucket.GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	resp, err := h.bucketService.Grant(c.Request.Context(), userID, bucketID, &req)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to grant access")
		return
	}
	utils.HandleCreated(c, resp)
}

func (h *BucketHandler) ListGrants(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	bucketID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.bucketService.ListGrants(c.Request.Context(), userID, bucketID)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to list grants")
		return
	}
	utils.HandleSuccess(c, resp)
}

func (h *BucketHandler) RevokeGrant(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	bucketID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	teamID, ok := pathUUID(c, "teamId")
	if !ok {
		return
	}

	if err := h.bucketService.RevokeGrant(c.Request.Context(), userID, bucketID, teamID); err != nil {
		utils.HandleServiceError(c, err, "Failed to revoke access")
		return
	}
	utils.HandleNoContent(c)
}

func (h *BucketHandler) ListAvailableTeams(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	bucketID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.bucketService.ListAvailableTeams(c.Request.Context(), userID, bucketID)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to list available teams")
		return
	}
	utils.HandleSuccess(c, resp)
}
