package handlers

import (
	"shelfcloud/internal/api/dto/v1/organization"
	"shelfcloud/internal/service"
	"shelfcloud/internal/utils"

	"github.com/gin-gonic/gin"
)

type OrganizationHandler struct {
	orgService *service.OrganizationService
}

func NewOrganizationHandler(orgService *service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
	}
}

func (h *OrganizationHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}

	var req organization.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	resp, err := h.orgService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to create organization")
		return
	}
	utils.HandleCreated(c, resp)
}

func (h *OrganizationHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}

	resp, err := h.orgService.List(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to list organizations")
		return
	}
	utils.HandleSuccess(c, resp)
}

func (h *OrganizationHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	orgID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.orgService.Get(c.Request.Context(), userID, orgID)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to get organization")
		return
	}
	utils.HandleSuccess(c, resp)
}

func (h *OrganizationHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	orgID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req organization.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	resp, err := h.orgService.Update(c.Request.Context(), userID, orgID, &req)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to update organization")
		return
	}
	utils.HandleSuccess(c, resp)
}

func (h *OrganizationHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	orgID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.orgService.Delete(c.Request.Context(), userID, orgID); err != nil {
		utils.HandleServiceError(c, err, "Failed to delete organization")
		return
	}
	utils.HandleNoContent(c)
}

func (h *OrganizationHandler) ListMembers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	orgID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.orgService.ListMembers(c.Request.Context(), userID, orgID)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to list members")
		return
	}
	utils.HandleSuccess(c, resp)
}

func (h *OrganizationHandler) AddMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	orgID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req organization.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	if err := h.orgService.AddMember(c.Request.Context(), userID, orgID, &req); err != nil {
		utils.HandleServiceError(c, err, "Failed to add member")
		return
	}
	utils.HandleMessage(c, "Member added")
}

func (h *OrganizationHandler) UpdateMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	orgID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	memberID, ok := pathUUID(c, "userId")
	if !ok {
		return
	}

	var req organization.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	if err := h.orgService.UpdateMemberRole(c.Request.Context(), userID, orgID, memberID, &req); err != nil {
		utils.HandleServiceError(c, err, "Failed to update member")
		return
	}
	utils.HandleMessage(c, "Member updated")
}

func (h *OrganizationHandler) RemoveMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	orgID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	memberID, ok := pathUUID(c, "userId")
	if !ok {
		return
	}

	if err := h.orgService.RemoveMember(c.Request.Context(), userID, orgID, memberID); err != nil {
		utils.HandleServiceError(c, err, "Failed to remove member")
		return
	}
	utils.HandleNoContent(c)
}
