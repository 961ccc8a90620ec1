package handlers

import (
	"shelfcloud/internal/api/dto/v1/invitation"
	"shelfcloud/internal/service"
	"shelfcloud/internal/utils"

	"github.com/gin-gonic/gin"
)

type InvitationHandler struct {
	invitationService *service.InvitationService
}

func NewInvitationHandler(invitationService *service.InvitationService) *InvitationHandler {
	return &InvitationHandler{
		invitationService: invitationService,
	}
}

func (h *InvitationHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}

	var req invitation.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	resp, err := h.invitationService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to create invitation")
		return
	}
	utils.HandleCreated(c, resp)
}

func (h *InvitationHandler) Get(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		handleUnauthenticated(c)
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.invitationService.Get(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to get invitation")
		return
	}
	utils.HandleSuccess(c, resp)
}

func (h *InvitationHandler) ListByOrganization(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	orgID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.invitationService.ListByOrganization(c.Request.Context(), userID, orgID)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to list invitations")
		return
	}
	utils.HandleSuccess(c, resp)
}

func (h *InvitationHandler) ListByTeam(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	teamID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.invitationService.ListByTeam(c.Request.Context(), userID, teamID)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to list invitations")
		return
	}
	utils.HandleSuccess(c, resp)
}

func (h *InvitationHandler) Accept(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.invitationService.Accept(c.Request.Context(), user, id); err != nil {
		utils.HandleServiceError(c, err, "Failed to accept invitation")
		return
	}
	utils.HandleMessage(c, "Invitation accepted")
}

func (h *InvitationHandler) Decline(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.invitationService.Decline(c.Request.Context(), user, id); err != nil {
		utils.HandleServiceError(c, err, "Failed to decline invitation")
		return
	}
	utils.HandleMessage(c, "Invitation declined")
}

func (h *InvitationHandler) Revoke(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.invitationService.Revoke(c.Request.Context(), userID, id); err != nil {
		utils.HandleServiceError(c, err, "Failed to revoke invitation")
		return
	}
	utils.HandleNoContent(c)
}
