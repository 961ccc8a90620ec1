package handlers

import (
	"shelfcloud/internal/api/dto/v1/team"
	"shelfcloud/internal/service"
	"shelfcloud/internal/utils"

	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	teamService *service.TeamService
}

func NewTeamHandler(teamService *service.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

func (h *TeamHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	orgID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req team.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	resp, err := h.teamService.Create(c.Request.Context(), userID, orgID, &req)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to create team")
		return
	}
	utils.HandleCreated(c, resp)
}

func (h *TeamHandler) ListByOrganization(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	orgID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.teamService.ListByOrganization(c.Request.Context(), userID, orgID)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to list teams")
		return
	}
	utils.HandleSuccess(c, resp)
}

func (h *TeamHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	teamID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.teamService.Get(c.Request.Context(), userID, teamID)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to get team")
		return
	}
	utils.HandleSuccess(c, resp)
}

func (h *TeamHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	teamID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req team.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	resp, err := h.teamService.Update(c.Request.Context(), userID, teamID, &req)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to update team")
		return
	}
	utils.HandleSuccess(c, resp)
}

func (h *TeamHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	teamID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.teamService.Delete(c.Request.Context(), userID, teamID); err != nil {
		utils.HandleServiceError(c, err, "Failed to delete team")
		return
	}
	utils.HandleNoContent(c)
}

func (h *TeamHandler) ListMembers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	teamID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.teamService.ListMembers(c.Request.Context(), userID, teamID)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to list members")
		return
	}
	utils.HandleSuccess(c, resp)
}

func (h *TeamHandler) AddMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	teamID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req team.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	if err := h.teamService.AddMember(c.Request.Context(), userID, teamID, &req); err != nil {
		utils.HandleServiceError(c, err, "Failed to add member")
		return
	}
	utils.HandleMessage(c, "Member added")
}

func (h *TeamHandler) UpdateMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	teamID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	memberID, ok := pathUUID(c, "userId")
	if !ok {
		return
	}

	var req team.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	if err := h.teamService.UpdateMemberRole(c.Request.Context(), userID, teamID, memberID, &req); err != nil {
		utils.HandleServiceError(c, err, "Failed to update member")
		return
	}
	utils.HandleMessage(c, "Member updated")
}

func (h *TeamHandler) RemoveMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	teamID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	memberID, ok := pathUUID(c, "userId")
	if !ok {
		return
	}

	if err := h.teamService.RemoveMember(c.Request.Context(), userID, teamID, memberID); err != nil {
		utils.HandleServiceError(c, err, "Failed to remove member")
		return
	}
	utils.HandleNoContent(c)
}
