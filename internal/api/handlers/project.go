package handlers

import (
	"shelfcloud/internal/api/dto/v1/project"
	"shelfcloud/internal/service"
	"shelfcloud/internal/utils"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectService *service.ProjectService
}

func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}

	var req project.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	resp, err := h.projectService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to create project")
		return
	}
	utils.HandleCreated(c, resp)
}

func (h *ProjectHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}

	resp, err := h.projectService.List(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to list projects")
		return
	}
	utils.HandleSuccess(c, resp)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.projectService.Get(c.Request.Context(), userID, projectID)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to get project")
		return
	}
	utils.HandleSuccess(c, resp)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req project.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	resp, err := h.projectService.Update(c.Request.Context(), userID, projectID, &req)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to update project")
		return
	}
	utils.HandleSuccess(c, resp)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), userID, projectID); err != nil {
		utils.HandleServiceError(c, err, "Failed to delete project")
		return
	}
	utils.HandleNoContent(c)
}

func (h *ProjectHandler) Transfer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req project.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	resp, err := h.projectService.Transfer(c.Request.Context(), userID, projectID, &req)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to transfer project")
		return
	}
	utils.HandleSuccess(c, resp)
}

func (h *ProjectHandler) CreateTenant(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req project.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	resp, err := h.projectService.CreateTenant(c.Request.Context(), userID, projectID, &req)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to create tenant")
		return
	}
	utils.HandleCreated(c, resp)
}

func (h *ProjectHandler) ListTenants(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.projectService.ListTenants(c.Request.Context(), userID, projectID)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to list tenants")
		return
	}
	utils.HandleSuccess(c, resp)
}

func (h *ProjectHandler) UpdateTenant(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	tenantID, ok := pathUUID(c, "tenantId")
	if !ok {
		return
	}

	var req project.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	resp, err := h.projectService.UpdateTenant(c.Request.Context(), userID, projectID, tenantID, &req)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to update tenant")
		return
	}
	utils.HandleSuccess(c, resp)
}

func (h *ProjectHandler) DeleteTenant(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleUnauthenticated(c)
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	tenantID, ok := pathUUID(c, "tenantId")
	if !ok {
		return
	}

	if err := h.projectService.DeleteTenant(c.Request.Context(), userID, projectID, tenantID); err != nil {
		utils.HandleServiceError(c, err, "Failed to delete tenant")
		return
	}
	utils.HandleNoContent(c)
}
