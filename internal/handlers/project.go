package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/project-tracking-api/internal/dto"
	apierrors "github.com/projecthub/project-tracking-api/internal/errors"
	"github.com/projecthub/project-tracking-api/internal/middleware"
	"github.com/projecthub/project-tracking-api/internal/models"
	"github.com/projecthub/project-tracking-api/internal/services"
	"github.com/projecthub/project-tracking-api/internal/utils"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ListProjects returns projects with milestone stats.
// Archived projects are excluded unless ?archived=true.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	input := services.ListProjectsInput{
		IncludeArchived: c.Query("archived") == "true",
		Page:            params.Page,
		PageSize:        params.Limit,
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := models.ProjectStatus(statusStr)
		input.Status = &status
	}

	projects, total, err := h.projectService.ListProjects(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": dto.ToProjectListDTO(projects),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetProject returns a project with its resources and milestones
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, exists := middleware.GetProjectID(c)
	if !exists {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	project, err := h.projectService.GetProject(projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// CreateProject creates a new project
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	type CreateProjectRequest struct {
		Name        string  `json:"name" binding:"required"`
		Status      string  `json:"status" binding:"required"`
		StartDate   string  `json:"start_date" binding:"required"`
		EndDate     *string `json:"end_date"`
		Description *string `json:"description"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Missing required fields: name, status, start_date")
		return
	}

	startDate, err := utils.ParseDate(req.StartDate)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Name:        req.Name,
		Status:      models.ProjectStatus(req.Status),
		StartDate:   startDate,
		EndDate:     endDate,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// UpdateProject applies a partial update to a project. Only supplied fields
// change; clear_end_date removes the end date.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	projectID, exists := middleware.GetProjectID(c)
	if !exists {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	type UpdateProjectRequest struct {
		Name         *string `json:"name"`
		Status       *string `json:"status"`
		StartDate    *string `json:"start_date"`
		EndDate      *string `json:"end_date"`
		ClearEndDate bool    `json:"clear_end_date"`
		Description  *string `json:"description"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateProjectInput{
		Name:         req.Name,
		Description:  req.Description,
		ClearEndDate: req.ClearEndDate,
	}
	if req.Status != nil {
		status := models.ProjectStatus(*req.Status)
		input.Status = &status
	}

	var err error
	if input.StartDate, err = parseOptionalDate(req.StartDate); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	if input.EndDate, err = parseOptionalDate(req.EndDate); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.UpdateProject(projectID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// DeleteProject removes a project and everything it owns
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	projectID, exists := middleware.GetProjectID(c)
	if !exists {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	if err := h.projectService.DeleteProject(projectID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

// ArchiveProject archives or unarchives a project
func (h *ProjectHandler) ArchiveProject(c *gin.Context) {
	projectID, exists := middleware.GetProjectID(c)
	if !exists {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	type ArchiveRequest struct {
		Archived *bool `json:"archived" binding:"required"`
	}

	var req ArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Missing required field: archived")
		return
	}

	project, err := h.projectService.SetArchived(projectID, *req.Archived)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// DuplicateProject copies a project with its resources and milestones
func (h *ProjectHandler) DuplicateProject(c *gin.Context) {
	projectID, exists := middleware.GetProjectID(c)
	if !exists {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	duplicate, err := h.projectService.DuplicateProject(projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*duplicate))
}

// ListStatusUpdates returns a project's status updates, newest first
func (h *ProjectHandler) ListStatusUpdates(c *gin.Context) {
	projectID, exists := middleware.GetProjectID(c)
	if !exists {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	updates, err := h.projectService.ListStatusUpdates(projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStatusUpdateListDTO(updates))
}

// CreateStatusUpdate records a RAG update and syncs the project's rag_status
func (h *ProjectHandler) CreateStatusUpdate(c *gin.Context) {
	projectID, exists := middleware.GetProjectID(c)
	if !exists {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	type CreateStatusUpdateRequest struct {
		RagStatus string  `json:"rag_status" binding:"required"`
		Comment   *string `json:"comment"`
	}

	var req CreateStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Missing required field: rag_status")
		return
	}

	update, err := h.projectService.CreateStatusUpdate(services.CreateStatusUpdateInput{
		ProjectID: projectID,
		RagStatus: models.RagStatus(req.RagStatus),
		Comment:   req.Comment,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToStatusUpdateDTO(*update))
}

// parseOptionalDate parses a YYYY-MM-DD string when present
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := utils.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
