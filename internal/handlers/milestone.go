package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/project-tracking-api/internal/dto"
	apierrors "github.com/projecthub/project-tracking-api/internal/errors"
	"github.com/projecthub/project-tracking-api/internal/models"
	"github.com/projecthub/project-tracking-api/internal/services"
	"github.com/projecthub/project-tracking-api/internal/utils"
)

type MilestoneHandler struct {
	milestoneService *services.MilestoneService
}

func NewMilestoneHandler(milestoneService *services.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{
		milestoneService: milestoneService,
	}
}

// ListMilestones returns milestones ordered by due date, optionally per project
func (h *MilestoneHandler) ListMilestones(c *gin.Context) {
	var projectID *uint64
	if projectIDStr := c.Query("project_id"); projectIDStr != "" {
		id, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project_id")
			return
		}
		projectID = &id
	}

	milestones, err := h.milestoneService.ListMilestones(projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMilestoneListDTO(milestones))
}

// GetMilestone returns a milestone by ID
func (h *MilestoneHandler) GetMilestone(c *gin.Context) {
	milestoneID, ok := parseIDParam(c)
	if !ok {
		return
	}

	milestone, err := h.milestoneService.GetMilestone(milestoneID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMilestoneDTO(*milestone))
}

// CreateMilestone creates a new milestone
func (h *MilestoneHandler) CreateMilestone(c *gin.Context) {
	type CreateMilestoneRequest struct {
		ProjectID   uint64  `json:"project_id" binding:"required"`
		Name        string  `json:"name" binding:"required"`
		Description *string `json:"description"`
		DueDate     string  `json:"due_date" binding:"required"`
		Status      string  `json:"status"`
		Progress    int     `json:"progress"`
	}

	var req CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Missing required fields: project_id, name, due_date")
		return
	}

	dueDate, err := utils.ParseDate(req.DueDate)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	milestone, err := h.milestoneService.CreateMilestone(services.CreateMilestoneInput{
		ProjectID:   req.ProjectID,
		Name:        req.Name,
		Description: req.Description,
		DueDate:     dueDate,
		Status:      models.MilestoneStatus(req.Status),
		Progress:    req.Progress,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMilestoneDTO(*milestone))
}

// UpdateMilestone applies a partial update to a milestone
func (h *MilestoneHandler) UpdateMilestone(c *gin.Context) {
	milestoneID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateMilestoneRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		DueDate     *string `json:"due_date"`
		Status      *string `json:"status"`
		Progress    *int    `json:"progress"`
	}

	var req UpdateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateMilestoneInput{
		Name:        req.Name,
		Description: req.Description,
		Progress:    req.Progress,
	}
	if req.Status != nil {
		status := models.MilestoneStatus(*req.Status)
		input.Status = &status
	}

	var err error
	if input.DueDate, err = parseOptionalDate(req.DueDate); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	milestone, err := h.milestoneService.UpdateMilestone(milestoneID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMilestoneDTO(*milestone))
}

// DeleteMilestone removes a milestone
func (h *MilestoneHandler) DeleteMilestone(c *gin.Context) {
	milestoneID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.milestoneService.DeleteMilestone(milestoneID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Milestone deleted successfully"})
}
