package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/project-tracking-api/internal/dto"
	apierrors "github.com/projecthub/project-tracking-api/internal/errors"
	"github.com/projecthub/project-tracking-api/internal/services"
	"github.com/projecthub/project-tracking-api/internal/utils"
)

type ResourceHandler struct {
	resourceService   *services.ResourceService
	allocationService *services.AllocationService
}

func NewResourceHandler(resourceService *services.ResourceService, allocationService *services.AllocationService) *ResourceHandler {
	return &ResourceHandler{
		resourceService:   resourceService,
		allocationService: allocationService,
	}
}

// ListResources returns resource assignments, optionally scoped to one project
func (h *ResourceHandler) ListResources(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	input := services.ListResourcesInput{
		Page:     params.Page,
		PageSize: params.Limit,
	}
	if projectIDStr := c.Query("project_id"); projectIDStr != "" {
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project_id")
			return
		}
		input.ProjectID = &projectID
	}

	resources, total, err := h.resourceService.ListResources(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"resources": dto.ToResourceListDTO(resources),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetResource returns a resource assignment by ID
func (h *ResourceHandler) GetResource(c *gin.Context) {
	resourceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	resource, err := h.resourceService.GetResource(resourceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToResourceDTO(*resource))
}

// CreateResource creates a resource assignment. An over-allocation never
// blocks the write; the response carries a warning for the caller to show.
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	type CreateResourceRequest struct {
		ProjectID            uint64   `json:"project_id" binding:"required"`
		Name                 string   `json:"name" binding:"required"`
		Type                 string   `json:"type" binding:"required"`
		AllocationPercentage *float64 `json:"allocation_percentage" binding:"required"`
		StartDate            string   `json:"start_date" binding:"required"`
		EndDate              *string  `json:"end_date"`
	}

	var req CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Missing required fields: project_id, name, type, allocation_percentage, start_date")
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

	resource, warning, err := h.resourceService.CreateResource(services.CreateResourceInput{
		ProjectID:            req.ProjectID,
		Name:                 req.Name,
		Type:                 req.Type,
		AllocationPercentage: *req.AllocationPercentage,
		StartDate:            startDate,
		EndDate:              endDate,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response := gin.H{"resource": dto.ToResourceDTO(*resource)}
	if warning != nil {
		response["warning"] = warning
	}
	c.JSON(http.StatusCreated, response)
}

// UpdateResource applies a partial update to a resource assignment
func (h *ResourceHandler) UpdateResource(c *gin.Context) {
	resourceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateResourceRequest struct {
		ProjectID            *uint64  `json:"project_id"`
		Name                 *string  `json:"name"`
		Type                 *string  `json:"type"`
		AllocationPercentage *float64 `json:"allocation_percentage"`
		StartDate            *string  `json:"start_date"`
		EndDate              *string  `json:"end_date"`
		ClearEndDate         bool     `json:"clear_end_date"`
	}

	var req UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateResourceInput{
		ProjectID:            req.ProjectID,
		Name:                 req.Name,
		Type:                 req.Type,
		AllocationPercentage: req.AllocationPercentage,
		ClearEndDate:         req.ClearEndDate,
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

	resource, err := h.resourceService.UpdateResource(resourceID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToResourceDTO(*resource))
}

// DeleteResource removes a resource assignment
func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	resourceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.resourceService.DeleteResource(resourceID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Resource deleted successfully"})
}

// GetAllocationSummaries returns per-name allocation rollups as of a date.
// ?as_of=YYYY-MM-DD overrides the default of today.
func (h *ResourceHandler) GetAllocationSummaries(c *gin.Context) {
	asOf := time.Now()
	if asOfStr := c.Query("as_of"); asOfStr != "" {
		parsed, err := utils.ParseDate(asOfStr)
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		asOf = parsed
	}

	summaries, err := h.allocationService.Summaries(asOf)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"allocations": dto.ToAllocationSummaryListDTO(summaries),
		"as_of":       utils.FormatDate(asOf),
	})
}

// parseIDParam validates the :id URL parameter on non-project routes
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid ID")
		return 0, false
	}
	return id, true
}
