package dto

import (
	"time"

	"github.com/projecthub/project-tracking-api/internal/models"
	"github.com/projecthub/project-tracking-api/internal/services"
	"github.com/projecthub/project-tracking-api/internal/utils"
)

// ResourceDTO represents a resource assignment in API responses
type ResourceDTO struct {
	ID                   uint64    `json:"id"`
	ProjectID            uint64    `json:"project_id"`
	Name                 string    `json:"name"`
	Type                 string    `json:"type"`
	AllocationPercentage float64   `json:"allocation_percentage"`
	StartDate            string    `json:"start_date"`
	EndDate              *string   `json:"end_date"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// ProjectAllocationDTO is one assignment line within an allocation summary
type ProjectAllocationDTO struct {
	ResourceID    uint64               `json:"resource_id"`
	ProjectID     uint64               `json:"project_id"`
	ProjectName   string               `json:"project_name"`
	ProjectStatus models.ProjectStatus `json:"project_status"`
	Allocation    float64              `json:"allocation"`
	StartDate     string               `json:"start_date"`
	EndDate       *string              `json:"end_date"`
	IsActive      bool                 `json:"is_active"`
}

// AllocationSummaryDTO represents a per-name allocation rollup
type AllocationSummaryDTO struct {
	Name               string                 `json:"name"`
	Types              string                 `json:"types"`
	CurrentAllocation  float64                `json:"current_allocation"`
	ProjectCount       int                    `json:"project_count"`
	ActiveProjectCount int                    `json:"active_project_count"`
	IsOverAllocated    bool                   `json:"is_over_allocated"`
	EarliestStart      string                 `json:"earliest_start"`
	LatestEnd          *string                `json:"latest_end"`
	Projects           []ProjectAllocationDTO `json:"projects"`
}

// ToResourceDTO converts a Resource model to ResourceDTO
func ToResourceDTO(resource models.Resource) ResourceDTO {
	return ResourceDTO{
		ID:                   resource.ID,
		ProjectID:            resource.ProjectID,
		Name:                 resource.Name,
		Type:                 resource.Type,
		AllocationPercentage: resource.AllocationPercentage,
		StartDate:            utils.FormatDate(resource.StartDate),
		EndDate:              formatDatePtr(resource.EndDate),
		CreatedAt:            resource.CreatedAt,
		UpdatedAt:            resource.UpdatedAt,
	}
}

// ToResourceListDTO converts a slice of resources
func ToResourceListDTO(resources []models.Resource) []ResourceDTO {
	dtos := make([]ResourceDTO, len(resources))
	for i, r := range resources {
		dtos[i] = ToResourceDTO(r)
	}
	return dtos
}

// ToAllocationSummaryDTO converts an AllocationSummary to its API shape
func ToAllocationSummaryDTO(summary services.AllocationSummary) AllocationSummaryDTO {
	projects := make([]ProjectAllocationDTO, len(summary.Projects))
	for i, p := range summary.Projects {
		projects[i] = ProjectAllocationDTO{
			ResourceID:    p.ResourceID,
			ProjectID:     p.ProjectID,
			ProjectName:   p.ProjectName,
			ProjectStatus: p.ProjectStatus,
			Allocation:    p.Allocation,
			StartDate:     utils.FormatDate(p.StartDate),
			EndDate:       formatDatePtr(p.EndDate),
			IsActive:      p.IsActive,
		}
	}

	return AllocationSummaryDTO{
		Name:               summary.Name,
		Types:              summary.Types,
		CurrentAllocation:  summary.CurrentAllocation,
		ProjectCount:       summary.ProjectCount,
		ActiveProjectCount: summary.ActiveProjectCount,
		IsOverAllocated:    summary.IsOverAllocated,
		EarliestStart:      utils.FormatDate(summary.EarliestStart),
		LatestEnd:          formatDatePtr(summary.LatestEnd),
		Projects:           projects,
	}
}

// ToAllocationSummaryListDTO converts a slice of allocation summaries
func ToAllocationSummaryListDTO(summaries []services.AllocationSummary) []AllocationSummaryDTO {
	dtos := make([]AllocationSummaryDTO, len(summaries))
	for i, s := range summaries {
		dtos[i] = ToAllocationSummaryDTO(s)
	}
	return dtos
}
