package dto

import (
	"time"

	"github.com/projecthub/project-tracking-api/internal/models"
	"github.com/projecthub/project-tracking-api/internal/repository"
	"github.com/projecthub/project-tracking-api/internal/services"
	"github.com/projecthub/project-tracking-api/internal/utils"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64               `json:"id"`
	Name        string               `json:"name"`
	Status      models.ProjectStatus `json:"status"`
	StartDate   string               `json:"start_date"`
	EndDate     *string              `json:"end_date"`
	Description *string              `json:"description"`
	Archived    bool                 `json:"archived"`
	RagStatus   models.RagStatus     `json:"rag_status"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`

	MilestoneStats *repository.MilestoneStats `json:"milestone_stats,omitempty"`
	Resources      []ResourceDTO              `json:"resources,omitempty"`
	Milestones     []MilestoneDTO             `json:"milestones,omitempty"`
}

// MilestoneDTO represents a milestone in API responses
type MilestoneDTO struct {
	ID          uint64                 `json:"id"`
	ProjectID   uint64                 `json:"project_id"`
	Name        string                 `json:"name"`
	Description *string                `json:"description"`
	DueDate     string                 `json:"due_date"`
	Status      models.MilestoneStatus `json:"status"`
	Progress    int                    `json:"progress"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// StatusUpdateDTO represents a project status update in API responses
type StatusUpdateDTO struct {
	ID        uint64           `json:"id"`
	ProjectID uint64           `json:"project_id"`
	RagStatus models.RagStatus `json:"rag_status"`
	Comment   *string          `json:"comment"`
	CreatedAt time.Time        `json:"created_at"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Status:      project.Status,
		StartDate:   utils.FormatDate(project.StartDate),
		EndDate:     formatDatePtr(project.EndDate),
		Description: project.Description,
		Archived:    project.Archived,
		RagStatus:   project.RagStatus,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}

	if len(project.Resources) > 0 {
		dto.Resources = make([]ResourceDTO, len(project.Resources))
		for i, res := range project.Resources {
			dto.Resources[i] = ToResourceDTO(res)
		}
	}

	if len(project.Milestones) > 0 {
		dto.Milestones = make([]MilestoneDTO, len(project.Milestones))
		for i, m := range project.Milestones {
			dto.Milestones[i] = ToMilestoneDTO(m)
		}
	}

	return dto
}

// ToProjectListDTO converts a list of projects with milestone stats
func ToProjectListDTO(items []services.ProjectWithStats) []ProjectDTO {
	dtos := make([]ProjectDTO, len(items))
	for i, item := range items {
		dto := ToProjectDTO(item.Project)
		stats := item.MilestoneStats
		dto.MilestoneStats = &stats
		dtos[i] = dto
	}
	return dtos
}

// ToMilestoneDTO converts a Milestone model to MilestoneDTO
func ToMilestoneDTO(milestone models.Milestone) MilestoneDTO {
	return MilestoneDTO{
		ID:          milestone.ID,
		ProjectID:   milestone.ProjectID,
		Name:        milestone.Name,
		Description: milestone.Description,
		DueDate:     utils.FormatDate(milestone.DueDate),
		Status:      milestone.Status,
		Progress:    milestone.Progress,
		CreatedAt:   milestone.CreatedAt,
		UpdatedAt:   milestone.UpdatedAt,
	}
}

// ToMilestoneListDTO converts a slice of milestones
func ToMilestoneListDTO(milestones []models.Milestone) []MilestoneDTO {
	dtos := make([]MilestoneDTO, len(milestones))
	for i, m := range milestones {
		dtos[i] = ToMilestoneDTO(m)
	}
	return dtos
}

// ToStatusUpdateDTO converts a ProjectStatusUpdate model to StatusUpdateDTO
func ToStatusUpdateDTO(update models.ProjectStatusUpdate) StatusUpdateDTO {
	return StatusUpdateDTO{
		ID:        update.ID,
		ProjectID: update.ProjectID,
		RagStatus: update.RagStatus,
		Comment:   update.Comment,
		CreatedAt: update.CreatedAt,
	}
}

// ToStatusUpdateListDTO converts a slice of status updates
func ToStatusUpdateListDTO(updates []models.ProjectStatusUpdate) []StatusUpdateDTO {
	dtos := make([]StatusUpdateDTO, len(updates))
	for i, u := range updates {
		dtos[i] = ToStatusUpdateDTO(u)
	}
	return dtos
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := utils.FormatDate(*t)
	return &s
}
