package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/projecthub/project-tracking-api/internal/models"
	"github.com/projecthub/project-tracking-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrMissingProjectFields = errors.New("name, status and start_date are required")
	ErrInvalidProjectStatus = errors.New("invalid project status")
	ErrInvalidDateRange     = errors.New("end date must be after start date")
	ErrInvalidRagStatus     = errors.New("invalid RAG status")
	ErrNoFieldsToUpdate     = errors.New("no fields to update")
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo   repository.ProjectRepository
	resourceRepo  repository.ResourceRepository
	milestoneRepo repository.MilestoneRepository
	statusRepo    repository.StatusUpdateRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectRepo repository.ProjectRepository,
	resourceRepo repository.ResourceRepository,
	milestoneRepo repository.MilestoneRepository,
	statusRepo repository.StatusUpdateRepository,
) *ProjectService {
	return &ProjectService{
		projectRepo:   projectRepo,
		resourceRepo:  resourceRepo,
		milestoneRepo: milestoneRepo,
		statusRepo:    statusRepo,
	}
}

// ListProjectsInput represents filters for listing projects
type ListProjectsInput struct {
	Status          *models.ProjectStatus
	IncludeArchived bool
	Page            int
	PageSize        int
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string
	Status      models.ProjectStatus
	StartDate   time.Time
	EndDate     *time.Time
	Description *string
}

// UpdateProjectInput represents input for updating a project. Only supplied
// fields change; the persistence layer receives an explicit field list.
type UpdateProjectInput struct {
	Name         *string
	Status       *models.ProjectStatus
	StartDate    *time.Time
	EndDate      *time.Time
	ClearEndDate bool
	Description  *string
}

// ProjectWithStats pairs a project with its milestone summary for lists.
type ProjectWithStats struct {
	Project        models.Project
	MilestoneStats repository.MilestoneStats
}

// ListProjects returns projects with milestone stats attached
func (s *ProjectService) ListProjects(input ListProjectsInput) ([]ProjectWithStats, int64, error) {
	filter := repository.ProjectFilter{
		Status:          input.Status,
		IncludeArchived: input.IncludeArchived,
		Page:            input.Page,
		PageSize:        input.PageSize,
	}

	projects, total, err := s.projectRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	ids := make([]uint64, len(projects))
	for i, project := range projects {
		ids[i] = project.ID
	}

	stats, err := s.milestoneRepo.StatsByProject(ids)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load milestone stats: %w", err)
	}

	result := make([]ProjectWithStats, len(projects))
	for i, project := range projects {
		result[i] = ProjectWithStats{
			Project:        project,
			MilestoneStats: stats[project.ID],
		}
	}

	return result, total, nil
}

// GetProject returns a project with its resources and milestones
func (s *ProjectService) GetProject(projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	resources, err := s.resourceRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project resources: %w", err)
	}
	project.Resources = resources

	milestones, err := s.milestoneRepo.List(&projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project milestones: %w", err)
	}
	project.Milestones = milestones

	return project, nil
}

// CreateProject creates a new project with validation
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if input.Name == "" || input.Status == "" || input.StartDate.IsZero() {
		return nil, ErrMissingProjectFields
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidProjectStatus
	}
	if input.EndDate != nil && !input.EndDate.After(input.StartDate) {
		return nil, ErrInvalidDateRange
	}

	project := &models.Project{
		Name:        input.Name,
		Status:      input.Status,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Description: input.Description,
		RagStatus:   models.RagStatusNA,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// UpdateProject applies a partial update to a project
func (s *ProjectService) UpdateProject(projectID uint64, input UpdateProjectInput) (*models.Project, error) {
	existing, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if input.Status != nil && !input.Status.Valid() {
		return nil, ErrInvalidProjectStatus
	}

	// Date ordering is validated against the merged values, so updating just
	// one bound cannot slip an inverted range past the check.
	finalStart := existing.StartDate
	if input.StartDate != nil {
		finalStart = *input.StartDate
	}
	finalEnd := existing.EndDate
	if input.ClearEndDate {
		finalEnd = nil
	} else if input.EndDate != nil {
		finalEnd = input.EndDate
	}
	if finalEnd != nil && !finalEnd.After(finalStart) {
		return nil, ErrInvalidDateRange
	}

	fields := make(map[string]interface{})
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Status != nil {
		fields["status"] = *input.Status
	}
	if input.StartDate != nil {
		fields["start_date"] = *input.StartDate
	}
	if input.ClearEndDate {
		fields["end_date"] = nil
	} else if input.EndDate != nil {
		fields["end_date"] = *input.EndDate
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}

	if len(fields) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	if err := s.projectRepo.UpdateFields(projectID, fields); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.projectRepo.FindByID(projectID)
}

// DeleteProject removes a project and everything it owns. The steps are
// independent statements, not a transaction: a failure mid-sequence leaves
// the earlier deletions in place, so the error reports how far it got.
func (s *ProjectService) DeleteProject(projectID uint64) error {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	updates, err := s.statusRepo.DeleteByProject(projectID)
	if err != nil {
		return fmt.Errorf("cascade delete of project %d aborted before removing status updates: %w", projectID, err)
	}
	log.Printf("Deleted %d status updates for project %d", updates, projectID)

	resources, err := s.resourceRepo.DeleteByProject(projectID)
	if err != nil {
		return fmt.Errorf("cascade delete of project %d aborted after removing status updates: %w", projectID, err)
	}
	log.Printf("Deleted %d resources for project %d", resources, projectID)

	milestones, err := s.milestoneRepo.DeleteByProject(projectID)
	if err != nil {
		return fmt.Errorf("cascade delete of project %d aborted after removing status updates and resources: %w", projectID, err)
	}
	log.Printf("Deleted %d milestones for project %d", milestones, projectID)

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("cascade delete of project %d removed children but not the project row: %w", projectID, err)
	}

	return nil
}

// SetArchived archives or unarchives a project
func (s *ProjectService) SetArchived(projectID uint64, archived bool) (*models.Project, error) {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.projectRepo.UpdateFields(projectID, map[string]interface{}{"archived": archived}); err != nil {
		return nil, fmt.Errorf("failed to update archived flag: %w", err)
	}

	return s.projectRepo.FindByID(projectID)
}

// DuplicateProject copies a project with a "(Copy)" suffix, fans out copies
// of its resources, and copies its milestones reset to pending. The inserts
// run as an unguarded sequence: a crash mid-fan-out leaves a partial copy,
// and the returned error reports which steps completed.
func (s *ProjectService) DuplicateProject(projectID uint64) (*models.Project, error) {
	original, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	duplicate := &models.Project{
		Name:        original.Name + " (Copy)",
		Status:      original.Status,
		StartDate:   original.StartDate,
		EndDate:     original.EndDate,
		Description: original.Description,
		Archived:    false,
		RagStatus:   models.RagStatusNA,
	}
	if err := s.projectRepo.Create(duplicate); err != nil {
		return nil, fmt.Errorf("failed to create duplicate project: %w", err)
	}

	resources, err := s.resourceRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("created duplicate project %d but failed to read resources to copy: %w", duplicate.ID, err)
	}
	for i, res := range resources {
		copyRes := &models.Resource{
			ProjectID:            duplicate.ID,
			Name:                 res.Name,
			Type:                 res.Type,
			AllocationPercentage: res.AllocationPercentage,
			StartDate:            res.StartDate,
			EndDate:              res.EndDate,
		}
		if err := s.resourceRepo.Create(copyRes); err != nil {
			return nil, fmt.Errorf("created duplicate project %d but copied only %d of %d resources: %w",
				duplicate.ID, i, len(resources), err)
		}
	}
	log.Printf("Copied %d resources to duplicate project %d", len(resources), duplicate.ID)

	milestones, err := s.milestoneRepo.List(&projectID)
	if err != nil {
		return nil, fmt.Errorf("created duplicate project %d with resources but failed to read milestones to copy: %w", duplicate.ID, err)
	}
	for i, milestone := range milestones {
		copyMilestone := &models.Milestone{
			ProjectID:   duplicate.ID,
			Name:        milestone.Name,
			Description: milestone.Description,
			DueDate:     milestone.DueDate,
			Status:      models.MilestoneStatusPending,
			Progress:    0,
		}
		if err := s.milestoneRepo.Create(copyMilestone); err != nil {
			return nil, fmt.Errorf("created duplicate project %d with resources but copied only %d of %d milestones: %w",
				duplicate.ID, i, len(milestones), err)
		}
	}
	log.Printf("Copied %d milestones to duplicate project %d", len(milestones), duplicate.ID)

	return duplicate, nil
}

// CreateStatusUpdateInput represents input for recording a RAG status update
type CreateStatusUpdateInput struct {
	ProjectID uint64
	RagStatus models.RagStatus
	Comment   *string
}

// CreateStatusUpdate records a RAG update and syncs the project's current
// rag_status in a second, independent statement.
func (s *ProjectService) CreateStatusUpdate(input CreateStatusUpdateInput) (*models.ProjectStatusUpdate, error) {
	if input.RagStatus == "" {
		return nil, ErrInvalidRagStatus
	}
	if !input.RagStatus.Valid() {
		return nil, ErrInvalidRagStatus
	}

	if _, err := s.projectRepo.FindByID(input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	update := &models.ProjectStatusUpdate{
		ProjectID: input.ProjectID,
		RagStatus: input.RagStatus,
		Comment:   input.Comment,
	}
	if err := s.statusRepo.Create(update); err != nil {
		return nil, fmt.Errorf("failed to create status update: %w", err)
	}

	if err := s.projectRepo.UpdateFields(input.ProjectID, map[string]interface{}{"rag_status": input.RagStatus}); err != nil {
		return nil, fmt.Errorf("status update %d recorded but project rag_status not synced: %w", update.ID, err)
	}

	return update, nil
}

// ListStatusUpdates returns a project's status updates, newest first
func (s *ProjectService) ListStatusUpdates(projectID uint64) ([]models.ProjectStatusUpdate, error) {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	updates, err := s.statusRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list status updates: %w", err)
	}
	return updates, nil
}
