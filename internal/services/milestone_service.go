package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/projecthub/project-tracking-api/internal/models"
	"github.com/projecthub/project-tracking-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrMilestoneNotFound      = errors.New("milestone not found")
	ErrMissingMilestoneFields = errors.New("project_id, name and due_date are required")
	ErrInvalidMilestoneStatus = errors.New("invalid milestone status")
	ErrProgressOutOfRange     = errors.New("progress must be between 0 and 100")
)

// MilestoneService handles milestone business logic
type MilestoneService struct {
	milestoneRepo repository.MilestoneRepository
	projectRepo   repository.ProjectRepository
}

// NewMilestoneService creates a new MilestoneService
func NewMilestoneService(milestoneRepo repository.MilestoneRepository, projectRepo repository.ProjectRepository) *MilestoneService {
	return &MilestoneService{
		milestoneRepo: milestoneRepo,
		projectRepo:   projectRepo,
	}
}

// CreateMilestoneInput represents input for creating a milestone
type CreateMilestoneInput struct {
	ProjectID   uint64
	Name        string
	Description *string
	DueDate     time.Time
	Status      models.MilestoneStatus
	Progress    int
}

// UpdateMilestoneInput represents input for updating a milestone
type UpdateMilestoneInput struct {
	Name        *string
	Description *string
	DueDate     *time.Time
	Status      *models.MilestoneStatus
	Progress    *int
}

// ListMilestones returns milestones ordered by due date, optionally per project
func (s *MilestoneService) ListMilestones(projectID *uint64) ([]models.Milestone, error) {
	milestones, err := s.milestoneRepo.List(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	return milestones, nil
}

// GetMilestone returns a milestone by ID
func (s *MilestoneService) GetMilestone(milestoneID uint64) (*models.Milestone, error) {
	milestone, err := s.milestoneRepo.FindByID(milestoneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMilestoneNotFound
		}
		return nil, fmt.Errorf("failed to find milestone: %w", err)
	}
	return milestone, nil
}

// CreateMilestone creates a new milestone with validation
func (s *MilestoneService) CreateMilestone(input CreateMilestoneInput) (*models.Milestone, error) {
	if input.ProjectID == 0 || input.Name == "" || input.DueDate.IsZero() {
		return nil, ErrMissingMilestoneFields
	}
	if input.Status == "" {
		input.Status = models.MilestoneStatusPending
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidMilestoneStatus
	}
	if input.Progress < 0 || input.Progress > 100 {
		return nil, ErrProgressOutOfRange
	}

	if _, err := s.projectRepo.FindByID(input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	milestone := &models.Milestone{
		ProjectID:   input.ProjectID,
		Name:        input.Name,
		Description: input.Description,
		DueDate:     input.DueDate,
		Status:      input.Status,
		Progress:    input.Progress,
	}
	if err := s.milestoneRepo.Create(milestone); err != nil {
		return nil, fmt.Errorf("failed to create milestone: %w", err)
	}

	return milestone, nil
}

// UpdateMilestone applies a partial update to a milestone
func (s *MilestoneService) UpdateMilestone(milestoneID uint64, input UpdateMilestoneInput) (*models.Milestone, error) {
	if _, err := s.milestoneRepo.FindByID(milestoneID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMilestoneNotFound
		}
		return nil, fmt.Errorf("failed to find milestone: %w", err)
	}

	if input.Status != nil && !input.Status.Valid() {
		return nil, ErrInvalidMilestoneStatus
	}
	if input.Progress != nil && (*input.Progress < 0 || *input.Progress > 100) {
		return nil, ErrProgressOutOfRange
	}

	fields := make(map[string]interface{})
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.DueDate != nil {
		fields["due_date"] = *input.DueDate
	}
	if input.Status != nil {
		fields["status"] = *input.Status
	}
	if input.Progress != nil {
		fields["progress"] = *input.Progress
	}

	if len(fields) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	if err := s.milestoneRepo.UpdateFields(milestoneID, fields); err != nil {
		return nil, fmt.Errorf("failed to update milestone: %w", err)
	}

	return s.milestoneRepo.FindByID(milestoneID)
}

// DeleteMilestone removes a milestone
func (s *MilestoneService) DeleteMilestone(milestoneID uint64) error {
	if _, err := s.milestoneRepo.FindByID(milestoneID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMilestoneNotFound
		}
		return fmt.Errorf("failed to find milestone: %w", err)
	}

	if err := s.milestoneRepo.Delete(milestoneID); err != nil {
		return fmt.Errorf("failed to delete milestone: %w", err)
	}
	return nil
}
