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
	ErrResourceNotFound      = errors.New("resource not found")
	ErrMissingResourceFields = errors.New("project_id, name, type, allocation_percentage and start_date are required")
	ErrAllocationOutOfRange  = errors.New("allocation percentage must be between 0 and 100")
)

// ResourceService handles resource assignment business logic
type ResourceService struct {
	resourceRepo repository.ResourceRepository
	projectRepo  repository.ProjectRepository
	allocations  *AllocationService
}

// NewResourceService creates a new ResourceService
func NewResourceService(
	resourceRepo repository.ResourceRepository,
	projectRepo repository.ProjectRepository,
	allocations *AllocationService,
) *ResourceService {
	return &ResourceService{
		resourceRepo: resourceRepo,
		projectRepo:  projectRepo,
		allocations:  allocations,
	}
}

// ListResourcesInput represents filters for listing resources
type ListResourcesInput struct {
	ProjectID *uint64
	Page      int
	PageSize  int
}

// CreateResourceInput represents input for creating a resource assignment
type CreateResourceInput struct {
	ProjectID            uint64
	Name                 string
	Type                 string
	AllocationPercentage float64
	StartDate            time.Time
	EndDate              *time.Time
}

// UpdateResourceInput represents input for updating a resource assignment.
// Only supplied fields change.
type UpdateResourceInput struct {
	ProjectID            *uint64
	Name                 *string
	Type                 *string
	AllocationPercentage *float64
	StartDate            *time.Time
	EndDate              *time.Time
	ClearEndDate         bool
}

// ListResources returns resource assignments, optionally for one project
func (s *ResourceService) ListResources(input ListResourcesInput) ([]models.Resource, int64, error) {
	resources, total, err := s.resourceRepo.List(repository.ResourceFilter{
		ProjectID: input.ProjectID,
		Page:      input.Page,
		PageSize:  input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list resources: %w", err)
	}
	return resources, total, nil
}

// GetResource returns a resource assignment by ID
func (s *ResourceService) GetResource(resourceID uint64) (*models.Resource, error) {
	resource, err := s.resourceRepo.FindByID(resourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to find resource: %w", err)
	}
	return resource, nil
}

// CreateResource creates a resource assignment. The over-allocation check is
// advisory: a projected total above 100% produces a warning alongside the
// created row, never a rejection.
func (s *ResourceService) CreateResource(input CreateResourceInput) (*models.Resource, *OverAllocationWarning, error) {
	if input.ProjectID == 0 || input.Name == "" || input.Type == "" || input.StartDate.IsZero() {
		return nil, nil, ErrMissingResourceFields
	}
	if input.AllocationPercentage < 0 || input.AllocationPercentage > 100 {
		return nil, nil, ErrAllocationOutOfRange
	}

	if _, err := s.projectRepo.FindByID(input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProjectNotFound
		}
		return nil, nil, fmt.Errorf("failed to find project: %w", err)
	}

	warning, err := s.allocations.CheckProjectedAllocation(input.Name, input.AllocationPercentage, time.Now())
	if err != nil {
		return nil, nil, err
	}

	resource := &models.Resource{
		ProjectID:            input.ProjectID,
		Name:                 input.Name,
		Type:                 input.Type,
		AllocationPercentage: input.AllocationPercentage,
		StartDate:            input.StartDate,
		EndDate:              input.EndDate,
	}
	if err := s.resourceRepo.Create(resource); err != nil {
		return nil, nil, fmt.Errorf("failed to create resource: %w", err)
	}

	return resource, warning, nil
}

// UpdateResource applies a partial update to a resource assignment
func (s *ResourceService) UpdateResource(resourceID uint64, input UpdateResourceInput) (*models.Resource, error) {
	if _, err := s.resourceRepo.FindByID(resourceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to find resource: %w", err)
	}

	if input.AllocationPercentage != nil {
		if *input.AllocationPercentage < 0 || *input.AllocationPercentage > 100 {
			return nil, ErrAllocationOutOfRange
		}
	}

	if input.ProjectID != nil {
		if _, err := s.projectRepo.FindByID(*input.ProjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, fmt.Errorf("failed to find project: %w", err)
		}
	}

	fields := make(map[string]interface{})
	if input.ProjectID != nil {
		fields["project_id"] = *input.ProjectID
	}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Type != nil {
		fields["type"] = *input.Type
	}
	if input.AllocationPercentage != nil {
		fields["allocation_percentage"] = *input.AllocationPercentage
	}
	if input.StartDate != nil {
		fields["start_date"] = *input.StartDate
	}
	if input.ClearEndDate {
		fields["end_date"] = nil
	} else if input.EndDate != nil {
		fields["end_date"] = *input.EndDate
	}

	if len(fields) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	if err := s.resourceRepo.UpdateFields(resourceID, fields); err != nil {
		return nil, fmt.Errorf("failed to update resource: %w", err)
	}

	return s.resourceRepo.FindByID(resourceID)
}

// DeleteResource removes a resource assignment
func (s *ResourceService) DeleteResource(resourceID uint64) error {
	if _, err := s.resourceRepo.FindByID(resourceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResourceNotFound
		}
		return fmt.Errorf("failed to find resource: %w", err)
	}

	if err := s.resourceRepo.Delete(resourceID); err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}
	return nil
}
