package repository

import (
	"time"

	"github.com/projecthub/project-tracking-api/internal/database"
	"github.com/projecthub/project-tracking-api/internal/models"
	"gorm.io/gorm"
)

// GormResourceRepository is a GORM implementation of ResourceRepository
type GormResourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository creates a new ResourceRepository
func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &GormResourceRepository{db: db}
}

// Create creates a new resource assignment
func (r *GormResourceRepository) Create(resource *models.Resource) error {
	return r.db.Create(resource).Error
}

// FindByID finds a resource by ID
func (r *GormResourceRepository) FindByID(id uint64) (*models.Resource, error) {
	var resource models.Resource
	if err := r.db.First(&resource, id).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

// List retrieves resources with filtering and pagination, newest first
func (r *GormResourceRepository) List(filter ResourceFilter) ([]models.Resource, int64, error) {
	var resources []models.Resource

	query := r.db.Model(&models.Resource{})
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.
		Order("created_at DESC").
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	if err := listQuery.Find(&resources).Error; err != nil {
		return nil, 0, err
	}

	return resources, total, nil
}

// ListWithProjects retrieves every assignment with its project preloaded
func (r *GormResourceRepository) ListWithProjects() ([]models.Resource, error) {
	var resources []models.Resource
	err := r.db.
		Preload("Project").
		Order("name ASC, id ASC").
		Find(&resources).Error
	if err != nil {
		return nil, err
	}
	return resources, nil
}

// ListByProject retrieves all assignments owned by a project
func (r *GormResourceRepository) ListByProject(projectID uint64) ([]models.Resource, error) {
	var resources []models.Resource
	err := r.db.
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&resources).Error
	if err != nil {
		return nil, err
	}
	return resources, nil
}

// ListOverlapping retrieves assignments whose window touches any day of
// [from, to]. An assignment with no end date overlaps every future window.
func (r *GormResourceRepository) ListOverlapping(from, to time.Time) ([]models.Resource, error) {
	var resources []models.Resource
	err := r.db.
		Where("start_date <= ? AND (end_date >= ? OR end_date IS NULL)", to, from).
		Find(&resources).Error
	if err != nil {
		return nil, err
	}
	return resources, nil
}

// ListByName retrieves all assignments for an exact resource name
func (r *GormResourceRepository) ListByName(name string) ([]models.Resource, error) {
	var resources []models.Resource
	if err := r.db.Where("name = ?", name).Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

// DistinctNameCount counts distinct resource names
func (r *GormResourceRepository) DistinctNameCount() (int64, error) {
	var count int64
	err := r.db.Model(&models.Resource{}).Distinct("name").Count(&count).Error
	return count, err
}

// UpdateFields applies an explicit field list to a resource
func (r *GormResourceRepository) UpdateFields(id uint64, fields map[string]interface{}) error {
	return r.db.Model(&models.Resource{}).Where("id = ?", id).Updates(fields).Error
}

// Delete deletes a resource assignment
func (r *GormResourceRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Resource{}, id).Error
}

// DeleteByProject deletes all assignments owned by a project
func (r *GormResourceRepository) DeleteByProject(projectID uint64) (int64, error) {
	result := r.db.Where("project_id = ?", projectID).Delete(&models.Resource{})
	return result.RowsAffected, result.Error
}
