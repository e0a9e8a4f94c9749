package repository

import (
	"github.com/projecthub/project-tracking-api/internal/models"
	"gorm.io/gorm"
)

// GormStatusUpdateRepository is a GORM implementation of StatusUpdateRepository
type GormStatusUpdateRepository struct {
	db *gorm.DB
}

// NewStatusUpdateRepository creates a new StatusUpdateRepository
func NewStatusUpdateRepository(db *gorm.DB) StatusUpdateRepository {
	return &GormStatusUpdateRepository{db: db}
}

// Create creates a new status update
func (r *GormStatusUpdateRepository) Create(update *models.ProjectStatusUpdate) error {
	return r.db.Create(update).Error
}

// ListByProject retrieves a project's status updates, newest first
func (r *GormStatusUpdateRepository) ListByProject(projectID uint64) ([]models.ProjectStatusUpdate, error) {
	var updates []models.ProjectStatusUpdate
	err := r.db.
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&updates).Error
	if err != nil {
		return nil, err
	}
	return updates, nil
}

// LatestByProject retrieves a project's most recent status update
func (r *GormStatusUpdateRepository) LatestByProject(projectID uint64) (*models.ProjectStatusUpdate, error) {
	var update models.ProjectStatusUpdate
	err := r.db.
		Where("project_id = ?", projectID).
		Order("created_at DESC, id DESC").
		First(&update).Error
	if err != nil {
		return nil, err
	}
	return &update, nil
}

// DeleteByProject deletes all status updates owned by a project
func (r *GormStatusUpdateRepository) DeleteByProject(projectID uint64) (int64, error) {
	result := r.db.Where("project_id = ?", projectID).Delete(&models.ProjectStatusUpdate{})
	return result.RowsAffected, result.Error
}
