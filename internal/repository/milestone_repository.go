package repository

import (
	"github.com/projecthub/project-tracking-api/internal/models"
	"gorm.io/gorm"
)

// GormMilestoneRepository is a GORM implementation of MilestoneRepository
type GormMilestoneRepository struct {
	db *gorm.DB
}

// NewMilestoneRepository creates a new MilestoneRepository
func NewMilestoneRepository(db *gorm.DB) MilestoneRepository {
	return &GormMilestoneRepository{db: db}
}

// Create creates a new milestone
func (r *GormMilestoneRepository) Create(milestone *models.Milestone) error {
	return r.db.Create(milestone).Error
}

// FindByID finds a milestone by ID
func (r *GormMilestoneRepository) FindByID(id uint64) (*models.Milestone, error) {
	var milestone models.Milestone
	if err := r.db.First(&milestone, id).Error; err != nil {
		return nil, err
	}
	return &milestone, nil
}

// List retrieves milestones ordered by due date, optionally per project
func (r *GormMilestoneRepository) List(projectID *uint64) ([]models.Milestone, error) {
	var milestones []models.Milestone

	query := r.db.Order("due_date ASC")
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}

	if err := query.Find(&milestones).Error; err != nil {
		return nil, err
	}
	return milestones, nil
}

// StatsByProject returns total/completed milestone counts per project
func (r *GormMilestoneRepository) StatsByProject(projectIDs []uint64) (map[uint64]MilestoneStats, error) {
	stats := make(map[uint64]MilestoneStats, len(projectIDs))
	if len(projectIDs) == 0 {
		return stats, nil
	}

	var rows []struct {
		ProjectID uint64
		Total     int64
		Completed int64
	}

	err := r.db.Model(&models.Milestone{}).
		Select("project_id, COUNT(*) as total, SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) as completed",
			models.MilestoneStatusCompleted).
		Where("project_id IN ?", projectIDs).
		Group("project_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		stats[row.ProjectID] = MilestoneStats{Total: row.Total, Completed: row.Completed}
	}
	return stats, nil
}

// UpdateFields applies an explicit field list to a milestone
func (r *GormMilestoneRepository) UpdateFields(id uint64, fields map[string]interface{}) error {
	return r.db.Model(&models.Milestone{}).Where("id = ?", id).Updates(fields).Error
}

// Delete deletes a milestone
func (r *GormMilestoneRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Milestone{}, id).Error
}

// DeleteByProject deletes all milestones owned by a project
func (r *GormMilestoneRepository) DeleteByProject(projectID uint64) (int64, error) {
	result := r.db.Where("project_id = ?", projectID).Delete(&models.Milestone{})
	return result.RowsAffected, result.Error
}
