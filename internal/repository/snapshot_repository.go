package repository

import (
	"time"

	"github.com/projecthub/project-tracking-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSnapshotRepository is a GORM implementation of SnapshotRepository
type GormSnapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a new SnapshotRepository
func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &GormSnapshotRepository{db: db}
}

// Upsert inserts a snapshot or overwrites the existing row keyed by the same
// week start date. One statement, so concurrent captures for the same week
// resolve to last write wins.
func (r *GormSnapshotRepository) Upsert(snapshot *models.UtilizationSnapshot) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "week_start_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"week_end_date",
				"total_capacity",
				"total_allocated",
				"utilization_percentage",
				"unique_resource_count",
				"snapshot_date",
			}),
		}).
		Create(snapshot).Error
}

// FindByWeekStart finds the snapshot keyed by a Monday date
func (r *GormSnapshotRepository) FindByWeekStart(weekStart time.Time) (*models.UtilizationSnapshot, error) {
	var snapshot models.UtilizationSnapshot
	if err := r.db.Where("week_start_date = ?", weekStart).First(&snapshot).Error; err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// ListAll retrieves all snapshots ordered by week start date ascending
func (r *GormSnapshotRepository) ListAll() ([]models.UtilizationSnapshot, error) {
	var snapshots []models.UtilizationSnapshot
	if err := r.db.Order("week_start_date ASC").Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}
