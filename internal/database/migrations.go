package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/projecthub/project-tracking-api/internal/models"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   interface{}
		table   string
		name    string
		columns string
	}{
		// Resource indexes for the date-window and grouping queries
		{&models.Resource{}, "resources", "idx_resources_project_id", "project_id"},
		{&models.Resource{}, "resources", "idx_resources_name", "name"},
		{&models.Resource{}, "resources", "idx_resources_start_date", "start_date"},
		{&models.Resource{}, "resources", "idx_resources_end_date", "end_date"},

		// Project indexes for status filtering and report ordering
		{&models.Project{}, "projects", "idx_projects_status", "status"},
		{&models.Project{}, "projects", "idx_projects_archived", "archived"},
		{&models.Project{}, "projects", "idx_projects_end_date", "end_date"},

		// Milestone indexes
		{&models.Milestone{}, "milestones", "idx_milestones_project_id", "project_id"},
		{&models.Milestone{}, "milestones", "idx_milestones_due_date", "due_date"},

		// Status update lookup (latest comment per project)
		{&models.ProjectStatusUpdate{}, "project_status_updates", "idx_status_updates_project_created", "project_id, created_at"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
