package repository

import (
	"time"

	"github.com/projecthub/project-tracking-api/internal/models"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// List retrieves projects with filtering and pagination
	List(filter ProjectFilter) ([]models.Project, int64, error)

	// ListByStatuses retrieves non-archived projects in any of the given statuses
	ListByStatuses(statuses []models.ProjectStatus) ([]models.Project, error)

	// UpdateFields applies an explicit field list to a project
	UpdateFields(id uint64, fields map[string]interface{}) error

	// Delete deletes a project row (cascade handled by the service layer)
	Delete(id uint64) error

	// Count counts all projects, archived included
	Count() (int64, error)

	// CountByStatus returns per-status project counts
	CountByStatus() (map[models.ProjectStatus]int64, error)
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	Status          *models.ProjectStatus
	IncludeArchived bool
	Page            int
	PageSize        int
}

// ResourceRepository defines the interface for resource assignment data access
type ResourceRepository interface {
	// Create creates a new resource assignment
	Create(resource *models.Resource) error

	// FindByID finds a resource by ID
	FindByID(id uint64) (*models.Resource, error)

	// List retrieves resources with filtering and pagination
	List(filter ResourceFilter) ([]models.Resource, int64, error)

	// ListWithProjects retrieves every assignment with its project preloaded,
	// ordered by resource name then id
	ListWithProjects() ([]models.Resource, error)

	// ListByProject retrieves all assignments owned by a project
	ListByProject(projectID uint64) ([]models.Resource, error)

	// ListOverlapping retrieves assignments whose window touches [from, to]
	ListOverlapping(from, to time.Time) ([]models.Resource, error)

	// ListByName retrieves all assignments for an exact resource name
	ListByName(name string) ([]models.Resource, error)

	// DistinctNameCount counts distinct resource names
	DistinctNameCount() (int64, error)

	// UpdateFields applies an explicit field list to a resource
	UpdateFields(id uint64, fields map[string]interface{}) error

	// Delete deletes a resource assignment
	Delete(id uint64) error

	// DeleteByProject deletes all assignments owned by a project
	DeleteByProject(projectID uint64) (int64, error)
}

// ResourceFilter holds filtering options for listing resources
type ResourceFilter struct {
	ProjectID *uint64
	Page      int
	PageSize  int
}

// MilestoneStats summarizes a project's milestones
type MilestoneStats struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
}

// MilestoneRepository defines the interface for milestone data access
type MilestoneRepository interface {
	// Create creates a new milestone
	Create(milestone *models.Milestone) error

	// FindByID finds a milestone by ID
	FindByID(id uint64) (*models.Milestone, error)

	// List retrieves milestones ordered by due date, optionally per project
	List(projectID *uint64) ([]models.Milestone, error)

	// StatsByProject returns total/completed milestone counts per project
	StatsByProject(projectIDs []uint64) (map[uint64]MilestoneStats, error)

	// UpdateFields applies an explicit field list to a milestone
	UpdateFields(id uint64, fields map[string]interface{}) error

	// Delete deletes a milestone
	Delete(id uint64) error

	// DeleteByProject deletes all milestones owned by a project
	DeleteByProject(projectID uint64) (int64, error)
}

// StatusUpdateRepository defines the interface for project status update data access
type StatusUpdateRepository interface {
	// Create creates a new status update
	Create(update *models.ProjectStatusUpdate) error

	// ListByProject retrieves a project's status updates, newest first
	ListByProject(projectID uint64) ([]models.ProjectStatusUpdate, error)

	// LatestByProject retrieves a project's most recent status update
	LatestByProject(projectID uint64) (*models.ProjectStatusUpdate, error)

	// DeleteByProject deletes all status updates owned by a project
	DeleteByProject(projectID uint64) (int64, error)
}

// SnapshotRepository defines the interface for weekly utilization snapshots
type SnapshotRepository interface {
	// Upsert inserts a snapshot or overwrites the existing row for the same
	// week start date. Single-statement, last write wins.
	Upsert(snapshot *models.UtilizationSnapshot) error

	// FindByWeekStart finds the snapshot keyed by a Monday date
	FindByWeekStart(weekStart time.Time) (*models.UtilizationSnapshot, error)

	// ListAll retrieves all snapshots ordered by week start date ascending
	ListAll() ([]models.UtilizationSnapshot, error)
}
