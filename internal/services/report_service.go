package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/projecthub/project-tracking-api/internal/models"
	"github.com/projecthub/project-tracking-api/internal/repository"
	"github.com/projecthub/project-tracking-api/internal/utils"
	"gorm.io/gorm"
)

// ReportService assembles read-only cross-entity views for the dashboard and
// the printable project report. Any failed read aborts the whole computation;
// a report is never partially populated.
type ReportService struct {
	projectRepo  repository.ProjectRepository
	resourceRepo repository.ResourceRepository
	statusRepo   repository.StatusUpdateRepository
	allocations  *AllocationService
}

// NewReportService creates a new ReportService
func NewReportService(
	projectRepo repository.ProjectRepository,
	resourceRepo repository.ResourceRepository,
	statusRepo repository.StatusUpdateRepository,
	allocations *AllocationService,
) *ReportService {
	return &ReportService{
		projectRepo:  projectRepo,
		resourceRepo: resourceRepo,
		statusRepo:   statusRepo,
		allocations:  allocations,
	}
}

// DashboardStats holds the headline counts for the dashboard.
type DashboardStats struct {
	TotalProjects          int64
	ActiveProjects         int64
	TotalResources         int64
	OverAllocatedResources int
	ProjectsByStatus       map[models.ProjectStatus]int64
}

// DashboardStats computes the dashboard counters as of the given date.
func (s *ReportService) DashboardStats(asOf time.Time) (*DashboardStats, error) {
	totalProjects, err := s.projectRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	statusCounts, err := s.projectRepo.CountByStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to count projects by status: %w", err)
	}

	totalResources, err := s.resourceRepo.DistinctNameCount()
	if err != nil {
		return nil, fmt.Errorf("failed to count resources: %w", err)
	}

	overAllocated, err := s.allocations.OverAllocatedCount(asOf)
	if err != nil {
		return nil, err
	}

	// Every status in the fixed set appears with a zero default; rows with a
	// status outside the set are dropped.
	byStatus := make(map[models.ProjectStatus]int64, len(models.AllProjectStatuses))
	for _, status := range models.AllProjectStatuses {
		byStatus[status] = statusCounts[status]
	}

	return &DashboardStats{
		TotalProjects:          totalProjects,
		ActiveProjects:         statusCounts[models.ProjectStatusActive],
		TotalResources:         totalResources,
		OverAllocatedResources: overAllocated,
		ProjectsByStatus:       byStatus,
	}, nil
}

// ReportKPIs are the headline counts of the project report.
type ReportKPIs struct {
	ActiveProjects  int
	BlockedProjects int
	PendingProjects int
}

// ActiveProjectEntry is an active or blocked project enriched with its most
// recent status-update comment.
type ActiveProjectEntry struct {
	ID            uint64
	Name          string
	Status        models.ProjectStatus
	EndDate       *time.Time
	RagStatus     models.RagStatus
	LatestComment *string
}

// PendingProjectEntry is a pending-family project (Ready, Pending Sale
// Confirmation or Sales Pipeline).
type PendingProjectEntry struct {
	ID     uint64
	Name   string
	Status models.ProjectStatus
}

// ProjectResourceEntry is one resource line of the per-project breakdown.
type ProjectResourceEntry struct {
	Name       string
	Type       string
	Allocation float64
}

// ProjectAllocationGroup groups the active resource assignments of a project.
type ProjectAllocationGroup struct {
	ProjectID       uint64
	ProjectName     string
	TotalAllocation float64
	Resources       []ProjectResourceEntry
}

// ProjectReport is the printable report payload.
type ProjectReport struct {
	GeneratedAt     time.Time
	KPIs            ReportKPIs
	ActiveProjects  []ActiveProjectEntry
	PendingProjects []PendingProjectEntry
	Allocations     []ProjectAllocationGroup
}

var pendingStatusOrder = map[models.ProjectStatus]int{
	models.ProjectStatusReady:       1,
	models.ProjectStatusPendingSale: 2,
	models.ProjectStatusPipeline:    3,
}

// ProjectReport builds the report as of the given date. The allocation
// breakdown is optional and restricted to projects active today and not
// archived.
func (s *ReportService) ProjectReport(asOf time.Time, includeAllocations bool) (*ProjectReport, error) {
	activeBlocked, err := s.projectRepo.ListByStatuses([]models.ProjectStatus{
		models.ProjectStatusActive,
		models.ProjectStatusBlocked,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list active projects: %w", err)
	}

	pending, err := s.projectRepo.ListByStatuses([]models.ProjectStatus{
		models.ProjectStatusReady,
		models.ProjectStatusPendingSale,
		models.ProjectStatusPipeline,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending projects: %w", err)
	}

	// End date ascending, projects without an end date last. The repository
	// returns name order, which the stable sort keeps as the tiebreak.
	sort.SliceStable(activeBlocked, func(i, j int) bool {
		a, b := activeBlocked[i].EndDate, activeBlocked[j].EndDate
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.Before(*b)
	})

	report := &ProjectReport{
		GeneratedAt:     time.Now().UTC(),
		ActiveProjects:  make([]ActiveProjectEntry, 0, len(activeBlocked)),
		PendingProjects: make([]PendingProjectEntry, 0, len(pending)),
	}

	for _, project := range activeBlocked {
		entry := ActiveProjectEntry{
			ID:        project.ID,
			Name:      project.Name,
			Status:    project.Status,
			EndDate:   project.EndDate,
			RagStatus: project.RagStatus,
		}

		latest, err := s.statusRepo.LatestByProject(project.ID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to load latest status update for project %d: %w", project.ID, err)
			}
		} else {
			entry.LatestComment = latest.Comment
		}

		report.ActiveProjects = append(report.ActiveProjects, entry)

		switch project.Status {
		case models.ProjectStatusActive:
			report.KPIs.ActiveProjects++
		case models.ProjectStatusBlocked:
			report.KPIs.BlockedProjects++
		}
	}

	// Ready < Pending Sale Confirmation < Sales Pipeline, then name.
	sort.SliceStable(pending, func(i, j int) bool {
		return pendingStatusOrder[pending[i].Status] < pendingStatusOrder[pending[j].Status]
	})
	for _, project := range pending {
		report.PendingProjects = append(report.PendingProjects, PendingProjectEntry{
			ID:     project.ID,
			Name:   project.Name,
			Status: project.Status,
		})
	}
	report.KPIs.PendingProjects = len(pending)

	if includeAllocations {
		groups, err := s.allocationBreakdown(asOf)
		if err != nil {
			return nil, err
		}
		report.Allocations = groups
	}

	return report, nil
}

// allocationBreakdown groups today's active assignments by project, skipping
// archived projects.
func (s *ReportService) allocationBreakdown(asOf time.Time) ([]ProjectAllocationGroup, error) {
	resources, err := s.resourceRepo.ListWithProjects()
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	groupsByProject := make(map[uint64]*ProjectAllocationGroup)
	order := make([]uint64, 0)

	for _, res := range resources {
		if res.Project.Archived {
			continue
		}
		if !utils.ActiveOn(res.StartDate, res.EndDate, asOf) {
			continue
		}

		group, ok := groupsByProject[res.ProjectID]
		if !ok {
			group = &ProjectAllocationGroup{
				ProjectID:   res.ProjectID,
				ProjectName: res.Project.Name,
			}
			groupsByProject[res.ProjectID] = group
			order = append(order, res.ProjectID)
		}

		group.Resources = append(group.Resources, ProjectResourceEntry{
			Name:       res.Name,
			Type:       res.Type,
			Allocation: res.AllocationPercentage,
		})
		group.TotalAllocation += res.AllocationPercentage
	}

	groups := make([]ProjectAllocationGroup, 0, len(order))
	for _, id := range order {
		groups = append(groups, *groupsByProject[id])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].ProjectName < groups[j].ProjectName
	})

	return groups, nil
}
