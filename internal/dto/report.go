package dto

import (
	"time"

	"github.com/projecthub/project-tracking-api/internal/models"
	"github.com/projecthub/project-tracking-api/internal/services"
)

// DashboardStatsDTO is the dashboard counters response
type DashboardStatsDTO struct {
	TotalProjects          int64                          `json:"total_projects"`
	ActiveProjects         int64                          `json:"active_projects"`
	TotalResources         int64                          `json:"total_resources"`
	OverAllocatedResources int                            `json:"over_allocated_resources"`
	ProjectsByStatus       map[models.ProjectStatus]int64 `json:"projects_by_status"`
}

// ReportKPIsDTO are the headline counts of the project report
type ReportKPIsDTO struct {
	ActiveProjects  int `json:"active_projects"`
	BlockedProjects int `json:"blocked_projects"`
	PendingProjects int `json:"pending_projects"`
}

// ActiveProjectEntryDTO is an active/blocked project line of the report
type ActiveProjectEntryDTO struct {
	ID            uint64               `json:"id"`
	Name          string               `json:"name"`
	Status        models.ProjectStatus `json:"status"`
	EndDate       *string              `json:"end_date"`
	RagStatus     models.RagStatus     `json:"rag_status"`
	LatestComment *string              `json:"latest_comment"`
}

// PendingProjectEntryDTO is a pending-family project line of the report
type PendingProjectEntryDTO struct {
	ID     uint64               `json:"id"`
	Name   string               `json:"name"`
	Status models.ProjectStatus `json:"status"`
}

// ProjectResourceEntryDTO is one resource line of the allocation breakdown
type ProjectResourceEntryDTO struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Allocation float64 `json:"allocation"`
}

// ProjectAllocationGroupDTO groups a project's active assignments
type ProjectAllocationGroupDTO struct {
	ProjectID       uint64                    `json:"project_id"`
	ProjectName     string                    `json:"project_name"`
	TotalAllocation float64                   `json:"total_allocation"`
	Resources       []ProjectResourceEntryDTO `json:"resources"`
}

// ProjectReportDTO is the printable report response
type ProjectReportDTO struct {
	GeneratedAt     time.Time                   `json:"generated_at"`
	KPIs            ReportKPIsDTO               `json:"kpis"`
	ActiveProjects  []ActiveProjectEntryDTO     `json:"active_projects"`
	PendingProjects []PendingProjectEntryDTO    `json:"pending_projects"`
	Allocations     []ProjectAllocationGroupDTO `json:"allocations,omitempty"`
}

// ToDashboardStatsDTO converts DashboardStats to its API shape
func ToDashboardStatsDTO(stats services.DashboardStats) DashboardStatsDTO {
	return DashboardStatsDTO{
		TotalProjects:          stats.TotalProjects,
		ActiveProjects:         stats.ActiveProjects,
		TotalResources:         stats.TotalResources,
		OverAllocatedResources: stats.OverAllocatedResources,
		ProjectsByStatus:       stats.ProjectsByStatus,
	}
}

// ToProjectReportDTO converts a ProjectReport to its API shape
func ToProjectReportDTO(report services.ProjectReport) ProjectReportDTO {
	active := make([]ActiveProjectEntryDTO, len(report.ActiveProjects))
	for i, entry := range report.ActiveProjects {
		active[i] = ActiveProjectEntryDTO{
			ID:            entry.ID,
			Name:          entry.Name,
			Status:        entry.Status,
			EndDate:       formatDatePtr(entry.EndDate),
			RagStatus:     entry.RagStatus,
			LatestComment: entry.LatestComment,
		}
	}

	pending := make([]PendingProjectEntryDTO, len(report.PendingProjects))
	for i, entry := range report.PendingProjects {
		pending[i] = PendingProjectEntryDTO{
			ID:     entry.ID,
			Name:   entry.Name,
			Status: entry.Status,
		}
	}

	var allocations []ProjectAllocationGroupDTO
	for _, group := range report.Allocations {
		resources := make([]ProjectResourceEntryDTO, len(group.Resources))
		for i, res := range group.Resources {
			resources[i] = ProjectResourceEntryDTO{
				Name:       res.Name,
				Type:       res.Type,
				Allocation: res.Allocation,
			}
		}
		allocations = append(allocations, ProjectAllocationGroupDTO{
			ProjectID:       group.ProjectID,
			ProjectName:     group.ProjectName,
			TotalAllocation: group.TotalAllocation,
			Resources:       resources,
		})
	}

	return ProjectReportDTO{
		GeneratedAt: report.GeneratedAt,
		KPIs: ReportKPIsDTO{
			ActiveProjects:  report.KPIs.ActiveProjects,
			BlockedProjects: report.KPIs.BlockedProjects,
			PendingProjects: report.KPIs.PendingProjects,
		},
		ActiveProjects:  active,
		PendingProjects: pending,
		Allocations:     allocations,
	}
}
