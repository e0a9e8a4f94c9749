package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/projecthub/project-tracking-api/internal/constants"
	"github.com/projecthub/project-tracking-api/internal/models"
	"github.com/projecthub/project-tracking-api/internal/repository"
	"github.com/projecthub/project-tracking-api/internal/utils"
)

// AllocationService answers "what is each named resource's total and current
// allocation across all projects?". Grouping is by exact name match: the data
// model has no person entity, so "John Doe" and "john doe" are two resources.
type AllocationService struct {
	resourceRepo repository.ResourceRepository
}

// NewAllocationService creates a new AllocationService
func NewAllocationService(resourceRepo repository.ResourceRepository) *AllocationService {
	return &AllocationService{resourceRepo: resourceRepo}
}

// ProjectAllocation is one assignment of a resource, with its owning project.
type ProjectAllocation struct {
	ResourceID    uint64
	ProjectID     uint64
	ProjectName   string
	ProjectStatus models.ProjectStatus
	Allocation    float64
	StartDate     time.Time
	EndDate       *time.Time
	IsActive      bool
}

// AllocationSummary aggregates every assignment sharing a resource name.
type AllocationSummary struct {
	Name               string
	Types              string
	CurrentAllocation  float64
	ProjectCount       int
	ActiveProjectCount int
	IsOverAllocated    bool
	EarliestStart      time.Time
	LatestEnd          *time.Time
	Projects           []ProjectAllocation
}

// OverAllocationWarning is the advisory result of a pre-commit check. It
// never blocks a write.
type OverAllocationWarning struct {
	Name                string  `json:"name"`
	CurrentAllocation   float64 `json:"current_allocation"`
	ProjectedAllocation float64 `json:"projected_allocation"`
}

// Summaries computes per-name allocation totals across all assignments as of
// the given date. Names with no assignment rows do not appear. Output is
// ordered by name ascending.
func (s *AllocationService) Summaries(asOf time.Time) ([]AllocationSummary, error) {
	resources, err := s.resourceRepo.ListWithProjects()
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	type group struct {
		summary        *AllocationSummary
		projectIDs     map[uint64]struct{}
		activeProjects map[uint64]struct{}
		types          []string
		typeSeen       map[string]struct{}
		openEnded      bool
	}

	groups := make(map[string]*group)
	order := make([]string, 0)

	for _, res := range resources {
		g, ok := groups[res.Name]
		if !ok {
			g = &group{
				summary:        &AllocationSummary{Name: res.Name},
				projectIDs:     make(map[uint64]struct{}),
				activeProjects: make(map[uint64]struct{}),
				typeSeen:       make(map[string]struct{}),
			}
			groups[res.Name] = g
			order = append(order, res.Name)
		}

		active := utils.ActiveOn(res.StartDate, res.EndDate, asOf)

		g.summary.Projects = append(g.summary.Projects, ProjectAllocation{
			ResourceID:    res.ID,
			ProjectID:     res.ProjectID,
			ProjectName:   res.Project.Name,
			ProjectStatus: res.Project.Status,
			Allocation:    res.AllocationPercentage,
			StartDate:     res.StartDate,
			EndDate:       res.EndDate,
			IsActive:      active,
		})

		if active {
			g.summary.CurrentAllocation += res.AllocationPercentage
			g.activeProjects[res.ProjectID] = struct{}{}
		}
		g.projectIDs[res.ProjectID] = struct{}{}

		if _, seen := g.typeSeen[res.Type]; !seen {
			g.typeSeen[res.Type] = struct{}{}
			g.types = append(g.types, res.Type)
		}

		start := utils.DateOnly(res.StartDate)
		if g.summary.EarliestStart.IsZero() || start.Before(g.summary.EarliestStart) {
			g.summary.EarliestStart = start
		}

		// An open-ended assignment pins the latest end to "unbounded", which
		// is reported back as nil rather than a sentinel date.
		if res.EndDate == nil {
			g.openEnded = true
			g.summary.LatestEnd = nil
		} else if !g.openEnded {
			end := utils.DateOnly(*res.EndDate)
			if g.summary.LatestEnd == nil || end.After(*g.summary.LatestEnd) {
				g.summary.LatestEnd = &end
			}
		}
	}

	summaries := make([]AllocationSummary, 0, len(order))
	for _, name := range order {
		g := groups[name]
		g.summary.Types = strings.Join(g.types, ", ")
		g.summary.ProjectCount = len(g.projectIDs)
		g.summary.ActiveProjectCount = len(g.activeProjects)
		g.summary.IsOverAllocated = g.summary.CurrentAllocation > constants.FullAllocation
		summaries = append(summaries, *g.summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})

	return summaries, nil
}

// CurrentAllocation sums the active allocation for an exact resource name as
// of the given date.
func (s *AllocationService) CurrentAllocation(name string, asOf time.Time) (float64, error) {
	resources, err := s.resourceRepo.ListByName(name)
	if err != nil {
		return 0, fmt.Errorf("failed to list resources for %q: %w", name, err)
	}

	var total float64
	for _, res := range resources {
		if utils.ActiveOn(res.StartDate, res.EndDate, asOf) {
			total += res.AllocationPercentage
		}
	}
	return total, nil
}

// CheckProjectedAllocation is the advisory pre-commit check: the existing
// active total for the name plus the proposed percentage. A warning is
// returned when the projected total exceeds 100; the caller is expected to
// proceed with the write either way.
func (s *AllocationService) CheckProjectedAllocation(name string, addition float64, asOf time.Time) (*OverAllocationWarning, error) {
	current, err := s.CurrentAllocation(name, asOf)
	if err != nil {
		return nil, err
	}

	projected := current + addition
	if projected <= constants.FullAllocation {
		return nil, nil
	}

	return &OverAllocationWarning{
		Name:                name,
		CurrentAllocation:   current,
		ProjectedAllocation: projected,
	}, nil
}

// OverAllocatedCount counts resource names whose active allocation exceeds
// 100% as of the given date.
func (s *AllocationService) OverAllocatedCount(asOf time.Time) (int, error) {
	summaries, err := s.Summaries(asOf)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, summary := range summaries {
		if summary.IsOverAllocated {
			count++
		}
	}
	return count, nil
}
