package services

import (
	"fmt"
	"math"
	"time"

	"github.com/projecthub/project-tracking-api/internal/constants"
	"github.com/projecthub/project-tracking-api/internal/models"
	"github.com/projecthub/project-tracking-api/internal/repository"
	"github.com/projecthub/project-tracking-api/internal/utils"
)

// UtilizationService produces one team-wide utilization measurement per
// Monday-keyed week and serves the captured history as chart data.
type UtilizationService struct {
	snapshotRepo repository.SnapshotRepository
	resourceRepo repository.ResourceRepository
}

// NewUtilizationService creates a new UtilizationService
func NewUtilizationService(snapshotRepo repository.SnapshotRepository, resourceRepo repository.ResourceRepository) *UtilizationService {
	return &UtilizationService{
		snapshotRepo: snapshotRepo,
		resourceRepo: resourceRepo,
	}
}

// UtilizationPoint is one snapshot prepared for charting.
type UtilizationPoint struct {
	Week          string
	WeekLabel     string
	Utilization   float64
	Capacity      float64
	Allocated     float64
	ResourceCount int
	WeekStartDate time.Time
}

// UtilizationSummary carries the aggregate stats over all tracked weeks.
type UtilizationSummary struct {
	AverageUtilization     float64
	CurrentWeekUtilization *float64
	WeeksTracked           int
}

// ChartSeries is the full utilization history plus summary stats.
type ChartSeries struct {
	Points  []UtilizationPoint
	Summary UtilizationSummary
}

// Capture measures utilization for the week containing the reference date and
// upserts the snapshot keyed by that week's Monday. Re-running for any day of
// the same week overwrites the existing row; this is the one write designed
// to be safely repeated.
func (s *UtilizationService) Capture(referenceDate time.Time) (*models.UtilizationSnapshot, error) {
	monday, sunday := utils.WeekBounds(referenceDate)

	// Any overlap with the 7-day window counts, not strict containment.
	resources, err := s.resourceRepo.ListOverlapping(monday, sunday)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources for week %s: %w", utils.FormatDate(monday), err)
	}

	names := make(map[string]struct{})
	var totalAllocated float64
	for _, res := range resources {
		names[res.Name] = struct{}{}
		totalAllocated += res.AllocationPercentage
	}

	uniqueResourceCount := len(names)
	totalCapacity := float64(uniqueResourceCount) * constants.FullAllocation

	utilization := 0.0
	if totalCapacity > 0 {
		utilization = totalAllocated / totalCapacity * 100
	}

	snapshot := &models.UtilizationSnapshot{
		WeekStartDate:         monday,
		WeekEndDate:           sunday,
		TotalCapacity:         totalCapacity,
		TotalAllocated:        totalAllocated,
		UtilizationPercentage: utilization,
		UniqueResourceCount:   uniqueResourceCount,
		SnapshotDate:          time.Now().UTC(),
	}

	if err := s.snapshotRepo.Upsert(snapshot); err != nil {
		return nil, fmt.Errorf("failed to upsert snapshot for week %s: %w", utils.FormatDate(monday), err)
	}

	persisted, err := s.snapshotRepo.FindByWeekStart(monday)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot for week %s: %w", utils.FormatDate(monday), err)
	}
	return persisted, nil
}

// Series returns all snapshots ordered by week start ascending, labelled for
// charting, with mean utilization, the current week's utilization when a
// snapshot exists for the week containing now, and the weeks tracked.
func (s *UtilizationService) Series(now time.Time) (*ChartSeries, error) {
	snapshots, err := s.snapshotRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	points := make([]UtilizationPoint, len(snapshots))
	var totalUtilization float64
	for i, snap := range snapshots {
		points[i] = UtilizationPoint{
			Week:          snap.WeekStartDate.Format("02/01/2006"),
			WeekLabel:     fmt.Sprintf("Week %d", utils.WeekNumber(snap.WeekStartDate)),
			Utilization:   snap.UtilizationPercentage,
			Capacity:      snap.TotalCapacity,
			Allocated:     snap.TotalAllocated,
			ResourceCount: snap.UniqueResourceCount,
			WeekStartDate: utils.DateOnly(snap.WeekStartDate),
		}
		totalUtilization += snap.UtilizationPercentage
	}

	average := 0.0
	if len(points) > 0 {
		average = totalUtilization / float64(len(points))
	}

	summary := UtilizationSummary{
		AverageUtilization: round2(average),
		WeeksTracked:       len(points),
	}

	currentMonday, _ := utils.WeekBounds(now)
	for _, p := range points {
		if p.WeekStartDate.Equal(currentMonday) {
			current := round2(p.Utilization)
			summary.CurrentWeekUtilization = &current
			break
		}
	}

	return &ChartSeries{Points: points, Summary: summary}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
