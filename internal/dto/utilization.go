package dto

import (
	"time"

	"github.com/projecthub/project-tracking-api/internal/models"
	"github.com/projecthub/project-tracking-api/internal/services"
	"github.com/projecthub/project-tracking-api/internal/utils"
)

// SnapshotDTO represents a weekly utilization snapshot in API responses
type SnapshotDTO struct {
	ID                    uint64    `json:"id"`
	WeekStartDate         string    `json:"week_start_date"`
	WeekEndDate           string    `json:"week_end_date"`
	TotalCapacity         float64   `json:"total_capacity"`
	TotalAllocated        float64   `json:"total_allocated"`
	UtilizationPercentage float64   `json:"utilization_percentage"`
	UniqueResourceCount   int       `json:"unique_resource_count"`
	SnapshotDate          time.Time `json:"snapshot_date"`
}

// UtilizationPointDTO is one charted week
type UtilizationPointDTO struct {
	Week          string  `json:"week"`
	WeekLabel     string  `json:"week_label"`
	Utilization   float64 `json:"utilization"`
	Capacity      float64 `json:"capacity"`
	Allocated     float64 `json:"allocated"`
	ResourceCount int     `json:"resource_count"`
	WeekStartDate string  `json:"week_start_date"`
}

// UtilizationSummaryDTO carries aggregate stats over all tracked weeks
type UtilizationSummaryDTO struct {
	AverageUtilization     float64  `json:"average_utilization"`
	CurrentWeekUtilization *float64 `json:"current_week_utilization"`
	WeeksTracked           int      `json:"weeks_tracked"`
}

// ChartSeriesDTO is the utilization history response
type ChartSeriesDTO struct {
	Data    []UtilizationPointDTO `json:"data"`
	Summary UtilizationSummaryDTO `json:"summary"`
}

// ToSnapshotDTO converts a UtilizationSnapshot model to SnapshotDTO
func ToSnapshotDTO(snapshot models.UtilizationSnapshot) SnapshotDTO {
	return SnapshotDTO{
		ID:                    snapshot.ID,
		WeekStartDate:         utils.FormatDate(snapshot.WeekStartDate),
		WeekEndDate:           utils.FormatDate(snapshot.WeekEndDate),
		TotalCapacity:         snapshot.TotalCapacity,
		TotalAllocated:        snapshot.TotalAllocated,
		UtilizationPercentage: snapshot.UtilizationPercentage,
		UniqueResourceCount:   snapshot.UniqueResourceCount,
		SnapshotDate:          snapshot.SnapshotDate,
	}
}

// ToChartSeriesDTO converts a ChartSeries to its API shape
func ToChartSeriesDTO(series services.ChartSeries) ChartSeriesDTO {
	points := make([]UtilizationPointDTO, len(series.Points))
	for i, p := range series.Points {
		points[i] = UtilizationPointDTO{
			Week:          p.Week,
			WeekLabel:     p.WeekLabel,
			Utilization:   p.Utilization,
			Capacity:      p.Capacity,
			Allocated:     p.Allocated,
			ResourceCount: p.ResourceCount,
			WeekStartDate: utils.FormatDate(p.WeekStartDate),
		}
	}

	return ChartSeriesDTO{
		Data: points,
		Summary: UtilizationSummaryDTO{
			AverageUtilization:     series.Summary.AverageUtilization,
			CurrentWeekUtilization: series.Summary.CurrentWeekUtilization,
			WeeksTracked:           series.Summary.WeeksTracked,
		},
	}
}
