package models

import (
	"time"
)

// UtilizationSnapshot is one persisted team-wide utilization measurement per
// Monday-keyed week. Re-capturing a week overwrites the row in place.
type UtilizationSnapshot struct {
	ID                    uint64    `gorm:"primarykey" json:"id"`
	WeekStartDate         time.Time `gorm:"type:date;uniqueIndex;not null" json:"week_start_date"`
	WeekEndDate           time.Time `gorm:"type:date;not null" json:"week_end_date"`
	TotalCapacity         float64   `gorm:"not null" json:"total_capacity"`
	TotalAllocated        float64   `gorm:"not null" json:"total_allocated"`
	UtilizationPercentage float64   `gorm:"not null" json:"utilization_percentage"`
	UniqueResourceCount   int       `gorm:"not null" json:"unique_resource_count"`
	SnapshotDate          time.Time `gorm:"not null" json:"snapshot_date"`
	CreatedAt             time.Time `json:"created_at"`
}
