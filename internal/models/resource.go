package models

import (
	"time"
)

// Resource is one person's allocation to one project for a date window.
// There is no separate person entity: the name string is the identity key,
// matched exactly (case- and whitespace-sensitive) when grouping across
// projects.
type Resource struct {
	ID                   uint64     `gorm:"primarykey" json:"id"`
	ProjectID            uint64     `gorm:"not null;index" json:"project_id"`
	Name                 string     `gorm:"type:varchar(255);not null;index" json:"name"`
	Type                 string     `gorm:"type:varchar(255);not null" json:"type"`
	AllocationPercentage float64    `gorm:"type:decimal(5,2);not null" json:"allocation_percentage"`
	StartDate            time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate              *time.Time `gorm:"type:date" json:"end_date"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
