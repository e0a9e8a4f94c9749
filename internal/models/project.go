package models

import (
	"time"
)

type ProjectStatus string

const (
	ProjectStatusCompleted   ProjectStatus = "Completed"
	ProjectStatusActive      ProjectStatus = "Active"
	ProjectStatusBlocked     ProjectStatus = "Blocked"
	ProjectStatusReady       ProjectStatus = "Ready"
	ProjectStatusPendingSale ProjectStatus = "Pending Sale Confirmation"
	ProjectStatusCancelled   ProjectStatus = "Cancelled"
	ProjectStatusPipeline    ProjectStatus = "Sales Pipeline"
)

// AllProjectStatuses is the fixed status set, in display order.
var AllProjectStatuses = []ProjectStatus{
	ProjectStatusCompleted,
	ProjectStatusActive,
	ProjectStatusBlocked,
	ProjectStatusReady,
	ProjectStatusPendingSale,
	ProjectStatusCancelled,
	ProjectStatusPipeline,
}

func (s ProjectStatus) Valid() bool {
	for _, v := range AllProjectStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type RagStatus string

const (
	RagStatusRed   RagStatus = "Red"
	RagStatusAmber RagStatus = "Amber"
	RagStatusGreen RagStatus = "Green"
	RagStatusNA    RagStatus = "N/A"
)

func (s RagStatus) Valid() bool {
	switch s {
	case RagStatusRed, RagStatusAmber, RagStatusGreen, RagStatusNA:
		return true
	}
	return false
}

type Project struct {
	ID          uint64        `gorm:"primarykey" json:"id"`
	Name        string        `gorm:"type:varchar(255);not null" json:"name"`
	Status      ProjectStatus `gorm:"type:varchar(50);not null" json:"status"`
	StartDate   time.Time     `gorm:"type:date;not null" json:"start_date"`
	EndDate     *time.Time    `gorm:"type:date" json:"end_date"`
	Description *string       `gorm:"type:text" json:"description"`
	Archived    bool          `gorm:"not null;default:false" json:"archived"`
	RagStatus   RagStatus     `gorm:"type:varchar(10);not null;default:'N/A'" json:"rag_status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Relations
	Resources     []Resource            `gorm:"foreignKey:ProjectID" json:"resources,omitempty"`
	Milestones    []Milestone           `gorm:"foreignKey:ProjectID" json:"milestones,omitempty"`
	StatusUpdates []ProjectStatusUpdate `gorm:"foreignKey:ProjectID" json:"status_updates,omitempty"`
}
