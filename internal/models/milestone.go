package models

import (
	"time"
)

type MilestoneStatus string

const (
	MilestoneStatusPending    MilestoneStatus = "pending"
	MilestoneStatusInProgress MilestoneStatus = "in_progress"
	MilestoneStatusCompleted  MilestoneStatus = "completed"
)

func (s MilestoneStatus) Valid() bool {
	switch s {
	case MilestoneStatusPending, MilestoneStatusInProgress, MilestoneStatusCompleted:
		return true
	}
	return false
}

type Milestone struct {
	ID          uint64          `gorm:"primarykey" json:"id"`
	ProjectID   uint64          `gorm:"not null;index" json:"project_id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description *string         `gorm:"type:text" json:"description"`
	DueDate     time.Time       `gorm:"type:date;not null" json:"due_date"`
	Status      MilestoneStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Progress    int             `gorm:"not null;default:0" json:"progress"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
