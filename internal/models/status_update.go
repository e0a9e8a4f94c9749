package models

import (
	"time"
)

// ProjectStatusUpdate is a timestamped RAG health entry for a project. The
// project's current rag_status mirrors the most recent update.
type ProjectStatusUpdate struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ProjectID uint64    `gorm:"not null;index" json:"project_id"`
	RagStatus RagStatus `gorm:"type:varchar(10);not null" json:"rag_status"`
	Comment   *string   `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
