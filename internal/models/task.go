package model

import (
	"time"

	"task-track-system.com/task-track-system/internal/constants"
)

type Task struct {
	ID           string                 `gorm:"primaryKey;size:36" json:"id"`
	ProjectID    string                 `gorm:"size:36;not null;index" json:"project_id"`
	Name         string                 `gorm:"not null" json:"name"`
	Description  string                 `json:"description"`
	Status       constants.TaskStatus   `gorm:"type:varchar(20);not null" json:"status"`
	Priority     constants.TaskPriority `gorm:"type:varchar(20);not null" json:"priority"`
	DueDate      *time.Time             `json:"due_date,omitempty"`
	ParentTaskID *string                `gorm:"size:36" json:"parent_task_id,omitempty"`
	Version      uint                   `gorm:"not null;default:1" json:"version"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}
