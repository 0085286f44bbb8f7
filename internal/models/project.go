package model

import (
	"time"

	"task-track-system.com/task-track-system/internal/constants"
)

type Project struct {
	ID          string                  `gorm:"primaryKey;size:36" json:"id"`
	Name        string                  `gorm:"not null" json:"name"`
	Description string                  `json:"description"`
	Status      constants.ProjectStatus `gorm:"type:varchar(20);not null" json:"status"`
	Version     uint                    `gorm:"not null;default:1" json:"version"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}
