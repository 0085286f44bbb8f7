package model

import "time"

type TaskMember struct {
	TaskID    string    `gorm:"primaryKey;size:36" json:"task_id"`
	UserID    string    `gorm:"primaryKey;size:36;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type ProjectMember struct {
	ProjectID string    `gorm:"primaryKey;size:36" json:"project_id"`
	UserID    string    `gorm:"primaryKey;size:36;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
