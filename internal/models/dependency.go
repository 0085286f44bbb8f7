package model

import "time"

// TaskDependency is a directed "requires" edge: TaskID cannot be marked
// DONE until DependsOnTaskID is DONE. Only direct edges are stored;
// nothing computes a transitive closure.
type TaskDependency struct {
	TaskID          string    `gorm:"primaryKey;size:36;index" json:"task_id"`
	DependsOnTaskID string    `gorm:"primaryKey;size:36;index" json:"depends_on_task_id"`
	CreatedAt       time.Time `json:"created_at"`
}

func (TaskDependency) TableName() string {
	return "task_dependencies"
}
