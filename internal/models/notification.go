package model

import (
	"time"

	"task-track-system.com/task-track-system/internal/constants"
)

// Notification is immutable after creation except for IsRead and deletion.
// TaskID/ProjectID are navigation back-references and are nulled out when
// the referenced entity is deleted; the notification itself survives.
type Notification struct {
	ID        string                         `gorm:"primaryKey;size:36" json:"id"`
	UserID    string                         `gorm:"size:36;not null;index" json:"user_id"`
	Type      constants.NotificationType     `gorm:"type:varchar(30);not null" json:"type"`
	Title     string                         `gorm:"not null" json:"title"`
	Message   string                         `gorm:"not null" json:"message"`
	Priority  constants.NotificationPriority `gorm:"type:varchar(10);not null;default:NORMAL" json:"priority"`
	IsRead    bool                           `gorm:"not null;default:false;index:idx_notifications_unread" json:"is_read"`
	TaskID    *string                        `gorm:"size:36" json:"task_id,omitempty"`
	ProjectID *string                        `gorm:"size:36" json:"project_id,omitempty"`
	CreatedAt time.Time                      `json:"created_at"`
}
