package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-track-system.com/task-track-system/internal/constants"
	apperrors "task-track-system.com/task-track-system/internal/errors"
	model "task-track-system.com/task-track-system/internal/models"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create assigns identity and creation time. IsRead is forced to false no
// matter what the caller set.
func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	n.ID = uuid.NewString()
	n.IsRead = false
	n.CreatedAt = time.Now().UTC()
	if n.Priority == "" {
		n.Priority = constants.NotifPriorityNormal
	}

	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepository) ListUnread(ctx context.Context, userID string) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_read = ?", userID, false).
		Order("created_at desc").
		Find(&notifications).Error
	return notifications, err
}

// ListRecent caps the result client-side; there is no pagination.
func (r *NotificationRepository) ListRecent(ctx context.Context, userID string, limit int) ([]model.Notification, error) {
	if limit <= 0 {
		return nil, apperrors.ErrInvalidLimit
	}

	var notifications []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepository) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead is idempotent: marking an already-read notification succeeds.
// The returned bool reports whether the notification existed at all.
func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", notificationID).
		Update("is_read", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkAllRead returns the number of notifications flipped to read. Zero is
// a success, not an error.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *NotificationRepository) Delete(ctx context.Context, notificationID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ?", notificationID).
		Delete(&model.Notification{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *NotificationRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Notification{}).Error
}

// ClearTaskReference severs the navigation link to a deleted task. The
// notifications themselves survive.
func (r *NotificationRepository) ClearTaskReference(ctx context.Context, taskID string) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("task_id = ?", taskID).
		Update("task_id", nil).Error
}

func (r *NotificationRepository) ClearProjectReference(ctx context.Context, projectID string) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("project_id = ?", projectID).
		Update("project_id", nil).Error
}
