package services

import (
	"context"
	"log"
	"time"

	"task-track-system.com/task-track-system/internal/cache"
	apperrors "task-track-system.com/task-track-system/internal/errors"
	model "task-track-system.com/task-track-system/internal/models"
	repository "task-track-system.com/task-track-system/internal/repositories"
)

// NotificationService is the query and mutation surface clients poll. It
// layers the redis badge cache over the unread count; the cache is
// best-effort and may be nil (tests run without redis).
type NotificationService struct {
	repo     *repository.NotificationRepository
	badges   cache.BadgeCache
	badgeTTL time.Duration
}

func NewNotificationService(
	repo *repository.NotificationRepository,
	badges cache.BadgeCache,
	badgeTTL time.Duration,
) *NotificationService {
	return &NotificationService{
		repo:     repo,
		badges:   badges,
		badgeTTL: badgeTTL,
	}
}

func (s *NotificationService) Create(ctx context.Context, n *model.Notification) error {
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	s.invalidateBadge(ctx, n.UserID)
	return nil
}

func (s *NotificationService) ListAll(ctx context.Context, userID string) ([]model.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *NotificationService) ListUnread(ctx context.Context, userID string) ([]model.Notification, error) {
	return s.repo.ListUnread(ctx, userID)
}

func (s *NotificationService) ListRecent(ctx context.Context, userID string, limit int) ([]model.Notification, error) {
	return s.repo.ListRecent(ctx, userID, limit)
}

// UnreadCount serves the badge poll. A cached value no older than the
// configured TTL is acceptable staleness.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if s.badges != nil {
		count, ok, err := s.badges.GetUnread(ctx, userID)
		if err != nil {
			log.Printf("badge cache read failed for user %s: %v", userID, err)
		} else if ok {
			return count, nil
		}
	}

	count, err := s.repo.UnreadCount(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.badges != nil {
		if err := s.badges.SetUnread(ctx, userID, count, s.badgeTTL); err != nil {
			log.Printf("badge cache write failed for user %s: %v", userID, err)
		}
	}

	return count, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	existed, err := s.repo.MarkRead(ctx, notificationID)
	if err != nil {
		return err
	}
	if !existed {
		return apperrors.ErrNotificationNotFound
	}

	s.invalidateBadge(ctx, userID)
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	affected, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, err
	}

	s.invalidateBadge(ctx, userID)
	return affected, nil
}

func (s *NotificationService) Delete(ctx context.Context, userID, notificationID string) error {
	existed, err := s.repo.Delete(ctx, notificationID)
	if err != nil {
		return err
	}
	if !existed {
		return apperrors.ErrNotificationNotFound
	}

	s.invalidateBadge(ctx, userID)
	return nil
}

func (s *NotificationService) DeleteAll(ctx context.Context, userID string) error {
	if err := s.repo.DeleteAllForUser(ctx, userID); err != nil {
		return err
	}

	s.invalidateBadge(ctx, userID)
	return nil
}

// ClearTaskReference severs navigation links to a deleted task. The
// notifications themselves are kept.
func (s *NotificationService) ClearTaskReference(ctx context.Context, taskID string) error {
	return s.repo.ClearTaskReference(ctx, taskID)
}

func (s *NotificationService) ClearProjectReference(ctx context.Context, projectID string) error {
	return s.repo.ClearProjectReference(ctx, projectID)
}

func (s *NotificationService) invalidateBadge(ctx context.Context, userID string) {
	if s.badges == nil {
		return
	}
	if err := s.badges.Invalidate(ctx, userID); err != nil {
		log.Printf("badge cache invalidation failed for user %s: %v", userID, err)
	}
}
