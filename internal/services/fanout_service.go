package services

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"task-track-system.com/task-track-system/internal/constants"
	"task-track-system.com/task-track-system/internal/events"
	model "task-track-system.com/task-track-system/internal/models"
)

type audienceKind int

const (
	// audienceTargetUser notifies only the single user named by the event
	// (assignment, project member added/removed).
	audienceTargetUser audienceKind = iota
	audienceTaskMembers
	audienceProjectMembers
	// audienceExplicitList is the assignee list supplied by the overdue
	// scanner.
	audienceExplicitList
)

type fanoutRule struct {
	audience     audienceKind
	excludeActor bool
	priority     constants.NotificationPriority
}

// fanoutRules maps each event kind to its audience rule, actor-exclusion
// rule, and notification priority. Actor exclusion applies only to comments;
// every other kind either targets a single user or deliberately includes the
// actor in their own audience.
var fanoutRules = map[constants.NotificationType]fanoutRule{
	constants.NotifTaskAssigned:         {audience: audienceTargetUser, priority: constants.NotifPriorityNormal},
	constants.NotifTaskUpdated:          {audience: audienceTaskMembers, priority: constants.NotifPriorityLow},
	constants.NotifTaskStatusChanged:    {audience: audienceTaskMembers, priority: constants.NotifPriorityNormal},
	constants.NotifTaskOverdue:          {audience: audienceExplicitList, priority: constants.NotifPriorityUrgent},
	constants.NotifTaskCompleted:        {audience: audienceTaskMembers, priority: constants.NotifPriorityLow},
	constants.NotifTaskComment:          {audience: audienceTaskMembers, excludeActor: true, priority: constants.NotifPriorityLow},
	constants.NotifProjectMemberAdded:   {audience: audienceTargetUser, priority: constants.NotifPriorityNormal},
	constants.NotifProjectUpdated:       {audience: audienceProjectMembers, priority: constants.NotifPriorityLow},
	constants.NotifProjectStatusChanged: {audience: audienceProjectMembers, priority: constants.NotifPriorityNormal},
	constants.NotifProjectMemberRemoved: {audience: audienceTargetUser, priority: constants.NotifPriorityNormal},
}

// FanoutService turns one domain event into one notification row per
// recipient. Fan-out is best effort: it never rolls back the business
// operation that triggered it, and one recipient's failure never aborts the
// rest.
type FanoutService struct {
	audience      *AudienceResolver
	notifications *NotificationService
	workers       int
}

func NewFanoutService(
	audience *AudienceResolver,
	notifications *NotificationService,
	workers int,
) *FanoutService {
	if workers <= 0 {
		workers = 1
	}
	return &FanoutService{
		audience:      audience,
		notifications: notifications,
		workers:       workers,
	}
}

// Dispatch resolves the event's audience and writes one notification per
// recipient, bounded by the worker limit. It returns the number of
// notifications actually created. Repeated identical events are not
// deduplicated; two edits produce two notifications.
func (s *FanoutService) Dispatch(ctx context.Context, ev events.Event) int {
	rule, ok := fanoutRules[ev.Type]
	if !ok {
		log.Printf("fanout: no rule for event type %s, dropping", ev.Type)
		return 0
	}

	recipients, err := s.resolveRecipients(ctx, ev, rule)
	if err != nil {
		log.Printf("fanout: audience resolution failed for %s: %v", ev.Type, err)
		return 0
	}
	if len(recipients) == 0 {
		return 0
	}

	title, message := renderMessage(ev)

	var created atomic.Int64
	g := new(errgroup.Group)
	g.SetLimit(s.workers)

	for _, userID := range recipients {
		userID := userID
		g.Go(func() error {
			n := &model.Notification{
				UserID:   userID,
				Type:     ev.Type,
				Title:    title,
				Message:  message,
				Priority: rule.priority,
			}
			if ev.TaskID != "" {
				taskID := ev.TaskID
				n.TaskID = &taskID
			}
			if ev.ProjectID != "" {
				projectID := ev.ProjectID
				n.ProjectID = &projectID
			}

			if err := s.notifications.Create(ctx, n); err != nil {
				// Isolated per recipient; log and keep going.
				log.Printf("fanout: failed to notify user %s for %s: %v", userID, ev.Type, err)
				return nil
			}

			created.Add(1)
			return nil
		})
	}

	_ = g.Wait()
	return int(created.Load())
}

func (s *FanoutService) resolveRecipients(ctx context.Context, ev events.Event, rule fanoutRule) ([]string, error) {
	exclude := ""
	if rule.excludeActor {
		exclude = ev.ActorID
	}

	switch rule.audience {
	case audienceTargetUser:
		if ev.TargetUserID == "" {
			return nil, nil
		}
		return []string{ev.TargetUserID}, nil
	case audienceTaskMembers:
		return s.audience.TaskMembers(ctx, ev.TaskID, exclude)
	case audienceProjectMembers:
		return s.audience.ProjectMembers(ctx, ev.ProjectID, exclude)
	case audienceExplicitList:
		return dedupe(ev.AssigneeIDs, ""), nil
	default:
		return nil, fmt.Errorf("unknown audience kind %d", rule.audience)
	}
}

func renderMessage(ev events.Event) (title, message string) {
	switch ev.Type {
	case constants.NotifTaskAssigned:
		return "New task assignment",
			fmt.Sprintf("%s assigned you to %q", ev.ActorName, ev.TaskName)
	case constants.NotifTaskUpdated:
		msg := fmt.Sprintf("%s updated %q", ev.ActorName, ev.TaskName)
		if ev.Detail != "" {
			msg += fmt.Sprintf(" (%s)", ev.Detail)
		}
		return "Task updated", msg
	case constants.NotifTaskStatusChanged:
		return "Task status changed",
			fmt.Sprintf("%s moved %q to %s", ev.ActorName, ev.TaskName, ev.Detail)
	case constants.NotifTaskOverdue:
		return "Task overdue",
			fmt.Sprintf("%q is past its due date", ev.TaskName)
	case constants.NotifTaskCompleted:
		return "Task completed",
			fmt.Sprintf("%s completed %q", ev.ActorName, ev.TaskName)
	case constants.NotifTaskComment:
		return "New comment",
			fmt.Sprintf("%s commented on %q: %s", ev.ActorName, ev.TaskName, ev.Detail)
	case constants.NotifProjectMemberAdded:
		return "Added to project",
			fmt.Sprintf("%s added you to project %q", ev.ActorName, ev.ProjectName)
	case constants.NotifProjectUpdated:
		msg := fmt.Sprintf("%s updated project %q", ev.ActorName, ev.ProjectName)
		if ev.Detail != "" {
			msg += fmt.Sprintf(" (%s)", ev.Detail)
		}
		return "Project updated", msg
	case constants.NotifProjectStatusChanged:
		return "Project status changed",
			fmt.Sprintf("%s moved project %q to %s", ev.ActorName, ev.ProjectName, ev.Detail)
	case constants.NotifProjectMemberRemoved:
		return "Removed from project",
			fmt.Sprintf("%s removed you from project %q", ev.ActorName, ev.ProjectName)
	default:
		return string(ev.Type), ""
	}
}
