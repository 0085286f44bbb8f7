package events

import (
	"task-track-system.com/task-track-system/internal/constants"
)

// Event is a lifecycle change that may fan out into notifications.
// Only the fields relevant to the event type are populated.
type Event struct {
	Type constants.NotificationType

	ActorID   string
	ActorName string

	TaskID   string
	TaskName string

	ProjectID   string
	ProjectName string

	// TargetUserID is set for single-recipient events (assignment,
	// project member added/removed).
	TargetUserID string

	// AssigneeIDs is the explicit recipient list supplied by the overdue
	// scheduler.
	AssigneeIDs []string

	// Detail is extra per-type context: the field that changed, the new
	// status name, or a comment excerpt.
	Detail string
}

func TaskAssigned(actorID, actorName, taskID, taskName, assigneeID string) Event {
	return Event{
		Type:         constants.NotifTaskAssigned,
		ActorID:      actorID,
		ActorName:    actorName,
		TaskID:       taskID,
		TaskName:     taskName,
		TargetUserID: assigneeID,
	}
}

func TaskUpdated(actorID, actorName, taskID, taskName, detail string) Event {
	return Event{
		Type:      constants.NotifTaskUpdated,
		ActorID:   actorID,
		ActorName: actorName,
		TaskID:    taskID,
		TaskName:  taskName,
		Detail:    detail,
	}
}

func TaskStatusChanged(actorID, actorName, taskID, taskName string, newStatus constants.TaskStatus) Event {
	return Event{
		Type:      constants.NotifTaskStatusChanged,
		ActorID:   actorID,
		ActorName: actorName,
		TaskID:    taskID,
		TaskName:  taskName,
		Detail:    string(newStatus),
	}
}

func TaskOverdue(taskID, taskName string, assigneeIDs []string) Event {
	return Event{
		Type:        constants.NotifTaskOverdue,
		TaskID:      taskID,
		TaskName:    taskName,
		AssigneeIDs: assigneeIDs,
	}
}

func TaskCompleted(actorID, actorName, taskID, taskName string) Event {
	return Event{
		Type:      constants.NotifTaskCompleted,
		ActorID:   actorID,
		ActorName: actorName,
		TaskID:    taskID,
		TaskName:  taskName,
	}
}

func TaskCommentPosted(authorID, authorName, taskID, taskName, excerpt string) Event {
	return Event{
		Type:      constants.NotifTaskComment,
		ActorID:   authorID,
		ActorName: authorName,
		TaskID:    taskID,
		TaskName:  taskName,
		Detail:    excerpt,
	}
}

func ProjectMemberAdded(actorID, actorName, projectID, projectName, addedUserID string) Event {
	return Event{
		Type:         constants.NotifProjectMemberAdded,
		ActorID:      actorID,
		ActorName:    actorName,
		ProjectID:    projectID,
		ProjectName:  projectName,
		TargetUserID: addedUserID,
	}
}

func ProjectUpdated(actorID, actorName, projectID, projectName, detail string) Event {
	return Event{
		Type:        constants.NotifProjectUpdated,
		ActorID:     actorID,
		ActorName:   actorName,
		ProjectID:   projectID,
		ProjectName: projectName,
		Detail:      detail,
	}
}

func ProjectStatusChanged(actorID, actorName, projectID, projectName string, newStatus constants.ProjectStatus) Event {
	return Event{
		Type:        constants.NotifProjectStatusChanged,
		ActorID:     actorID,
		ActorName:   actorName,
		ProjectID:   projectID,
		ProjectName: projectName,
		Detail:      string(newStatus),
	}
}

func ProjectMemberRemoved(actorID, actorName, projectID, projectName, removedUserID string) Event {
	return Event{
		Type:         constants.NotifProjectMemberRemoved,
		ActorID:      actorID,
		ActorName:    actorName,
		ProjectID:    projectID,
		ProjectName:  projectName,
		TargetUserID: removedUserID,
	}
}
