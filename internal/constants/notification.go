package constants

type NotificationType string

const (
	NotifTaskAssigned         NotificationType = "TASK_ASSIGNED"
	NotifTaskUpdated          NotificationType = "TASK_UPDATED"
	NotifTaskStatusChanged    NotificationType = "TASK_STATUS_CHANGED"
	NotifTaskOverdue          NotificationType = "TASK_OVERDUE"
	NotifTaskCompleted        NotificationType = "TASK_COMPLETED"
	NotifTaskComment          NotificationType = "TASK_COMMENT"
	NotifProjectMemberAdded   NotificationType = "PROJECT_MEMBER_ADDED"
	NotifProjectUpdated       NotificationType = "PROJECT_UPDATED"
	NotifProjectStatusChanged NotificationType = "PROJECT_STATUS_CHANGED"
	NotifProjectMemberRemoved NotificationType = "PROJECT_MEMBER_REMOVED"
)

type NotificationPriority string

const (
	NotifPriorityLow    NotificationPriority = "LOW"
	NotifPriorityNormal NotificationPriority = "NORMAL"
	NotifPriorityUrgent NotificationPriority = "URGENT"
)
