package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"task-track-system.com/task-track-system/internal/constants"
	apperrors "task-track-system.com/task-track-system/internal/errors"
	model "task-track-system.com/task-track-system/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Task{},
		&model.TaskDependency{},
		&model.TaskMember{},
		&model.ProjectMember{},
		&model.Comment{},
		&model.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

func createTask(t *testing.T, repo *TaskRepository, projectID, name string, status constants.TaskStatus) *model.Task {
	t.Helper()

	task, err := repo.Create(context.Background(), &model.Task{
		ProjectID: projectID,
		Name:      name,
		Status:    status,
	})
	if err != nil {
		t.Fatalf("failed to create task %s: %v", name, err)
	}
	return task
}

func TestDependencyRepository_AddAndQueryEdges(t *testing.T) {
	db := setupTestDB(t)
	tasks := NewTaskRepository(db)
	deps := NewDependencyRepository(db)
	ctx := context.Background()

	a := createTask(t, tasks, "p1", "A", constants.StatusTodo)
	b := createTask(t, tasks, "p1", "B", constants.StatusTodo)
	c := createTask(t, tasks, "p1", "C", constants.StatusTodo)

	if err := deps.AddEdge(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("failed to add edge: %v", err)
	}
	if err := deps.AddEdge(ctx, a.ID, c.ID); err != nil {
		t.Fatalf("failed to add edge: %v", err)
	}

	dependencies, err := deps.DirectDependencies(ctx, a.ID)
	if err != nil {
		t.Fatalf("failed to list dependencies: %v", err)
	}
	if len(dependencies) != 2 {
		t.Errorf("expected 2 dependencies, got %d", len(dependencies))
	}

	dependents, err := deps.DirectDependents(ctx, b.ID)
	if err != nil {
		t.Fatalf("failed to list dependents: %v", err)
	}
	if len(dependents) != 1 || dependents[0] != a.ID {
		t.Errorf("expected [%s] as dependents of B, got %v", a.ID, dependents)
	}
}

func TestDependencyRepository_DuplicateEdgeRejected(t *testing.T) {
	db := setupTestDB(t)
	tasks := NewTaskRepository(db)
	deps := NewDependencyRepository(db)
	ctx := context.Background()

	a := createTask(t, tasks, "p1", "A", constants.StatusTodo)
	b := createTask(t, tasks, "p1", "B", constants.StatusTodo)

	if err := deps.AddEdge(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("failed to add edge: %v", err)
	}

	err := deps.AddEdge(ctx, a.ID, b.ID)
	if !errors.Is(err, apperrors.ErrDuplicateDependency) {
		t.Errorf("expected ErrDuplicateDependency, got %v", err)
	}

	dependencies, _ := deps.DirectDependencies(ctx, a.ID)
	if len(dependencies) != 1 {
		t.Errorf("expected 1 edge after duplicate insert, got %d", len(dependencies))
	}
}

func TestDependencyRepository_RemoveEdgeIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	tasks := NewTaskRepository(db)
	deps := NewDependencyRepository(db)
	ctx := context.Background()

	a := createTask(t, tasks, "p1", "A", constants.StatusTodo)
	b := createTask(t, tasks, "p1", "B", constants.StatusTodo)

	if err := deps.RemoveEdge(ctx, a.ID, b.ID); err != nil {
		t.Errorf("removing an absent edge should not fail: %v", err)
	}

	_ = deps.AddEdge(ctx, a.ID, b.ID)
	if err := deps.RemoveEdge(ctx, a.ID, b.ID); err != nil {
		t.Errorf("failed to remove edge: %v", err)
	}
	if err := deps.RemoveEdge(ctx, a.ID, b.ID); err != nil {
		t.Errorf("second removal should not fail: %v", err)
	}
}

func TestDependencyRepository_RemoveAllEdgesForTask(t *testing.T) {
	db := setupTestDB(t)
	tasks := NewTaskRepository(db)
	deps := NewDependencyRepository(db)
	ctx := context.Background()

	a := createTask(t, tasks, "p1", "A", constants.StatusTodo)
	b := createTask(t, tasks, "p1", "B", constants.StatusTodo)
	c := createTask(t, tasks, "p1", "C", constants.StatusTodo)

	// B sits in the middle: A requires B, B requires C.
	_ = deps.AddEdge(ctx, a.ID, b.ID)
	_ = deps.AddEdge(ctx, b.ID, c.ID)

	if err := deps.RemoveAllEdgesForTask(ctx, b.ID); err != nil {
		t.Fatalf("failed to remove edges: %v", err)
	}

	dependencies, _ := deps.DirectDependencies(ctx, b.ID)
	dependents, _ := deps.DirectDependents(ctx, b.ID)
	if len(dependencies) != 0 || len(dependents) != 0 {
		t.Errorf("expected no edges for B, got %d dependencies and %d dependents",
			len(dependencies), len(dependents))
	}
}

func TestDependencyRepository_DependencyStatesOrderedByName(t *testing.T) {
	db := setupTestDB(t)
	tasks := NewTaskRepository(db)
	deps := NewDependencyRepository(db)
	ctx := context.Background()

	x := createTask(t, tasks, "p1", "X", constants.StatusTodo)
	zeta := createTask(t, tasks, "p1", "Zeta", constants.StatusInProgress)
	alpha := createTask(t, tasks, "p1", "Alpha", constants.StatusDone)

	_ = deps.AddEdge(ctx, x.ID, zeta.ID)
	_ = deps.AddEdge(ctx, x.ID, alpha.ID)

	states, err := deps.DependencyStates(ctx, x.ID)
	if err != nil {
		t.Fatalf("failed to fetch dependency states: %v", err)
	}

	if len(states) != 2 {
		t.Fatalf("expected 2 states, got %d", len(states))
	}
	if states[0].Name != "Alpha" || states[1].Name != "Zeta" {
		t.Errorf("expected name-ascending order [Alpha Zeta], got [%s %s]", states[0].Name, states[1].Name)
	}
	if states[1].Status != constants.StatusInProgress {
		t.Errorf("expected Zeta to be IN_PROGRESS, got %s", states[1].Status)
	}
}

func TestNotificationRepository_CreateForcesUnread(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	n := &model.Notification{
		UserID:  "u1",
		Type:    constants.NotifTaskAssigned,
		Title:   "t",
		Message: "m",
		IsRead:  true,
	}
	if err := repo.Create(ctx, n); err != nil {
		t.Fatalf("failed to create notification: %v", err)
	}

	if n.ID == "" {
		t.Error("expected notification ID to be assigned")
	}
	if n.IsRead {
		t.Error("expected IsRead to be forced to false on create")
	}
	if n.Priority != constants.NotifPriorityNormal {
		t.Errorf("expected default priority NORMAL, got %s", n.Priority)
	}
}

func TestNotificationRepository_UnreadCountLaw(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		n := &model.Notification{UserID: "u1", Type: constants.NotifTaskUpdated, Title: "t", Message: "m"}
		if err := repo.Create(ctx, n); err != nil {
			t.Fatalf("failed to create notification: %v", err)
		}
	}

	count, err := repo.UnreadCount(ctx, "u1")
	if err != nil {
		t.Fatalf("failed to count unread: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 unread, got %d", count)
	}

	unread, _ := repo.ListUnread(ctx, "u1")
	existed, err := repo.MarkRead(ctx, unread[0].ID)
	if err != nil || !existed {
		t.Fatalf("failed to mark read: existed=%v err=%v", existed, err)
	}

	count, _ = repo.UnreadCount(ctx, "u1")
	if count != 2 {
		t.Errorf("expected 2 unread after MarkRead, got %d", count)
	}

	// Marking the same notification again succeeds and changes nothing.
	existed, err = repo.MarkRead(ctx, unread[0].ID)
	if err != nil || !existed {
		t.Fatalf("second MarkRead should succeed: existed=%v err=%v", existed, err)
	}
	count, _ = repo.UnreadCount(ctx, "u1")
	if count != 2 {
		t.Errorf("expected 2 unread after repeated MarkRead, got %d", count)
	}

	affected, err := repo.MarkAllRead(ctx, "u1")
	if err != nil {
		t.Fatalf("failed to mark all read: %v", err)
	}
	if affected != 2 {
		t.Errorf("expected 2 affected rows, got %d", affected)
	}

	count, _ = repo.UnreadCount(ctx, "u1")
	if count != 0 {
		t.Errorf("expected 0 unread after MarkAllRead, got %d", count)
	}

	// A second MarkAllRead affects zero rows and still succeeds.
	affected, err = repo.MarkAllRead(ctx, "u1")
	if err != nil || affected != 0 {
		t.Errorf("expected no-op MarkAllRead, got affected=%d err=%v", affected, err)
	}
}

func TestNotificationRepository_MarkReadMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)

	existed, err := repo.MarkRead(context.Background(), "no-such-id")
	if err != nil {
		t.Fatalf("MarkRead on missing id should not error: %v", err)
	}
	if existed {
		t.Error("expected existed=false for missing notification")
	}
}

func TestNotificationRepository_ListOrderingAndRecent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	titles := []string{"first", "second", "third"}
	for i, title := range titles {
		n := &model.Notification{UserID: "u1", Type: constants.NotifTaskUpdated, Title: title, Message: "m"}
		if err := repo.Create(ctx, n); err != nil {
			t.Fatalf("failed to create notification: %v", err)
		}
		// Force clearly distinct timestamps so the ordering assertion is
		// deterministic.
		db.Model(n).Update("created_at", n.CreatedAt.Add(time.Duration(i)*time.Minute))
	}

	all, err := repo.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.After(all[i-1].CreatedAt) {
			t.Error("expected created_at descending order")
		}
	}

	recent, err := repo.ListRecent(ctx, "u1", 2)
	if err != nil {
		t.Fatalf("failed to list recent: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("expected 2 recent notifications, got %d", len(recent))
	}

	if _, err := repo.ListRecent(ctx, "u1", 0); !errors.Is(err, apperrors.ErrInvalidLimit) {
		t.Errorf("expected ErrInvalidLimit for limit 0, got %v", err)
	}
}

func TestNotificationRepository_ClearReferences(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	taskID := "task-5"
	projectID := "proj-9"
	n := &model.Notification{
		UserID:    "u1",
		Type:      constants.NotifTaskStatusChanged,
		Title:     "t",
		Message:   "m",
		TaskID:    &taskID,
		ProjectID: &projectID,
	}
	if err := repo.Create(ctx, n); err != nil {
		t.Fatalf("failed to create notification: %v", err)
	}
	if _, err := repo.MarkRead(ctx, n.ID); err != nil {
		t.Fatalf("failed to mark read: %v", err)
	}

	if err := repo.ClearTaskReference(ctx, taskID); err != nil {
		t.Fatalf("failed to clear task reference: %v", err)
	}

	all, _ := repo.ListByUser(ctx, "u1")
	if len(all) != 1 {
		t.Fatalf("notification should survive reference clearing, got %d rows", len(all))
	}
	if all[0].TaskID != nil {
		t.Error("expected task reference to be nulled out")
	}
	if all[0].ProjectID == nil {
		t.Error("project reference should be untouched")
	}
	if !all[0].IsRead {
		t.Error("IsRead must be unchanged by reference clearing")
	}
}

func TestTaskRepository_OptimisticLock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	task := createTask(t, repo, "p1", "A", constants.StatusTodo)

	stale := *task
	task.Name = "A2"
	if err := repo.Update(ctx, task); err != nil {
		t.Fatalf("first update should succeed: %v", err)
	}

	stale.Name = "A3"
	if err := repo.Update(ctx, &stale); !errors.Is(err, apperrors.ErrOptimisticLock) {
		t.Errorf("expected ErrOptimisticLock for stale version, got %v", err)
	}
}

func TestTaskRepository_ListOverdue(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	past := time.Now().UTC().Add(-time.Hour)
	future := time.Now().UTC().Add(time.Hour)

	overdue, err := repo.Create(ctx, &model.Task{ProjectID: "p1", Name: "late", DueDate: &past})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if _, err := repo.Create(ctx, &model.Task{ProjectID: "p1", Name: "on time", DueDate: &future}); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if _, err := repo.Create(ctx, &model.Task{ProjectID: "p1", Name: "done late", DueDate: &past, Status: constants.StatusDone}); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	tasks, err := repo.ListOverdue(ctx, time.Now().UTC())
	if err != nil {
		t.Fatalf("failed to list overdue: %v", err)
	}

	if len(tasks) != 1 || tasks[0].ID != overdue.ID {
		t.Errorf("expected only %q overdue, got %d tasks", overdue.Name, len(tasks))
	}
}
