package services

import (
	"context"
	"log"
	"sync"
	"time"

	"task-track-system.com/task-track-system/internal/events"
	repository "task-track-system.com/task-track-system/internal/repositories"
)

// OverdueService periodically scans for tasks past their due date and fires
// the overdue event with the task's member list as explicit recipients. A
// task is only announced once per process lifetime; clearing or moving the
// due date lets it fire again.
type OverdueService struct {
	tasks    *repository.TaskRepository
	members  *repository.MembershipRepository
	fanout   *FanoutService
	interval time.Duration
	notified sync.Map
	stop     chan struct{}
	wg       sync.WaitGroup
}

func NewOverdueService(
	tasks *repository.TaskRepository,
	members *repository.MembershipRepository,
	fanout *FanoutService,
	interval time.Duration,
) *OverdueService {
	return &OverdueService{
		tasks:    tasks,
		members:  members,
		fanout:   fanout,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (s *OverdueService) Start() {
	s.wg.Add(1)
	go s.scanLoop()
}

func (s *OverdueService) scanLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.ScanOnce(context.Background())
		case <-s.stop:
			return
		}
	}
}

// ScanOnce runs a single overdue sweep. Exported so it can be driven
// directly in tests and by one-shot jobs.
func (s *OverdueService) ScanOnce(ctx context.Context) int {
	tasks, err := s.tasks.ListOverdue(ctx, time.Now().UTC())
	if err != nil {
		log.Printf("overdue scan: failed to list tasks: %v", err)
		return 0
	}

	dispatched := 0
	for _, task := range tasks {
		if !s.trackNotified(task.ID) {
			continue
		}

		assignees, err := s.members.TaskMemberIDs(ctx, task.ID)
		if err != nil {
			log.Printf("overdue scan: failed to resolve members of task %s: %v", task.ID, err)
			s.untrackNotified(task.ID)
			continue
		}
		if len(assignees) == 0 {
			// Nobody to tell yet. Forget the task so a later sweep fires
			// once it gains members.
			s.untrackNotified(task.ID)
			continue
		}

		s.fanout.Dispatch(ctx, events.TaskOverdue(task.ID, task.Name, assignees))
		dispatched++
	}

	return dispatched
}

func (s *OverdueService) trackNotified(taskID string) bool {
	_, loaded := s.notified.LoadOrStore(taskID, struct{}{})
	return !loaded
}

func (s *OverdueService) untrackNotified(taskID string) {
	s.notified.Delete(taskID)
}

// ResetNotified forgets that a task was already announced, letting the next
// sweep fire for it again. Called when a due date changes.
func (s *OverdueService) ResetNotified(taskID string) {
	s.untrackNotified(taskID)
}

func (s *OverdueService) Shutdown() {
	close(s.stop)
	s.wg.Wait()
}
