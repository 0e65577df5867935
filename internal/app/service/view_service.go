package service

import (
	"context"
	"fmt"

	"github.com/iPad7/gantt-4team/internal/core/domain"
	"github.com/iPad7/gantt-4team/internal/core/ports"
)

const recentTasksLimit = 5

// ViewService projects read-only aggregates over the current store state.
// Each projection reads one consistent snapshot.
type ViewService struct {
	taskRepository ports.TaskRepository
	window         domain.ProjectWindow
}

func NewViewService(taskRepository ports.TaskRepository, window domain.ProjectWindow) *ViewService {
	return &ViewService{
		taskRepository: taskRepository,
		window:         window,
	}
}

var _ ports.ViewService = (*ViewService)(nil)

func (s *ViewService) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	var stats domain.DashboardStats
	err := s.taskRepository.RunInReadTx(ctx, func(store ports.TaskStore) error {
		var err error
		stats, err = dashboardStats(ctx, store)
		return err
	})
	if err != nil {
		return domain.DashboardStats{}, err
	}
	return stats, nil
}

func dashboardStats(ctx context.Context, store ports.TaskStore) (domain.DashboardStats, error) {
	byStatus, err := store.CountTasksByStatus(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}

	stats := domain.DashboardStats{StatusCounts: make(map[domain.TaskStatus]int, len(domain.TaskStatuses))}
	for _, status := range domain.TaskStatuses {
		stats.StatusCounts[status] = byStatus[status]
	}
	for _, count := range byStatus {
		stats.TotalTasks += count
	}
	stats.ProjectProgress = domain.ProjectProgress(stats.StatusCounts[domain.TaskStatusCompleted], stats.TotalTasks)

	users, err := store.ListUsers(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	assigned, err := store.CountAssignedTasks(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	stats.UserTaskCounts = make([]domain.UserTaskCount, 0, len(users))
	for _, user := range users {
		stats.UserTaskCounts = append(stats.UserTaskCounts, domain.UserTaskCount{
			UserID:    user.ID,
			Username:  user.Username,
			Name:      user.Name,
			TaskCount: assigned[user.ID],
		})
	}

	recent, err := store.ListRecentTasks(ctx, recentTasksLimit)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	forest, err := buildForest(ctx, store)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	stats.RecentTasks = make([]domain.Task, 0, len(recent))
	for _, task := range recent {
		full, ok := forest.Task(task.ID)
		if !ok {
			return domain.DashboardStats{}, fmt.Errorf("recent task %d is missing from the snapshot", task.ID)
		}
		stats.RecentTasks = append(stats.RecentTasks, full)
	}

	return stats, nil
}

func (s *ViewService) Timeline(ctx context.Context) (domain.Timeline, error) {
	forest, err := loadForest(ctx, s.taskRepository)
	if err != nil {
		return domain.Timeline{}, err
	}

	roots := forest.Roots()
	entries := make([]domain.TimelineEntry, 0, len(roots))
	for _, root := range roots {
		entries = append(entries, domain.NewTimelineEntry(root))
	}

	return domain.Timeline{
		Window:   s.window,
		WorkDays: s.window.WorkDays(),
		Entries:  entries,
	}, nil
}

func (s *ViewService) GanttChart(ctx context.Context) (domain.GanttChart, error) {
	forest, err := loadForest(ctx, s.taskRepository)
	if err != nil {
		return domain.GanttChart{}, err
	}

	return domain.GanttChart{
		Window:   s.window,
		WorkDays: s.window.WorkDays(),
		Tasks:    forest.Roots(),
	}, nil
}
