package mapper

import (
	"time"

	"github.com/iPad7/gantt-4team/internal/adapter/http/dto"
	"github.com/iPad7/gantt-4team/internal/core/domain"
)

func ToUserItems(users []domain.User) []dto.UserItem {
	items := make([]dto.UserItem, 0, len(users))
	for _, user := range users {
		items = append(items, ToUserItem(user))
	}
	return items
}

func ToUserItem(user domain.User) dto.UserItem {
	return dto.UserItem{
		ID:         user.ID,
		Username:   user.Username,
		Name:       user.Name,
		IsAdmin:    user.IsAdmin,
		DateJoined: user.DateJoined.UTC().Format(time.RFC3339),
	}
}

func ToDashboardResponse(stats domain.DashboardStats) dto.DashboardResponse {
	resp := dto.DashboardResponse{
		TotalTasks:      stats.TotalTasks,
		NotStartedTasks: stats.StatusCounts[domain.TaskStatusNotStarted],
		InProgressTasks: stats.StatusCounts[domain.TaskStatusInProgress],
		CompletedTasks:  stats.StatusCounts[domain.TaskStatusCompleted],
		OnHoldTasks:     stats.StatusCounts[domain.TaskStatusOnHold],
		ProjectProgress: stats.ProjectProgress,
		UserTaskCounts:  make([]dto.UserTaskCount, 0, len(stats.UserTaskCounts)),
		RecentTasks:     ToTaskItems(stats.RecentTasks),
	}

	for _, count := range stats.UserTaskCounts {
		resp.UserTaskCounts = append(resp.UserTaskCounts, dto.UserTaskCount{
			UserID:    count.UserID,
			Username:  count.Username,
			Name:      count.Name,
			TaskCount: count.TaskCount,
		})
	}

	return resp
}

func ToTimelineResponse(timeline domain.Timeline) dto.TimelineResponse {
	resp := dto.TimelineResponse{
		ProjectStart: domain.FormatDate(timeline.Window.Start),
		ProjectEnd:   domain.FormatDate(timeline.Window.End),
		WorkDays:     formatDates(timeline.WorkDays),
		TimelineData: make([]dto.TimelineEntry, 0, len(timeline.Entries)),
	}

	for _, entry := range timeline.Entries {
		item := dto.TimelineEntry{
			ID:        entry.ID,
			Title:     entry.Title,
			Color:     entry.Color,
			StartDate: domain.FormatDate(entry.StartDate),
			EndDate:   domain.FormatDate(entry.EndDate),
			Subtasks:  make([]dto.TimelineSubtask, 0, len(entry.Subtasks)),
		}
		for _, sub := range entry.Subtasks {
			item.Subtasks = append(item.Subtasks, dto.TimelineSubtask{
				ID:        sub.ID,
				Title:     sub.Title,
				StartDate: domain.FormatDate(sub.StartDate),
				EndDate:   domain.FormatDate(sub.EndDate),
				Status:    string(sub.Status),
				Progress:  sub.Progress,
			})
		}
		resp.TimelineData = append(resp.TimelineData, item)
	}

	return resp
}

func ToGanttChartResponse(chart domain.GanttChart) dto.GanttChartResponse {
	return dto.GanttChartResponse{
		Tasks:            ToTaskItems(chart.Tasks),
		ProjectStartDate: domain.FormatDate(chart.Window.Start),
		ProjectEndDate:   domain.FormatDate(chart.Window.End),
		WorkDays:         formatDates(chart.WorkDays),
	}
}

func formatDates(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, domain.FormatDate(d))
	}
	return out
}
