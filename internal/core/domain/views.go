package domain

import (
	"math"
	"time"
)

type UserTaskCount struct {
	UserID    uint64
	Username  string
	Name      string
	TaskCount int
}

type DashboardStats struct {
	TotalTasks      int
	StatusCounts    map[TaskStatus]int
	ProjectProgress float64
	UserTaskCounts  []UserTaskCount
	RecentTasks     []Task
}

// ProjectProgress is the completed share of all tasks as a percentage with
// one decimal. No tasks means no progress.
func ProjectProgress(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*1000) / 10
}

type TimelineSubtask struct {
	ID        uint64
	Title     string
	StartDate time.Time
	EndDate   time.Time
	Status    TaskStatus
	Progress  int
}

type TimelineEntry struct {
	ID        uint64
	Title     string
	Color     string
	StartDate time.Time
	EndDate   time.Time
	Subtasks  []TimelineSubtask
}

type Timeline struct {
	Window   ProjectWindow
	WorkDays []time.Time
	Entries  []TimelineEntry
}

type GanttChart struct {
	Window   ProjectWindow
	WorkDays []time.Time
	Tasks    []Task
}

// NewTimelineEntry flattens a root task to one level of children, with the
// end date re-derived from them.
func NewTimelineEntry(task Task) TimelineEntry {
	entry := TimelineEntry{
		ID:        task.ID,
		Title:     task.Title,
		Color:     task.Color,
		StartDate: task.StartDate,
		EndDate:   task.EffectiveEndDate(),
		Subtasks:  make([]TimelineSubtask, 0, len(task.Subtasks)),
	}
	for _, sub := range task.Subtasks {
		entry.Subtasks = append(entry.Subtasks, TimelineSubtask{
			ID:        sub.ID,
			Title:     sub.Title,
			StartDate: sub.StartDate,
			EndDate:   sub.EndDate,
			Status:    sub.Status,
			Progress:  sub.Progress,
		})
	}
	return entry
}
