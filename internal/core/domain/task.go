package domain

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "not_started"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusOnHold     TaskStatus = "on_hold"
)

// TaskStatuses is the closed set of statuses, in dashboard order.
var TaskStatuses = []TaskStatus{
	TaskStatusNotStarted,
	TaskStatusInProgress,
	TaskStatusCompleted,
	TaskStatusOnHold,
}

func (s TaskStatus) Valid() bool {
	for _, status := range TaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}

const (
	MaxTitleLength = 200
	MinProgress    = 0
	MaxProgress    = 100
)

type Task struct {
	ID              uint64
	ParentTaskID    *uint64
	ParentTaskTitle *string
	Title           string
	Description     string
	StartDate       time.Time
	EndDate         time.Time
	Status          TaskStatus
	Progress        int
	Color           string
	CreatedByID     uint64
	CreatedByName   string
	Assignees       []User
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Subtasks        []Task
	Comments        []Comment
}

func (t Task) IsRoot() bool {
	return t.ParentTaskID == nil
}

func (t Task) HasSubtasks() bool {
	return len(t.Subtasks) > 0
}

func (t Task) TotalDuration() int {
	return BusinessDays(t.StartDate, t.EndDate)
}

// EffectiveEndDate re-derives the end of a root task from the children loaded
// with it, ignoring the stored EndDate. Any other task reports EndDate.
func (t Task) EffectiveEndDate() time.Time {
	if !t.IsRoot() || !t.HasSubtasks() {
		return t.EndDate
	}
	_, end, _ := Envelope(t.Subtasks)
	return end
}

func (t Task) AssigneeIDs() []uint64 {
	ids := make([]uint64, 0, len(t.Assignees))
	for _, user := range t.Assignees {
		ids = append(ids, user.ID)
	}
	return ids
}

// Envelope returns the earliest start and the latest end over tasks. Disjoint
// spans still produce the full envelope. ok is false for an empty set.
func Envelope(tasks []Task) (start, end time.Time, ok bool) {
	for i, task := range tasks {
		if i == 0 || task.StartDate.Before(start) {
			start = task.StartDate
		}
		if i == 0 || task.EndDate.After(end) {
			end = task.EndDate
		}
	}
	return start, end, len(tasks) > 0
}

type CreateTaskInput struct {
	Title        string
	Description  string
	StartDate    time.Time
	EndDate      time.Time
	ParentTaskID *uint64
	Status       TaskStatus
	Progress     int
	AssignedTo   []uint64
}

// UpdateTaskInput is a patch: nil fields are left as they are. ParentTaskIDSet
// distinguishes "detach from parent" (set, nil) from "not provided".
type UpdateTaskInput struct {
	Title           *string
	Description     *string
	StartDate       *time.Time
	EndDate         *time.Time
	ParentTaskID    *uint64
	ParentTaskIDSet bool
	Status          *TaskStatus
	Progress        *int
	AssignedTo      []uint64
	AssignedToSet   bool
}

// Apply returns a copy of task with the patch applied. Creator, colour and
// timestamps are not patchable.
func (in UpdateTaskInput) Apply(task Task) Task {
	if in.Title != nil {
		task.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.StartDate != nil {
		task.StartDate = DateOf(*in.StartDate)
	}
	if in.EndDate != nil {
		task.EndDate = DateOf(*in.EndDate)
	}
	if in.ParentTaskIDSet {
		task.ParentTaskID = in.ParentTaskID
		task.ParentTaskTitle = nil
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.Progress != nil {
		task.Progress = *in.Progress
	}
	if in.AssignedToSet {
		task.Assignees = make([]User, 0, len(in.AssignedTo))
		for _, id := range in.AssignedTo {
			task.Assignees = append(task.Assignees, User{ID: id})
		}
	}
	return task
}

// ValidateTask checks the per-field rules shared by create and update. The
// project window is checked separately, only for dates the caller supplied.
func ValidateTask(task Task) error {
	title := strings.TrimSpace(task.Title)
	if title == "" {
		return NewValidationError("title", "must not be empty")
	}
	if len([]rune(title)) > MaxTitleLength {
		return NewValidationError("title", "is too long")
	}
	if task.StartDate.IsZero() {
		return NewValidationError("start_date", "is required")
	}
	if task.EndDate.IsZero() {
		return NewValidationError("end_date", "is required")
	}
	if task.StartDate.After(task.EndDate) {
		return NewValidationError("start_date", "must not be after end_date")
	}
	if !task.Status.Valid() {
		return NewValidationError("status", "is not a known status")
	}
	if task.Progress < MinProgress || task.Progress > MaxProgress {
		return NewValidationError("progress", "must be between 0 and 100")
	}
	if task.ParentTaskID != nil && *task.ParentTaskID == 0 {
		return NewValidationError("parent_task_id", "must be a positive id")
	}
	return nil
}

// ValidateWindow rejects supplied dates that fall outside the project window.
// Nil dates were not supplied and are skipped.
func ValidateWindow(window ProjectWindow, start, end *time.Time) error {
	if start != nil && !window.Contains(*start) {
		return NewValidationError("start_date", "must be inside the project window")
	}
	if end != nil && !window.Contains(*end) {
		return NewValidationError("end_date", "must be inside the project window")
	}
	return nil
}
