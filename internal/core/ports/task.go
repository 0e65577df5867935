package ports

import (
	"context"
	"time"

	"github.com/iPad7/gantt-4team/internal/core/domain"
)

// TaskStore is the set of task operations available both on the connection
// pool and inside a transaction.
type TaskStore interface {
	GetTask(ctx context.Context, id uint64) (domain.Task, error)
	// LockTask reads a task and holds a write lock on its row until the
	// enclosing transaction ends, where the dialect supports it.
	LockTask(ctx context.Context, id uint64) (domain.Task, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	ListChildren(ctx context.Context, parentID uint64) ([]domain.Task, error)
	ListChildIDs(ctx context.Context, parentID uint64) ([]uint64, error)
	ListRecentTasks(ctx context.Context, limit int) ([]domain.Task, error)
	CountTasksByStatus(ctx context.Context) (map[domain.TaskStatus]int, error)
	InsertTask(ctx context.Context, task domain.Task) (uint64, error)
	UpdateTask(ctx context.Context, task domain.Task) error
	UpdateTaskSpan(ctx context.Context, id uint64, start, end time.Time) error
	DeleteTasks(ctx context.Context, ids []uint64) error

	ListAssignments(ctx context.Context) ([]domain.Assignment, error)
	SetAssignees(ctx context.Context, taskID uint64, userIDs []uint64) error

	ListComments(ctx context.Context, taskID *uint64) ([]domain.Comment, error)
	InsertComment(ctx context.Context, comment domain.Comment) (uint64, error)
	GetComment(ctx context.Context, id uint64) (domain.Comment, error)

	GetUser(ctx context.Context, id uint64) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	CountUsers(ctx context.Context, ids []uint64) (int, error)
	// CountAssignedTasks returns the number of assigned tasks per user id.
	CountAssignedTasks(ctx context.Context) (map[uint64]int, error)
}

type TaskRepository interface {
	TaskStore
	// RunInTx runs fn against a transaction-scoped store. The transaction
	// commits when fn returns nil and rolls back otherwise.
	RunInTx(ctx context.Context, fn func(store TaskStore) error) error
	// RunInReadTx runs fn against one consistent snapshot of the store.
	RunInReadTx(ctx context.Context, fn func(store TaskStore) error) error
}

// ParentWriteHook is called inside the write transaction after a task with
// a parent was created, updated, moved or deleted.
type ParentWriteHook interface {
	AfterChildWrite(ctx context.Context, store TaskStore, parentID uint64) error
}

type TaskService interface {
	CreateTask(ctx context.Context, actorID uint64, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, id uint64, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, id uint64) error
	GetTask(ctx context.Context, id uint64) (domain.Task, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	ListRootTasks(ctx context.Context) ([]domain.Task, error)
	ListSubtasks(ctx context.Context, parentID uint64) ([]domain.Task, error)
	AddComment(ctx context.Context, taskID, authorID uint64, content string) (domain.Comment, error)
	ListComments(ctx context.Context, taskID *uint64) ([]domain.Comment, error)
}

type ViewService interface {
	DashboardStats(ctx context.Context) (domain.DashboardStats, error)
	Timeline(ctx context.Context) (domain.Timeline, error)
	GanttChart(ctx context.Context) (domain.GanttChart, error)
}
