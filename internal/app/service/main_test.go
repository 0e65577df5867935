package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	dbadapter "github.com/iPad7/gantt-4team/internal/adapter/db"
	"github.com/iPad7/gantt-4team/internal/app/service"
	"github.com/iPad7/gantt-4team/internal/core/domain"
	"github.com/iPad7/gantt-4team/internal/core/ports"
)

const rootColor = "#4ECDC4"

// fixture wires the services over a fresh SQLite file. The window covers the
// whole third quarter of 2025.
type fixture struct {
	db       *sqlx.DB
	taskRepo *dbadapter.TaskRepository
	userRepo *dbadapter.UserRepository
	tasks    *service.TaskService
	views    *service.ViewService
	users    *service.UserService
	window   domain.ProjectWindow
	actor    domain.User
}

func newFixture(t *testing.T, hooks ...ports.ParentWriteHook) *fixture {
	t.Helper()

	db, err := dbadapter.ConnectSQLite(filepath.Join(t.TempDir(), "wbs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, dbadapter.Migrate(context.Background(), db))

	window, err := domain.NewProjectWindow(day(t, "2025-07-01"), day(t, "2025-09-30"))
	require.NoError(t, err)

	if len(hooks) == 0 {
		hooks = []ports.ParentWriteHook{service.NewHierarchyEngine()}
	}

	f := &fixture{
		db:       db,
		taskRepo: dbadapter.NewTaskRepository(db),
		userRepo: dbadapter.NewUserRepository(db),
		window:   window,
	}
	f.tasks = service.NewTaskService(f.taskRepo, window, domain.FixedColorPicker(rootColor), hooks...)
	f.views = service.NewViewService(f.taskRepo, window)
	f.users = service.NewUserService(f.userRepo)
	f.actor = f.createUser(t, "alice", "Alice")
	return f
}

// createUser inserts directly through the repository with a cheap hash.
func (f *fixture) createUser(t *testing.T, username, name string) domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	id, err := f.userRepo.CreateUser(context.Background(), domain.User{
		Username:     username,
		Name:         name,
		PasswordHash: string(hash),
	})
	require.NoError(t, err)

	user, err := f.userRepo.GetUser(context.Background(), id)
	require.NoError(t, err)
	return user
}

func (f *fixture) create(t *testing.T, title, start, end string, parent *uint64) domain.Task {
	t.Helper()

	task, err := f.tasks.CreateTask(context.Background(), f.actor.ID, domain.CreateTaskInput{
		Title:        title,
		StartDate:    day(t, start),
		EndDate:      day(t, end),
		ParentTaskID: parent,
	})
	require.NoError(t, err)
	return task
}

func (f *fixture) get(t *testing.T, id uint64) domain.Task {
	t.Helper()

	task, err := f.tasks.GetTask(context.Background(), id)
	require.NoError(t, err)
	return task
}

func requireSpan(t *testing.T, task domain.Task, start, end string) {
	t.Helper()
	require.Equal(t, start, domain.FormatDate(task.StartDate), "start_date of %q", task.Title)
	require.Equal(t, end, domain.FormatDate(task.EndDate), "end_date of %q", task.Title)
}

func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, field, verr.Field)
}

func day(t *testing.T, value string) time.Time {
	t.Helper()

	d, err := domain.ParseDate(value)
	require.NoError(t, err)
	return d
}

func idOf(task domain.Task) *uint64 {
	id := task.ID
	return &id
}
