package db_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbadapter "github.com/iPad7/gantt-4team/internal/adapter/db"
	"github.com/iPad7/gantt-4team/internal/core/domain"
	"github.com/iPad7/gantt-4team/internal/core/ports"
)

func openSQLite(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := dbadapter.ConnectSQLite(filepath.Join(t.TempDir(), "repo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, dbadapter.Migrate(context.Background(), db))
	return db
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(value)
	require.NoError(t, err)
	return d
}

func insertUser(t *testing.T, users *dbadapter.UserRepository, username string) uint64 {
	t.Helper()
	id, err := users.CreateUser(context.Background(), domain.User{Username: username, Name: username, PasswordHash: "x"})
	require.NoError(t, err)
	return id
}

func insertTask(t *testing.T, store ports.TaskStore, title, start, end string, parent *uint64, creator uint64) uint64 {
	t.Helper()

	id, err := store.InsertTask(context.Background(), domain.Task{
		ParentTaskID: parent,
		Title:        title,
		StartDate:    mustDate(t, start),
		EndDate:      mustDate(t, end),
		Status:       domain.TaskStatusNotStarted,
		CreatedByID:  creator,
	})
	require.NoError(t, err)
	return id
}

func TestMigrate_IsIdempotent(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, dbadapter.Migrate(context.Background(), db))
	assert.Equal(t, "sqlite3", db.DriverName())
}

func TestTaskRepository_RoundTripsDates(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	users := dbadapter.NewUserRepository(db)
	tasks := dbadapter.NewTaskRepository(db)
	alice := insertUser(t, users, "alice")

	parentID := insertTask(t, tasks, "Parent", "2025-07-01", "2025-07-31", nil, alice)
	childID := insertTask(t, tasks, "Child", "2025-07-05", "2025-07-06", &parentID, alice)

	child, err := tasks.GetTask(ctx, childID)
	require.NoError(t, err)
	assert.Equal(t, "2025-07-05", domain.FormatDate(child.StartDate))
	assert.Equal(t, "2025-07-06", domain.FormatDate(child.EndDate))
	assert.Equal(t, "alice", child.CreatedByName)
	require.NotNil(t, child.ParentTaskTitle)
	assert.Equal(t, "Parent", *child.ParentTaskTitle)

	locked, err := tasks.LockTask(ctx, parentID)
	require.NoError(t, err)
	assert.Equal(t, "Parent", locked.Title)
	assert.Nil(t, locked.ParentTaskID)

	_, err = tasks.LockTask(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	_, err = tasks.GetTask(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	require.NoError(t, tasks.UpdateTaskSpan(ctx, parentID, mustDate(t, "2025-07-02"), mustDate(t, "2025-07-02")))
	parent, err := tasks.GetTask(ctx, parentID)
	require.NoError(t, err)
	assert.Equal(t, "2025-07-02", domain.FormatDate(parent.EndDate))

	children, err := tasks.ListChildren(ctx, parentID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, childID, children[0].ID)

	ids, err := tasks.ListChildIDs(ctx, parentID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{childID}, ids)

	assert.ErrorIs(t, tasks.UpdateTask(ctx, domain.Task{ID: 999, Title: "x", Status: domain.TaskStatusNotStarted}), domain.ErrTaskNotFound)
}

func TestTaskRepository_DeleteTasksAndCounts(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	users := dbadapter.NewUserRepository(db)
	tasks := dbadapter.NewTaskRepository(db)
	alice := insertUser(t, users, "alice")
	bob := insertUser(t, users, "bob")

	first := insertTask(t, tasks, "First", "2025-07-01", "2025-07-02", nil, alice)
	second := insertTask(t, tasks, "Second", "2025-07-03", "2025-07-04", nil, alice)
	require.NoError(t, tasks.SetAssignees(ctx, first, []uint64{alice, bob}))
	require.NoError(t, tasks.SetAssignees(ctx, second, []uint64{bob}))
	_, err := tasks.InsertComment(ctx, domain.Comment{TaskID: first, AuthorID: bob, Content: "hi"})
	require.NoError(t, err)

	counts, err := users.CountAssignedTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[uint64]int{alice: 1, bob: 2}, counts)

	byStatus, err := tasks.CountTasksByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, byStatus[domain.TaskStatusNotStarted])

	count, err := tasks.CountUsers(ctx, []uint64{alice, bob, 999})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, tasks.DeleteTasks(ctx, []uint64{first}))

	assignments, err := tasks.ListAssignments(ctx)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, second, assignments[0].TaskID)
	assert.Equal(t, "bob", assignments[0].User.Username)

	comments, err := tasks.ListComments(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, comments)

	recent, err := tasks.ListRecentTasks(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, second, recent[0].ID)
}

func TestTaskRepository_RunInTxRollsBack(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	tasks := dbadapter.NewTaskRepository(db)
	alice := insertUser(t, dbadapter.NewUserRepository(db), "alice")

	boom := errors.New("boom")
	err := tasks.RunInTx(ctx, func(store ports.TaskStore) error {
		insertTask(t, store, "Lost", "2025-07-01", "2025-07-02", nil, alice)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	all, err := tasks.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, tasks.RunInTx(ctx, func(store ports.TaskStore) error {
		insertTask(t, store, "Kept", "2025-07-01", "2025-07-02", nil, alice)
		return nil
	}))
	all, err = tasks.ListTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUserRepository_UniqueUsername(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	users := dbadapter.NewUserRepository(db)
	insertUser(t, users, "alice")

	_, err := users.CreateUser(ctx, domain.User{Username: "alice", Name: "Again", PasswordHash: "x"})
	var ierr *domain.IntegrityError
	require.ErrorAs(t, err, &ierr)
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	_, err = users.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestTaskRepository_DeleteTasksDeepChain(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	tasks := dbadapter.NewTaskRepository(db)
	alice := insertUser(t, dbadapter.NewUserRepository(db), "alice")

	const depth = 20
	ids := make([]uint64, 0, depth)
	var parent *uint64
	for i := 0; i < depth; i++ {
		id := insertTask(t, tasks, fmt.Sprintf("Level %d", i), "2025-07-01", "2025-07-02", parent, alice)
		_, err := tasks.InsertComment(ctx, domain.Comment{TaskID: id, AuthorID: alice, Content: "note"})
		require.NoError(t, err)
		ids = append(ids, id)
		parent = &id
	}
	slices.Reverse(ids)

	require.NoError(t, tasks.RunInTx(ctx, func(store ports.TaskStore) error {
		return store.DeleteTasks(ctx, ids)
	}))

	all, err := tasks.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	comments, err := tasks.ListComments(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestTaskRepository_RunInReadTx(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	tasks := dbadapter.NewTaskRepository(db)
	alice := insertUser(t, dbadapter.NewUserRepository(db), "alice")
	insertTask(t, tasks, "Only", "2025-07-01", "2025-07-02", nil, alice)

	require.NoError(t, tasks.RunInReadTx(ctx, func(store ports.TaskStore) error {
		all, err := store.ListTasks(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)

		users, err := store.ListUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1)
		return nil
	}))

	boom := errors.New("boom")
	assert.ErrorIs(t, tasks.RunInReadTx(ctx, func(ports.TaskStore) error { return boom }), boom)
}
