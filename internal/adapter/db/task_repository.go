package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/iPad7/gantt-4team/internal/config"
	"github.com/iPad7/gantt-4team/internal/core/domain"
	"github.com/iPad7/gantt-4team/internal/core/ports"
)

const taskColumns = `
  t.id, t.parent_task_id, t.title, t.description, t.start_date, t.end_date,
  t.status, t.progress, t.color, t.created_by, t.created_at, t.updated_at`

const selectTasksQuery = `
SELECT` + taskColumns + `,
  u.name AS created_by_name,
  p.title AS parent_task_title
FROM tasks t
JOIN users u ON u.id = t.created_by
LEFT JOIN tasks p ON p.id = t.parent_task_id
`

const (
	getTaskQuery        = selectTasksQuery + `WHERE t.id = ?`
	listTasksQuery      = selectTasksQuery + `ORDER BY t.start_date, t.title, t.id`
	listChildrenQuery   = selectTasksQuery + `WHERE t.parent_task_id = ? ORDER BY t.start_date, t.title, t.id`
	listRecentQuery     = selectTasksQuery + `ORDER BY t.created_at DESC, t.id DESC LIMIT ?`
	lockTaskQuery       = `SELECT` + taskColumns + ` FROM tasks t WHERE t.id = ?`
	listChildIDsQuery   = `SELECT id FROM tasks WHERE parent_task_id = ? ORDER BY id`
	countByStatusQuery  = `SELECT status, COUNT(*) AS total FROM tasks GROUP BY status`
	updateTaskSpanQuery = `UPDATE tasks SET start_date = ?, end_date = ? WHERE id = ?`
)

const insertTaskQuery = `
INSERT INTO tasks
  (parent_task_id, title, description, start_date, end_date, status, progress, color, created_by, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateTaskQuery = `
UPDATE tasks
SET parent_task_id = ?, title = ?, description = ?, start_date = ?, end_date = ?,
    status = ?, progress = ?, updated_at = ?
WHERE id = ?
`

const listAssignmentsQuery = `
SELECT ta.task_id, u.id AS user_id, u.username, u.name, u.is_admin
FROM task_assignees ta
JOIN users u ON u.id = ta.user_id
ORDER BY ta.task_id, u.id
`

const listCommentsQuery = `
SELECT c.id, c.task_id, c.author_id, u.name AS author_name, c.content, c.created_at
FROM task_comments c
JOIN users u ON u.id = c.author_id
`

type taskRow struct {
	ID              uint64         `db:"id"`
	ParentTaskID    sql.NullInt64  `db:"parent_task_id"`
	Title           string         `db:"title"`
	Description     string         `db:"description"`
	StartDate       time.Time      `db:"start_date"`
	EndDate         time.Time      `db:"end_date"`
	Status          string         `db:"status"`
	Progress        int            `db:"progress"`
	Color           string         `db:"color"`
	CreatedBy       uint64         `db:"created_by"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
	CreatedByName   sql.NullString `db:"created_by_name"`
	ParentTaskTitle sql.NullString `db:"parent_task_title"`
}

type assignmentRow struct {
	TaskID   uint64 `db:"task_id"`
	UserID   uint64 `db:"user_id"`
	Username string `db:"username"`
	Name     string `db:"name"`
	IsAdmin  bool   `db:"is_admin"`
}

type commentRow struct {
	ID         uint64    `db:"id"`
	TaskID     uint64    `db:"task_id"`
	AuthorID   uint64    `db:"author_id"`
	AuthorName string    `db:"author_name"`
	Content    string    `db:"content"`
	CreatedAt  time.Time `db:"created_at"`
}

type statusCountRow struct {
	Status string `db:"status"`
	Total  int    `db:"total"`
}

// TaskRepository serves reads from the pool and runs writes through RunInTx.
type TaskRepository struct {
	taskStore
	db *sqlx.DB
}

var (
	_ ports.TaskRepository = (*TaskRepository)(nil)
	_ ports.TaskStore      = (*taskStore)(nil)
)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{taskStore: taskStore{q: db}, db: db}
}

// RunInTx runs a write unit of work. On MySQL it runs at READ COMMITTED so
// that every statement, in particular the child re-read after the parent
// lock, sees rows committed by writers that held the lock before.
func (r *TaskRepository) RunInTx(ctx context.Context, fn func(store ports.TaskStore) error) error {
	return r.runTx(ctx, writeTxOptions(r.db.DriverName()), fn)
}

// RunInReadTx runs fn on one consistent snapshot. On MySQL that is a read-only
// REPEATABLE READ transaction.
func (r *TaskRepository) RunInReadTx(ctx context.Context, fn func(store ports.TaskStore) error) error {
	return r.runTx(ctx, readTxOptions(r.db.DriverName()), fn)
}

func (r *TaskRepository) runTx(ctx context.Context, opts *sql.TxOptions, fn func(store ports.TaskStore) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				zap.L().Warn("failed to roll back transaction", zap.Error(rbErr))
			}
			return
		}
		err = tx.Commit()
	}()

	return fn(&taskStore{q: tx})
}

// SQLite serializes transactions on its single connection, so it keeps the
// driver defaults.
func writeTxOptions(driver string) *sql.TxOptions {
	if driver != config.DriverMySQL {
		return nil
	}
	return &sql.TxOptions{Isolation: sql.LevelReadCommitted}
}

func readTxOptions(driver string) *sql.TxOptions {
	if driver != config.DriverMySQL {
		return nil
	}
	return &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
}

// taskStore runs against either *sqlx.DB or *sqlx.Tx.
type taskStore struct {
	q sqlx.ExtContext
}

func (s *taskStore) GetTask(ctx context.Context, id uint64) (domain.Task, error) {
	var row taskRow
	if err := sqlx.GetContext(ctx, s.q, &row, getTaskQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	return mapTaskRowToDomainTask(row), nil
}

func (s *taskStore) LockTask(ctx context.Context, id uint64) (domain.Task, error) {
	query := lockTaskQuery
	if s.q.DriverName() == config.DriverMySQL {
		query += " FOR UPDATE"
	}

	var row taskRow
	if err := sqlx.GetContext(ctx, s.q, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	return mapTaskRowToDomainTask(row), nil
}

func (s *taskStore) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return s.selectTasks(ctx, listTasksQuery)
}

func (s *taskStore) ListChildren(ctx context.Context, parentID uint64) ([]domain.Task, error) {
	return s.selectTasks(ctx, listChildrenQuery, parentID)
}

func (s *taskStore) ListRecentTasks(ctx context.Context, limit int) ([]domain.Task, error) {
	return s.selectTasks(ctx, listRecentQuery, limit)
}

func (s *taskStore) selectTasks(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	var rows []taskRow
	if err := sqlx.SelectContext(ctx, s.q, &rows, query, args...); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}

	return tasks, nil
}

func (s *taskStore) ListChildIDs(ctx context.Context, parentID uint64) ([]uint64, error) {
	var ids []uint64
	if err := sqlx.SelectContext(ctx, s.q, &ids, listChildIDsQuery, parentID); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *taskStore) CountTasksByStatus(ctx context.Context) (map[domain.TaskStatus]int, error) {
	var rows []statusCountRow
	if err := sqlx.SelectContext(ctx, s.q, &rows, countByStatusQuery); err != nil {
		return nil, err
	}

	counts := make(map[domain.TaskStatus]int, len(rows))
	for _, row := range rows {
		counts[domain.TaskStatus(row.Status)] = row.Total
	}
	return counts, nil
}

func (s *taskStore) InsertTask(ctx context.Context, task domain.Task) (uint64, error) {
	now := time.Now().UTC()
	result, err := s.q.ExecContext(ctx, insertTaskQuery,
		task.ParentTaskID,
		task.Title,
		task.Description,
		domain.DateOf(task.StartDate),
		domain.DateOf(task.EndDate),
		string(task.Status),
		task.Progress,
		task.Color,
		task.CreatedByID,
		now,
		now,
	)
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (s *taskStore) UpdateTask(ctx context.Context, task domain.Task) error {
	result, err := s.q.ExecContext(ctx, updateTaskQuery,
		task.ParentTaskID,
		task.Title,
		task.Description,
		domain.DateOf(task.StartDate),
		domain.DateOf(task.EndDate),
		string(task.Status),
		task.Progress,
		time.Now().UTC(),
		task.ID,
	)
	if err != nil {
		return err
	}
	return requireAffected(result, domain.ErrTaskNotFound)
}

// UpdateTaskSpan writes the two date columns and nothing else.
func (s *taskStore) UpdateTaskSpan(ctx context.Context, id uint64, start, end time.Time) error {
	_, err := s.q.ExecContext(ctx, updateTaskSpanQuery, domain.DateOf(start), domain.DateOf(end), id)
	return err
}

// DeleteTasks removes the comments, assignments and rows of ids. Task rows
// are deleted one by one in the given order, so callers pass children before
// their parents and the self-referencing cascade never has to recurse.
func (s *taskStore) DeleteTasks(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}

	for _, statement := range []string{
		`DELETE FROM task_comments WHERE task_id IN (?)`,
		`DELETE FROM task_assignees WHERE task_id IN (?)`,
	} {
		query, args, err := sqlx.In(statement, ids)
		if err != nil {
			return err
		}
		if _, err := s.q.ExecContext(ctx, s.q.Rebind(query), args...); err != nil {
			return err
		}
	}

	for _, id := range ids {
		if _, err := s.q.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete task %d: %w", id, err)
		}
	}
	return nil
}

func (s *taskStore) ListAssignments(ctx context.Context) ([]domain.Assignment, error) {
	var rows []assignmentRow
	if err := sqlx.SelectContext(ctx, s.q, &rows, listAssignmentsQuery); err != nil {
		return nil, err
	}

	assignments := make([]domain.Assignment, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, domain.Assignment{
			TaskID: row.TaskID,
			User: domain.User{
				ID:       row.UserID,
				Username: row.Username,
				Name:     row.Name,
				IsAdmin:  row.IsAdmin,
			},
		})
	}
	return assignments, nil
}

func (s *taskStore) SetAssignees(ctx context.Context, taskID uint64, userIDs []uint64) error {
	if _, err := s.q.ExecContext(ctx, `DELETE FROM task_assignees WHERE task_id = ?`, taskID); err != nil {
		return err
	}
	for _, userID := range userIDs {
		if _, err := s.q.ExecContext(ctx,
			`INSERT INTO task_assignees (task_id, user_id) VALUES (?, ?)`, taskID, userID); err != nil {
			return err
		}
	}
	return nil
}

func (s *taskStore) ListComments(ctx context.Context, taskID *uint64) ([]domain.Comment, error) {
	query := listCommentsQuery
	var args []any
	if taskID != nil {
		query += "WHERE c.task_id = ? "
		args = append(args, *taskID)
	}
	query += "ORDER BY c.created_at DESC, c.id DESC"

	var rows []commentRow
	if err := sqlx.SelectContext(ctx, s.q, &rows, query, args...); err != nil {
		return nil, err
	}

	comments := make([]domain.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, mapCommentRow(row))
	}
	return comments, nil
}

func (s *taskStore) GetComment(ctx context.Context, id uint64) (domain.Comment, error) {
	var row commentRow
	if err := sqlx.GetContext(ctx, s.q, &row, listCommentsQuery+"WHERE c.id = ?", id); err != nil {
		return domain.Comment{}, err
	}
	return mapCommentRow(row), nil
}

func (s *taskStore) InsertComment(ctx context.Context, comment domain.Comment) (uint64, error) {
	result, err := s.q.ExecContext(ctx,
		`INSERT INTO task_comments (task_id, author_id, content, created_at) VALUES (?, ?, ?, ?)`,
		comment.TaskID, comment.AuthorID, comment.Content, time.Now().UTC(),
	)
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (s *taskStore) GetUser(ctx context.Context, id uint64) (domain.User, error) {
	return getUser(ctx, s.q, id)
}

func (s *taskStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	return listUsers(ctx, s.q)
}

func (s *taskStore) CountAssignedTasks(ctx context.Context) (map[uint64]int, error) {
	return countAssignedTasks(ctx, s.q)
}

func (s *taskStore) CountUsers(ctx context.Context, ids []uint64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In(`SELECT COUNT(*) FROM users WHERE id IN (?)`, ids)
	if err != nil {
		return 0, err
	}

	var count int
	if err := sqlx.GetContext(ctx, s.q, &count, s.q.Rebind(query), args...); err != nil {
		return 0, err
	}
	return count, nil
}

func requireAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		StartDate:   domain.DateOf(row.StartDate),
		EndDate:     domain.DateOf(row.EndDate),
		Status:      domain.TaskStatus(row.Status),
		Progress:    row.Progress,
		Color:       row.Color,
		CreatedByID: row.CreatedBy,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}

	if row.ParentTaskID.Valid {
		value := uint64(row.ParentTaskID.Int64)
		task.ParentTaskID = &value
	}

	if row.ParentTaskTitle.Valid {
		value := row.ParentTaskTitle.String
		task.ParentTaskTitle = &value
	}

	if row.CreatedByName.Valid {
		task.CreatedByName = row.CreatedByName.String
	}

	return task
}

func mapCommentRow(row commentRow) domain.Comment {
	return domain.Comment{
		ID:         row.ID,
		TaskID:     row.TaskID,
		AuthorID:   row.AuthorID,
		AuthorName: row.AuthorName,
		Content:    row.Content,
		CreatedAt:  row.CreatedAt,
	}
}
