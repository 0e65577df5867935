package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"github.com/iPad7/gantt-4team/internal/core/domain"
	"github.com/iPad7/gantt-4team/internal/core/ports"
)

const (
	userColumns            = `id, username, name, password_hash, is_admin, date_joined`
	getUserQuery           = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	getUserByUsernameQuery = `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	listUsersQuery         = `SELECT ` + userColumns + ` FROM users ORDER BY username`
	countAssignedQuery     = `SELECT user_id, COUNT(*) AS total FROM task_assignees GROUP BY user_id`
	insertUserQuery        = `INSERT INTO users (username, name, password_hash, is_admin, date_joined) VALUES (?, ?, ?, ?, ?)`
	mysqlDuplicateEntry    = 1062
)

type userRow struct {
	ID           uint64    `db:"id"`
	Username     string    `db:"username"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	IsAdmin      bool      `db:"is_admin"`
	DateJoined   time.Time `db:"date_joined"`
}

type assignedCountRow struct {
	UserID uint64 `db:"user_id"`
	Total  int    `db:"total"`
}

type UserRepository struct {
	db *sqlx.DB
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user domain.User) (uint64, error) {
	result, err := r.db.ExecContext(ctx, insertUserQuery,
		user.Username, user.Name, user.PasswordHash, user.IsAdmin, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, &domain.IntegrityError{Field: "username", Err: domain.ErrUsernameTaken}
		}
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *UserRepository) GetUser(ctx context.Context, id uint64) (domain.User, error) {
	return getUser(ctx, r.db, id)
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, getUserByUsernameQuery, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}
	return mapUserRow(row), nil
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	return listUsers(ctx, r.db)
}

func (r *UserRepository) CountAssignedTasks(ctx context.Context) (map[uint64]int, error) {
	return countAssignedTasks(ctx, r.db)
}

func listUsers(ctx context.Context, q sqlx.QueryerContext) ([]domain.User, error) {
	var rows []userRow
	if err := sqlx.SelectContext(ctx, q, &rows, listUsersQuery); err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, mapUserRow(row))
	}
	return users, nil
}

func countAssignedTasks(ctx context.Context, q sqlx.QueryerContext) (map[uint64]int, error) {
	var rows []assignedCountRow
	if err := sqlx.SelectContext(ctx, q, &rows, countAssignedQuery); err != nil {
		return nil, err
	}

	counts := make(map[uint64]int, len(rows))
	for _, row := range rows {
		counts[row.UserID] = row.Total
	}
	return counts, nil
}

func getUser(ctx context.Context, q sqlx.QueryerContext, id uint64) (domain.User, error) {
	var row userRow
	if err := sqlx.GetContext(ctx, q, &row, getUserQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}
	return mapUserRow(row), nil
}

func isUniqueViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

func mapUserRow(row userRow) domain.User {
	return domain.User{
		ID:           row.ID,
		Username:     row.Username,
		Name:         row.Name,
		PasswordHash: row.PasswordHash,
		IsAdmin:      row.IsAdmin,
		DateJoined:   row.DateJoined,
	}
}
