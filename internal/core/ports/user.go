package ports

import (
	"context"

	"github.com/iPad7/gantt-4team/internal/core/domain"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) (uint64, error)
	GetUser(ctx context.Context, id uint64) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	// CountAssignedTasks returns the number of assigned tasks per user id.
	CountAssignedTasks(ctx context.Context) (map[uint64]int, error)
}

type UserService interface {
	CreateUser(ctx context.Context, input domain.CreateUserInput) (domain.User, error)
	GetUser(ctx context.Context, id uint64) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, domain.User, error)
	ParseToken(token string) (uint64, error)
}
