package tests

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/iPad7/gantt-4team/internal/core/domain"
	"github.com/iPad7/gantt-4team/internal/core/ports"
)

type taskServiceMock struct {
	mock.Mock
}

var _ ports.TaskService = (*taskServiceMock)(nil)

func (m *taskServiceMock) CreateTask(ctx context.Context, actorID uint64, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, actorID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, id uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *taskServiceMock) GetTask(ctx context.Context, id uint64) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) ListTasks(ctx context.Context) ([]domain.Task, error) {
	args := m.Called(ctx)
	return tasksArg(args, 0), args.Error(1)
}

func (m *taskServiceMock) ListRootTasks(ctx context.Context) ([]domain.Task, error) {
	args := m.Called(ctx)
	return tasksArg(args, 0), args.Error(1)
}

func (m *taskServiceMock) ListSubtasks(ctx context.Context, parentID uint64) ([]domain.Task, error) {
	args := m.Called(ctx, parentID)
	return tasksArg(args, 0), args.Error(1)
}

func (m *taskServiceMock) AddComment(ctx context.Context, taskID, authorID uint64, content string) (domain.Comment, error) {
	args := m.Called(ctx, taskID, authorID, content)
	return args.Get(0).(domain.Comment), args.Error(1)
}

func (m *taskServiceMock) ListComments(ctx context.Context, taskID *uint64) ([]domain.Comment, error) {
	args := m.Called(ctx, taskID)

	var comments []domain.Comment
	if value := args.Get(0); value != nil {
		comments = value.([]domain.Comment)
	}
	return comments, args.Error(1)
}

func tasksArg(args mock.Arguments, index int) []domain.Task {
	var tasks []domain.Task
	if value := args.Get(index); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks
}

type viewServiceMock struct {
	mock.Mock
}

var _ ports.ViewService = (*viewServiceMock)(nil)

func (m *viewServiceMock) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.DashboardStats), args.Error(1)
}

func (m *viewServiceMock) Timeline(ctx context.Context) (domain.Timeline, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Timeline), args.Error(1)
}

func (m *viewServiceMock) GanttChart(ctx context.Context) (domain.GanttChart, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.GanttChart), args.Error(1)
}

type userServiceMock struct {
	mock.Mock
}

var _ ports.UserService = (*userServiceMock)(nil)

func (m *userServiceMock) CreateUser(ctx context.Context, input domain.CreateUserInput) (domain.User, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userServiceMock) GetUser(ctx context.Context, id uint64) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userServiceMock) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)

	var users []domain.User
	if value := args.Get(0); value != nil {
		users = value.([]domain.User)
	}
	return users, args.Error(1)
}

type authServiceMock struct {
	mock.Mock
}

var _ ports.AuthService = (*authServiceMock)(nil)

func (m *authServiceMock) Login(ctx context.Context, username, password string) (string, domain.User, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Get(1).(domain.User), args.Error(2)
}

func (m *authServiceMock) ParseToken(token string) (uint64, error) {
	args := m.Called(token)
	return args.Get(0).(uint64), args.Error(1)
}
