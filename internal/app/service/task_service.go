package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/iPad7/gantt-4team/internal/core/domain"
	"github.com/iPad7/gantt-4team/internal/core/ports"
)

type TaskService struct {
	taskRepository ports.TaskRepository
	window         domain.ProjectWindow
	colors         domain.ColorPicker
	hooks          []ports.ParentWriteHook
}

// NewTaskService wires the store with the project window, the colour
// strategy for new root tasks and the hooks run after every child write.
func NewTaskService(
	taskRepository ports.TaskRepository,
	window domain.ProjectWindow,
	colors domain.ColorPicker,
	hooks ...ports.ParentWriteHook,
) *TaskService {
	return &TaskService{
		taskRepository: taskRepository,
		window:         window,
		colors:         colors,
		hooks:          hooks,
	}
}

var _ ports.TaskService = (*TaskService)(nil)

func (s *TaskService) CreateTask(ctx context.Context, actorID uint64, input domain.CreateTaskInput) (domain.Task, error) {
	status := input.Status
	if status == "" {
		status = domain.TaskStatusNotStarted
	}

	task := domain.Task{
		ParentTaskID: input.ParentTaskID,
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		StartDate:    domain.DateOf(input.StartDate),
		EndDate:      domain.DateOf(input.EndDate),
		Status:       status,
		Progress:     input.Progress,
		CreatedByID:  actorID,
	}

	if err := domain.ValidateTask(task); err != nil {
		return domain.Task{}, err
	}
	if err := domain.ValidateWindow(s.window, &task.StartDate, &task.EndDate); err != nil {
		return domain.Task{}, err
	}
	assignees := uniqueIDs(input.AssignedTo)

	var taskID uint64
	err := s.taskRepository.RunInTx(ctx, func(store ports.TaskStore) error {
		if _, err := store.GetUser(ctx, actorID); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return domain.NewValidationError("created_by", "does not reference an existing user")
			}
			return err
		}
		if task.ParentTaskID != nil {
			if err := requireParent(ctx, store, *task.ParentTaskID); err != nil {
				return err
			}
		}
		if err := requireUsers(ctx, store, assignees); err != nil {
			return err
		}

		if task.IsRoot() {
			task.Color = s.colors.PickColor()
		}

		id, err := store.InsertTask(ctx, task)
		if err != nil {
			return fmt.Errorf("insert task: %w", err)
		}
		taskID = id

		if err := store.SetAssignees(ctx, taskID, assignees); err != nil {
			return fmt.Errorf("assign task: %w", err)
		}

		if task.ParentTaskID != nil {
			return s.afterChildWrite(ctx, store, *task.ParentTaskID)
		}
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}

	zap.L().Info("task created", zap.Uint64("task_id", taskID), zap.Uint64("created_by", actorID))
	return s.GetTask(ctx, taskID)
}

func (s *TaskService) UpdateTask(ctx context.Context, id uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	if err := domain.ValidateWindow(s.window, input.StartDate, input.EndDate); err != nil {
		return domain.Task{}, err
	}

	err := s.taskRepository.RunInTx(ctx, func(store ports.TaskStore) error {
		current, err := store.GetTask(ctx, id)
		if err != nil {
			return err
		}

		updated := input.Apply(current)
		if err := domain.ValidateTask(updated); err != nil {
			return err
		}

		oldParent, newParent := current.ParentTaskID, updated.ParentTaskID
		reparented := !sameParent(oldParent, newParent)
		if reparented && newParent != nil {
			if err := checkReparent(ctx, store, id, *newParent); err != nil {
				return err
			}
		}

		var assignees []uint64
		if input.AssignedToSet {
			assignees = uniqueIDs(input.AssignedTo)
			if err := requireUsers(ctx, store, assignees); err != nil {
				return err
			}
		}

		if err := store.UpdateTask(ctx, updated); err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		if input.AssignedToSet {
			if err := store.SetAssignees(ctx, id, assignees); err != nil {
				return fmt.Errorf("assign task: %w", err)
			}
		}

		// A task with children keeps the span of its children even when
		// its own dates were patched. This runs before the parent hook so
		// the parent sees the final span.
		childIDs, err := store.ListChildIDs(ctx, id)
		if err != nil {
			return err
		}
		if len(childIDs) > 0 {
			if err := s.afterChildWrite(ctx, store, id); err != nil {
				return err
			}
		}

		if newParent != nil {
			if err := s.afterChildWrite(ctx, store, *newParent); err != nil {
				return err
			}
		}
		if reparented && oldParent != nil {
			return s.afterChildWrite(ctx, store, *oldParent)
		}
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}

	zap.L().Info("task updated", zap.Uint64("task_id", id))
	return s.GetTask(ctx, id)
}

// DeleteTask removes the task with its whole subtree and comments, then
// recomputes the former parent from the children that remain.
func (s *TaskService) DeleteTask(ctx context.Context, id uint64) error {
	var removed int
	err := s.taskRepository.RunInTx(ctx, func(store ports.TaskStore) error {
		task, err := store.GetTask(ctx, id)
		if err != nil {
			return err
		}

		descendants, err := domain.Descendants(id, func(parentID uint64) ([]uint64, error) {
			return store.ListChildIDs(ctx, parentID)
		})
		if err != nil {
			return err
		}

		// Descendants is breadth first, so the reversed list removes every
		// child before its parent.
		ids := append([]uint64{id}, descendants...)
		slices.Reverse(ids)
		if err := store.DeleteTasks(ctx, ids); err != nil {
			return fmt.Errorf("delete tasks: %w", err)
		}
		removed = len(ids)

		if task.ParentTaskID != nil {
			return s.afterChildWrite(ctx, store, *task.ParentTaskID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	zap.L().Info("task deleted", zap.Uint64("task_id", id), zap.Int("removed", removed))
	return nil
}

func (s *TaskService) GetTask(ctx context.Context, id uint64) (domain.Task, error) {
	forest, err := s.loadForest(ctx)
	if err != nil {
		return domain.Task{}, err
	}

	task, ok := forest.Task(id)
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	forest, err := s.loadForest(ctx)
	if err != nil {
		return nil, err
	}
	return forest.All(), nil
}

func (s *TaskService) ListRootTasks(ctx context.Context) ([]domain.Task, error) {
	forest, err := s.loadForest(ctx)
	if err != nil {
		return nil, err
	}
	return forest.Roots(), nil
}

func (s *TaskService) ListSubtasks(ctx context.Context, parentID uint64) ([]domain.Task, error) {
	forest, err := s.loadForest(ctx)
	if err != nil {
		return nil, err
	}

	if _, ok := forest.Task(parentID); !ok {
		return nil, domain.ErrTaskNotFound
	}
	return forest.Children(parentID), nil
}

func (s *TaskService) AddComment(ctx context.Context, taskID, authorID uint64, content string) (domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Comment{}, domain.NewValidationError("content", "must not be empty")
	}

	var comment domain.Comment
	err := s.taskRepository.RunInTx(ctx, func(store ports.TaskStore) error {
		if _, err := store.GetTask(ctx, taskID); err != nil {
			return err
		}
		if _, err := store.GetUser(ctx, authorID); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return domain.NewValidationError("author", "does not reference an existing user")
			}
			return err
		}

		id, err := store.InsertComment(ctx, domain.Comment{TaskID: taskID, AuthorID: authorID, Content: content})
		if err != nil {
			return fmt.Errorf("insert comment: %w", err)
		}

		comment, err = store.GetComment(ctx, id)
		return err
	})
	if err != nil {
		return domain.Comment{}, err
	}
	return comment, nil
}

func (s *TaskService) ListComments(ctx context.Context, taskID *uint64) ([]domain.Comment, error) {
	return s.taskRepository.ListComments(ctx, taskID)
}

func (s *TaskService) afterChildWrite(ctx context.Context, store ports.TaskStore, parentID uint64) error {
	for _, hook := range s.hooks {
		if err := hook.AfterChildWrite(ctx, store, parentID); err != nil {
			return fmt.Errorf("recompute parent %d: %w", parentID, err)
		}
	}
	return nil
}

func (s *TaskService) loadForest(ctx context.Context) (*domain.Forest, error) {
	return loadForest(ctx, s.taskRepository)
}

// loadForest reads tasks, assignments and comments from one snapshot.
func loadForest(ctx context.Context, repository ports.TaskRepository) (*domain.Forest, error) {
	var forest *domain.Forest
	err := repository.RunInReadTx(ctx, func(store ports.TaskStore) error {
		var err error
		forest, err = buildForest(ctx, store)
		return err
	})
	return forest, err
}

func buildForest(ctx context.Context, store ports.TaskStore) (*domain.Forest, error) {
	tasks, err := store.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	assignments, err := store.ListAssignments(ctx)
	if err != nil {
		return nil, err
	}
	comments, err := store.ListComments(ctx, nil)
	if err != nil {
		return nil, err
	}
	return domain.BuildForest(tasks, assignments, comments), nil
}

// requireParent takes the parent's row lock before the child row is written,
// so concurrent writers under one parent queue instead of deadlocking on the
// lock upgrade of the later recompute.
func requireParent(ctx context.Context, store ports.TaskStore, parentID uint64) error {
	if _, err := store.LockTask(ctx, parentID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return domain.NewValidationError("parent_task_id", "does not reference an existing task")
		}
		return err
	}
	return nil
}

// checkReparent rejects a new parent that is the task itself or one of its
// descendants, by walking up from the new parent.
func checkReparent(ctx context.Context, store ports.TaskStore, taskID, newParentID uint64) error {
	cycle := &domain.IntegrityError{Field: "parent_task_id", Err: domain.ErrTaskHierarchyCycle}
	if newParentID == taskID {
		return cycle
	}
	if err := requireParent(ctx, store, newParentID); err != nil {
		return err
	}

	visited := map[uint64]bool{newParentID: true}
	current := newParentID
	for {
		ancestor, err := store.GetTask(ctx, current)
		if err != nil {
			return err
		}
		if ancestor.ParentTaskID == nil {
			return nil
		}
		next := *ancestor.ParentTaskID
		if next == taskID {
			return cycle
		}
		if visited[next] {
			return nil
		}
		visited[next] = true
		current = next
	}
}

func requireUsers(ctx context.Context, store ports.TaskStore, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	count, err := store.CountUsers(ctx, ids)
	if err != nil {
		return err
	}
	if count != len(ids) {
		return domain.NewValidationError("assigned_to", "references an unknown user")
	}
	return nil
}

func sameParent(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func uniqueIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]bool, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
