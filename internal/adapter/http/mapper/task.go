package mapper

import (
	"time"

	"github.com/iPad7/gantt-4team/internal/adapter/http/dto"
	"github.com/iPad7/gantt-4team/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:               task.ID,
		Title:            task.Title,
		Description:      task.Description,
		StartDate:        domain.FormatDate(task.StartDate),
		EndDate:          domain.FormatDate(task.EndDate),
		EffectiveEndDate: domain.FormatDate(task.EffectiveEndDate()),
		Color:            task.Color,
		Status:           string(task.Status),
		Progress:         task.Progress,
		CreatedBy:        task.CreatedByID,
		CreatedByName:    task.CreatedByName,
		AssignedTo:       task.AssigneeIDs(),
		AssignedToNames:  make([]string, 0, len(task.Assignees)),
		CreatedAt:        task.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        task.UpdatedAt.UTC().Format(time.RFC3339),
		Subtasks:         ToTaskItems(task.Subtasks),
		Comments:         ToCommentItems(task.Comments),
		TotalDuration:    task.TotalDuration(),
		IsParentTask:     task.IsRoot(),
		HasSubtasks:      task.HasSubtasks(),
	}

	for _, user := range task.Assignees {
		item.AssignedToNames = append(item.AssignedToNames, user.Name)
	}

	if task.ParentTaskID != nil {
		value := *task.ParentTaskID
		item.ParentTaskID = &value
	}

	if task.ParentTaskTitle != nil {
		value := *task.ParentTaskTitle
		item.ParentTaskTitle = &value
	}

	return item
}

func ToCommentItems(comments []domain.Comment) []dto.CommentItem {
	items := make([]dto.CommentItem, 0, len(comments))
	for _, comment := range comments {
		items = append(items, ToCommentItem(comment))
	}
	return items
}

func ToCommentItem(comment domain.Comment) dto.CommentItem {
	return dto.CommentItem{
		ID:         comment.ID,
		TaskID:     comment.TaskID,
		Content:    comment.Content,
		Author:     comment.AuthorID,
		AuthorName: comment.AuthorName,
		CreatedAt:  comment.CreatedAt.UTC().Format(time.RFC3339),
	}
}
