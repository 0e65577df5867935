package dto

type TaskItem struct {
	ID               uint64        `json:"id"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	StartDate        string        `json:"start_date"`
	EndDate          string        `json:"end_date"`
	EffectiveEndDate string        `json:"effective_end_date"`
	ParentTaskID     *uint64       `json:"parent_task_id"`
	ParentTaskTitle  *string       `json:"parent_task_title,omitempty"`
	Color            string        `json:"color"`
	Status           string        `json:"status"`
	Progress         int           `json:"progress"`
	CreatedBy        uint64        `json:"created_by"`
	CreatedByName    string        `json:"created_by_name"`
	AssignedTo       []uint64      `json:"assigned_to"`
	AssignedToNames  []string      `json:"assigned_to_names"`
	CreatedAt        string        `json:"created_at"`
	UpdatedAt        string        `json:"updated_at"`
	Subtasks         []TaskItem    `json:"subtasks"`
	Comments         []CommentItem `json:"comments"`
	TotalDuration    int           `json:"total_duration"`
	IsParentTask     bool          `json:"is_parent_task"`
	HasSubtasks      bool          `json:"has_subtasks"`
}

// CreateTaskRequest is decoded with encoding/json; presence and ranges are
// checked by the validation package so errors can name the field.
type CreateTaskRequest struct {
	Title        string   `json:"title"`
	Description  *string  `json:"description"`
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
	ParentTaskID *uint64  `json:"parent_task_id"`
	Status       *string  `json:"status"`
	Progress     *int     `json:"progress"`
	AssignedTo   []uint64 `json:"assigned_to"`
}

type UpdateTaskRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
	ParentTaskID *uint64  `json:"parent_task_id"`
	Status       *string  `json:"status"`
	Progress     *int     `json:"progress"`
	AssignedTo   []uint64 `json:"assigned_to"`
}

type CommentItem struct {
	ID         uint64 `json:"id"`
	TaskID     uint64 `json:"task_id"`
	Content    string `json:"content"`
	Author     uint64 `json:"author"`
	AuthorName string `json:"author_name"`
	CreatedAt  string `json:"created_at"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}
