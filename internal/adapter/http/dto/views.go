package dto

type UserItem struct {
	ID         uint64 `json:"id"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	IsAdmin    bool   `json:"is_admin"`
	DateJoined string `json:"date_joined"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Name     string `json:"name" binding:"required,max=100"`
	Password string `json:"password" binding:"required"`
	IsAdmin  bool   `json:"is_admin"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserItem `json:"user"`
}

type UserTaskCount struct {
	UserID    uint64 `json:"user_id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	TaskCount int    `json:"task_count"`
}

type DashboardResponse struct {
	TotalTasks      int             `json:"total_tasks"`
	NotStartedTasks int             `json:"not_started_tasks"`
	InProgressTasks int             `json:"in_progress_tasks"`
	CompletedTasks  int             `json:"completed_tasks"`
	OnHoldTasks     int             `json:"on_hold_tasks"`
	ProjectProgress float64         `json:"project_progress"`
	UserTaskCounts  []UserTaskCount `json:"user_task_counts"`
	RecentTasks     []TaskItem      `json:"recent_tasks"`
}

type TimelineSubtask struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
	Progress  int    `json:"progress"`
}

type TimelineEntry struct {
	ID        uint64            `json:"id"`
	Title     string            `json:"title"`
	Color     string            `json:"color"`
	StartDate string            `json:"start_date"`
	EndDate   string            `json:"end_date"`
	Subtasks  []TimelineSubtask `json:"subtasks"`
}

type TimelineResponse struct {
	ProjectStart string          `json:"project_start"`
	ProjectEnd   string          `json:"project_end"`
	WorkDays     []string        `json:"work_days"`
	TimelineData []TimelineEntry `json:"timeline_data"`
}

type GanttChartResponse struct {
	Tasks            []TaskItem `json:"tasks"`
	ProjectStartDate string     `json:"project_start_date"`
	ProjectEndDate   string     `json:"project_end_date"`
	WorkDays         []string   `json:"work_days"`
}
