package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/iPad7/gantt-4team/internal/adapter/http/dto"
	"github.com/iPad7/gantt-4team/internal/adapter/http/mapper"
	"github.com/iPad7/gantt-4team/internal/adapter/http/middleware"
	"github.com/iPad7/gantt-4team/internal/adapter/http/validation"
	"github.com/iPad7/gantt-4team/internal/core/domain"
	"github.com/iPad7/gantt-4team/internal/core/ports"
	"github.com/iPad7/gantt-4team/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context())
	if err != nil {
		respondError(c, err, apierrors.MsgFailListTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) ListRootTasks(c *gin.Context) {
	tasks, err := h.taskService.ListRootTasks(c.Request.Context())
	if err != nil {
		respondError(c, err, apierrors.MsgFailListTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailGetTask, zap.Uint64("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) ListSubtasks(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	subtasks, err := h.taskService.ListSubtasks(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListSubtasks, zap.Uint64("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(subtasks))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respondError(c, domain.NewValidationError("payload", "could not be read"), apierrors.MsgFailCreateTask)
		return
	}

	var req dto.CreateTaskRequest
	raw, err := validation.DecodePayload(body, &req)
	if err != nil {
		respondError(c, err, apierrors.MsgFailCreateTask)
		return
	}

	input, err := validation.BuildCreateTaskInput(req, raw)
	if err != nil {
		respondError(c, err, apierrors.MsgFailCreateTask)
		return
	}

	actorID, _ := middleware.GetActorID(c)
	task, err := h.taskService.CreateTask(c.Request.Context(), actorID, input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailCreateTask)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		respondError(c, domain.NewValidationError("payload", "could not be read"), apierrors.MsgFailUpdateTask)
		return
	}

	var req dto.UpdateTaskRequest
	raw, err := validation.DecodePayload(body, &req)
	if err != nil {
		respondError(c, err, apierrors.MsgFailUpdateTask)
		return
	}

	input, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		respondError(c, err, apierrors.MsgFailUpdateTask)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailUpdateTask, zap.Uint64("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID); err != nil {
		respondError(c, err, apierrors.MsgFailDeleteTask, zap.Uint64("task_id", taskID))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) AddComment(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidationError("content", "is required"), apierrors.MsgFailAddComment)
		return
	}

	actorID, _ := middleware.GetActorID(c)
	comment, err := h.taskService.AddComment(c.Request.Context(), taskID, actorID, req.Content)
	if err != nil {
		respondError(c, err, apierrors.MsgFailAddComment, zap.Uint64("task_id", taskID))
		return
	}

	c.JSON(http.StatusCreated, mapper.ToCommentItem(comment))
}

func (h *TaskHandler) ListComments(c *gin.Context) {
	var taskID *uint64
	if value := c.Query("task_id"); value != "" {
		id, err := strconv.ParseUint(value, 10, 64)
		if err != nil || id == 0 {
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, middleware.GetLang(c)),
			)
			return
		}
		taskID = &id
	}

	comments, err := h.taskService.ListComments(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListComments)
		return
	}

	c.JSON(http.StatusOK, mapper.ToCommentItems(comments))
}
