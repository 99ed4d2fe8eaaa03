package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/habitquest/habit-quest-api/internal/dto"
	apierrors "github.com/habitquest/habit-quest-api/internal/errors"
	"github.com/habitquest/habit-quest-api/internal/middleware"
	"github.com/habitquest/habit-quest-api/internal/models"
	"github.com/habitquest/habit-quest-api/internal/services"
	"github.com/habitquest/habit-quest-api/internal/utils"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// MyTasks returns the current user's tasks, paginated
func (h *TaskHandler) MyTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.ListMyTasks(userID, params.Limit, params.Offset)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params, total))
}

// CreateTask creates a new task for the current user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title       string     `json:"title" binding:"required"`
		Description string     `json:"description"`
		Type        string     `json:"type" binding:"required"`
		Difficulty  string     `json:"difficulty"`
		Timezone    string     `json:"timezone" binding:"required"`
		DateStart   *time.Time `json:"date_start"`
		DateEnd     *time.Time `json:"date_end"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Create(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Type:        models.TaskType(req.Type),
		Difficulty:  models.TaskDifficulty(req.Difficulty),
		Timezone:    req.Timezone,
		DateStart:   req.DateStart,
		DateEnd:     req.DateEnd,
		UserID:      userID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// CompleteTask marks a task as done and reports experience and evolution
// side effects in the response
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	result, err := h.taskService.Complete(taskID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompleteTaskResponse(result))
}

// UpdateTask applies a partial edit to a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		Type        *string    `json:"type"`
		Difficulty  *string    `json:"difficulty"`
		Timezone    *string    `json:"timezone"`
		DateStart   *time.Time `json:"date_start"`
		DateEnd     *time.Time `json:"date_end"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Timezone:    req.Timezone,
		DateStart:   req.DateStart,
		DateEnd:     req.DateEnd,
	}
	if req.Type != nil {
		taskType := models.TaskType(*req.Type)
		input.Type = &taskType
	}
	if req.Difficulty != nil {
		difficulty := models.TaskDifficulty(*req.Difficulty)
		input.Difficulty = &difficulty
	}

	task, err := h.taskService.Update(taskID, userID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task owned by the current user
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	if err := h.taskService.Remove(taskID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

func parseTaskID(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, false
	}
	return taskID, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTaskAlreadyCompleted),
		errors.Is(err, services.ErrTaskNotCompletable):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidTaskType),
		errors.Is(err, services.ErrInvalidTimezone),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidDifficulty):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
