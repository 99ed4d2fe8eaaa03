package dto

import (
	"time"

	"github.com/habitquest/habit-quest-api/internal/models"
	"github.com/habitquest/habit-quest-api/internal/services"
	"github.com/habitquest/habit-quest-api/internal/utils"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Type        models.TaskType       `json:"type"`
	Status      models.TaskStatus     `json:"status"`
	Difficulty  models.TaskDifficulty `json:"difficulty"`
	DateStart   *time.Time            `json:"date_start"`
	DateEnd     *time.Time            `json:"date_end"`
	Timezone    string                `json:"timezone"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// CompleteTaskResponse carries the completed task together with the
// progression side effects of completing it.
type CompleteTaskResponse struct {
	Task       TaskDTO                   `json:"task"`
	Successor  *TaskDTO                  `json:"successor,omitempty"`
	LeveledUp  bool                      `json:"leveled_up"`
	Evolutions []services.EvolutionEvent `json:"evolutions"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Type:        task.Type,
		Status:      task.Status,
		Difficulty:  task.Difficulty,
		DateStart:   task.DateStart,
		DateEnd:     task.DateEnd,
		Timezone:    task.Timezone,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, params utils.PaginationParams, total int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListResponse{
		Tasks: items,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}

// ToCompleteTaskResponse converts a completion result to its response shape
func ToCompleteTaskResponse(result *services.CompleteTaskResult) CompleteTaskResponse {
	resp := CompleteTaskResponse{
		Task:       ToTaskDTO(*result.Task),
		LeveledUp:  result.LeveledUp,
		Evolutions: result.Evolutions,
	}
	if resp.Evolutions == nil {
		resp.Evolutions = []services.EvolutionEvent{}
	}
	if result.Successor != nil {
		successor := ToTaskDTO(*result.Successor)
		resp.Successor = &successor
	}
	return resp
}
