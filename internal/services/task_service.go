package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/habitquest/habit-quest-api/internal/models"
	"github.com/habitquest/habit-quest-api/internal/repository"
	"github.com/habitquest/habit-quest-api/internal/timeutil"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskAlreadyCompleted = errors.New("task is already completed")
	ErrTaskNotCompletable   = errors.New("task window has already lapsed")
	ErrInvalidTaskType      = errors.New("invalid task type")
	ErrInvalidTimezone      = errors.New("invalid timezone")
	ErrTitleRequired        = errors.New("title is required")
	ErrInvalidDifficulty    = errors.New("invalid difficulty")
)

// TaskService owns the task lifecycle: window computation on creation,
// completion transitions, edits, and deletion.
type TaskService struct {
	taskRepo    repository.TaskRepository
	progression *ProgressionService
	now         func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, progression *ProgressionService) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		progression: progression,
		now:         time.Now,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Type        models.TaskType
	Difficulty  models.TaskDifficulty
	Timezone    string
	DateStart   *time.Time
	DateEnd     *time.Time
	UserID      uint64
}

// UpdateTaskInput represents a partial task edit. Nil fields are left
// untouched. A change of Type or Timezone re-derives the validity window
// and overrides any explicit dates in the same patch.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Type        *models.TaskType
	Difficulty  *models.TaskDifficulty
	Timezone    *string
	DateStart   *time.Time
	DateEnd     *time.Time
}

// CompleteTaskResult is returned to the caller of Complete so the response
// can surface progression side effects alongside the task itself.
type CompleteTaskResult struct {
	Task       *models.Task
	Successor  *models.Task
	LeveledUp  bool
	Evolutions []EvolutionEvent
}

// computeTaskWindow derives the validity window for a task type at the
// reference instant, in the given timezone.
func computeTaskWindow(taskType models.TaskType, loc *time.Location, now time.Time) (*time.Time, *time.Time, error) {
	switch taskType {
	case models.TaskTypeDaily:
		start := timeutil.StartOfDay(now, loc)
		end := timeutil.EndOfDay(now, loc)
		return &start, &end, nil
	case models.TaskTypeWeekly:
		start := timeutil.StartOfWeek(now, loc)
		end := timeutil.EndOfWeek(now, loc)
		return &start, &end, nil
	case models.TaskTypeRepeatable:
		start := timeutil.StartOfDay(now, loc)
		return &start, nil, nil
	case models.TaskTypeOneTime:
		return nil, nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidTaskType, taskType)
	}
}

// Create creates a task in PENDING state. Explicit start and end dates are
// used verbatim when both are supplied; otherwise the window is computed
// from the task type.
func (s *TaskService) Create(input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if !input.Type.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTaskType, input.Type)
	}
	if input.Difficulty == "" {
		input.Difficulty = models.DifficultyNormal
	}
	if !input.Difficulty.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDifficulty, input.Difficulty)
	}

	loc, err := time.LoadLocation(input.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, input.Timezone)
	}

	dateStart := input.DateStart
	dateEnd := input.DateEnd
	if dateStart == nil || dateEnd == nil {
		dateStart, dateEnd, err = computeTaskWindow(input.Type, loc, s.now())
		if err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		Title:       title,
		Description: input.Description,
		Type:        input.Type,
		Status:      models.TaskStatusPending,
		Difficulty:  input.Difficulty,
		DateStart:   dateStart,
		DateEnd:     dateEnd,
		Timezone:    input.Timezone,
		UserID:      input.UserID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// Complete marks a task as done for the acting user, awards experience and
// resolves evolution unlocks. REPEATABLE and ONE_TIME tasks reach
// TRUE_COMPLETED directly; a completed REPEATABLE task immediately spawns
// a fresh PENDING successor so it resets without waiting for the sweep.
func (s *TaskService) Complete(taskID, userID uint64) (*CompleteTaskResult, error) {
	task, err := s.taskRepo.FindByIDAndUser(taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.Status.IsCompleted() {
		return nil, ErrTaskAlreadyCompleted
	}
	// EXPIRED and DELETED are terminal: reopening an expired task would
	// award experience for a lapsed window and hand the sweep the same
	// predecessor twice.
	if task.Status.IsTerminal() {
		return nil, ErrTaskNotCompletable
	}

	if task.Type == models.TaskTypeRepeatable || task.Type == models.TaskTypeOneTime {
		task.Status = models.TaskStatusTrueCompleted
	} else {
		task.Status = models.TaskStatusCompleted
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	result := &CompleteTaskResult{Task: task}

	if task.Type == models.TaskTypeRepeatable {
		successor, err := s.spawnRepeatableSuccessor(task)
		if err != nil {
			return nil, err
		}
		result.Successor = successor
	}

	leveledUp, evolutions, err := s.progression.GainExperience(userID, task.Difficulty)
	if err != nil {
		return nil, err
	}
	result.LeveledUp = leveledUp
	result.Evolutions = evolutions

	return result, nil
}

func (s *TaskService) spawnRepeatableSuccessor(task *models.Task) (*models.Task, error) {
	loc, err := time.LoadLocation(task.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, task.Timezone)
	}

	start := timeutil.StartOfDay(s.now(), loc)
	successor := &models.Task{
		Title:       task.Title,
		Description: task.Description,
		Type:        task.Type,
		Status:      models.TaskStatusPending,
		Difficulty:  task.Difficulty,
		DateStart:   &start,
		DateEnd:     nil,
		Timezone:    task.Timezone,
		UserID:      task.UserID,
	}

	if err := s.taskRepo.Create(successor); err != nil {
		return nil, fmt.Errorf("failed to create successor task: %w", err)
	}

	return successor, nil
}

// Update applies a partial edit to a task owned by the acting user.
func (s *TaskService) Update(taskID, userID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByIDAndUser(taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Difficulty != nil {
		if !input.Difficulty.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDifficulty, *input.Difficulty)
		}
		task.Difficulty = *input.Difficulty
	}

	recomputeWindow := false
	if input.Type != nil && *input.Type != task.Type {
		if !input.Type.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTaskType, *input.Type)
		}
		task.Type = *input.Type
		recomputeWindow = true
	}
	if input.Timezone != nil && *input.Timezone != task.Timezone {
		task.Timezone = *input.Timezone
		recomputeWindow = true
	}

	if recomputeWindow {
		loc, err := time.LoadLocation(task.Timezone)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, task.Timezone)
		}
		start, end, err := computeTaskWindow(task.Type, loc, s.now())
		if err != nil {
			return nil, err
		}
		task.DateStart = start
		task.DateEnd = end
	} else {
		if input.DateStart != nil {
			task.DateStart = input.DateStart
		}
		if input.DateEnd != nil {
			task.DateEnd = input.DateEnd
		}
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// Remove deletes a task owned by the acting user.
func (s *TaskService) Remove(taskID, userID uint64) error {
	task, err := s.taskRepo.FindByIDAndUser(taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// ListMyTasks returns the acting user's tasks, newest first.
func (s *TaskService) ListMyTasks(userID uint64, limit, offset int) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}
