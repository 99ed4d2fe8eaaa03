package repository

import (
	"github.com/habitquest/habit-quest-api/internal/database"
	"github.com/habitquest/habit-quest-api/internal/models"
	"github.com/habitquest/habit-quest-api/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByIDAndUser finds a task by ID scoped to its owner. A task owned by
// someone else is indistinguishable from a missing one.
func (r *GormTaskRepository) FindByIDAndUser(id, userID uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByUser retrieves a user's tasks with pagination, newest first
func (r *GormTaskRepository) ListByUser(userID uint64, limit, offset int) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := utils.PaginationParams{Limit: limit, Offset: offset}
	if err := query.Order("created_at DESC").Scopes(database.Paginate(page)).Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// UpdateStatus updates only the status of a task
func (r *GormTaskRepository) UpdateStatus(id uint64, status models.TaskStatus) error {
	return r.db.Model(&models.Task{}).Where("id = ?", id).Update("status", status).Error
}

// Delete removes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// ListRegenerationCandidates pages through recurring tasks whose status
// still allows regeneration and whose window carries an expiry date.
func (r *GormTaskRepository) ListRegenerationCandidates(limit, offset int) ([]models.Task, error) {
	var tasks []models.Task

	err := r.db.
		Where("type IN ?", []models.TaskType{models.TaskTypeDaily, models.TaskTypeWeekly}).
		Where("status IN ?", []models.TaskStatus{models.TaskStatusPending, models.TaskStatusCompleted}).
		Where("date_end IS NOT NULL").
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// CountByStatus returns the number of tasks per status
func (r *GormTaskRepository) CountByStatus() (map[models.TaskStatus]int64, error) {
	type row struct {
		Status models.TaskStatus
		Count  int64
	}

	var rows []row
	err := r.db.Model(&models.Task{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.TaskStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}

	return counts, nil
}
