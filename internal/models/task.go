package models

import (
	"time"
)

type TaskType string

const (
	TaskTypeDaily      TaskType = "DAILY"
	TaskTypeWeekly     TaskType = "WEEKLY"
	TaskTypeOneTime    TaskType = "ONE_TIME"
	TaskTypeRepeatable TaskType = "REPEATABLE"
)

// IsRecurring reports whether the background sweep regenerates this task
// type when its window expires.
func (t TaskType) IsRecurring() bool {
	return t == TaskTypeDaily || t == TaskTypeWeekly
}

// IsValid reports whether the value is one of the known task types.
func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeDaily, TaskTypeWeekly, TaskTypeOneTime, TaskTypeRepeatable:
		return true
	}
	return false
}

type TaskStatus string

const (
	TaskStatusPending       TaskStatus = "PENDING"
	TaskStatusCompleted     TaskStatus = "COMPLETED"
	TaskStatusTrueCompleted TaskStatus = "TRUE_COMPLETED"
	TaskStatusExpired       TaskStatus = "EXPIRED"
	TaskStatusDeleted       TaskStatus = "DELETED"
)

// IsTerminal returns true if no further state transitions are possible.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusTrueCompleted || s == TaskStatusExpired || s == TaskStatusDeleted
}

// IsCompleted reports whether the task has already been completed within
// its current window.
func (s TaskStatus) IsCompleted() bool {
	return s == TaskStatusCompleted || s == TaskStatusTrueCompleted
}

type TaskDifficulty string

const (
	DifficultyEasy   TaskDifficulty = "EASY"
	DifficultyNormal TaskDifficulty = "NORMAL"
	DifficultyHard   TaskDifficulty = "HARD"
)

// IsValid reports whether the value is one of the known difficulties.
func (d TaskDifficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return true
	}
	return false
}

type Task struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Type        TaskType       `gorm:"type:varchar(20);not null" json:"type"`
	Status      TaskStatus     `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Difficulty  TaskDifficulty `gorm:"type:varchar(20);not null;default:'NORMAL'" json:"difficulty"`
	DateStart   *time.Time     `json:"date_start"`
	DateEnd     *time.Time     `json:"date_end"`
	Timezone    string         `gorm:"type:varchar(64);not null" json:"timezone"`
	UserID      uint64         `gorm:"not null;index" json:"user_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
