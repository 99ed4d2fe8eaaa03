package repository

import (
	"github.com/habitquest/habit-quest-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByIDAndUser finds a task by ID scoped to its owner
	FindByIDAndUser(id, userID uint64) (*models.Task, error)

	// ListByUser retrieves a user's tasks with pagination, newest first
	ListByUser(userID uint64, limit, offset int) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// UpdateStatus updates only the status of a task
	UpdateStatus(id uint64, status models.TaskStatus) error

	// Delete removes a task
	Delete(id uint64) error

	// ListRegenerationCandidates pages through recurring tasks that are
	// still in a regenerable status and carry an expiry date, ordered by
	// creation time ascending
	ListRegenerationCandidates(limit, offset int) ([]models.Task, error)

	// CountByStatus returns the number of tasks per status
	CountByStatus() (map[models.TaskStatus]int64, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error
}

// CreatureRepository defines the interface for species and ownership data access
type CreatureRepository interface {
	// ListSpecies returns every species definition
	ListSpecies() ([]models.Species, error)

	// FindSpeciesByPokedexNumber finds one species by its pokedex number
	FindSpeciesByPokedexNumber(number int) (*models.Species, error)

	// ListOwned returns a user's ownership records with species preloaded
	ListOwned(userID uint64) ([]models.UserCreature, error)

	// CreateOwnership creates a new ownership record
	CreateOwnership(record *models.UserCreature) error

	// SetShiny marks an ownership record as shiny
	SetShiny(id uint64) error
}
