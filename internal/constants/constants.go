package constants

import (
	"time"

	"github.com/habitquest/habit-quest-api/internal/models"
)

// Context keys
const (
	ContextKeyUserID = "user_id"
)

// Session
const (
	SessionCookieName = "habit_session"
)

// Authentication
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Progression
const (
	// BaseNextLevelExperience is the threshold to reach level 2.
	BaseNextLevelExperience = 100
	// LevelGrowthFactor multiplies the threshold on each level-up; the
	// result is truncated to an integer.
	LevelGrowthFactor = 1.5
	// StarterPokedexNumber is granted to every new user at signup.
	StarterPokedexNumber = 1
)

// ExperienceRewards maps a task difficulty to the experience awarded on
// completion. Unknown difficulties award nothing.
var ExperienceRewards = map[models.TaskDifficulty]int{
	models.DifficultyEasy:   25,
	models.DifficultyNormal: 100,
	models.DifficultyHard:   250,
}

// Regeneration sweep
const (
	RegenerationBatchSize = 100
	RegenerationPause     = 100 * time.Millisecond
	// RegenerationCronSpec runs the sweep at the top of every hour.
	RegenerationCronSpec = "0 * * * *"
)
