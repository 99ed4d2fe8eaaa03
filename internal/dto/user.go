package dto

import (
	"github.com/habitquest/habit-quest-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID                  uint64 `json:"id"`
	Username            string `json:"username"`
	Experience          int    `json:"experience"`
	Level               int    `json:"level"`
	NextLevelExperience int    `json:"next_level_experience"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:                  user.ID,
		Username:            user.Username,
		Experience:          user.Experience,
		Level:               user.Level,
		NextLevelExperience: user.NextLevelExperience,
	}
}
