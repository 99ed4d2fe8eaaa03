package models

import (
	"time"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Experience   int       `gorm:"not null;default:0" json:"experience"`
	Level        int       `gorm:"not null;default:1" json:"level"`
	// NextLevelExperience is the threshold to advance from the current
	// level. Invariant: 0 <= Experience < NextLevelExperience.
	NextLevelExperience int       `gorm:"not null;default:100" json:"next_level_experience"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	// Relations
	Tasks     []Task         `gorm:"foreignKey:UserID" json:"-"`
	Creatures []UserCreature `gorm:"foreignKey:UserID" json:"-"`
}
