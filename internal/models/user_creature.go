package models

import (
	"time"
)

// UserCreature records ownership of a species by a user. A species appears
// at most once per user; Shiny never reverts to false once set.
type UserCreature struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_user_species" json:"user_id"`
	SpeciesID uint64    `gorm:"not null;uniqueIndex:idx_user_species" json:"species_id"`
	Amount    int       `gorm:"not null;default:1" json:"amount"`
	Shiny     bool      `gorm:"not null;default:false" json:"shiny"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Species Species `gorm:"foreignKey:SpeciesID" json:"species,omitempty"`
}
