package models

import (
	"time"
)

// Species is a collectible creature definition. EvolvesInto names the
// evolved form (by species name) and EvolutionLevel the user level that
// unlocks it; both are nil for species without an evolution.
type Species struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	PokedexNumber  int       `gorm:"uniqueIndex;not null" json:"pokedex_number"`
	Name           string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	SpriteURL      string    `gorm:"type:varchar(255)" json:"sprite_url"`
	ShinySpriteURL string    `gorm:"type:varchar(255)" json:"shiny_sprite_url"`
	EvolvesInto    *string   `gorm:"type:varchar(100)" json:"evolves_into"`
	EvolutionLevel *int      `json:"evolution_level"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
