package dto

import (
	"github.com/habitquest/habit-quest-api/internal/models"
)

// PokedexEntryDTO represents one owned species in API responses
type PokedexEntryDTO struct {
	SpeciesID      uint64 `json:"species_id"`
	PokedexNumber  int    `json:"pokedex_number"`
	Name           string `json:"name"`
	Amount         int    `json:"amount"`
	Shiny          bool   `json:"shiny"`
	SpriteURL      string `json:"sprite_url"`
	ShinySpriteURL string `json:"shiny_sprite_url,omitempty"`
}

// ToPokedexEntries converts ownership records (with species preloaded) to
// their response shape
func ToPokedexEntries(owned []models.UserCreature) []PokedexEntryDTO {
	entries := make([]PokedexEntryDTO, len(owned))
	for i, record := range owned {
		entries[i] = PokedexEntryDTO{
			SpeciesID:     record.SpeciesID,
			PokedexNumber: record.Species.PokedexNumber,
			Name:          record.Species.Name,
			Amount:        record.Amount,
			Shiny:         record.Shiny,
			SpriteURL:     record.Species.SpriteURL,
		}
		if record.Shiny {
			entries[i].ShinySpriteURL = record.Species.ShinySpriteURL
		}
	}
	return entries
}
