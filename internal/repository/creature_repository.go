package repository

import (
	"github.com/habitquest/habit-quest-api/internal/models"
	"gorm.io/gorm"
)

// GormCreatureRepository is a GORM implementation of CreatureRepository
type GormCreatureRepository struct {
	db *gorm.DB
}

// NewCreatureRepository creates a new CreatureRepository
func NewCreatureRepository(db *gorm.DB) CreatureRepository {
	return &GormCreatureRepository{db: db}
}

// ListSpecies returns every species definition
func (r *GormCreatureRepository) ListSpecies() ([]models.Species, error) {
	var species []models.Species
	if err := r.db.Order("pokedex_number ASC").Find(&species).Error; err != nil {
		return nil, err
	}
	return species, nil
}

// FindSpeciesByPokedexNumber finds one species by its pokedex number
func (r *GormCreatureRepository) FindSpeciesByPokedexNumber(number int) (*models.Species, error) {
	var species models.Species
	if err := r.db.Where("pokedex_number = ?", number).First(&species).Error; err != nil {
		return nil, err
	}
	return &species, nil
}

// ListOwned returns a user's ownership records with species preloaded
func (r *GormCreatureRepository) ListOwned(userID uint64) ([]models.UserCreature, error) {
	var owned []models.UserCreature
	err := r.db.
		Preload("Species").
		Where("user_id = ?", userID).
		Find(&owned).Error
	if err != nil {
		return nil, err
	}
	return owned, nil
}

// CreateOwnership creates a new ownership record
func (r *GormCreatureRepository) CreateOwnership(record *models.UserCreature) error {
	return r.db.Create(record).Error
}

// SetShiny marks an ownership record as shiny. Shininess is monotonic:
// there is no reverse operation.
func (r *GormCreatureRepository) SetShiny(id uint64) error {
	return r.db.Model(&models.UserCreature{}).Where("id = ?", id).Update("shiny", true).Error
}
