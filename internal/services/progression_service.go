package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/habitquest/habit-quest-api/internal/constants"
	"github.com/habitquest/habit-quest-api/internal/models"
	"github.com/habitquest/habit-quest-api/internal/repository"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// EvolutionEvent describes one evolution unlock resolved during a
// level-up, for the caller to surface to the user.
type EvolutionEvent struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Shiny     bool   `json:"shiny"`
	SpriteURL string `json:"sprite_url"`
}

// ProgressionService converts completed-task difficulty into experience,
// applies the leveling curve and resolves evolution unlocks.
type ProgressionService struct {
	userRepo     repository.UserRepository
	creatureRepo repository.CreatureRepository
}

// NewProgressionService creates a new ProgressionService
func NewProgressionService(userRepo repository.UserRepository, creatureRepo repository.CreatureRepository) *ProgressionService {
	return &ProgressionService{
		userRepo:     userRepo,
		creatureRepo: creatureRepo,
	}
}

// GainExperience awards the experience for a completed difficulty, levels
// the user up as many times as the curve allows, and, if at least one
// level was gained, resolves evolution unlocks. The returned event list is
// best-effort: an evolution write failure is logged and the event dropped,
// the level-up itself is never rolled back.
func (s *ProgressionService) GainExperience(userID uint64, difficulty models.TaskDifficulty) (bool, []EvolutionEvent, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil, ErrUserNotFound
		}
		return false, nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.Experience += constants.ExperienceRewards[difficulty]

	leveledUp := false
	for user.Experience >= user.NextLevelExperience {
		user.Experience -= user.NextLevelExperience
		user.Level++
		user.NextLevelExperience = int(float64(user.NextLevelExperience) * constants.LevelGrowthFactor)
		leveledUp = true
	}

	if err := s.userRepo.Update(user); err != nil {
		return false, nil, fmt.Errorf("failed to update user progression: %w", err)
	}

	if !leveledUp {
		return false, nil, nil
	}

	events, err := s.resolveEvolutions(user)
	if err != nil {
		// The level is already persisted; the caller still gets it.
		log.Printf("evolution resolution failed for user %d: %v", user.ID, err)
		return true, nil, nil
	}

	return true, events, nil
}

// resolveEvolutions walks the user's ownership set against the species
// definitions and unlocks every evolution whose level threshold the user
// now meets. Species and ownership are read once up front so the pass is
// bounded and consistent within one invocation.
func (s *ProgressionService) resolveEvolutions(user *models.User) ([]EvolutionEvent, error) {
	species, err := s.creatureRepo.ListSpecies()
	if err != nil {
		return nil, fmt.Errorf("failed to list species: %w", err)
	}

	owned, err := s.creatureRepo.ListOwned(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned creatures: %w", err)
	}

	speciesByID := make(map[uint64]models.Species, len(species))
	speciesByName := make(map[string]models.Species, len(species))
	for _, sp := range species {
		speciesByID[sp.ID] = sp
		speciesByName[sp.Name] = sp
	}

	ownedBySpeciesID := make(map[uint64]*models.UserCreature, len(owned))
	for i := range owned {
		ownedBySpeciesID[owned[i].SpeciesID] = &owned[i]
	}

	var events []EvolutionEvent
	for i := range owned {
		source := &owned[i]

		sp, ok := speciesByID[source.SpeciesID]
		if !ok || sp.EvolvesInto == nil || sp.EvolutionLevel == nil {
			continue
		}
		if user.Level < *sp.EvolutionLevel {
			continue
		}

		target, ok := speciesByName[*sp.EvolvesInto]
		if !ok {
			continue
		}

		existing := ownedBySpeciesID[target.ID]
		switch {
		case existing == nil:
			record := &models.UserCreature{
				UserID:    user.ID,
				SpeciesID: target.ID,
				Amount:    1,
				Shiny:     source.Shiny,
			}
			if err := s.creatureRepo.CreateOwnership(record); err != nil {
				log.Printf("failed to create evolution %s -> %s for user %d: %v", sp.Name, target.Name, user.ID, err)
				continue
			}
			ownedBySpeciesID[target.ID] = record
			events = append(events, newEvolutionEvent(sp, target, record.Shiny))

		case source.Shiny && !existing.Shiny:
			if err := s.creatureRepo.SetShiny(existing.ID); err != nil {
				log.Printf("failed to upgrade %s to shiny for user %d: %v", target.Name, user.ID, err)
				continue
			}
			existing.Shiny = true
			events = append(events, newEvolutionEvent(sp, target, true))
		}
	}

	return events, nil
}

func newEvolutionEvent(from, to models.Species, shiny bool) EvolutionEvent {
	sprite := to.SpriteURL
	if shiny {
		sprite = to.ShinySpriteURL
	}
	return EvolutionEvent{
		From:      from.Name,
		To:        to.Name,
		Shiny:     shiny,
		SpriteURL: sprite,
	}
}
