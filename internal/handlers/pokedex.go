package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/habitquest/habit-quest-api/internal/dto"
	apierrors "github.com/habitquest/habit-quest-api/internal/errors"
	"github.com/habitquest/habit-quest-api/internal/middleware"
	"github.com/habitquest/habit-quest-api/internal/repository"
)

// PokedexHandler serves the current user's creature collection.
type PokedexHandler struct {
	creatureRepo repository.CreatureRepository
}

// NewPokedexHandler creates a new PokedexHandler.
func NewPokedexHandler(creatureRepo repository.CreatureRepository) *PokedexHandler {
	return &PokedexHandler{
		creatureRepo: creatureRepo,
	}
}

// ListOwned returns every species the current user owns
func (h *PokedexHandler) ListOwned(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	owned, err := h.creatureRepo.ListOwned(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch pokedex")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pokedex": dto.ToPokedexEntries(owned),
	})
}
