package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/habitquest/habit-quest-api/internal/errors"
	"github.com/habitquest/habit-quest-api/internal/repository"
	"github.com/habitquest/habit-quest-api/internal/services"
)

// RegenerationHandler exposes the state of the regeneration scheduler.
type RegenerationHandler struct {
	scheduler *services.RegenerationScheduler
	taskRepo  repository.TaskRepository
}

// NewRegenerationHandler creates a new RegenerationHandler.
func NewRegenerationHandler(scheduler *services.RegenerationScheduler, taskRepo repository.TaskRepository) *RegenerationHandler {
	return &RegenerationHandler{
		scheduler: scheduler,
		taskRepo:  taskRepo,
	}
}

// Status reports whether a sweep is in flight, when the last one started,
// and how many tasks sit in each status
func (h *RegenerationHandler) Status(c *gin.Context) {
	counts, err := h.taskRepo.CountByStatus()
	if err != nil {
		apierrors.InternalError(c, "Failed to count tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scheduler":   h.scheduler.Status(),
		"task_counts": counts,
	})
}
