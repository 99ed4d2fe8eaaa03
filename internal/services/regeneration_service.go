package services

import (
	"fmt"
	"log"
	"time"

	"github.com/habitquest/habit-quest-api/internal/models"
	"github.com/habitquest/habit-quest-api/internal/repository"
	"github.com/habitquest/habit-quest-api/internal/timeutil"
)

// RegenerationReport aggregates the counters of one sweep.
type RegenerationReport struct {
	Processed   int `json:"processed"`
	Regenerated int `json:"regenerated"`
	Errors      int `json:"errors"`
}

// RegenerationService sweeps recurring tasks whose validity window has
// lapsed and replaces each with a fresh PENDING successor. Failures are
// isolated per task: thousands of independent users are processed per run
// and one corrupt record must not block the rest.
type RegenerationService struct {
	taskRepo   repository.TaskRepository
	batchSize  int
	batchPause time.Duration
	now        func() time.Time
}

// NewRegenerationService creates a new RegenerationService
func NewRegenerationService(taskRepo repository.TaskRepository, batchSize int, batchPause time.Duration) *RegenerationService {
	return &RegenerationService{
		taskRepo:   taskRepo,
		batchSize:  batchSize,
		batchPause: batchPause,
		now:        time.Now,
	}
}

// Run executes one full sweep. A batch-level fetch error aborts the
// remaining sweep for this run; untouched tasks remain candidates for the
// next one. Per-task errors are counted and skipped.
func (s *RegenerationService) Run() RegenerationReport {
	var report RegenerationReport
	offset := 0

	log.Println("Starting expired task regeneration...")

	for {
		batch, err := s.taskRepo.ListRegenerationCandidates(s.batchSize, offset)
		if err != nil {
			log.Printf("Failed to fetch regeneration batch at offset %d: %v", offset, err)
			report.Errors++
			break
		}
		if len(batch) == 0 {
			break
		}

		for i := range batch {
			regenerated, err := s.regenerate(&batch[i])
			if err != nil {
				log.Printf("Failed to regenerate task %d: %v", batch[i].ID, err)
				report.Errors++
				continue
			}
			if regenerated {
				report.Regenerated++
			}
		}
		report.Processed += len(batch)

		if len(batch) < s.batchSize {
			break
		}
		offset += s.batchSize

		// Throttle sustained load on the store between pages.
		time.Sleep(s.batchPause)
	}

	log.Printf("Regeneration finished: %d processed, %d regenerated, %d errors",
		report.Processed, report.Regenerated, report.Errors)

	return report
}

// regenerate checks one candidate and, if its window has lapsed, creates
// the successor first and then flips the predecessor out of the candidate
// set. The two writes are not transactional: a crash in between can leave
// one duplicate successor, which the next sweep will not multiply because
// the predecessor's new status excludes it from the candidate query.
func (s *RegenerationService) regenerate(task *models.Task) (bool, error) {
	if task.DateEnd == nil {
		return false, nil
	}

	loc, err := time.LoadLocation(task.Timezone)
	if err != nil {
		return false, fmt.Errorf("invalid timezone %q: %w", task.Timezone, err)
	}

	if !timeutil.IsExpired(*task.DateEnd, loc, s.now()) {
		return false, nil
	}

	if !task.Type.IsRecurring() {
		return false, fmt.Errorf("task type %q is not regenerable", task.Type)
	}

	start, end, err := computeTaskWindow(task.Type, loc, s.now())
	if err != nil {
		return false, err
	}

	successor := &models.Task{
		Title:       task.Title,
		Description: task.Description,
		Type:        task.Type,
		Status:      models.TaskStatusPending,
		Difficulty:  task.Difficulty,
		DateStart:   start,
		DateEnd:     end,
		Timezone:    task.Timezone,
		UserID:      task.UserID,
	}
	if err := s.taskRepo.Create(successor); err != nil {
		return false, fmt.Errorf("failed to create successor: %w", err)
	}

	// COMPLETED work counts permanently; a PENDING window simply lapsed.
	newStatus := models.TaskStatusExpired
	if task.Status == models.TaskStatusCompleted {
		newStatus = models.TaskStatusTrueCompleted
	}
	if err := s.taskRepo.UpdateStatus(task.ID, newStatus); err != nil {
		return false, fmt.Errorf("failed to update predecessor status: %w", err)
	}

	return true, nil
}
