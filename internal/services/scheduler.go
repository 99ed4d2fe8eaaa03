package services

import (
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// SchedulerStatus is the observable state of the regeneration scheduler.
type SchedulerStatus struct {
	IsRunning bool       `json:"is_running"`
	LastRun   *time.Time `json:"last_run"`
}

// RegenerationScheduler triggers the regeneration sweep on a fixed cron
// cadence and guarantees at most one sweep runs at a time within the
// process. Overlapping ticks are dropped, not queued; the next tick
// catches up on backlog.
type RegenerationScheduler struct {
	regen *RegenerationService
	spec  string
	cron  *cron.Cron

	mu      sync.Mutex
	running bool
	lastRun time.Time
}

// NewRegenerationScheduler creates a scheduler that fires on the given
// cron spec (standard 5-field format).
func NewRegenerationScheduler(regen *RegenerationService, spec string) *RegenerationScheduler {
	return &RegenerationScheduler{
		regen: regen,
		spec:  spec,
		cron:  cron.New(),
	}
}

// Start registers the sweep job and starts the cron loop.
func (s *RegenerationScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runOnce); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("Task regeneration scheduler started (%s)", s.spec)
	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish.
func (s *RegenerationScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Task regeneration scheduler stopped")
}

// Status reports whether a sweep is in flight and when the last one started.
func (s *RegenerationScheduler) Status() SchedulerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := SchedulerStatus{IsRunning: s.running}
	if !s.lastRun.IsZero() {
		last := s.lastRun
		status.LastRun = &last
	}
	return status
}

// runOnce executes a single sweep under the overlap guard. The guard is
// cleared even if the sweep panics, so one bad run cannot wedge the
// scheduler permanently.
func (s *RegenerationScheduler) runOnce() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		log.Println("Regeneration already in progress, skipping tick")
		return
	}
	s.running = true
	s.lastRun = time.Now()
	s.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("Regeneration sweep panicked: %v", r)
		}
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	report := s.regen.Run()
	log.Printf("Scheduled regeneration done: %+v", report)
}
