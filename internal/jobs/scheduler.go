// Package jobs runs the application's recurring background tasks.
package jobs

import (
	"time"

	"github.com/go-co-op/gocron"

	"github.com/dmello/typetrack/internal/logger"
	"github.com/dmello/typetrack/internal/session"
)

// Scheduler manages scheduled tasks for the application. Currently the only
// task is the session sweep, which evicts typing sessions idle past the TTL.
type Scheduler struct {
	scheduler *gocron.Scheduler
	sessions  *session.Store
	log       *logger.Logger
}

// New creates a new scheduler instance
func New(sessions *session.Store) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		sessions:  sessions,
		log:       logger.Default().WithPrefix("scheduler"),
	}
}

// Start begins running all scheduled tasks in the background.
func (s *Scheduler) Start(sweepInterval time.Duration) error {
	if _, err := s.scheduler.Every(sweepInterval).Do(s.sweepSessions); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	s.log.Info("scheduler started: sweep_interval=%s", sweepInterval)
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) sweepSessions() {
	if evicted := s.sessions.Sweep(); evicted > 0 {
		s.log.Info("swept %d expired sessions, %d remaining", evicted, s.sessions.Len())
	}
}
