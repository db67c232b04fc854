package schedule

import (
	"context"
	"log/slog"
	"time"
)

// Job is one scheduled trigger: a slot and the work to run when it fires.
// Run never propagates failure to the scheduler; whatever can go wrong is
// converted to a user-visible diagnostic inside the job itself.
type Job struct {
	Name string
	Slot Slot
	Run  func(ctx context.Context)
}

// Scheduler drives a set of jobs, one timer task each.
type Scheduler struct {
	jobs   []Job
	clock  func() time.Time
	logger *slog.Logger
}

func New(jobs []Job, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{jobs: jobs, clock: time.Now, logger: logger}
}

// WithClock replaces the clock used to compute fire times.
func (s *Scheduler) WithClock(clock func() time.Time) *Scheduler {
	s.clock = clock
	return s
}

// Run blocks until ctx is done, firing each job at its slot times. A running
// job is never interrupted mid-flight; cancellation takes effect at the next
// timer wait.
func (s *Scheduler) Run(ctx context.Context) error {
	done := make(chan struct{})
	for _, job := range s.jobs {
		go func(job Job) {
			s.runJob(ctx, job)
			done <- struct{}{}
		}(job)
	}
	for range s.jobs {
		<-done
	}
	return ctx.Err()
}

func (s *Scheduler) runJob(ctx context.Context, job Job) {
	next := job.Slot.Next(s.clock())
	s.logger.Info("Job scheduled", "job", job.Name, "next_fire", next.Format(time.RFC3339))

	timer := time.NewTimer(time.Until(next))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			s.logger.Info("Job firing", "job", job.Name, "slot", next.Format(time.RFC3339))
			job.Run(ctx)
			// Next slot from the current clock, not the slot just
			// served: slots missed while the job ran (or while the
			// process was paused) are skipped, not replayed.
			next = job.Slot.Next(s.clock())
			s.logger.Info("Job rescheduled", "job", job.Name, "next_fire", next.Format(time.RFC3339))
			timer.Reset(time.Until(next))
		}
	}
}
