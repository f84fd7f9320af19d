package rubikit

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gotd/td/clock"
)

const (
	jobPending int32 = iota
	jobRunning
	jobCancelled
)

// Job is a function scheduled to run once after a delay.
type Job struct {
	id     string
	timer  clock.Timer
	state  atomic.Int32
	cancel chan struct{}
	done   chan struct{}
}

// ID returns the job's unique identifier.
func (j *Job) ID() string {
	return j.id
}

// Cancel stops the job if it has not started yet and reports whether it did.
func (j *Job) Cancel() bool {
	if !j.state.CompareAndSwap(jobPending, jobCancelled) {
		return false
	}
	j.timer.Stop()
	close(j.cancel)
	return true
}

// Done is closed once the job has run or was cancelled.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// scheduler tracks pending jobs so they can be cancelled together.
type scheduler struct {
	mu    sync.Mutex
	jobs  map[string]*Job
	clock clock.Clock
	log   *slog.Logger
}

func newScheduler(c clock.Clock, log *slog.Logger) *scheduler {
	return &scheduler{
		jobs:  make(map[string]*Job),
		clock: c,
		log:   log,
	}
}

func (s *scheduler) schedule(ctx context.Context, delay time.Duration, fn func(ctx context.Context)) *Job {
	j := &Job{
		id:     uuid.NewString(),
		timer:  s.clock.Timer(delay),
		cancel: make(chan struct{}),
		done:   make(chan struct{}),
	}

	s.mu.Lock()
	s.jobs[j.id] = j
	s.mu.Unlock()

	go func() {
		defer close(j.done)
		defer s.remove(j.id)

		select {
		case <-j.cancel:
			return
		case <-ctx.Done():
			j.Cancel()
			return
		case <-j.timer.C():
		}

		if !j.state.CompareAndSwap(jobPending, jobRunning) {
			return
		}
		s.run(ctx, j, fn)
	}()

	return j
}

func (s *scheduler) run(ctx context.Context, j *Job, fn func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("job panicked", "job_id", j.id, "panic", r, "stack", string(debug.Stack()))
		}
	}()
	fn(ctx)
}

func (s *scheduler) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, id)
}

// stop cancels all pending jobs.
func (s *scheduler) stop() {
	s.mu.Lock()
	jobs := make([]*Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		jobs = append(jobs, j)
	}
	s.mu.Unlock()

	for _, j := range jobs {
		j.Cancel()
	}
}

// pending returns the number of jobs that have not finished.
func (s *scheduler) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Schedule runs fn once after delay. The job is cancelled if ctx is done
// first, if Job.Cancel is called, or when Run returns.
func (b *Bot) Schedule(ctx context.Context, delay time.Duration, fn func(ctx context.Context)) *Job {
	return b.jobs.schedule(ctx, delay, fn)
}
