package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Scheduler runs a task at regular intervals on a background goroutine
type Scheduler struct {
	clock    clock.Clock
	interval time.Duration
	task     func()
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
}

// New creates a Scheduler driven by the wall clock
func New(interval time.Duration, task func()) *Scheduler {
	return NewWithClock(clock.New(), interval, task)
}

// NewWithClock creates a Scheduler driven by clk
func NewWithClock(clk clock.Clock, interval time.Duration, task func()) *Scheduler {
	return &Scheduler{
		clock:    clk,
		interval: interval,
		task:     task,
	}
}

// Start begins executing the task at the configured interval.
// The first run happens one interval after Start.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.running = true

	ticker := s.clock.Ticker(s.interval)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.task()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop terminates the task loop and waits for an in-flight run to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	s.wg.Wait()
	s.running = false
}

// IsRunning returns true if the task loop is active
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
