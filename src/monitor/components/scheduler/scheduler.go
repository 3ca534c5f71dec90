package scheduler

import (
	"context"
	"log"
	"sync"
	"time"
)

const (
	// DefaultIntervalMinutes is used when start is called with no interval.
	DefaultIntervalMinutes = 30
	// cycleTimeout bounds one full sweep so a stuck source cannot wedge the
	// ticker loop.
	cycleTimeout = 25 * time.Minute
)

// Monitor is the sweep surface the scheduler drives.
type Monitor interface {
	MonitorAll(ctx context.Context) error
	MonitorCampaign(ctx context.Context, campaignID uint64) error
}

// Status reports the scheduler state; IntervalMinutes is set only while
// running.
type Status struct {
	IsRunning       bool `json:"isRunning"`
	IntervalMinutes int  `json:"intervalMinutes,omitempty"`
}

// Scheduler owns the recurring monitoring lifecycle. All state sits behind a
// mutex; at most one monitoring cycle is active at a time.
type Scheduler struct {
	monitor Monitor

	mu       sync.Mutex
	running  bool
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}

	// cycleMu serializes every engine entry point that touches sources or
	// storage.
	cycleMu sync.Mutex
}

func New(monitor Monitor) *Scheduler {
	return &Scheduler{monitor: monitor}
}

// Start arms the recurring monitor and kicks off one cycle immediately.
// Calling it on a running scheduler logs and returns.
func (s *Scheduler) Start(intervalMinutes int) {
	if intervalMinutes <= 0 {
		intervalMinutes = DefaultIntervalMinutes
	}
	s.start(time.Duration(intervalMinutes) * time.Minute)
}

func (s *Scheduler) start(interval time.Duration) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		log.Println("scheduler: already running")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.running = true
	s.interval = interval
	s.cancel = cancel
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	log.Printf("scheduler: starting with %s intervals", interval)

	go func() {
		defer close(done)
		s.RunCycle(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.RunCycle(ctx)
			}
		}
	}()
}

// Stop cancels the ticker loop and any in-flight cycle, then waits for the
// loop to exit. Stopping a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.cancel()
	done := s.done
	s.mu.Unlock()

	<-done
	log.Println("scheduler: stopped")
}

// GetStatus reports whether the scheduler runs and at which interval.
func (s *Scheduler) GetStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{IsRunning: s.running}
	if s.running {
		st.IntervalMinutes = int(s.interval / time.Minute)
	}
	return st
}

// RunCycle executes one full sweep. A straggling timer firing after Stop
// no-ops; cycle errors are logged and never stop future cycles.
func (s *Scheduler) RunCycle(ctx context.Context) {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	if !running {
		return
	}

	s.cycleMu.Lock()
	defer s.cycleMu.Unlock()

	log.Println("scheduler: starting monitoring cycle")
	start := time.Now()

	cctx, cancel := context.WithTimeout(ctx, cycleTimeout)
	defer cancel()

	if err := s.monitor.MonitorAll(cctx); err != nil {
		log.Printf("scheduler: monitoring cycle: %v", err)
		return
	}
	log.Printf("scheduler: monitoring cycle completed in %s", time.Since(start).Round(time.Millisecond))
}

// MonitorOne runs a single-campaign check outside the timer cadence, behind
// the same execution lock as scheduled cycles.
func (s *Scheduler) MonitorOne(ctx context.Context, campaignID uint64) error {
	s.cycleMu.Lock()
	defer s.cycleMu.Unlock()

	log.Printf("scheduler: manually monitoring campaign %d", campaignID)
	return s.monitor.MonitorCampaign(ctx, campaignID)
}
