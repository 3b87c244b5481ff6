package poll

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"cvp/internal/platform/logging"
)

const DefaultInterval = 30 * time.Second

// Scheduler re-runs Fetch on a fixed interval until stopped. A failed fetch
// is logged and the loop waits for the next tick. With MaxBackoff set,
// consecutive failures double the wait up to that cap.
type Scheduler struct {
	Name       string
	Interval   time.Duration
	MaxBackoff time.Duration
	Immediate  bool
	Fetch      func(ctx context.Context) error
	Logger     *slog.Logger
}

// Start launches the loop. The returned stop cancels it and blocks until the
// goroutine has exited; it is safe to call more than once.
func (s Scheduler) Start(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	logger := logging.OrDiscard(s.Logger)
	if s.Interval <= 0 {
		s.Interval = DefaultInterval
	}

	go func() {
		defer close(done)
		failures := 0
		if s.Immediate {
			failures = s.run(ctx, logger, failures)
		}
		timer := time.NewTimer(s.wait(failures))
		defer timer.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
				failures = s.run(ctx, logger, failures)
				timer.Reset(s.wait(failures))
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}

func (s Scheduler) run(ctx context.Context, logger *slog.Logger, failures int) int {
	if s.Fetch == nil || ctx.Err() != nil {
		return failures
	}
	if err := s.Fetch(ctx); err != nil {
		if ctx.Err() != nil {
			return failures
		}
		failures++
		logger.Warn("poll fetch failed", "poller", s.Name, "failures", failures, "err", err)
		return failures
	}
	return 0
}

func (s Scheduler) wait(failures int) time.Duration {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	if s.MaxBackoff <= 0 || failures == 0 {
		return interval
	}
	wait := interval
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= s.MaxBackoff {
			return s.MaxBackoff
		}
	}
	return wait
}
