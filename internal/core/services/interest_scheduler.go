package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	portssvc "github.com/SscSPs/bank_account_app/internal/core/ports/services"
)

// InterestScheduler runs PayGlobalInterest on a fixed interval in the background.
type InterestScheduler struct {
	BaseService
	batch    portssvc.InterestBatchSvc
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewInterestScheduler creates a scheduler. An interval of zero disables it.
func NewInterestScheduler(batch portssvc.InterestBatchSvc, interval time.Duration) *InterestScheduler {
	return &InterestScheduler{batch: batch, interval: interval}
}

// Start launches the batch loop. It is a no-op when disabled or already running.
// The loop ends when ctx is cancelled or Stop is called.
func (s *InterestScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.interval <= 0 {
		s.LogInfo(ctx, "Interest scheduler disabled")
		return
	}
	if s.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(runCtx, s.done)

	s.LogInfo(ctx, "Interest scheduler started", slog.Duration("interval", s.interval))
}

// Stop cancels the loop and waits for an in-flight batch to finish.
func (s *InterestScheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.LogInfo(context.Background(), "Interest scheduler stopped")
}

func (s *InterestScheduler) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.batch.PayGlobalInterest(ctx); err != nil && ctx.Err() == nil {
				s.LogError(ctx, err, "Interest batch aborted")
			}
		}
	}
}
