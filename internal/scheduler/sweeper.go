package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is one periodic housekeeping task.
type Job struct {
	Name string
	Run  func()
}

// Sweeper runs in-memory housekeeping (expired sessions, rate limit windows,
// stale gallery listings) on a fixed interval.
type Sweeper struct {
	interval time.Duration
	jobs     []Job
	logger   *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewSweeper(interval time.Duration, logger *zap.Logger, jobs ...Job) *Sweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sweeper{interval: interval, jobs: jobs, logger: logger}
}

// RunOnce runs every job immediately.
func (s *Sweeper) RunOnce() {
	for _, job := range s.jobs {
		job.Run()
		s.logger.Debug("sweep", zap.String("job", job.Name))
	}
}

// Run sweeps every interval until ctx is done. It returns nil on cancellation
// so it can sit in an errgroup next to the server.
func (s *Sweeper) Run(ctx context.Context) error {
	s.logger.Info("sweeper started", zap.Duration("interval", s.interval), zap.Int("jobs", len(s.jobs)))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper stopped")
			return nil
		case <-ticker.C:
			s.RunOnce()
		}
	}
}

// Start runs the sweeper in the background until Stop.
func (s *Sweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		_ = s.Run(ctx)
	}(s.done)
}

// Stop cancels a sweeper started with Start and waits for it to exit.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}
