package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CacheWarmer reloads a cached dataset and reports how many entries it holds
type CacheWarmer interface {
	WarmCache(ctx context.Context) (int, error)
}

// Scheduler runs background jobs
type Scheduler struct {
	warmer   CacheWarmer
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewScheduler(warmer CacheWarmer, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		warmer:   warmer,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start launches the jobs in the background. A non-positive interval disables cache warming.
func (s *Scheduler) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info("Cache warming disabled")
		return
	}

	s.logger.Info("Starting background scheduler", zap.Duration("cache_warm_interval", s.interval))

	s.wg.Add(1)
	go s.runCacheWarmTask(ctx)
}

// Stop ends the jobs and waits for them to return
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	s.wg.Wait()
}

func (s *Scheduler) runCacheWarmTask(ctx context.Context) {
	defer s.wg.Done()

	// first run right at startup
	s.warmCache(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.warmCache(ctx)
		case <-s.stopChan:
			s.logger.Info("Cache warm task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Cache warm task cancelled")
			return
		}
	}
}

func (s *Scheduler) warmCache(ctx context.Context) {
	started := time.Now()

	count, err := s.warmer.WarmCache(ctx)
	if err != nil {
		s.logger.Error("Failed to warm college cache", zap.Error(err))
		return
	}

	s.logger.Info("College cache warmed",
		zap.Int("colleges", count),
		zap.Duration("took", time.Since(started)),
	)
}
