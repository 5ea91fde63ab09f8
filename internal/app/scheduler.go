package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// NoticeExpirer снимает с публикации объявления с истёкшим сроком
type NoticeExpirer interface {
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	notices  NoticeExpirer
	interval time.Duration
	now      func() time.Time
	logger   *zap.Logger
	stopChan chan struct{}
	done     chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(notices NoticeExpirer, interval time.Duration, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{
		notices:  notices,
		interval: interval,
		now:      time.Now,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))

	go s.runNoticeExpiryTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт их завершения
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
	<-s.done
}

func (s *Scheduler) runNoticeExpiryTask(ctx context.Context) {
	defer close(s.done)

	// Первый запуск сразу при старте
	s.expireNotices(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expireNotices(ctx)
		case <-s.stopChan:
			s.logger.Info("Notice expiry task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Notice expiry task cancelled")
			return
		}
	}
}

func (s *Scheduler) expireNotices(ctx context.Context) {
	n, err := s.notices.ExpireDue(ctx, s.now())
	if err != nil {
		s.logger.Error("Failed to expire notices", zap.Error(err))
		return
	}

	if n > 0 {
		s.logger.Info("Expired notices deactivated", zap.Int64("count", n))
	}
}
