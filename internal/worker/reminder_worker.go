package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/callback-service/internal/service"
)

// StartReminderWorker registers event handlers and runs a periodic sweep that
// logs how many callbacks are due today. The sweep stops when ctx is done.
func StartReminderWorker(ctx context.Context, reminders *service.ReminderService, analytics *service.AnalyticsService, interval time.Duration, logger *zap.Logger) {
	if reminders == nil {
		return
	}
	reminders.RegisterHandlers()

	if analytics == nil || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sweep(ctx, analytics, logger)
			}
		}
	}()
}

func sweep(ctx context.Context, analytics *service.AnalyticsService, logger *zap.Logger) {
	stats, err := analytics.CallbackStats(ctx, nil)
	if err != nil {
		logger.Warn("due-today sweep failed", zap.Error(err))
		return
	}
	if stats.DueToday > 0 {
		logger.Info("callbacks due today", zap.Int("count", stats.DueToday))
	}
}
