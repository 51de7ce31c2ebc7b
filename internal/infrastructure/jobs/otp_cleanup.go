package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"keephy.backend/pkg/logger"
	"keephy.backend/pkg/metrics"
)

const defaultOTPCleanupInterval = 15 * time.Minute

type otpCleaner interface {
	ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error)
}

// OTPCleanupJob clears one-time codes whose expiry has passed
type OTPCleanupJob struct {
	repo     otpCleaner
	interval time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

func NewOTPCleanupJob(repo otpCleaner, interval time.Duration) *OTPCleanupJob {
	if interval <= 0 {
		interval = defaultOTPCleanupInterval
	}
	return &OTPCleanupJob{
		repo:     repo,
		interval: interval,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

func (j *OTPCleanupJob) Start(ctx context.Context) {
	logger.Info(ctx, "starting otp cleanup job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "otp cleanup job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "otp cleanup job stopped")
			return
		case <-ticker.C:
			j.clearExpired(ctx)
		}
	}
}

func (j *OTPCleanupJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

func (j *OTPCleanupJob) clearExpired(ctx context.Context) {
	n, err := j.repo.ClearExpiredOTPs(ctx, j.now())
	if err != nil {
		logger.Error(ctx, "failed to clear expired otps", zap.Error(err))
		return
	}
	if n == 0 {
		return
	}
	metrics.OTPCleanupCleared.Add(float64(n))
	logger.Info(ctx, "cleared expired otps", zap.Int64("count", n))
}
