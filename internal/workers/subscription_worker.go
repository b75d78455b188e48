package workers

import (
	"context"
	"time"

	"jobscape_backend/internal/logger"

	"gorm.io/gorm"
)

// SubscriptionWorker marks lapsed paid subscriptions as expired. Expired
// employers keep their tier on record but fail the active-subscription gate
// until they renew.
type SubscriptionWorker struct {
	db *gorm.DB
}

func NewSubscriptionWorker(db *gorm.DB) *SubscriptionWorker {
	return &SubscriptionWorker{db: db}
}

func (w *SubscriptionWorker) Start(ctx context.Context) {
	go w.checkExpiredSubscriptions(ctx)
}

func (w *SubscriptionWorker) checkExpiredSubscriptions(ctx context.Context) {
	ticker := time.NewTicker(6 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("subscription worker stopped")
			return
		case <-ticker.C:
			result := w.db.Exec(`
				UPDATE employers
				SET subscription_status = 'EXPIRED', updated_at = NOW()
				WHERE subscription_status = 'ACTIVE'
				AND subscription_expires_at IS NOT NULL
				AND subscription_expires_at < NOW()
			`)
			if result.Error != nil {
				logger.WorkerLog("subscription", "expire_lapsed", result.Error)
			} else if result.RowsAffected > 0 {
				logger.Info("subscriptions expired", "count", result.RowsAffected)
			}
		}
	}
}
