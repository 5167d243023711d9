package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/wonny/drip/internal/plan"
	"github.com/wonny/drip/internal/store"
	"github.com/wonny/drip/pkg/logger"
)

// MarketRefreshJob refreshes every configured asset's snapshot daily
// ⭐ SSOT: 시세 갱신 스케줄은 이 Job에서만
type MarketRefreshJob struct {
	service *plan.Service
	logger  *logger.Logger
}

// NewMarketRefreshJob creates a new market refresh job
func NewMarketRefreshJob(service *plan.Service, log *logger.Logger) *MarketRefreshJob {
	return &MarketRefreshJob{
		service: service,
		logger:  log,
	}
}

// Name returns the job name
func (j *MarketRefreshJob) Name() string {
	return "market_refresh"
}

// Schedule returns the cron schedule (every weekday at 8:30 AM, with seconds)
func (j *MarketRefreshJob) Schedule() string {
	return "0 30 8 * * 1-5"
}

// Run refreshes market data for all configured assets
func (j *MarketRefreshJob) Run(ctx context.Context) error {
	snapshots, err := j.service.Refresh(ctx)
	if errors.Is(err, store.ErrNotFound) {
		// Nothing configured yet; not a failure worth retrying
		j.logger.Info("Market refresh skipped, no configuration saved")
		return nil
	}
	if err != nil {
		return fmt.Errorf("market refresh: %w", err)
	}

	j.logger.WithField("refreshed", len(snapshots)).Info("Scheduled market refresh done")
	return nil
}
