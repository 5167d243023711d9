package plan

import (
	"context"
	"fmt"

	"github.com/wonny/drip/internal/contracts"
	"github.com/wonny/drip/internal/marketdata"
	"github.com/wonny/drip/internal/store"
	"github.com/wonny/drip/internal/trend"
	"github.com/wonny/drip/pkg/logger"
)

// DefaultUserID identifies the single planning profile. Multi-user support
// would thread a real ID through the API instead.
const DefaultUserID = "default"

// Service orchestrates a planning run end to end: configuration, market
// data, generation, persistence.
// ⭐ SSOT: 계획 실행 오케스트레이션은 여기서만
type Service struct {
	generator  *Generator
	fetcher    *marketdata.Fetcher
	configs    *store.ConfigRepository
	snapshots  *store.SnapshotRepository
	plans      *store.PlanRepository
	scores     *store.ScoreRepository
	history    *trend.ScoreHistory
	historyCap int
	logger     *logger.Logger
}

// NewService wires the planning service
func NewService(
	generator *Generator,
	fetcher *marketdata.Fetcher,
	configs *store.ConfigRepository,
	snapshots *store.SnapshotRepository,
	plans *store.PlanRepository,
	scores *store.ScoreRepository,
	history *trend.ScoreHistory,
	historyCap int,
	log *logger.Logger,
) *Service {
	return &Service{
		generator:  generator,
		fetcher:    fetcher,
		configs:    configs,
		snapshots:  snapshots,
		plans:      plans,
		scores:     scores,
		history:    history,
		historyCap: historyCap,
		logger:     log,
	}
}

// Hydrate reloads the in-memory score history from the archive. Called once
// at startup so trend analysis survives restarts.
func (s *Service) Hydrate(ctx context.Context) error {
	codes, err := s.scores.Codes(ctx)
	if err != nil {
		return fmt.Errorf("hydrate score history: %w", err)
	}

	for _, code := range codes {
		points, err := s.scores.RecentHistory(ctx, code, s.historyCap)
		if err != nil {
			return fmt.Errorf("hydrate score history for %s: %w", code, err)
		}
		s.history.Hydrate(code, points)
	}

	s.logger.WithField("codes", len(codes)).Info("Score history hydrated")
	return nil
}

// Refresh fetches fresh snapshots for every configured asset and persists
// them. Codes whose sources fail are skipped.
func (s *Service) Refresh(ctx context.Context) (map[string]*contracts.MarketSnapshot, error) {
	cfg, err := s.configs.Get(ctx, DefaultUserID)
	if err != nil {
		return nil, fmt.Errorf("load config for refresh: %w", err)
	}

	snapshots := s.fetcher.SnapshotAll(ctx, assetCodes(cfg))
	for code, snapshot := range snapshots {
		if err := s.snapshots.Upsert(ctx, snapshot); err != nil {
			s.logger.WithError(err).WithField("code", code).Warn("Snapshot persist failed")
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"requested": len(cfg.Assets),
		"fetched":   len(snapshots),
	}).Info("Market data refreshed")

	return snapshots, nil
}

// GeneratePlan runs one full planning cycle and persists the result
func (s *Service) GeneratePlan(ctx context.Context) (*contracts.InvestmentPlan, error) {
	cfg, err := s.configs.Get(ctx, DefaultUserID)
	if err != nil {
		return nil, fmt.Errorf("load config for planning: %w", err)
	}

	observations := s.fetcher.SnapshotAll(ctx, assetCodes(cfg))
	for code, snapshot := range observations {
		if err := s.snapshots.Upsert(ctx, snapshot); err != nil {
			s.logger.WithError(err).WithField("code", code).Warn("Snapshot persist failed")
		}
	}

	plan, err := s.generator.Generate(cfg, observations)
	if err != nil {
		return nil, err
	}

	if err := s.plans.Save(ctx, plan); err != nil {
		return nil, fmt.Errorf("persist plan: %w", err)
	}

	// Archive the run's scores so the next restart can rebuild trend state
	for code, report := range plan.TrendAnalysis {
		if err := s.scores.Append(ctx, code, plan.GeneratedAt, report.LatestScore); err != nil {
			s.logger.WithError(err).WithField("code", code).Warn("Score archive failed")
		}
	}

	return plan, nil
}

// LatestPlan returns the most recently persisted plan
func (s *Service) LatestPlan(ctx context.Context) (*contracts.InvestmentPlan, error) {
	return s.plans.Latest(ctx)
}

func assetCodes(cfg *contracts.UserConfig) []string {
	codes := make([]string, 0, len(cfg.Assets))
	for _, asset := range cfg.Assets {
		codes = append(codes, asset.Code)
	}
	return codes
}
