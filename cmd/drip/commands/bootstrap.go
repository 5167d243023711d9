package commands

import (
	"context"
	"fmt"

	"github.com/wonny/drip/internal/allocation"
	"github.com/wonny/drip/internal/marketdata"
	"github.com/wonny/drip/internal/plan"
	"github.com/wonny/drip/internal/scoring"
	"github.com/wonny/drip/internal/store"
	"github.com/wonny/drip/internal/strategy"
	"github.com/wonny/drip/internal/trend"
	"github.com/wonny/drip/internal/tuning"
	"github.com/wonny/drip/pkg/config"
	"github.com/wonny/drip/pkg/database"
	"github.com/wonny/drip/pkg/logger"
	"github.com/wonny/drip/pkg/redis"
)

// app bundles the wired components every command starts from
type app struct {
	cfg    *config.Config
	log    *logger.Logger
	db     *database.DB
	redis  *redis.Client
	tuning *tuning.Tuning

	configs   *store.ConfigRepository
	snapshots *store.SnapshotRepository
	plans     *store.PlanRepository
	scoreRepo *store.ScoreRepository

	scoreHistory *trend.ScoreHistory
	analyzer     *trend.Analyzer
	fetcher      *marketdata.Fetcher
	service      *plan.Service
}

// bootstrap loads config and wires the full application graph.
// The caller must call close() when done.
func bootstrap(ctx context.Context) (*app, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if verbose {
		cfg.LogLevel = "debug"
	}
	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := store.EnsureSchema(ctx, db.Pool); err != nil {
		db.Close()
		return nil, nil, err
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}

	tun, err := tuning.Load(cfg.Planner.TuningFile)
	if err != nil {
		db.Close()
		redisClient.Close()
		return nil, nil, fmt.Errorf("load tuning: %w", err)
	}

	configs := store.NewConfigRepository(db.Pool)
	snapshots := store.NewSnapshotRepository(db.Pool)
	plans := store.NewPlanRepository(db.Pool)
	scoreRepo := store.NewScoreRepository(db.Pool)

	scoreHistory := trend.NewScoreHistory(tun.ScoreHistoryCap)
	analyzer := trend.NewAnalyzer(scoreHistory, tun)
	engine := scoring.NewEngine(scoring.NewPriceHistory(), log)
	generator := plan.NewGenerator(
		engine,
		strategy.NewSelector(tun),
		allocation.NewAllocator(log),
		analyzer,
		scoreHistory,
		tun,
		log,
	)

	fetcher := marketdata.NewFetcher(cfg, redisClient, log)
	service := plan.NewService(
		generator, fetcher,
		configs, snapshots, plans, scoreRepo,
		scoreHistory, tun.ScoreHistoryCap,
		log,
	)

	// Trend state survives restarts through the score archive
	if err := service.Hydrate(ctx); err != nil {
		log.WithError(err).Warn("Score history hydration failed, trend state starts cold")
	}

	a := &app{
		cfg:          cfg,
		log:          log,
		db:           db,
		redis:        redisClient,
		tuning:       tun,
		configs:      configs,
		snapshots:    snapshots,
		plans:        plans,
		scoreRepo:    scoreRepo,
		scoreHistory: scoreHistory,
		analyzer:     analyzer,
		fetcher:      fetcher,
		service:      service,
	}

	closeFn := func() {
		redisClient.Close()
		db.Close()
	}
	return a, closeFn, nil
}
